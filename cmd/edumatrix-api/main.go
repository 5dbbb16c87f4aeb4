package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edumatrix/edumatrix-api/api/swagger"
	"github.com/edumatrix/edumatrix-api/internal/handler"
	"github.com/edumatrix/edumatrix-api/internal/middleware"
	"github.com/edumatrix/edumatrix-api/internal/repository"
	"github.com/edumatrix/edumatrix-api/internal/service"
	"github.com/edumatrix/edumatrix-api/pkg/cache"
	"github.com/edumatrix/edumatrix-api/pkg/config"
	"github.com/edumatrix/edumatrix-api/pkg/database"
	"github.com/edumatrix/edumatrix-api/pkg/export"
	"github.com/edumatrix/edumatrix-api/pkg/logger"
	corsmiddleware "github.com/edumatrix/edumatrix-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edumatrix/edumatrix-api/pkg/middleware/requestid"
)

// @title EduMatrix API
// @version 1.0.0
// @description University records service: students, professors, courses, enrollments
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repository.InitSchema(initCtx, db); err != nil {
		logr.Sugar().Fatalw("failed to initialize schema", "error", err)
	}

	// The stats cache degrades to uncached reads when Redis is unreachable.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, statistics will not be cached", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	professorRepo := repository.NewProfessorRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	professorSvc := service.NewProfessorService(professorRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, professorRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, validate, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	exportSvc := service.NewExportService(studentRepo, professorRepo, courseRepo,
		export.NewCSVExporter(), export.NewPDFExporter(), logr)
	statsSvc := service.NewStatsService(statsRepo, cacheRepo, cfg.Stats.CacheTTL, logr)
	metricsSvc := service.NewMetricsService()

	if err := authSvc.SeedAdmin(initCtx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, cfg.Seed.AdminName); err != nil {
		logr.Sugar().Fatalw("failed to seed admin user", "error", err)
	}

	studentHandler := handler.NewStudentHandler(studentSvc)
	professorHandler := handler.NewProfessorHandler(professorSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	statsHandler := handler.NewStatsHandler(statsSvc, metricsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		start := time.Now()
		err := db.PingContext(c.Request.Context())
		metricsSvc.ObserveDBQuery("ping", time.Since(start))
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	protected.Use(middleware.StatsInvalidation(statsSvc))
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.GET("/students", studentHandler.List)
		protected.POST("/students", studentHandler.Create)
		protected.GET("/students/:id", studentHandler.Get)
		protected.PUT("/students/:id", studentHandler.Update)
		protected.DELETE("/students/:id", studentHandler.Delete)
		protected.GET("/students/:id/courses", studentHandler.Courses)
		protected.GET("/students/:id/enrollments", enrollmentHandler.ForStudent)

		protected.GET("/professors", professorHandler.List)
		protected.POST("/professors", professorHandler.Create)
		protected.GET("/professors/:id", professorHandler.Get)
		protected.PUT("/professors/:id", professorHandler.Update)
		protected.DELETE("/professors/:id", professorHandler.Delete)
		protected.GET("/professors/:id/courses", professorHandler.Courses)

		protected.GET("/courses", courseHandler.List)
		protected.POST("/courses", courseHandler.Create)
		protected.GET("/courses/:id", courseHandler.Get)
		protected.PUT("/courses/:id", courseHandler.Update)
		protected.DELETE("/courses/:id", courseHandler.Delete)
		protected.GET("/courses/:id/students", courseHandler.Students)
		protected.GET("/courses/:id/start-date", courseHandler.StartDate)
		protected.GET("/courses/:id/enrollments", enrollmentHandler.ForCourse)

		protected.POST("/enrollments", enrollmentHandler.Enroll)
		protected.DELETE("/enrollments/:studentId/:courseId", enrollmentHandler.Remove)
		protected.PUT("/enrollments/:studentId/:courseId/grade", enrollmentHandler.SetGrade)

		protected.GET("/export/students", exportHandler.Students)
		protected.GET("/export/professors", exportHandler.Professors)
		protected.GET("/export/courses", exportHandler.Courses)

		protected.GET("/stats", statsHandler.Get)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
