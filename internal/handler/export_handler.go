package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/edumatrix/edumatrix-api/internal/service"
	"github.com/edumatrix/edumatrix-api/pkg/response"
)

// ExportHandler streams rendered entity listings.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Students godoc
// @Summary Export the student listing
// @Tags Export
// @Produce text/csv
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /export/students [get]
func (h *ExportHandler) Students(c *gin.Context) {
	result, err := h.exports.Students(c.Request.Context(), service.ExportFormat(c.DefaultQuery("format", "csv")))
	if err != nil {
		response.Error(c, err)
		return
	}
	stream(c, result)
}

// Professors godoc
// @Summary Export the professor listing
// @Tags Export
// @Produce text/csv
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /export/professors [get]
func (h *ExportHandler) Professors(c *gin.Context) {
	result, err := h.exports.Professors(c.Request.Context(), service.ExportFormat(c.DefaultQuery("format", "csv")))
	if err != nil {
		response.Error(c, err)
		return
	}
	stream(c, result)
}

// Courses godoc
// @Summary Export the course listing
// @Tags Export
// @Produce text/csv
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /export/courses [get]
func (h *ExportHandler) Courses(c *gin.Context) {
	result, err := h.exports.Courses(c.Request.Context(), service.ExportFormat(c.DefaultQuery("format", "csv")))
	if err != nil {
		response.Error(c, err)
		return
	}
	stream(c, result)
}

func stream(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(200, result.ContentType, result.Payload)
}
