package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edumatrix/edumatrix-api/internal/middleware"
	"github.com/edumatrix/edumatrix-api/internal/models"
	appErrors "github.com/edumatrix/edumatrix-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// idParam parses a positive int64 path parameter.
func idParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}
