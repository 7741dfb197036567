package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Sarojsin/school-management-system-by-group/internal/middleware"
	"github.com/Sarojsin/school-management-system-by-group/internal/models"
)

func claimsFromContext(c *gin.Context) *models.SessionClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
