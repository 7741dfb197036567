package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	"github.com/Sarojsin/school-management-system-by-group/internal/service"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
	"github.com/Sarojsin/school-management-system-by-group/pkg/response"
)

// StudentHandler serves the student-facing pages.
type StudentHandler struct {
	dashboards *service.DashboardService
	profiles   *service.ProfileService
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(dashboards *service.DashboardService, profiles *service.ProfileService) *StudentHandler {
	return &StudentHandler{dashboards: dashboards, profiles: profiles}
}

// Dashboard returns the student landing page data.
func (h *StudentHandler) Dashboard(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	dash, err := h.dashboards.ForStudent(c.Request.Context(), *claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dash)
}

// Profile returns the session owner's student profile.
func (h *StudentHandler) Profile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	student, err := h.profiles.StudentSelf(c.Request.Context(), *claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// UpdateProfile applies the owner-editable profile fields.
func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var patch models.StudentProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}

	student, err := h.profiles.UpdateStudentSelf(c.Request.Context(), *claims, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}
