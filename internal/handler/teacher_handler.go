package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	"github.com/Sarojsin/school-management-system-by-group/internal/service"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
	"github.com/Sarojsin/school-management-system-by-group/pkg/response"
)

// TeacherHandler serves the teacher-facing pages and record entry.
type TeacherHandler struct {
	dashboards *service.DashboardService
	profiles   *service.ProfileService
	academics  *service.AcademicService
}

// NewTeacherHandler creates a new handler.
func NewTeacherHandler(dashboards *service.DashboardService, profiles *service.ProfileService, academics *service.AcademicService) *TeacherHandler {
	return &TeacherHandler{dashboards: dashboards, profiles: profiles, academics: academics}
}

// Dashboard returns the teacher landing page data.
func (h *TeacherHandler) Dashboard(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	dash, err := h.dashboards.ForTeacher(c.Request.Context(), *claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dash)
}

// Profile returns the session owner's teacher profile with subjects.
func (h *TeacherHandler) Profile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	teacher, subjects, err := h.profiles.TeacherSelf(c.Request.Context(), *claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"teacher": teacher, "subjects": subjects})
}

// UpdateProfile applies the owner-editable profile fields.
func (h *TeacherHandler) UpdateProfile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var patch models.TeacherProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}

	teacher, err := h.profiles.UpdateTeacherSelf(c.Request.Context(), *claims, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}

// AddSubject records a subject assignment for the session owner.
func (h *TeacherHandler) AddSubject(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.TeacherSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject payload"))
		return
	}

	subject, err := h.profiles.AddTeacherSubject(c.Request.Context(), *claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// RecordMarks appends a marks entry for a student.
func (h *TeacherHandler) RecordMarks(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.RecordMarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid marks payload"))
		return
	}

	mark, err := h.academics.RecordMarks(c.Request.Context(), *claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mark)
}

// RecordAttendance appends an attendance entry for a student.
func (h *TeacherHandler) RecordAttendance(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}

	att, err := h.academics.RecordAttendance(c.Request.Context(), *claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, att)
}

// RecordAssignment appends an assignment entry for a student.
func (h *TeacherHandler) RecordAssignment(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.RecordAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}

	assignment, err := h.academics.RecordAssignment(c.Request.Context(), *claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}
