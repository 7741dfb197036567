package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	"github.com/Sarojsin/school-management-system-by-group/internal/service"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
	"github.com/Sarojsin/school-management-system-by-group/pkg/response"
)

// AuthorityHandler serves the administrative pages: notices, fees, the
// student roster, exports and the credential audit.
type AuthorityHandler struct {
	dashboards *service.DashboardService
	profiles   *service.ProfileService
	notices    *service.NoticeService
	fees       *service.FeeService
	exports    *service.ExportService
	identity   *service.IdentityService
}

// NewAuthorityHandler creates a new handler.
func NewAuthorityHandler(dashboards *service.DashboardService, profiles *service.ProfileService, notices *service.NoticeService, fees *service.FeeService, exports *service.ExportService, identity *service.IdentityService) *AuthorityHandler {
	return &AuthorityHandler{
		dashboards: dashboards,
		profiles:   profiles,
		notices:    notices,
		fees:       fees,
		exports:    exports,
		identity:   identity,
	}
}

// Dashboard returns the authority landing page data.
func (h *AuthorityHandler) Dashboard(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	dash, err := h.dashboards.ForAuthority(c.Request.Context(), *claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dash)
}

// Profile returns the session owner's authority profile.
func (h *AuthorityHandler) Profile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	authority, err := h.profiles.AuthoritySelf(c.Request.Context(), *claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, authority)
}

// UpdateProfile applies the owner-editable profile fields.
func (h *AuthorityHandler) UpdateProfile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var patch models.AuthorityProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}

	authority, err := h.profiles.UpdateAuthoritySelf(c.Request.Context(), *claims, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, authority)
}

// CreateNotice publishes a broadcast notice.
func (h *AuthorityHandler) CreateNotice(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid notice payload"))
		return
	}

	notice, err := h.notices.Create(c.Request.Context(), *claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, notice)
}

// ToggleNotice flips a notice between active and inactive.
func (h *AuthorityHandler) ToggleNotice(c *gin.Context) {
	if err := h.notices.Toggle(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListNotices returns every notice including inactive and expired ones.
func (h *AuthorityHandler) ListNotices(c *gin.Context) {
	notices, err := h.notices.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notices)
}

// CreateFee appends a fee schedule entry.
func (h *AuthorityHandler) CreateFee(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid fee payload"))
		return
	}

	fee, err := h.fees.Create(c.Request.Context(), *claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fee)
}

// ListFees returns every fee entry, active first.
func (h *AuthorityHandler) ListFees(c *gin.Context) {
	fees, err := h.fees.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fees)
}

// Students lists the student roster.
func (h *AuthorityHandler) Students(c *gin.Context) {
	students, err := h.dashboards.Roster(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Teachers lists the teacher roster.
func (h *AuthorityHandler) Teachers(c *gin.Context) {
	teachers, err := h.dashboards.TeacherRoster(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers)
}

// Staff lists the authority accounts.
func (h *AuthorityHandler) Staff(c *gin.Context) {
	staff, err := h.dashboards.StaffDirectory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, staff)
}

// ExportRoster streams the student roster as a CSV download.
func (h *AuthorityHandler) ExportRoster(c *gin.Context) {
	out, filename, err := h.exports.StudentRosterCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", out)
}

// ExportMarks streams a per-student marks report as a PDF download.
func (h *AuthorityHandler) ExportMarks(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid student id"))
		return
	}

	out, filename, err := h.exports.StudentMarksPDF(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", out)
}

// OrphanedCredentials lists credentials with no matching profile in their
// role store. Read-only reconciliation aid.
func (h *AuthorityHandler) OrphanedCredentials(c *gin.Context) {
	orphans, err := h.identity.FindOrphans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"orphans": orphans, "count": len(orphans)})
}
