package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Sarojsin/school-management-system-by-group/internal/service"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
	"github.com/Sarojsin/school-management-system-by-group/pkg/response"
)

// NoticeHandler serves the audience-scoped notice board and the public fee
// schedule for any signed-in role.
type NoticeHandler struct {
	notices *service.NoticeService
	fees    *service.FeeService
}

// NewNoticeHandler creates a new handler.
func NewNoticeHandler(notices *service.NoticeService, fees *service.FeeService) *NoticeHandler {
	return &NoticeHandler{notices: notices, fees: fees}
}

// Board returns active, unexpired notices targeted at the viewer's role.
func (h *NoticeHandler) Board(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	notices, err := h.notices.Board(c.Request.Context(), claims.Role, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notices)
}

// Fees returns the active fee schedule.
func (h *NoticeHandler) Fees(c *gin.Context) {
	fees, err := h.fees.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fees)
}
