package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	"github.com/Sarojsin/school-management-system-by-group/internal/service"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
	"github.com/Sarojsin/school-management-system-by-group/pkg/response"
)

// AuthHandler wires signup, login and session endpoints.
type AuthHandler struct {
	auth       *service.AuthService
	identity   *service.IdentityService
	cookieName string
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(auth *service.AuthService, identity *service.IdentityService, cookieName string) *AuthHandler {
	return &AuthHandler{auth: auth, identity: identity, cookieName: cookieName}
}

// Signup registers a credential plus role profile and logs the new user in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid signup payload"))
		return
	}

	reg, err := h.identity.RegisterUser(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, expiresAt, err := h.auth.IssueSession(reg.Credential)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue session"))
		return
	}
	h.setSessionCookie(c, token, expiresAt)

	response.Created(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user": models.UserInfo{
			ID:       reg.Credential.ID,
			Username: reg.Credential.Username,
			Email:    reg.Credential.Email,
			Role:     reg.Credential.Role,
		},
		"profile": reg.Profile,
	})
}

// Login authenticates and issues a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setSessionCookie(c, res.Token, res.ExpiresAt)

	response.JSON(c, http.StatusOK, res)
}

// Logout clears the session cookie. Tokens are stateless, so the cookie is
// the only thing to drop.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	response.NoContent(c)
}

// Me returns the claims of the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"role":     claims.Role,
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(h.cookieName, token, maxAge, "/", "", false, true)
}
