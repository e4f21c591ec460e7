package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erp/console/internal/infrastructure/config"
	"github.com/erp/console/internal/infrastructure/erp"
	"github.com/erp/console/internal/interfaces/http/dto"
)

// AuthHandler exchanges login credentials for a session cookie.
type AuthHandler struct {
	BaseHandler
	client  erp.AuthClient
	session config.SessionConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(client *erp.Client, session config.SessionConfig) *AuthHandler {
	return &AuthHandler{client: client.Auth(), session: session}
}

// RegisterRoutes registers the login and logout routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
}

// Login forwards the credentials to the backend and stores the issued
// token in the session cookie. The token itself never appears in the
// response body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	session, err := h.client.Login(c.Request.Context(), erp.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(sameSiteMode(h.session.SameSite))
	c.SetCookie(h.session.CookieName, session.Token, maxAge,
		h.session.Path, h.session.Domain, h.session.Secure, true)

	h.Success(c, dto.LoginResponse{ExpiresAt: session.ExpiresAt.Format(time.RFC3339)})
}

// Logout clears the session cookie. The backend holds no server-side
// session to revoke.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(sameSiteMode(h.session.SameSite))
	c.SetCookie(h.session.CookieName, "", -1,
		h.session.Path, h.session.Domain, h.session.Secure, true)
	h.NoContent(c)
}

func sameSiteMode(s string) http.SameSite {
	switch s {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
