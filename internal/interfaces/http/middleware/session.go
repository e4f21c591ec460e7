package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/erp/console/internal/infrastructure/erp"
	"github.com/erp/console/internal/interfaces/http/dto"
)

// Session context keys
const (
	SessionTokenKey = "session_token"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
)

// SessionConfig holds configuration for the session middleware
type SessionConfig struct {
	// CookieName is the cookie the shell stores the session token in
	CookieName string
	// LoginPath is where unauthenticated screen requests are sent
	LoginPath string
	// SkipPaths are paths that don't require a session
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require a session
	SkipPathPrefixes []string
}

// DefaultSessionConfig returns default session middleware configuration
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		CookieName: "erp_session",
		LoginPath:  "/login",
		SkipPaths: []string{
			"/health",
			"/login",
			"/logout",
		},
	}
}

// SessionAuth gates every screen route on a session token. The token
// comes from the session cookie or the Authorization header; only its
// expiry is checked locally, the backend stays the authority on
// validity. Browsers navigating without a session get a 303 to the
// login page; mutations get a 401 envelope.
func SessionAuth(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		// The login page must stay reachable without a session, or the
		// redirect would point back at itself.
		if cfg.LoginPath != "" && path == cfg.LoginPath {
			c.Next()
			return
		}
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		token := extractToken(c, cfg.CookieName)
		if token == "" {
			rejectUnauthenticated(c, cfg, dto.ErrCodeUnauthorized, "Missing session token")
			return
		}
		if tokenExpired(token) {
			rejectUnauthenticated(c, cfg, dto.ErrCodeTokenExpired, "Session token expired")
			return
		}

		c.Set(SessionTokenKey, token)
		c.Request = c.Request.WithContext(erp.WithToken(c.Request.Context(), token))
		c.Next()
	}
}

// extractToken reads the token from the cookie first, then the
// Authorization header.
func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader(AuthHeaderKey)
	if strings.HasPrefix(authHeader, BearerPrefix) {
		return strings.TrimPrefix(authHeader, BearerPrefix)
	}
	return ""
}

// tokenExpired parses the token without verifying its signature and
// reports whether its exp claim is in the past. Tokens that don't
// parse as JWTs pass through; the backend will reject them if bad.
func tokenExpired(token string) bool {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func rejectUnauthenticated(c *gin.Context, cfg SessionConfig, code, message string) {
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		c.Redirect(http.StatusSeeOther, cfg.LoginPath)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
