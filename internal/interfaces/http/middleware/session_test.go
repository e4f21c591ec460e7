package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/console/internal/infrastructure/erp"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func sessionRouter(cfg SessionConfig) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionAuth(cfg))

	var seenToken string
	handler := func(c *gin.Context) {
		seenToken, _ = erp.TokenFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	}
	router.GET("/accounting/payment-vouchers", handler)
	router.POST("/accounting/payment-vouchers", handler)
	router.GET("/health", handler)
	return router, &seenToken
}

func TestSessionAuthMissingToken(t *testing.T) {
	router, _ := sessionRouter(DefaultSessionConfig())

	t.Run("GET redirects to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/accounting/payment-vouchers", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("POST gets 401 envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/accounting/payment-vouchers", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})
}

func TestSessionAuthCookieToken(t *testing.T) {
	router, seenToken := sessionRouter(DefaultSessionConfig())
	token := signedToken(t, time.Now().Add(time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/accounting/payment-vouchers", nil)
	req.AddCookie(&http.Cookie{Name: "erp_session", Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, token, *seenToken)
}

func TestSessionAuthBearerToken(t *testing.T) {
	router, seenToken := sessionRouter(DefaultSessionConfig())
	token := signedToken(t, time.Now().Add(time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/accounting/payment-vouchers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, token, *seenToken)
}

func TestSessionAuthExpiredToken(t *testing.T) {
	router, _ := sessionRouter(DefaultSessionConfig())
	token := signedToken(t, time.Now().Add(-time.Hour))

	t.Run("GET redirects", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/accounting/payment-vouchers", nil)
		req.AddCookie(&http.Cookie{Name: "erp_session", Value: token})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
	})

	t.Run("POST gets token expired code", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/accounting/payment-vouchers", nil)
		req.AddCookie(&http.Cookie{Name: "erp_session", Value: token})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
	})
}

func TestSessionAuthOpaqueTokenPasses(t *testing.T) {
	// Not every backend issues JWTs; opaque tokens are forwarded as-is.
	router, seenToken := sessionRouter(DefaultSessionConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/accounting/payment-vouchers", nil)
	req.AddCookie(&http.Cookie{Name: "erp_session", Value: "opaque-token-123"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "opaque-token-123", *seenToken)
}

func TestSessionAuthSkipPaths(t *testing.T) {
	router, _ := sessionRouter(DefaultSessionConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionAuthLoginPathNeverGated(t *testing.T) {
	// Even when the skip list forgets the login path, gating it would
	// have the redirect chase its own tail.
	router, _ := sessionRouter(SessionConfig{
		CookieName: "erp_session",
		LoginPath:  "/login",
		SkipPaths:  []string{"/health", "/api/v1/login", "/api/v1/logout"},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}
