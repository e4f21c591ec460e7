package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/console/internal/infrastructure/config"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName: "erp_session",
		Path:       "/",
		SameSite:   "lax",
		LoginPath:  "/login",
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	backend := newFakeBackend(t)
	backend.handle(http.MethodPost, "/auth/login", http.StatusOK, map[string]any{
		"token":      "tok-abc123",
		"expires_at": time.Now().Add(8 * time.Hour).UTC(),
	})

	engine := newScreenRouter(t, NewAuthHandler(backend.client(t), testSessionConfig()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login",
		strings.NewReader(`{"username":"ketoan01","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "erp_session", cookie.Name)
	assert.Equal(t, "tok-abc123", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Greater(t, cookie.MaxAge, 0)

	// The token travels only in the cookie, never in the body.
	assert.NotContains(t, rec.Body.String(), "tok-abc123")
	assert.Contains(t, rec.Body.String(), "expires_at")
}

func TestLoginBadCredentialsPassedThrough(t *testing.T) {
	backend := newFakeBackend(t)
	backend.handle(http.MethodPost, "/auth/login", http.StatusUnauthorized, map[string]any{
		"error": map[string]any{"code": "INVALID_CREDENTIALS", "message": "sai tên đăng nhập hoặc mật khẩu"},
	})

	engine := newScreenRouter(t, NewAuthHandler(backend.client(t), testSessionConfig()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login",
		strings.NewReader(`{"username":"ketoan01","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginMissingPasswordRejectedLocally(t *testing.T) {
	backend := newFakeBackend(t)
	engine := newScreenRouter(t, NewAuthHandler(backend.client(t), testSessionConfig()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login",
		strings.NewReader(`{"username":"ketoan01"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, backend.callCount(http.MethodPost, "/auth/login"))
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	backend := newFakeBackend(t)
	engine := newScreenRouter(t, NewAuthHandler(backend.client(t), testSessionConfig()))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/logout", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "erp_session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
