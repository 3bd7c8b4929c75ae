package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yassen717/ModBlog/internal/auth"
	"github.com/Yassen717/ModBlog/internal/handler"
	"github.com/Yassen717/ModBlog/internal/middleware"
)

func sessionCookie(t *testing.T, header http.Header) *http.Cookie {
	t.Helper()
	for _, c := range (&http.Response{Header: header}).Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", auth.CookieName)
	return nil
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		wantCode int
		wantErr  string
	}{
		{"missing password", map[string]string{"email": "admin@modernblog.com"}, http.StatusBadRequest, "Email and password are required"},
		{"malformed body", "not an object", http.StatusBadRequest, "Email and password are required"},
		{"wrong password", map[string]string{"email": "admin@modernblog.com", "password": "nope"}, http.StatusUnauthorized, "Invalid credentials"},
		{"unknown email", map[string]string{"email": "ghost@modernblog.com", "password": "admin123"}, http.StatusUnauthorized, "Invalid credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, nil)
			w := srv.do(t, http.MethodPost, "/api/auth/login", tt.body, "")

			assert.Equal(t, tt.wantCode, w.Code)
			var resp map[string]any
			decode(t, w, &resp)
			assert.Equal(t, tt.wantErr, resp["error"])
			assert.Empty(t, w.Header().Get("Set-Cookie"))
		})
	}
}

func TestLoginMeLogout(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "Editor@ModernBlog.com", "password": "editor123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Message string       `json:"message"`
		User    auth.Profile `json:"user"`
	}
	decode(t, w, &login)
	assert.Equal(t, "Login successful", login.Message)
	assert.Equal(t, "2", login.User.ID)
	assert.Equal(t, auth.RoleEditor, login.User.Role)

	cookie := sessionCookie(t, w.Header())
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)

	session, ok := srv.sessions.Current(context.Background())
	require.True(t, ok)
	assert.Equal(t, "2", session.UserID)
	assert.True(t, session.Authenticated)

	w = srv.do(t, http.MethodGet, "/api/auth/me", nil, cookie.Value)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		User auth.Profile `json:"user"`
	}
	decode(t, w, &me)
	assert.Equal(t, "editor@modernblog.com", me.User.Email)
	assert.Equal(t, "Editor User", me.User.Name)

	w = srv.do(t, http.MethodPost, "/api/auth/logout", nil, cookie.Value)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Set-Cookie"), auth.CookieName+"=;"))
	_, ok = srv.sessions.Current(context.Background())
	assert.False(t, ok)
}

func TestMe(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Not authenticated"}`, w.Body.String())

	expired, _, err := auth.NewTokenManager(testSecret, -time.Minute).Issue(auth.Profile{ID: "1", Role: auth.RoleAdmin})
	require.NoError(t, err)
	w = srv.do(t, http.MethodGet, "/api/auth/me", nil, expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Token expired"}`, w.Body.String())

	orphan, _, err := srv.tokens.Issue(auth.Profile{ID: "99", Role: auth.RoleAdmin})
	require.NoError(t, err)
	w = srv.do(t, http.MethodGet, "/api/auth/me", nil, orphan)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}

func TestAdminPagesGuard(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodGet, "/admin/posts", nil, "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))

	w = srv.do(t, http.MethodGet, "/admin/posts", nil, srv.token(t, "subscriber"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.UnauthorizedPath, w.Header().Get("Location"))

	w = srv.do(t, http.MethodGet, "/admin/posts", nil, srv.token(t, auth.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"page":"/posts","userId":"1","role":"admin"}`, w.Body.String())
}

func TestLogin_RateLimitIgnoresForwardedFor(t *testing.T) {
	limiter := middleware.NewRateLimiter(2, time.Minute)
	t.Cleanup(limiter.Stop)
	srv := newTestServerWith(t, nil, func(d *handler.RouterDeps) {
		d.LoginLimiter = limiter
	})

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"admin@modernblog.com","password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("1.2.3.%d", i))
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{
		http.StatusUnauthorized,
		http.StatusUnauthorized,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, codes)
}
