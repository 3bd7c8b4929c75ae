package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Yassen717/ModBlog/internal/auth"
	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/metrics"
	"github.com/Yassen717/ModBlog/internal/middleware"
	"github.com/Yassen717/ModBlog/internal/repository"
)

// Credentials resolves sign-in attempts and session subjects.
type Credentials interface {
	Authenticate(email, password string) (auth.Profile, error)
	Lookup(id string) (auth.Profile, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(profile auth.Profile) (string, time.Time, error)
	TTL() time.Duration
}

// AuthHandler serves login, logout and the current session.
type AuthHandler struct {
	credentials Credentials
	tokens      TokenIssuer
	sessions    repository.AdminSessionRepository
	secure      bool
}

// NewAuthHandler creates a new AuthHandler. secure marks the session cookie
// as HTTPS-only.
func NewAuthHandler(credentials Credentials, tokens TokenIssuer, sessions repository.AdminSessionRepository, secure bool) *AuthHandler {
	return &AuthHandler{credentials: credentials, tokens: tokens, sessions: sessions, secure: secure}
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) cookieOptions() auth.CookieOptions {
	return auth.CookieOptions{Secure: h.secure, MaxAge: h.tokens.TTL()}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		metrics.RecordLogin("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	log := logger.WithRequestID(middleware.GetRequestID(c))
	profile, err := h.credentials.Authenticate(req.Email, req.Password)
	if err != nil {
		metrics.RecordLogin("failure")
		log.Warn("Login failed", "email", req.Email, "client_ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, _, err := h.tokens.Issue(profile)
	if err != nil {
		log.Error("Failed to issue session token", "user_id", profile.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	auth.SetCookie(c.Writer, token, h.cookieOptions())
	h.sessions.Mark(c.Request.Context(), domain.AdminSession{
		UserID:        profile.ID,
		Role:          profile.Role,
		Authenticated: true,
		At:            time.Now().UTC(),
	})
	metrics.RecordLogin("success")
	log.Info("User logged in", "user_id", profile.ID, "role", profile.Role)

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": profile})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	auth.ClearCookie(c.Writer, h.cookieOptions())
	h.sessions.Clear(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		msg := "Not authenticated"
		if errors.Is(middleware.AuthError(c), auth.ErrTokenExpired) {
			msg = "Token expired"
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
		return
	}

	profile, err := h.credentials.Lookup(claims.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}
