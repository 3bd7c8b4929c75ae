package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yassen717/ModBlog/internal/backup"
	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/middleware"
	"github.com/Yassen717/ModBlog/internal/service"
)

// Backups is the backup service as seen by the admin API.
type Backups interface {
	Run(ctx context.Context) (backup.Result, error)
	List(ctx context.Context) ([]backup.Object, error)
	Restore(ctx context.Context, key string) (string, error)
}

// AdminHandler serves the dashboard and the data maintenance endpoints.
type AdminHandler struct {
	dashboard *service.DashboardService
	data      *service.DataService
	backups   Backups
}

// NewAdminHandler creates a new AdminHandler. backups may be nil when no
// bucket is configured.
func NewAdminHandler(dashboard *service.DashboardService, data *service.DataService, backups Backups) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, data: data, backups: backups}
}

// RestoreRequest is the body of POST /api/admin/backups/restore.
type RestoreRequest struct {
	Key string `json:"key"`
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.Stats(c.Request.Context()))
}

// DataCounts handles GET /api/admin/data.
func (h *AdminHandler) DataCounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"counts": h.data.Counts(c.Request.Context())})
}

// ClearData handles POST /api/admin/data/clear.
func (h *AdminHandler) ClearData(c *gin.Context) {
	ctx := c.Request.Context()
	h.data.Clear(ctx)
	h.audit(c, "Blog data cleared")
	c.JSON(http.StatusOK, gin.H{"message": "All blog data cleared", "counts": h.data.Counts(ctx)})
}

// SeedData handles POST /api/admin/data/seed. Populated collections are
// left alone.
func (h *AdminHandler) SeedData(c *gin.Context) {
	ctx := c.Request.Context()
	result := h.data.Reinitialize(ctx)
	h.audit(c, "Blog data reinitialized")
	c.JSON(http.StatusOK, gin.H{"seeded": result.Seeded, "counts": h.data.Counts(ctx)})
}

// ResetData handles POST /api/admin/data/reset.
func (h *AdminHandler) ResetData(c *gin.Context) {
	ctx := c.Request.Context()
	result := h.data.FullReset(ctx)
	h.audit(c, "Blog data reset")
	c.JSON(http.StatusOK, gin.H{"seeded": result.Seeded, "counts": h.data.Counts(ctx)})
}

// ListBackups handles GET /api/admin/backups.
func (h *AdminHandler) ListBackups(c *gin.Context) {
	if !h.backupsConfigured(c) {
		return
	}
	objects, err := h.backups.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Backup")
		return
	}
	c.JSON(http.StatusOK, gin.H{"backups": objects})
}

// RunBackup handles POST /api/admin/backups.
func (h *AdminHandler) RunBackup(c *gin.Context) {
	if !h.backupsConfigured(c) {
		return
	}
	result, err := h.backups.Run(c.Request.Context())
	if err != nil {
		respondError(c, err, "Backup")
		return
	}
	h.audit(c, "Backup triggered")
	c.JSON(http.StatusCreated, gin.H{"backup": result})
}

// RestoreBackup handles POST /api/admin/backups/restore. An empty key
// restores the newest snapshot.
func (h *AdminHandler) RestoreBackup(c *gin.Context) {
	if !h.backupsConfigured(c) {
		return
	}
	var req RestoreRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	key, err := h.backups.Restore(c.Request.Context(), req.Key)
	if errors.Is(err, backup.ErrNoBackups) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No backups found"})
		return
	}
	if err != nil {
		respondError(c, err, "Backup")
		return
	}
	h.audit(c, "Backup restored")
	c.JSON(http.StatusOK, gin.H{"restored": key, "counts": h.data.Counts(c.Request.Context())})
}

func (h *AdminHandler) backupsConfigured(c *gin.Context) bool {
	if h.backups == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Backups are not configured"})
		return false
	}
	return true
}

func (h *AdminHandler) audit(c *gin.Context, msg string) {
	log := logger.WithRequestID(middleware.GetRequestID(c))
	if claims, ok := middleware.GetClaims(c); ok {
		log = log.With("user_id", claims.UserID, "role", claims.Role)
	}
	log.InfoContext(c.Request.Context(), msg)
}
