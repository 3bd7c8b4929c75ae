package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/service"
)

// SettingsHandler serves the site settings.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Public handles GET /api/settings/public.
func (h *SettingsHandler) Public(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.settings.Public(c.Request.Context())})
}

// Get handles GET /api/admin/settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.settings.Get(c.Request.Context())})
}

// Save handles PUT /api/admin/settings.
func (h *SettingsHandler) Save(c *gin.Context) {
	var settings domain.BlogSettings
	if !bindJSON(c, &settings) {
		return
	}
	saved, err := h.settings.Save(c.Request.Context(), settings)
	if err != nil {
		respondError(c, err, "Settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": saved, "message": "Settings saved successfully"})
}

// Reset handles POST /api/admin/settings/reset.
func (h *SettingsHandler) Reset(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"settings": h.settings.Reset(c.Request.Context()),
		"message":  "Settings reset to defaults",
	})
}
