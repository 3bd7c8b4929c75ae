package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/middleware"
	"github.com/Yassen717/ModBlog/internal/service"
)

// ExportHandler streams collections as downloads.
type ExportHandler struct {
	exporter service.Exporter
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exporter service.Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// StreamExportRequest represents query parameters for streaming export.
type StreamExportRequest struct {
	Resource string `form:"resource" binding:"required,oneof=posts categories comments users"`
	Format   string `form:"format" binding:"omitempty,oneof=csv ndjson"`
}

// ginStreamWriter wraps gin.ResponseWriter for streaming.
type ginStreamWriter struct {
	writer gin.ResponseWriter
}

func (w *ginStreamWriter) Write(data []byte) error {
	_, err := w.writer.Write(data)
	return err
}

func (w *ginStreamWriter) Flush() {
	w.writer.Flush()
}

// StreamExport handles GET /api/admin/export?resource=...&format=...
func (h *ExportHandler) StreamExport(c *gin.Context) {
	var req StreamExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource must be one of posts, categories, comments, users and format one of csv, ndjson"})
		return
	}
	if req.Format == "" {
		req.Format = service.FormatNDJSON
	}

	log := logger.WithRequestID(middleware.GetRequestID(c))
	log.Info("Streaming export", "resource", req.Resource, "format", req.Format)

	contentType := "application/x-ndjson"
	if req.Format == service.FormatCSV {
		contentType = "text/csv"
	}
	c.Header("Content-Type", contentType)
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Content-Disposition", "attachment; filename=\""+req.Resource+"."+req.Format+"\"")
	c.Status(http.StatusOK)

	count, err := h.exporter.Stream(c.Request.Context(), req.Resource, req.Format, &ginStreamWriter{writer: c.Writer})
	if err != nil {
		// Headers are already sent; the truncated body is all the client gets.
		log.Error("Streaming export failed", "resource", req.Resource, "count", count, "error", err)
		return
	}
	log.Info("Streaming export completed", "resource", req.Resource, "count", count)
}
