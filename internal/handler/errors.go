package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yassen717/ModBlog/internal/auth"
	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/middleware"
	"github.com/Yassen717/ModBlog/internal/service"
)

// respondError maps a service error onto a JSON error response. resource
// names the record in not-found messages, e.g. "Post".
func respondError(c *gin.Context, err error, resource string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		body := gin.H{"error": verr.Message}
		if len(verr.Fields) > 0 {
			body["fields"] = verr.Fields
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
	case errors.Is(err, service.ErrCommentsDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": "Comments are disabled"})
	case errors.Is(err, service.ErrInvalidBulkAction),
		errors.Is(err, service.ErrUnknownResource),
		errors.Is(err, service.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.WithRequestID(middleware.GetRequestID(c)).ErrorContext(c.Request.Context(), "Request failed",
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bindJSON decodes the request body, answering 400 on malformed input.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

// isStaff reports whether the request carries an admin or editor session.
func isStaff(c *gin.Context) bool {
	claims, ok := middleware.GetClaims(c)
	return ok && auth.CanManage(claims.Role)
}
