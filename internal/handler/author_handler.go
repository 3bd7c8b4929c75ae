package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/service"
)

// AuthorHandler serves author profiles.
type AuthorHandler struct {
	authors *service.AuthorService
}

// NewAuthorHandler creates a new AuthorHandler.
func NewAuthorHandler(authors *service.AuthorService) *AuthorHandler {
	return &AuthorHandler{authors: authors}
}

// List handles GET /api/authors.
func (h *AuthorHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authors": h.authors.List(c.Request.Context())})
}

// Get handles GET /api/authors/:id.
func (h *AuthorHandler) Get(c *gin.Context) {
	author, err := h.authors.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Author")
		return
	}
	c.JSON(http.StatusOK, gin.H{"author": author})
}

// Save handles POST /api/admin/authors and PUT /api/admin/authors/:id.
func (h *AuthorHandler) Save(c *gin.Context) {
	var author domain.Author
	if !bindJSON(c, &author) {
		return
	}
	status := http.StatusCreated
	if id := c.Param("id"); id != "" {
		author.ID = id
		status = http.StatusOK
	}
	saved, err := h.authors.Save(c.Request.Context(), author)
	if err != nil {
		respondError(c, err, "Author")
		return
	}
	c.JSON(status, gin.H{"author": saved})
}

// Delete handles DELETE /api/admin/authors/:id.
func (h *AuthorHandler) Delete(c *gin.Context) {
	if err := h.authors.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Author")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Author deleted successfully"})
}
