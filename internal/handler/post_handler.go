package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Yassen717/ModBlog/internal/service"
)

// PostHandler serves the post endpoints.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func postFilterFromQuery(c *gin.Context) service.PostFilter {
	filter := service.PostFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Author:   c.Query("author"),
		Tag:      c.Query("tag"),
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = min(limit, service.MaxPageSize)
		filter.Page = 1
		if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
			filter.Page = page
		}
	}
	return filter
}

// List handles GET /api/posts. Drafts are only visible to staff.
func (h *PostHandler) List(c *gin.Context) {
	filter := postFilterFromQuery(c)
	filter.IncludeDrafts = isStaff(c)
	c.JSON(http.StatusOK, h.posts.List(c.Request.Context(), filter))
}

// AdminList handles GET /api/admin/posts.
func (h *PostHandler) AdminList(c *gin.Context) {
	filter := postFilterFromQuery(c)
	filter.IncludeDrafts = true
	c.JSON(http.StatusOK, h.posts.List(c.Request.Context(), filter))
}

// Get handles GET /api/posts/:id. Unpublished posts are hidden from
// anonymous callers.
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Post")
		return
	}
	if !post.IsPublished() && !isStaff(c) {
		respondError(c, service.ErrNotFound, "Post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// Search handles GET /api/posts/search?q=.
func (h *PostHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"posts": h.posts.Search(c.Request.Context(), query),
		"query": query,
	})
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(c *gin.Context) {
	var input service.PostInput
	if !bindJSON(c, &input) {
		return
	}
	post, err := h.posts.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Post")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// Update handles PUT /api/posts/:id.
func (h *PostHandler) Update(c *gin.Context) {
	var update service.PostUpdate
	if !bindJSON(c, &update) {
		return
	}
	post, err := h.posts.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, err, "Post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "message": "Post updated successfully"})
}

// Delete handles DELETE /api/posts/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
