package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/service"
)

// BlogHandler serves the read-only public blog views.
type BlogHandler struct {
	posts      *service.PostService
	categories *service.CategoryService
	comments   *service.CommentService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(posts *service.PostService, categories *service.CategoryService, comments *service.CommentService) *BlogHandler {
	return &BlogHandler{posts: posts, categories: categories, comments: comments}
}

// Posts handles GET /api/blog/posts.
func (h *BlogHandler) Posts(c *gin.Context) {
	filter := postFilterFromQuery(c)
	filter.Status = ""
	filter.IncludeDrafts = false
	c.JSON(http.StatusOK, h.posts.List(c.Request.Context(), filter))
}

// Post handles GET /api/blog/posts/:slug. The response carries the
// neighbouring posts, related posts and approved comments.
func (h *BlogHandler) Post(c *gin.Context) {
	ctx := c.Request.Context()
	detail, err := h.posts.GetPublishedBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err, "Post")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"post":     detail.Post,
		"previous": detail.Previous,
		"next":     detail.Next,
		"related":  detail.Related,
		"comments": publicComments(h.comments.ListApproved(ctx, detail.Post.ID)),
	})
}

// Categories handles GET /api/blog/categories with published post counts.
func (h *BlogHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.categories.ListWithCounts(c.Request.Context(), true)})
}

// Category handles GET /api/blog/categories/:slug.
func (h *BlogHandler) Category(c *gin.Context) {
	category, posts, err := h.posts.ByCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category, "posts": posts})
}

// Tag handles GET /api/blog/tags/:tag.
func (h *BlogHandler) Tag(c *gin.Context) {
	tag := c.Param("tag")
	c.JSON(http.StatusOK, gin.H{"tag": tag, "posts": h.posts.ByTag(c.Request.Context(), tag)})
}

// publicComments strips email addresses and always yields a JSON array.
func publicComments(comments []domain.Comment) []domain.PublicComment {
	if comments == nil {
		return []domain.PublicComment{}
	}
	return domain.PublicComments(comments)
}
