package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/service"
)

// CommentHandler serves comment submission and moderation.
type CommentHandler struct {
	comments *service.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// BulkCommentRequest is the body of POST /api/comments/bulk.
type BulkCommentRequest struct {
	IDs    []string `json:"ids"`
	Action string   `json:"action"`
}

// List handles GET /api/comments?postId=&status=. Anonymous callers only
// see approved comments, without email addresses.
func (h *CommentHandler) List(c *gin.Context) {
	filter := service.CommentFilter{
		PostID: c.Query("postId"),
		Status: c.Query("status"),
	}
	if !isStaff(c) {
		filter.Status = string(domain.CommentStatusApproved)
		c.JSON(http.StatusOK, gin.H{"comments": publicComments(h.comments.List(c.Request.Context(), filter))})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": h.comments.List(c.Request.Context(), filter)})
}

// AdminList handles GET /api/admin/comments?status=&search=&postId=.
func (h *CommentHandler) AdminList(c *gin.Context) {
	filter := service.CommentFilter{
		PostID: c.Query("postId"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	c.JSON(http.StatusOK, gin.H{"comments": h.comments.List(c.Request.Context(), filter)})
}

// Get handles GET /api/comments/:id.
func (h *CommentHandler) Get(c *gin.Context) {
	comment, err := h.comments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Comment")
		return
	}
	if !isStaff(c) {
		if comment.Status != domain.CommentStatusApproved {
			respondError(c, service.ErrNotFound, "Comment")
			return
		}
		c.JSON(http.StatusOK, gin.H{"comment": comment.Public()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// Create handles POST /api/comments.
func (h *CommentHandler) Create(c *gin.Context) {
	var input service.CommentInput
	if !bindJSON(c, &input) {
		return
	}
	comment, err := h.comments.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Post")
		return
	}
	message := "Comment submitted successfully"
	if comment.Status == domain.CommentStatusPending {
		message = "Comment submitted successfully and is pending moderation"
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment, "message": message})
}

// Reply handles POST /api/comments/:id/reply.
func (h *CommentHandler) Reply(c *gin.Context) {
	var input service.ReplyInput
	if !bindJSON(c, &input) {
		return
	}
	reply, err := h.comments.Reply(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err, "Comment")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": reply, "message": "Reply added successfully"})
}

// Update handles PUT /api/comments/:id.
func (h *CommentHandler) Update(c *gin.Context) {
	var update service.CommentUpdate
	if !bindJSON(c, &update) {
		return
	}
	comment, err := h.comments.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, err, "Comment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment, "message": "Comment updated successfully"})
}

// Delete handles DELETE /api/comments/:id.
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.comments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Comment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// Bulk handles POST /api/comments/bulk.
func (h *CommentHandler) Bulk(c *gin.Context) {
	var req BulkCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	if len(req.IDs) == 0 || req.Action == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: ids, action"})
		return
	}
	result, err := h.comments.Bulk(c.Request.Context(), req.IDs, req.Action)
	if err != nil {
		respondError(c, err, "Comment")
		return
	}
	c.JSON(http.StatusOK, result)
}
