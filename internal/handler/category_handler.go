package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yassen717/ModBlog/internal/service"
)

// CategoryHandler serves the category endpoints.
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.categories.List(c.Request.Context())})
}

// AdminList handles GET /api/admin/categories, counting posts of any status.
func (h *CategoryHandler) AdminList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.categories.ListWithCounts(c.Request.Context(), false)})
}

// Get handles GET /api/categories/:id.
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var input service.CategoryInput
	if !bindJSON(c, &input) {
		return
	}
	category, err := h.categories.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Category")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// Update handles PUT /api/categories/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	var update service.CategoryUpdate
	if !bindJSON(c, &update) {
		return
	}
	category, err := h.categories.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category, "message": "Category updated successfully"})
}

// Delete handles DELETE /api/categories/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
