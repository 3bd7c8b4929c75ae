package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yassen717/ModBlog/internal/service"
)

// UserHandler serves user administration under /api/admin/users.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ChangeRoleRequest is the body of PUT /api/admin/users/:id/role.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// List handles GET /api/admin/users?search=&role=&status=.
func (h *UserHandler) List(c *gin.Context) {
	users := h.users.List(c.Request.Context(), service.UserFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Status: c.Query("status"),
	})
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Get handles GET /api/admin/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Create handles POST /api/admin/users.
func (h *UserHandler) Create(c *gin.Context) {
	var input service.UserInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := h.users.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Update handles PUT /api/admin/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	var update service.UserUpdate
	if !bindJSON(c, &update) {
		return
	}
	user, err := h.users.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ChangeRole handles PUT /api/admin/users/:id/role.
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req ChangeRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: role"})
		return
	}
	user, err := h.users.ChangeRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ToggleStatus handles POST /api/admin/users/:id/toggle-status.
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	user, err := h.users.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Delete handles DELETE /api/admin/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
