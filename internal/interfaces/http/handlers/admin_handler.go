package handlers

import (
	"net/http"

	"brixium.backend/internal/domain/entities"
	"brixium.backend/internal/interfaces/http/response"
	"brixium.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles customer management and the dashboard
type AdminHandler struct {
	adminUsecase *usecases.AdminUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// ListUsers lists customers, optionally filtered by name or email
// GET /api/v1/admin/users?search=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminUsecase.ListUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": users})
}

// GetUser returns one customer
// GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.adminUsecase.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// UpdateUser edits a customer's contact details
// PUT /api/v1/admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input entities.UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.adminUsecase.UpdateUser(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Dashboard returns the platform summary
// GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminUsecase.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
