package handlers

import (
	"net/http"

	"brixium.backend/internal/domain/entities"
	"brixium.backend/internal/interfaces/http/response"
	"brixium.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles the customer's profile and settings
type AccountHandler struct {
	accountUsecase *usecases.AccountUsecase
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountUsecase *usecases.AccountUsecase) *AccountHandler {
	return &AccountHandler{accountUsecase: accountUsecase}
}

// UpdateProfile edits name and phone
// PUT /api/v1/me/profile
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var input entities.UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.accountUsecase.UpdateProfile(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// UpdateSettings changes the account currency and transfer PIN
// PUT /api/v1/me/settings
func (h *AccountHandler) UpdateSettings(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var input entities.UpdateAccountSettingsInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.accountUsecase.UpdateSettings(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
