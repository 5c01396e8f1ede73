package handlers

import (
	"net/http"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/interfaces/http/response"
	"brixium.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles system settings and network fee rules
type SettingsHandler struct {
	settingsUsecase *usecases.SettingsUsecase
	feeGate         *usecases.FeeGate
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsUsecase *usecases.SettingsUsecase, feeGate *usecases.FeeGate) *SettingsHandler {
	return &SettingsHandler{settingsUsecase: settingsUsecase, feeGate: feeGate}
}

// Public returns the settings needed before login
// GET /api/v1/settings/public
func (h *SettingsHandler) Public(c *gin.Context) {
	settings, err := h.settingsUsecase.Public(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

// FeeQuote tells the customer whether a fee applies before they submit
// GET /api/v1/fees/quote?type=Transfer
func (h *SettingsHandler) FeeQuote(c *gin.Context) {
	txType := entities.TransactionType(c.Query("type"))
	if txType == "" {
		response.Error(c, domainerrors.BadRequest("type is required"))
		return
	}

	quote, err := h.feeGate.Quote(c.Request.Context(), txType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, quote)
}

// Get returns the full settings document
// GET /api/v1/admin/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsUsecase.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

// Update applies a partial settings update
// PUT /api/v1/admin/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var input entities.UpdateSettingsInput
	if !bindJSON(c, &input) {
		return
	}

	settings, err := h.settingsUsecase.Update(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

// ListFees returns every fee rule
// GET /api/v1/admin/fees
func (h *SettingsHandler) ListFees(c *gin.Context) {
	items, err := h.settingsUsecase.ListFees(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// CreateFee adds a fee rule
// POST /api/v1/admin/fees
func (h *SettingsHandler) CreateFee(c *gin.Context) {
	var input entities.FeeSettingInput
	if !bindJSON(c, &input) {
		return
	}

	fee, err := h.settingsUsecase.CreateFee(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"fee": fee})
}

// UpdateFee replaces a fee rule
// PUT /api/v1/admin/fees/:id
func (h *SettingsHandler) UpdateFee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input entities.FeeSettingInput
	if !bindJSON(c, &input) {
		return
	}

	fee, err := h.settingsUsecase.UpdateFee(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"fee": fee})
}

// DeleteFee removes a fee rule
// DELETE /api/v1/admin/fees/:id
func (h *SettingsHandler) DeleteFee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.settingsUsecase.DeleteFee(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Fee rule deleted"})
}
