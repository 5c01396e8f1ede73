package handlers

import (
	"net/http"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/interfaces/http/response"
	"brixium.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

// WithdrawalHandler handles external withdrawal requests
type WithdrawalHandler struct {
	withdrawalUsecase *usecases.WithdrawalUsecase
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawalUsecase *usecases.WithdrawalUsecase) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalUsecase: withdrawalUsecase}
}

// Request files a withdrawal for admin approval
// POST /api/v1/withdrawals
func (h *WithdrawalHandler) Request(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var input entities.WithdrawalInput
	if !bindJSON(c, &input) {
		return
	}

	req, err := h.withdrawalUsecase.Request(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"withdrawal": req})
}

// ListMine returns the caller's withdrawal requests
// GET /api/v1/withdrawals
func (h *WithdrawalHandler) ListMine(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	items, err := h.withdrawalUsecase.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// List returns withdrawal requests, optionally by status
// GET /api/v1/admin/withdrawals?status=Pending
func (h *WithdrawalHandler) List(c *gin.Context) {
	items, err := h.withdrawalUsecase.List(c.Request.Context(), entities.TransactionStatus(c.Query("status")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// Process approves or rejects a pending request
// POST /api/v1/admin/withdrawals/:id/process
func (h *WithdrawalHandler) Process(c *gin.Context) {
	adminID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input entities.WithdrawalDecisionInput
	if !bindJSON(c, &input) {
		return
	}

	req, err := h.withdrawalUsecase.Process(c.Request.Context(), id, input.Approve, adminID)
	if err != nil {
		if req != nil {
			// auto-rejected on the balance re-check
			appErr := domainerrors.FromError(err)
			appErr.Details = gin.H{"withdrawal": req}
			err = appErr
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"withdrawal": req})
}
