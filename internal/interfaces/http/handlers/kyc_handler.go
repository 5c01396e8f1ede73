package handlers

import (
	"net/http"

	"brixium.backend/internal/domain/entities"
	"brixium.backend/internal/interfaces/http/response"
	"brixium.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

// KYCHandler handles identity verification
type KYCHandler struct {
	kycUsecase *usecases.KYCUsecase
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(kycUsecase *usecases.KYCUsecase) *KYCHandler {
	return &KYCHandler{kycUsecase: kycUsecase}
}

// Submit files a KYC request
// POST /api/v1/kyc
func (h *KYCHandler) Submit(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var input entities.KYCSubmissionInput
	if !bindJSON(c, &input) {
		return
	}

	req, err := h.kycUsecase.Submit(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"kyc": req})
}

// Status returns the caller's latest request
// GET /api/v1/kyc
func (h *KYCHandler) Status(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	req, err := h.kycUsecase.Status(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"kyc": req})
}

// List returns KYC requests, optionally by status
// GET /api/v1/admin/kyc?status=Pending
func (h *KYCHandler) List(c *gin.Context) {
	items, err := h.kycUsecase.List(c.Request.Context(), entities.KYCStatus(c.Query("status")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// Review approves or rejects a pending request
// POST /api/v1/admin/kyc/:id/review
func (h *KYCHandler) Review(c *gin.Context) {
	adminID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input entities.KYCReviewInput
	if !bindJSON(c, &input) {
		return
	}

	req, err := h.kycUsecase.Review(c.Request.Context(), id, input.Approve, adminID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"kyc": req})
}

// SetVerification overrides a customer's verification flag
// PUT /api/v1/admin/users/:id/kyc
func (h *KYCHandler) SetVerification(c *gin.Context) {
	adminID, ok := callerID(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input entities.KYCVerificationInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.kycUsecase.SetVerification(c.Request.Context(), userID, input.Verified, adminID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
