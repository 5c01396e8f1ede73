package handlers

import (
	"context"
	"net/http"
	"strings"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/interfaces/http/response"
	"brixium.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LedgerHandler exposes balance-changing operations and transaction history
type LedgerHandler struct {
	ledgerUsecase *usecases.LedgerUsecase
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerUsecase *usecases.LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{ledgerUsecase: ledgerUsecase}
}

// LookupRecipient verifies a recipient email before a transfer
// GET /api/v1/transfers/recipient?email=
func (h *LedgerHandler) LookupRecipient(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		response.Error(c, domainerrors.BadRequest("email is required"))
		return
	}

	recipient, err := h.ledgerUsecase.LookupRecipient(c.Request.Context(), userID, email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recipient": recipient})
}

// Transfer moves money to another customer
// POST /api/v1/transfers
func (h *LedgerHandler) Transfer(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var input entities.TransferInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.ledgerUsecase.Transfer(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Rates returns the static exchange rate table
// GET /api/v1/exchange/rates
func (h *LedgerHandler) Rates(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"currencies": entities.AllCurrencies,
		"rates":      h.ledgerUsecase.Rates(),
	})
}

// Quote previews a conversion
// GET /api/v1/exchange/quote?from=USD&to=EUR&amount=100
func (h *LedgerHandler) Quote(c *gin.Context) {
	amount := decimal.Zero
	if raw := c.Query("amount"); raw != "" {
		var err error
		amount, err = decimal.NewFromString(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("amount must be a number"))
			return
		}
	}

	quote, err := h.ledgerUsecase.Quote(entities.Currency(c.Query("from")), entities.Currency(c.Query("to")), amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quote": quote})
}

// Exchange converts the whole balance into another currency
// POST /api/v1/exchange
func (h *LedgerHandler) Exchange(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var input entities.ExchangeInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.ledgerUsecase.Exchange(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// ListTransactions returns the caller's history, newest first
// GET /api/v1/transactions
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	items, err := h.ledgerUsecase.ListTransactions(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// Fund credits a customer
// POST /api/v1/admin/users/:id/fund
func (h *LedgerHandler) Fund(c *gin.Context) {
	h.adjust(c, h.ledgerUsecase.Fund)
}

// Deduct debits a customer
// POST /api/v1/admin/users/:id/deduct
func (h *LedgerHandler) Deduct(c *gin.Context) {
	h.adjust(c, h.ledgerUsecase.Deduct)
}

type adjustFunc func(ctx context.Context, userID string, input *entities.AmountInput, adminID string) (*entities.Transaction, error)

func (h *LedgerHandler) adjust(c *gin.Context, fn adjustFunc) {
	adminID, ok := callerID(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input entities.AmountInput
	if !bindJSON(c, &input) {
		return
	}

	tx, err := fn(c.Request.Context(), userID, &input, adminID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"transaction": tx})
}

// ListAllTransactions lists every transaction with filters and pagination
// GET /api/v1/admin/transactions?userId=&type=&status=&page=&limit=
func (h *LedgerHandler) ListAllTransactions(c *gin.Context) {
	var query entities.ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	items, meta, err := h.ledgerUsecase.ListAllTransactions(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items, "meta": meta})
}
