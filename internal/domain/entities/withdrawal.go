package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// WithdrawalRequest asks an admin to move funds to an external address
type WithdrawalRequest struct {
	ID                          string              `json:"id"`
	UserID                      string              `json:"userId"`
	Amount                      decimal.Decimal     `json:"amount"`
	Currency                    Currency            `json:"currency"`
	WalletAddress               string              `json:"walletAddress"`
	Status                      TransactionStatus   `json:"status"`
	RequestedAt                 time.Time           `json:"requestedAt"`
	ProcessedAt                 null.Time           `json:"processedAt"`
	AdminID                     null.String         `json:"adminId"`
	NetworkFeePaidAmount        decimal.NullDecimal `json:"networkFeePaidAmount"`
	NetworkFeePaidCurrency      null.String         `json:"networkFeePaidCurrency"`
	NetworkFeePaymentWalletType null.String         `json:"networkFeePaymentWalletType"`
	FeeSettingID                null.String         `json:"feeSettingId"`
}

// IsPending reports whether an admin can still act on the request.
func (w *WithdrawalRequest) IsPending() bool {
	return w.Status == TransactionStatusPending
}

// WithdrawalInput represents a customer withdrawal request
type WithdrawalInput struct {
	Amount        decimal.Decimal  `json:"amount"`
	Currency      Currency         `json:"currency"`
	WalletAddress string           `json:"walletAddress" binding:"required"`
	Fee           *FeeConfirmation `json:"fee"`
}

// WithdrawalDecisionInput is the admin decision on a withdrawal
type WithdrawalDecisionInput struct {
	Approve bool `json:"approve"`
}
