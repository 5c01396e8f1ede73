package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// TransactionType classifies ledger entries
type TransactionType string

const (
	TransactionTypeTransfer   TransactionType = "Transfer"
	TransactionTypeWithdrawal TransactionType = "Withdrawal"
	TransactionTypeDeposit    TransactionType = "Deposit"
	TransactionTypeFee        TransactionType = "Fee"
	TransactionTypeExchange   TransactionType = "Exchange"
)

// TransactionStatus is shared by transactions and withdrawal requests
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "Pending"
	TransactionStatusCompleted  TransactionStatus = "Completed"
	TransactionStatusRejected   TransactionStatus = "Rejected"
	TransactionStatusFeePending TransactionStatus = "Fee Pending"
)

// Transaction is an immutable audit record of a balance change
type Transaction struct {
	ID                   string              `json:"id"`
	UserID               string              `json:"userId"`
	Type                 TransactionType     `json:"type"`
	Status               TransactionStatus   `json:"status"`
	Amount               decimal.Decimal     `json:"amount"`
	Currency             Currency            `json:"currency"`
	Date                 time.Time           `json:"date"`
	Description          string              `json:"description"`
	FromUserID           null.String         `json:"fromUserId"`
	ToUserID             null.String         `json:"toUserId"`
	ToAddress            null.String         `json:"toAddress"`
	NetworkFee           decimal.NullDecimal `json:"networkFee"`
	NetworkFeeCurrency   null.String         `json:"networkFeeCurrency"`
	RelatedTransactionID null.String         `json:"relatedTransactionId"`
}

// InvolvesUser reports whether the transaction shows up in the user's history.
func (t *Transaction) InvolvesUser(userID string) bool {
	return t.UserID == userID || (t.ToUserID.Valid && t.ToUserID.String == userID)
}

// TransactionFilter narrows the admin transaction listing
type TransactionFilter struct {
	UserID string            `form:"userId"`
	Type   TransactionType   `form:"type"`
	Status TransactionStatus `form:"status"`
}

// Matches reports whether the transaction passes every set field of the filter.
func (f TransactionFilter) Matches(t *Transaction) bool {
	if f.UserID != "" && !t.InvolvesUser(f.UserID) {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	return true
}

// AmountInput is used by admin fund and deduct operations
type AmountInput struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency" binding:"required"`
}

// TransferInput represents a customer-to-customer transfer
type TransferInput struct {
	RecipientEmail string           `json:"recipientEmail" binding:"required,email"`
	Amount         decimal.Decimal  `json:"amount"`
	Pin            string           `json:"pin"`
	Fee            *FeeConfirmation `json:"fee"`
}

// TransferResult holds both legs of a completed transfer
type TransferResult struct {
	Sender    *Transaction    `json:"senderTransaction"`
	Recipient *Transaction    `json:"recipientTransaction"`
	Balance   decimal.Decimal `json:"balance"`
}

// ExchangeInput converts the whole account balance into another currency
type ExchangeInput struct {
	FromCurrency Currency `json:"fromCurrency" binding:"required"`
	ToCurrency   Currency `json:"toCurrency" binding:"required"`
}

// RecipientView is what a sender sees after verifying a recipient email
type RecipientView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Currency Currency `json:"currency"`
}

// ExchangeResult reports the account state after a conversion
type ExchangeResult struct {
	Transaction *Transaction    `json:"transaction"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    Currency        `json:"currency"`
}

// ListTransactionsQuery is the admin transaction listing query
type ListTransactionsQuery struct {
	TransactionFilter
	Page  int `form:"page"`
	Limit int `form:"limit"`
}
