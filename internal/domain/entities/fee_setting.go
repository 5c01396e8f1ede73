package entities

import "github.com/shopspring/decimal"

// NetworkFeeWalletType names the kind of wallet a fee can be paid to
type NetworkFeeWalletType string

const (
	WalletTypeUSDTTRC20   NetworkFeeWalletType = "USDT_TRC20"
	WalletTypeTronTRX     NetworkFeeWalletType = "TRON_TRX"
	WalletTypeBitcoinBTC  NetworkFeeWalletType = "BITCOIN_BTC"
	WalletTypeEthereumETH NetworkFeeWalletType = "ETHEREUM_ETH"
	WalletTypeCustom      NetworkFeeWalletType = "CUSTOM"
)

// IsKnown reports whether the wallet type is one of the supported kinds.
func (t NetworkFeeWalletType) IsKnown() bool {
	switch t {
	case WalletTypeUSDTTRC20, WalletTypeTronTRX, WalletTypeBitcoinBTC, WalletTypeEthereumETH, WalletTypeCustom:
		return true
	}
	return false
}

// NetworkFeeWallet is a destination where customers send a fee
type NetworkFeeWallet struct {
	Type             NetworkFeeWalletType `json:"type"`
	Name             string               `json:"name"`
	Address          string               `json:"address"`
	Network          string               `json:"network"`
	QRCode           string               `json:"qrCode,omitempty"`
	CustomTypeDetail string               `json:"customTypeDetail,omitempty"`
}

// FeeSetting is an admin-configured flat fee for a transaction type
type FeeSetting struct {
	ID              string             `json:"id"`
	TransactionType TransactionType    `json:"transactionType"`
	Description     string             `json:"description"`
	FeeAmount       decimal.Decimal    `json:"feeAmount"`
	FeeCurrency     Currency           `json:"feeCurrency"`
	IsEnabled       bool               `json:"isEnabled"`
	PaymentOptions  []NetworkFeeWallet `json:"paymentOptions"`
}

// AcceptsWallet reports whether the rule lists a payment option of the given type.
func (f *FeeSetting) AcceptsWallet(t NetworkFeeWalletType) bool {
	for _, opt := range f.PaymentOptions {
		if opt.Type == t {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (f FeeSetting) Clone() FeeSetting {
	f.PaymentOptions = append([]NetworkFeeWallet(nil), f.PaymentOptions...)
	return f
}

// FeeConfirmation is the customer's acknowledgment that a fee was paid
type FeeConfirmation struct {
	FeeSettingID string               `json:"feeSettingId"`
	Paid         bool                 `json:"paid"`
	WalletType   NetworkFeeWalletType `json:"walletType"`
}

// FeeSettingInput is used to create or replace a fee rule
type FeeSettingInput struct {
	TransactionType TransactionType    `json:"transactionType" binding:"required"`
	Description     string             `json:"description"`
	FeeAmount       decimal.Decimal    `json:"feeAmount"`
	FeeCurrency     Currency           `json:"feeCurrency" binding:"required"`
	IsEnabled       bool               `json:"isEnabled"`
	PaymentOptions  []NetworkFeeWallet `json:"paymentOptions"`
}

// FeeRequirement tells the customer which rule to pay before retrying
type FeeRequirement struct {
	FeeSettingID   string             `json:"feeSettingId"`
	Description    string             `json:"description"`
	FeeAmount      decimal.Decimal    `json:"feeAmount"`
	FeeCurrency    Currency           `json:"feeCurrency"`
	PaymentOptions []NetworkFeeWallet `json:"paymentOptions"`
}

// Requirement describes the rule for the fee prompt.
func (f *FeeSetting) Requirement() FeeRequirement {
	return FeeRequirement{
		FeeSettingID:   f.ID,
		Description:    f.Description,
		FeeAmount:      f.FeeAmount,
		FeeCurrency:    f.FeeCurrency,
		PaymentOptions: append([]NetworkFeeWallet(nil), f.PaymentOptions...),
	}
}

// FeeQuote answers whether a transaction type currently needs a fee
type FeeQuote struct {
	TransactionType TransactionType `json:"transactionType"`
	Required        bool            `json:"required"`
	Fee             *FeeRequirement `json:"fee,omitempty"`
}
