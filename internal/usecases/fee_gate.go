package usecases

import (
	"context"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/domain/repositories"
)

// FeeGate decides whether a transfer or withdrawal needs a paid network fee first.
// The payment itself is never verified; the customer's confirmation is trusted.
type FeeGate struct {
	settingsRepo repositories.SettingsRepository
}

// NewFeeGate creates a new fee gate
func NewFeeGate(settingsRepo repositories.SettingsRepository) *FeeGate {
	return &FeeGate{settingsRepo: settingsRepo}
}

// ApplicableFee returns the first enabled rule for the type, or nil.
func (g *FeeGate) ApplicableFee(ctx context.Context, txType entities.TransactionType) (*entities.FeeSetting, error) {
	settings, err := g.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return settings.ApplicableFee(txType), nil
}

// Quote is the first step of the two-step flow: it shows the fee the customer must pay.
func (g *FeeGate) Quote(ctx context.Context, txType entities.TransactionType) (*entities.FeeQuote, error) {
	if txType != entities.TransactionTypeTransfer && txType != entities.TransactionTypeWithdrawal {
		return nil, domainerrors.BadRequest("fee quotes are available for Transfer and Withdrawal only")
	}
	fee, err := g.ApplicableFee(ctx, txType)
	if err != nil {
		return nil, err
	}
	quote := &entities.FeeQuote{TransactionType: txType}
	if fee != nil {
		req := fee.Requirement()
		quote.Required = true
		quote.Fee = &req
	}
	return quote, nil
}

// Check returns the rule the confirmation satisfied, or nil when no rule applies.
func (g *FeeGate) Check(ctx context.Context, txType entities.TransactionType, conf *entities.FeeConfirmation) (*entities.FeeSetting, error) {
	fee, err := g.ApplicableFee(ctx, txType)
	if err != nil || fee == nil {
		return nil, err
	}

	if conf == nil || !conf.Paid {
		return nil, domainerrors.FeeRequired("a network fee must be paid before this "+string(txType)+" can proceed", fee.Requirement())
	}
	if conf.FeeSettingID != fee.ID {
		return nil, domainerrors.FeeRuleChanged("the network fee rule has changed, review the new fee and confirm again", fee.Requirement())
	}
	if conf.WalletType != "" && !fee.AcceptsWallet(conf.WalletType) {
		return nil, domainerrors.BadRequest("fee payment wallet type is not accepted by this rule")
	}
	return fee, nil
}
