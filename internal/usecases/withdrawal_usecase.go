package usecases

import (
	"context"
	"fmt"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/domain/repositories"
	"brixium.backend/pkg/metrics"
	"brixium.backend/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// WithdrawalUsecase handles withdrawal requests and their admin processing
type WithdrawalUsecase struct {
	uow            repositories.UnitOfWork
	withdrawalRepo repositories.WithdrawalRepository
	userRepo       repositories.UserRepository
	txRepo         repositories.TransactionRepository
	notifRepo      repositories.NotificationRepository
	settingsRepo   repositories.SettingsRepository
	feeGate        *FeeGate
}

// NewWithdrawalUsecase creates a new withdrawal usecase
func NewWithdrawalUsecase(
	uow repositories.UnitOfWork,
	withdrawalRepo repositories.WithdrawalRepository,
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	notifRepo repositories.NotificationRepository,
	settingsRepo repositories.SettingsRepository,
	feeGate *FeeGate,
) *WithdrawalUsecase {
	return &WithdrawalUsecase{
		uow:            uow,
		withdrawalRepo: withdrawalRepo,
		userRepo:       userRepo,
		txRepo:         txRepo,
		notifRepo:      notifRepo,
		settingsRepo:   settingsRepo,
		feeGate:        feeGate,
	}
}

// Request files a pending withdrawal. The balance is only checked here; it moves on approval.
func (u *WithdrawalUsecase) Request(ctx context.Context, userID string, input *entities.WithdrawalInput) (*entities.WithdrawalRequest, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerrors.BadRequest("amount must be greater than zero")
	}
	address := normalizeAddress(input.WalletAddress)
	if address == "" {
		return nil, domainerrors.BadRequest("wallet address is required")
	}

	var req *entities.WithdrawalRequest
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		settings, err := u.settingsRepo.Get(txCtx)
		if err != nil {
			return err
		}
		if settings.MaintenanceMode {
			return domainerrors.Maintenance("withdrawals are paused while the platform is under maintenance")
		}

		user, err := u.userRepo.GetByID(txCtx, userID)
		if err != nil {
			return err
		}
		currency := input.Currency
		if currency == "" {
			currency = user.Currency
		}
		if user.Balance.LessThan(input.Amount) {
			return domainerrors.InsufficientFunds("insufficient balance for withdrawal amount")
		}
		if currency != user.Currency {
			return domainerrors.CurrencyMismatch(fmt.Sprintf("withdrawal currency %s must match account currency %s, exchange first", currency, user.Currency))
		}
		if !user.IsVerifiedKYC {
			return domainerrors.KYCRequired("KYC verification is required to withdraw")
		}

		fee, err := u.feeGate.Check(txCtx, entities.TransactionTypeWithdrawal, input.Fee)
		if err != nil {
			return err
		}

		req = &entities.WithdrawalRequest{
			ID:            utils.NewID(withdrawalIDPrefix),
			UserID:        userID,
			Amount:        input.Amount,
			Currency:      currency,
			WalletAddress: address,
			Status:        entities.TransactionStatusPending,
			RequestedAt:   now(),
		}
		if fee != nil {
			req.NetworkFeePaidAmount = decimal.NewNullDecimal(fee.FeeAmount)
			req.NetworkFeePaidCurrency = null.StringFrom(string(fee.FeeCurrency))
			req.FeeSettingID = null.StringFrom(fee.ID)
			if input.Fee.WalletType != "" {
				req.NetworkFeePaymentWalletType = null.StringFrom(string(input.Fee.WalletType))
			}
		}
		if err := u.withdrawalRepo.Create(txCtx, req); err != nil {
			return err
		}

		return notify(txCtx, u.notifRepo, entities.NotificationInput{
			AdminOnly: true,
			Type:      entities.NotificationNewWithdrawalRequest,
			Message:   fmt.Sprintf("New withdrawal request from %s for %s %s. Fee details submitted.", user.Name, input.Amount, currency),
			LinkTo:    AdminWithdrawalsLink,
		})
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Process approves or rejects a pending request.
// Approving a request the customer can no longer cover rejects it and reports insufficient funds.
func (u *WithdrawalUsecase) Process(ctx context.Context, requestID string, approve bool, adminID string) (req *entities.WithdrawalRequest, err error) {
	if approve {
		defer func() { metrics.ObserveLedger(opWithdrawal, err) }()
	}

	autoRejected := false
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		req, err = u.withdrawalRepo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if !req.IsPending() {
			return domainerrors.InvalidTransition("withdrawal request already processed")
		}
		user, err := u.userRepo.GetByID(txCtx, req.UserID)
		if err != nil {
			return err
		}

		ts := now()
		req.ProcessedAt = null.TimeFrom(ts)
		req.AdminID = null.StringFrom(adminID)

		if !approve {
			req.Status = entities.TransactionStatusRejected
			if err := u.withdrawalRepo.Update(txCtx, req); err != nil {
				return err
			}
			return notify(txCtx, u.notifRepo, entities.NotificationInput{
				UserID:  user.ID,
				Type:    entities.NotificationWithdrawalRejected,
				Message: fmt.Sprintf("Your withdrawal of %s %s has been rejected.", req.Amount, req.Currency),
			})
		}

		if user.Balance.LessThan(req.Amount) {
			autoRejected = true
			req.Status = entities.TransactionStatusRejected
			if err := u.withdrawalRepo.Update(txCtx, req); err != nil {
				return err
			}
			return notify(txCtx, u.notifRepo, entities.NotificationInput{
				UserID:  user.ID,
				Type:    entities.NotificationWithdrawalRejected,
				Message: fmt.Sprintf("Your withdrawal of %s %s was rejected due to insufficient funds at time of processing.", req.Amount, req.Currency),
			})
		}

		user.Balance = user.Balance.Sub(req.Amount)
		user.UpdatedAt = ts
		if err := u.userRepo.Update(txCtx, user); err != nil {
			return err
		}

		tx := newTransaction(user.ID, entities.TransactionTypeWithdrawal, req.Amount, req.Currency, "Withdrawal to "+req.WalletAddress)
		tx.ToAddress = null.StringFrom(req.WalletAddress)
		tx.NetworkFee = req.NetworkFeePaidAmount
		tx.NetworkFeeCurrency = req.NetworkFeePaidCurrency
		tx.RelatedTransactionID = null.StringFrom(req.ID)
		if err := u.txRepo.Create(txCtx, tx); err != nil {
			return err
		}

		req.Status = entities.TransactionStatusCompleted
		if err := u.withdrawalRepo.Update(txCtx, req); err != nil {
			return err
		}
		return notify(txCtx, u.notifRepo, entities.NotificationInput{
			UserID:  user.ID,
			Type:    entities.NotificationWithdrawalApproved,
			Message: fmt.Sprintf("Your withdrawal of %s %s has been approved and processed.", req.Amount, req.Currency),
		})
	})
	if err != nil {
		return nil, err
	}
	if autoRejected {
		return req, domainerrors.InsufficientFunds("insufficient balance to complete withdrawal, request rejected")
	}
	metrics.AddVolume(opWithdrawal, string(req.Currency), req.Amount)
	return req, nil
}

// ListMine returns the customer's requests, newest first
func (u *WithdrawalUsecase) ListMine(ctx context.Context, userID string) ([]*entities.WithdrawalRequest, error) {
	return u.withdrawalRepo.ListByUser(ctx, userID)
}

// List returns requests for admins, optionally filtered by status
func (u *WithdrawalUsecase) List(ctx context.Context, status entities.TransactionStatus) ([]*entities.WithdrawalRequest, error) {
	return u.withdrawalRepo.List(ctx, status)
}
