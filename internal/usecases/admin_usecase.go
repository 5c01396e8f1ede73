package usecases

import (
	"context"
	"strings"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/domain/repositories"
	"github.com/shopspring/decimal"
)

// AdminUsecase handles customer management and the dashboard
type AdminUsecase struct {
	uow            repositories.UnitOfWork
	userRepo       repositories.UserRepository
	kycRepo        repositories.KYCRepository
	withdrawalRepo repositories.WithdrawalRepository
	settingsRepo   repositories.SettingsRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	kycRepo repositories.KYCRepository,
	withdrawalRepo repositories.WithdrawalRepository,
	settingsRepo repositories.SettingsRepository,
) *AdminUsecase {
	return &AdminUsecase{
		uow:            uow,
		userRepo:       userRepo,
		kycRepo:        kycRepo,
		withdrawalRepo: withdrawalRepo,
		settingsRepo:   settingsRepo,
	}
}

// ListUsers searches customers by name or email
func (u *AdminUsecase) ListUsers(ctx context.Context, search string) ([]*entities.User, error) {
	return u.userRepo.List(ctx, strings.TrimSpace(search))
}

// GetUser gets a customer by ID
func (u *AdminUsecase) GetUser(ctx context.Context, id string) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// UpdateUser edits a customer's contact details
func (u *AdminUsecase) UpdateUser(ctx context.Context, id string, input *entities.UpdateProfileInput) (*entities.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.BadRequest("name is required")
	}

	var user *entities.User
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		user, err = u.userRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		applyProfile(user, name, input.Phone)
		return u.userRepo.Update(txCtx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Dashboard summarizes the platform. Balances are converted to USD with the static rate table.
func (u *AdminUsecase) Dashboard(ctx context.Context) (*entities.DashboardStats, error) {
	users, err := u.userRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	pendingKYC, err := u.kycRepo.List(ctx, entities.KYCStatusPending)
	if err != nil {
		return nil, err
	}
	pendingWithdrawals, err := u.withdrawalRepo.List(ctx, entities.TransactionStatusPending)
	if err != nil {
		return nil, err
	}
	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, user := range users {
		total = total.Add(user.Balance.Mul(entities.ExchangeRate(user.Currency, entities.CurrencyUSD)))
	}

	activeFees := 0
	for _, f := range settings.NetworkFees {
		if f.IsEnabled {
			activeFees++
		}
	}

	return &entities.DashboardStats{
		TotalUsers:         len(users),
		PlatformBalanceUSD: total.StringFixed(2),
		PendingKYC:         len(pendingKYC),
		PendingWithdrawals: len(pendingWithdrawals),
		ActiveFeeRules:     activeFees,
		MaintenanceMode:    settings.MaintenanceMode,
	}, nil
}
