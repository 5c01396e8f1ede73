package usecases

import (
	"context"
	"strings"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/domain/repositories"
	"brixium.backend/pkg/utils"
)

// SettingsUsecase manages system settings and fee rules
type SettingsUsecase struct {
	uow          repositories.UnitOfWork
	settingsRepo repositories.SettingsRepository
}

// NewSettingsUsecase creates a new settings usecase
func NewSettingsUsecase(uow repositories.UnitOfWork, settingsRepo repositories.SettingsRepository) *SettingsUsecase {
	return &SettingsUsecase{uow: uow, settingsRepo: settingsRepo}
}

// Get returns the full settings document
func (u *SettingsUsecase) Get(ctx context.Context) (*entities.AppSettings, error) {
	return u.settingsRepo.Get(ctx)
}

// Public returns the settings visible before login
func (u *SettingsUsecase) Public(ctx context.Context) (*entities.PublicSettings, error) {
	s, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &entities.PublicSettings{
		SupportedCurrencies: s.SupportedCurrencies,
		DefaultUserCurrency: s.DefaultUserCurrency,
		MaintenanceMode:     s.MaintenanceMode,
	}, nil
}

// Update applies a partial update. The default currency is always part of the supported list.
func (u *SettingsUsecase) Update(ctx context.Context, input *entities.UpdateSettingsInput) (*entities.AppSettings, error) {
	var settings *entities.AppSettings
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		settings, err = u.settingsRepo.Get(txCtx)
		if err != nil {
			return err
		}

		supported := settings.SupportedCurrencies
		if input.SupportedCurrencies != nil {
			if len(input.SupportedCurrencies) == 0 {
				return domainerrors.BadRequest("at least one currency must be supported")
			}
			supported = make([]entities.Currency, 0, len(input.SupportedCurrencies))
			seen := make(map[entities.Currency]bool, len(input.SupportedCurrencies))
			for _, c := range input.SupportedCurrencies {
				if !c.IsKnown() {
					return domainerrors.UnsupportedCurrency("unknown currency " + string(c))
				}
				if !seen[c] {
					seen[c] = true
					supported = append(supported, c)
				}
			}
		}

		def := settings.DefaultUserCurrency
		if input.DefaultUserCurrency != "" {
			if !input.DefaultUserCurrency.IsKnown() {
				return domainerrors.UnsupportedCurrency("unknown currency " + string(input.DefaultUserCurrency))
			}
			def = input.DefaultUserCurrency
		}
		settings.SupportedCurrencies = supported
		settings.DefaultUserCurrency = def
		if !settings.Supports(def) {
			settings.SupportedCurrencies = append(settings.SupportedCurrencies, def)
		}
		if input.MaintenanceMode != nil {
			settings.MaintenanceMode = *input.MaintenanceMode
		}
		return u.settingsRepo.Save(txCtx, settings)
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// ListFees returns every fee rule
func (u *SettingsUsecase) ListFees(ctx context.Context) ([]entities.FeeSetting, error) {
	s, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.NetworkFees, nil
}

// CreateFee adds a fee rule
func (u *SettingsUsecase) CreateFee(ctx context.Context, input *entities.FeeSettingInput) (*entities.FeeSetting, error) {
	fee, err := buildFeeSetting(input)
	if err != nil {
		return nil, err
	}
	fee.ID = utils.NewID(feeIDPrefix)

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		settings, err := u.settingsRepo.Get(txCtx)
		if err != nil {
			return err
		}
		settings.NetworkFees = append(settings.NetworkFees, *fee)
		return u.settingsRepo.Save(txCtx, settings)
	})
	if err != nil {
		return nil, err
	}
	return fee, nil
}

// UpdateFee replaces a fee rule, keeping its id
func (u *SettingsUsecase) UpdateFee(ctx context.Context, id string, input *entities.FeeSettingInput) (*entities.FeeSetting, error) {
	fee, err := buildFeeSetting(input)
	if err != nil {
		return nil, err
	}
	fee.ID = id

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		settings, err := u.settingsRepo.Get(txCtx)
		if err != nil {
			return err
		}
		for i := range settings.NetworkFees {
			if settings.NetworkFees[i].ID == id {
				settings.NetworkFees[i] = *fee
				return u.settingsRepo.Save(txCtx, settings)
			}
		}
		return domainerrors.NotFound("fee setting not found")
	})
	if err != nil {
		return nil, err
	}
	return fee, nil
}

// DeleteFee removes a fee rule
func (u *SettingsUsecase) DeleteFee(ctx context.Context, id string) error {
	return u.uow.Do(ctx, func(txCtx context.Context) error {
		settings, err := u.settingsRepo.Get(txCtx)
		if err != nil {
			return err
		}
		for i := range settings.NetworkFees {
			if settings.NetworkFees[i].ID == id {
				settings.NetworkFees = append(settings.NetworkFees[:i], settings.NetworkFees[i+1:]...)
				return u.settingsRepo.Save(txCtx, settings)
			}
		}
		return domainerrors.NotFound("fee setting not found")
	})
}

func buildFeeSetting(input *entities.FeeSettingInput) (*entities.FeeSetting, error) {
	if input.TransactionType != entities.TransactionTypeWithdrawal && input.TransactionType != entities.TransactionTypeTransfer {
		return nil, domainerrors.BadRequest("fee rules apply to Withdrawal or Transfer only")
	}
	if input.FeeAmount.IsNegative() {
		return nil, domainerrors.BadRequest("fee amount must not be negative")
	}
	if !input.FeeCurrency.IsKnown() {
		return nil, domainerrors.UnsupportedCurrency("unknown fee currency " + string(input.FeeCurrency))
	}

	options := make([]entities.NetworkFeeWallet, 0, len(input.PaymentOptions))
	for _, opt := range input.PaymentOptions {
		opt.Name = strings.TrimSpace(opt.Name)
		opt.Address = strings.TrimSpace(opt.Address)
		opt.Network = strings.TrimSpace(opt.Network)
		opt.CustomTypeDetail = strings.TrimSpace(opt.CustomTypeDetail)
		if !opt.Type.IsKnown() {
			return nil, domainerrors.BadRequest("unknown payment wallet type " + string(opt.Type))
		}
		if opt.Name == "" || opt.Address == "" || opt.Network == "" {
			return nil, domainerrors.BadRequest("payment options need a name, address and network")
		}
		if opt.Type == entities.WalletTypeCustom && opt.CustomTypeDetail == "" {
			return nil, domainerrors.BadRequest("custom payment options need a type detail")
		}
		if opt.Type == entities.WalletTypeEthereumETH {
			opt.Address = normalizeAddress(opt.Address)
		}
		options = append(options, opt)
	}

	return &entities.FeeSetting{
		TransactionType: input.TransactionType,
		Description:     strings.TrimSpace(input.Description),
		FeeAmount:       input.FeeAmount,
		FeeCurrency:     input.FeeCurrency,
		IsEnabled:       input.IsEnabled,
		PaymentOptions:  options,
	}, nil
}
