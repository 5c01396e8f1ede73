package usecases

import (
	"context"
	"strings"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/domain/repositories"
	"github.com/volatiletech/null/v8"
)

// AccountUsecase handles the customer's own profile and settings
type AccountUsecase struct {
	uow          repositories.UnitOfWork
	userRepo     repositories.UserRepository
	settingsRepo repositories.SettingsRepository
	hasher       SecretHasher
}

// NewAccountUsecase creates a new account usecase
func NewAccountUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	settingsRepo repositories.SettingsRepository,
	hasher SecretHasher,
) *AccountUsecase {
	return &AccountUsecase{
		uow:          uow,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		hasher:       hasher,
	}
}

// UpdateProfile edits name and phone. A nil phone keeps the current one; an empty phone clears it.
func (u *AccountUsecase) UpdateProfile(ctx context.Context, userID string, input *entities.UpdateProfileInput) (*entities.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.BadRequest("name is required")
	}

	var user *entities.User
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		user, err = u.userRepo.GetByID(txCtx, userID)
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

func applyProfile(user *entities.User, name string, phone *string) {
	user.Name = name
	if phone != nil {
		if p := strings.TrimSpace(*phone); p != "" {
			user.Phone = null.StringFrom(p)
		} else {
			user.Phone = null.String{}
		}
	}
	user.UpdatedAt = now()
}

// UpdateSettings changes the account currency and the transfer PIN.
// The currency can only change while the balance is zero so balance and currency never disagree.
func (u *AccountUsecase) UpdateSettings(ctx context.Context, userID string, input *entities.UpdateAccountSettingsInput) (*entities.User, error) {
	enablePin := input.EnableTransferPin != nil && *input.EnableTransferPin
	var pinHash null.String
	if enablePin && input.TransferPin != "" {
		if len(input.TransferPin) != TransferPinLength || !isDigits(input.TransferPin) {
			return nil, domainerrors.BadRequest("transfer PIN must be exactly 4 digits")
		}
		if input.TransferPin != input.ConfirmPin {
			return nil, domainerrors.BadRequest("transfer PINs do not match")
		}
		hash, err := u.hasher.Hash(input.TransferPin)
		if err != nil {
			return nil, err
		}
		pinHash = null.StringFrom(hash)
	}

	var user *entities.User
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		user, err = u.userRepo.GetByID(txCtx, userID)
		if err != nil {
			return err
		}

		if input.Currency != "" && input.Currency != user.Currency {
			settings, err := u.settingsRepo.Get(txCtx)
			if err != nil {
				return err
			}
			if !settings.Supports(input.Currency) {
				return domainerrors.UnsupportedCurrency("currency " + string(input.Currency) + " is not supported")
			}
			if !user.Balance.IsZero() {
				return domainerrors.CurrencyMismatch("exchange your balance before changing the account currency")
			}
			user.Currency = input.Currency
		}

		switch {
		case input.EnableTransferPin == nil:
		case !enablePin:
			user.TransferPinHash = null.String{}
		case pinHash.Valid:
			user.TransferPinHash = pinHash
		case !user.HasTransferPin():
			return domainerrors.BadRequest("transfer PIN must be exactly 4 digits")
		}

		user.UpdatedAt = now()
		return u.userRepo.Update(txCtx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
