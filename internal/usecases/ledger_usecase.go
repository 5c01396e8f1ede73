package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/domain/repositories"
	"brixium.backend/pkg/logger"
	"brixium.backend/pkg/metrics"
	"brixium.backend/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// LedgerUsecase owns every balance mutation except withdrawal processing
type LedgerUsecase struct {
	uow          repositories.UnitOfWork
	userRepo     repositories.UserRepository
	txRepo       repositories.TransactionRepository
	notifRepo    repositories.NotificationRepository
	settingsRepo repositories.SettingsRepository
	feeGate      *FeeGate
	hasher       SecretHasher
}

// NewLedgerUsecase creates a new ledger usecase
func NewLedgerUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	notifRepo repositories.NotificationRepository,
	settingsRepo repositories.SettingsRepository,
	feeGate *FeeGate,
	hasher SecretHasher,
) *LedgerUsecase {
	return &LedgerUsecase{
		uow:          uow,
		userRepo:     userRepo,
		txRepo:       txRepo,
		notifRepo:    notifRepo,
		settingsRepo: settingsRepo,
		feeGate:      feeGate,
		hasher:       hasher,
	}
}

func newTransaction(userID string, txType entities.TransactionType, amount decimal.Decimal, currency entities.Currency, description string) *entities.Transaction {
	return &entities.Transaction{
		ID:          utils.NewID(transactionIDPrefix),
		UserID:      userID,
		Type:        txType,
		Status:      entities.TransactionStatusCompleted,
		Amount:      amount,
		Currency:    currency,
		Date:        now(),
		Description: description,
	}
}

// Fund credits a customer's balance on behalf of an admin
func (u *LedgerUsecase) Fund(ctx context.Context, userID string, input *entities.AmountInput, adminID string) (tx *entities.Transaction, err error) {
	defer func() { metrics.ObserveLedger(opFund, err) }()

	if !input.Amount.IsPositive() {
		return nil, domainerrors.BadRequest("amount must be greater than zero")
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		user, err := u.userRepo.GetByID(txCtx, userID)
		if err != nil {
			return err
		}
		if user.Currency != input.Currency {
			return domainerrors.CurrencyMismatch(fmt.Sprintf("cannot fund in %s, account currency is %s, exchange first", input.Currency, user.Currency))
		}

		user.Balance = user.Balance.Add(input.Amount)
		user.UpdatedAt = now()
		if err := u.userRepo.Update(txCtx, user); err != nil {
			return err
		}

		tx = newTransaction(user.ID, entities.TransactionTypeDeposit, input.Amount, input.Currency, "Account funded by admin.")
		if err := u.txRepo.Create(txCtx, tx); err != nil {
			return err
		}
		return notify(txCtx, u.notifRepo, entities.NotificationInput{
			UserID:  user.ID,
			Type:    entities.NotificationBalanceFunded,
			Message: fmt.Sprintf("Your account has been funded with %s %s.", input.Amount, input.Currency),
		})
	})
	if err != nil {
		return nil, err
	}
	metrics.AddVolume(opFund, string(input.Currency), input.Amount)
	logger.Info(ctx, "Account funded",
		zap.String("user_id", userID),
		zap.String("admin_id", adminID),
		zap.String("amount", input.Amount.String()),
		zap.String("currency", string(input.Currency)),
	)
	return tx, nil
}

// Deduct debits a customer's balance on behalf of an admin
func (u *LedgerUsecase) Deduct(ctx context.Context, userID string, input *entities.AmountInput, adminID string) (tx *entities.Transaction, err error) {
	defer func() { metrics.ObserveLedger(opDeduct, err) }()

	if !input.Amount.IsPositive() {
		return nil, domainerrors.BadRequest("amount must be greater than zero")
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		user, err := u.userRepo.GetByID(txCtx, userID)
		if err != nil {
			return err
		}
		if user.Currency != input.Currency {
			return domainerrors.CurrencyMismatch(fmt.Sprintf("cannot deduct in %s, account currency is %s", input.Currency, user.Currency))
		}
		if user.Balance.LessThan(input.Amount) {
			return domainerrors.InsufficientFunds("insufficient balance for " + user.Name)
		}

		user.Balance = user.Balance.Sub(input.Amount)
		user.UpdatedAt = now()
		if err := u.userRepo.Update(txCtx, user); err != nil {
			return err
		}

		tx = newTransaction(user.ID, entities.TransactionTypeWithdrawal, input.Amount, input.Currency, "Balance deducted by admin.")
		if err := u.txRepo.Create(txCtx, tx); err != nil {
			return err
		}
		return notify(txCtx, u.notifRepo, entities.NotificationInput{
			UserID:  user.ID,
			Type:    entities.NotificationBalanceDeducted,
			Message: fmt.Sprintf("An amount of %s %s has been deducted from your account by an admin.", input.Amount, input.Currency),
		})
	})
	if err != nil {
		return nil, err
	}
	metrics.AddVolume(opDeduct, string(input.Currency), input.Amount)
	logger.Info(ctx, "Balance deducted",
		zap.String("user_id", userID),
		zap.String("admin_id", adminID),
		zap.String("amount", input.Amount.String()),
		zap.String("currency", string(input.Currency)),
	)
	return tx, nil
}

// LookupRecipient is the verification step before a transfer
func (u *LedgerUsecase) LookupRecipient(ctx context.Context, senderID, email string) (*entities.RecipientView, error) {
	recipient, err := u.findRecipient(ctx, senderID, email)
	if err != nil {
		return nil, err
	}
	return &entities.RecipientView{
		ID:       recipient.ID,
		Name:     recipient.Name,
		Email:    recipient.Email,
		Currency: recipient.Currency,
	}, nil
}

func (u *LedgerUsecase) findRecipient(ctx context.Context, senderID, email string) (*entities.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domainerrors.BadRequest("recipient email is required")
	}
	recipient, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("recipient not found")
		}
		return nil, err
	}
	if recipient.ID == senderID {
		return nil, domainerrors.BadRequest("cannot transfer to yourself")
	}
	return recipient, nil
}

// Transfer moves funds between two customers holding the same currency.
// The debit, the credit and both ledger entries commit together or not at all.
func (u *LedgerUsecase) Transfer(ctx context.Context, senderID string, input *entities.TransferInput) (result *entities.TransferResult, err error) {
	defer func() { metrics.ObserveLedger(opTransfer, err) }()

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		recipient, err := u.findRecipient(txCtx, senderID, input.RecipientEmail)
		if err != nil {
			return err
		}
		sender, err := u.userRepo.GetByID(txCtx, senderID)
		if err != nil {
			return err
		}

		if !input.Amount.IsPositive() {
			return domainerrors.BadRequest("amount must be greater than zero")
		}
		if input.Amount.GreaterThan(sender.Balance) {
			return domainerrors.InsufficientFunds("insufficient balance")
		}
		if sender.HasTransferPin() {
			if input.Pin == "" {
				return domainerrors.InvalidPin("transfer PIN is required")
			}
			if !u.hasher.Check(input.Pin, sender.TransferPinHash.String) {
				return domainerrors.InvalidPin("invalid transfer PIN")
			}
		}
		if !sender.IsVerifiedKYC {
			return domainerrors.KYCRequired("KYC verification is required to make transfers")
		}
		if recipient.Currency != sender.Currency {
			return domainerrors.CurrencyMismatch(fmt.Sprintf("recipient holds %s, transfers must be in the same currency as %s", recipient.Currency, sender.Currency))
		}

		fee, err := u.feeGate.Check(txCtx, entities.TransactionTypeTransfer, input.Fee)
		if err != nil {
			return err
		}

		ts := now()
		sender.Balance = sender.Balance.Sub(input.Amount)
		sender.UpdatedAt = ts
		recipient.Balance = recipient.Balance.Add(input.Amount)
		recipient.UpdatedAt = ts
		if err := u.userRepo.Update(txCtx, sender); err != nil {
			return err
		}
		if err := u.userRepo.Update(txCtx, recipient); err != nil {
			return err
		}

		senderTx := newTransaction(sender.ID, entities.TransactionTypeTransfer, input.Amount, sender.Currency,
			fmt.Sprintf("Transfer to %s (%s)", recipient.Name, recipient.Email))
		senderTx.ToUserID = null.StringFrom(recipient.ID)
		if fee != nil {
			senderTx.NetworkFee = decimal.NewNullDecimal(fee.FeeAmount)
			senderTx.NetworkFeeCurrency = null.StringFrom(string(fee.FeeCurrency))
		}
		if err := u.txRepo.Create(txCtx, senderTx); err != nil {
			return err
		}

		recipientTx := newTransaction(recipient.ID, entities.TransactionTypeTransfer, input.Amount, sender.Currency,
			fmt.Sprintf("Received from %s (%s)", sender.Name, sender.Email))
		recipientTx.FromUserID = null.StringFrom(sender.ID)
		recipientTx.RelatedTransactionID = null.StringFrom(senderTx.ID)
		if err := u.txRepo.Create(txCtx, recipientTx); err != nil {
			return err
		}

		if err := notify(txCtx, u.notifRepo, entities.NotificationInput{
			UserID:  sender.ID,
			Type:    entities.NotificationTransferSent,
			Message: fmt.Sprintf("You sent %s %s to %s.", input.Amount, sender.Currency, recipient.Name),
		}); err != nil {
			return err
		}
		if err := notify(txCtx, u.notifRepo, entities.NotificationInput{
			UserID:  recipient.ID,
			Type:    entities.NotificationTransferReceived,
			Message: fmt.Sprintf("You received %s %s from %s.", input.Amount, sender.Currency, sender.Name),
		}); err != nil {
			return err
		}

		result = &entities.TransferResult{Sender: senderTx, Recipient: recipientTx, Balance: sender.Balance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.AddVolume(opTransfer, string(result.Sender.Currency), input.Amount)
	return result, nil
}

// Rate returns the static rate, zero when the pair is unknown
func (u *LedgerUsecase) Rate(from, to entities.Currency) decimal.Decimal {
	return entities.ExchangeRate(from, to)
}

// Rates returns the whole rate table
func (u *LedgerUsecase) Rates() map[entities.Currency]map[entities.Currency]decimal.Decimal {
	return entities.ExchangeRateTable()
}

// Quote previews a conversion of amount without touching any account
func (u *LedgerUsecase) Quote(from, to entities.Currency, amount decimal.Decimal) (*entities.ExchangeQuote, error) {
	if !from.IsKnown() || !to.IsKnown() {
		return nil, domainerrors.UnsupportedCurrency("unknown currency pair")
	}
	if amount.IsNegative() {
		return nil, domainerrors.BadRequest("amount must not be negative")
	}
	rate := entities.ExchangeRate(from, to)
	if !rate.IsPositive() {
		return nil, domainerrors.UnsupportedCurrency(fmt.Sprintf("exchange rate not available for %s to %s", from, to))
	}
	return &entities.ExchangeQuote{
		From:       from,
		To:         to,
		Rate:       rate,
		FromAmount: amount,
		ToAmount:   amount.Mul(rate).Round(ExchangeRoundingPlaces),
	}, nil
}

// Exchange converts the whole balance into another currency and switches the account currency with it.
func (u *LedgerUsecase) Exchange(ctx context.Context, userID string, input *entities.ExchangeInput) (result *entities.ExchangeResult, err error) {
	defer func() { metrics.ObserveLedger(opExchange, err) }()

	if input.FromCurrency == input.ToCurrency {
		return nil, domainerrors.BadRequest("source and target currency must differ")
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		user, err := u.userRepo.GetByID(txCtx, userID)
		if err != nil {
			return err
		}
		if user.Currency != input.FromCurrency {
			return domainerrors.CurrencyMismatch(fmt.Sprintf("account currency is %s, cannot exchange from %s", user.Currency, input.FromCurrency))
		}

		settings, err := u.settingsRepo.Get(txCtx)
		if err != nil {
			return err
		}
		if !settings.Supports(input.ToCurrency) {
			return domainerrors.UnsupportedCurrency("currency " + string(input.ToCurrency) + " is not supported")
		}
		if !user.Balance.IsPositive() {
			return domainerrors.InsufficientFunds("there is no balance to exchange")
		}
		rate := entities.ExchangeRate(input.FromCurrency, input.ToCurrency)
		if !rate.IsPositive() {
			return domainerrors.UnsupportedCurrency(fmt.Sprintf("exchange rate not available for %s to %s", input.FromCurrency, input.ToCurrency))
		}
		if !user.IsVerifiedKYC {
			return domainerrors.KYCRequired("KYC verification is required to exchange currency")
		}

		fromAmount := user.Balance
		toAmount := fromAmount.Mul(rate).Round(ExchangeRoundingPlaces)
		if !toAmount.IsPositive() {
			return domainerrors.BadRequest(fmt.Sprintf("%s %s is too small to exchange into %s",
				fromAmount.String(), input.FromCurrency, input.ToCurrency))
		}
		user.Balance = toAmount
		user.Currency = input.ToCurrency
		user.UpdatedAt = now()
		if err := u.userRepo.Update(txCtx, user); err != nil {
			return err
		}

		tx := newTransaction(user.ID, entities.TransactionTypeExchange, fromAmount, input.FromCurrency,
			fmt.Sprintf("Exchanged %s %s to %s %s. Rate: %s. Account currency now %s.",
				fromAmount.StringFixed(2), input.FromCurrency, toAmount.StringFixed(2), input.ToCurrency, rate.StringFixed(4), input.ToCurrency))
		if err := u.txRepo.Create(txCtx, tx); err != nil {
			return err
		}

		result = &entities.ExchangeResult{Transaction: tx, Balance: toAmount, Currency: input.ToCurrency}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.AddVolume(opExchange, string(input.FromCurrency), result.Transaction.Amount)
	return result, nil
}

// ListTransactions returns the customer's sent and received history, newest first
func (u *LedgerUsecase) ListTransactions(ctx context.Context, userID string) ([]*entities.Transaction, error) {
	return u.txRepo.ListByUser(ctx, userID)
}

// ListAllTransactions is the paginated admin view
func (u *LedgerUsecase) ListAllTransactions(ctx context.Context, query *entities.ListTransactionsQuery) ([]*entities.Transaction, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(query.Page, query.Limit)
	txs, total, err := u.txRepo.List(ctx, query.TransactionFilter, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return txs, utils.CalculateMeta(total, params.Page, params.Limit), nil
}
