package usecases_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/usecases"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLedger_Fund(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ledger.Fund(ctx, aliceID, &entities.AmountInput{Amount: dec("0"), Currency: entities.CurrencyUSD}, adminID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = env.ledger.Fund(ctx, aliceID, &entities.AmountInput{Amount: dec("10"), Currency: entities.CurrencyEUR}, adminID)
	assert.ErrorIs(t, err, domainerrors.ErrCurrencyMismatch)

	_, err = env.ledger.Fund(ctx, "user-missing", &entities.AmountInput{Amount: dec("10"), Currency: entities.CurrencyUSD}, adminID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	tx, err := env.ledger.Fund(ctx, aliceID, &entities.AmountInput{Amount: dec("100.25"), Currency: entities.CurrencyUSD}, adminID)
	require.NoError(t, err)
	assert.Equal(t, entities.TransactionTypeDeposit, tx.Type)
	assert.Equal(t, entities.TransactionStatusCompleted, tx.Status)
	assert.Equal(t, "Account funded by admin.", tx.Description)
	assert.True(t, dec("50101").Equal(env.user(t, aliceID).Balance))

	notifs, err := env.notifs.ListForUser(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, entities.NotificationBalanceFunded, notifs[0].Type)
	assert.Equal(t, "Your account has been funded with 100.25 USD.", notifs[0].Message)
}

func TestLedger_Deduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ledger.Deduct(ctx, charlieID, &entities.AmountInput{Amount: dec("7800.51"), Currency: entities.CurrencyNGN}, adminID)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)
	assert.True(t, dec("7800.50").Equal(env.user(t, charlieID).Balance))

	_, err = env.ledger.Deduct(ctx, charlieID, &entities.AmountInput{Amount: dec("1"), Currency: entities.CurrencyUSD}, adminID)
	assert.ErrorIs(t, err, domainerrors.ErrCurrencyMismatch)

	tx, err := env.ledger.Deduct(ctx, charlieID, &entities.AmountInput{Amount: dec("7800.50"), Currency: entities.CurrencyNGN}, adminID)
	require.NoError(t, err)
	assert.Equal(t, entities.TransactionTypeWithdrawal, tx.Type)
	assert.Equal(t, "Balance deducted by admin.", tx.Description)
	assert.True(t, env.user(t, charlieID).Balance.IsZero())

	notifs, err := env.notifs.ListForUser(ctx, charlieID)
	require.NoError(t, err)
	assert.Equal(t, entities.NotificationBalanceDeducted, notifs[0].Type)
}

func TestLedger_LookupRecipient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ledger.LookupRecipient(ctx, aliceID, "nobody@example.com")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = env.ledger.LookupRecipient(ctx, aliceID, "alice@example.com")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = env.ledger.LookupRecipient(ctx, aliceID, " ")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	view, err := env.ledger.LookupRecipient(ctx, aliceID, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, bobID, view.ID)
	assert.Equal(t, entities.CurrencyEUR, view.Currency)
}

func TestLedger_Transfer_Guards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addUser(t, "user-dan", "dan@example.com", "10", entities.CurrencyUSD)

	cases := []struct {
		name   string
		sender string
		input  entities.TransferInput
		target error
	}{
		{"zero amount", aliceID, entities.TransferInput{RecipientEmail: "dan@example.com", Amount: dec("0"), Pin: "1234"}, domainerrors.ErrInvalidInput},
		{"over balance", aliceID, entities.TransferInput{RecipientEmail: "dan@example.com", Amount: dec("50000.76"), Pin: "1234"}, domainerrors.ErrInsufficientFunds},
		{"missing pin", aliceID, entities.TransferInput{RecipientEmail: "dan@example.com", Amount: dec("1")}, domainerrors.ErrInvalidPin},
		{"wrong pin", aliceID, entities.TransferInput{RecipientEmail: "dan@example.com", Amount: dec("1"), Pin: "0000"}, domainerrors.ErrInvalidPin},
		{"currency mismatch", aliceID, entities.TransferInput{RecipientEmail: "bob@example.com", Amount: dec("1"), Pin: "1234"}, domainerrors.ErrCurrencyMismatch},
		{"kyc required", bobID, entities.TransferInput{RecipientEmail: "alice@example.com", Amount: dec("1")}, domainerrors.ErrKYCRequired},
		{"fee required", aliceID, entities.TransferInput{RecipientEmail: "dan@example.com", Amount: dec("1"), Pin: "1234"}, domainerrors.ErrFeeRequired},
		{"fee rule changed", aliceID, entities.TransferInput{RecipientEmail: "dan@example.com", Amount: dec("1"), Pin: "1234", Fee: paid("withdrawal_main_fee")}, domainerrors.ErrFeeRuleChanged},
		{"self", aliceID, entities.TransferInput{RecipientEmail: "alice@example.com", Amount: dec("1"), Pin: "1234"}, domainerrors.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := tc.input
			_, err := env.ledger.Transfer(ctx, tc.sender, &input)
			assert.ErrorIs(t, err, tc.target)
		})
	}

	assert.True(t, dec("50000.75").Equal(env.user(t, aliceID).Balance))
	assert.True(t, dec("10").Equal(env.user(t, "user-dan").Balance))
}

func TestLedger_Transfer_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addUser(t, "user-dan", "dan@example.com", "10", entities.CurrencyUSD)

	result, err := env.ledger.Transfer(ctx, aliceID, &entities.TransferInput{
		RecipientEmail: "DAN@example.com",
		Amount:         dec("250.50"),
		Pin:            "1234",
		Fee:            &entities.FeeConfirmation{FeeSettingID: "transfer_internal_fee", Paid: true, WalletType: entities.WalletTypeUSDTTRC20},
	})
	require.NoError(t, err)

	alice := env.user(t, aliceID)
	dan := env.user(t, "user-dan")
	assert.True(t, dec("49750.25").Equal(alice.Balance))
	assert.True(t, dec("260.50").Equal(dan.Balance))
	assert.True(t, alice.Balance.Equal(result.Balance))

	assert.Equal(t, "user-dan", result.Sender.ToUserID.String)
	assert.True(t, dec("1").Equal(result.Sender.NetworkFee.Decimal))
	assert.Equal(t, "USD", result.Sender.NetworkFeeCurrency.String)
	assert.Equal(t, "Transfer to user-dan (dan@example.com)", result.Sender.Description)
	assert.Equal(t, aliceID, result.Recipient.FromUserID.String)
	assert.Equal(t, result.Sender.ID, result.Recipient.RelatedTransactionID.String)
	assert.True(t, result.Sender.Amount.Equal(result.Recipient.Amount))

	danTxs, err := env.ledger.ListTransactions(ctx, "user-dan")
	require.NoError(t, err)
	assert.Len(t, danTxs, 2)

	sent, err := env.notifs.ListForUser(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, entities.NotificationTransferSent, sent[0].Type)
	received, err := env.notifs.ListForUser(ctx, "user-dan")
	require.NoError(t, err)
	assert.Equal(t, "You received 250.5 USD from Alice Wonderland.", received[0].Message)
}

func TestLedger_Transfer_WalletTypeNotAccepted(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user-dan", "dan@example.com", "10", entities.CurrencyUSD)

	_, err := env.ledger.Transfer(context.Background(), aliceID, &entities.TransferInput{
		RecipientEmail: "dan@example.com",
		Amount:         dec("1"),
		Pin:            "1234",
		Fee:            &entities.FeeConfirmation{FeeSettingID: "transfer_internal_fee", Paid: true, WalletType: entities.WalletTypeBitcoinBTC},
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestLedger_Transfer_RollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	env.disableFees(t)
	env.addUser(t, "user-dan", "dan@example.com", "10", entities.CurrencyUSD)

	notifRepo := new(MockNotificationRepository)
	notifRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("notification store down"))
	ledger := usecases.NewLedgerUsecase(env.uow, env.users, env.txs, notifRepo, env.settings, env.feeGate, env.hasher)

	_, err := ledger.Transfer(context.Background(), aliceID, &entities.TransferInput{RecipientEmail: "dan@example.com", Amount: dec("5"), Pin: "1234"})
	require.EqualError(t, err, "notification store down")

	assert.True(t, dec("50000.75").Equal(env.user(t, aliceID).Balance))
	assert.True(t, dec("10").Equal(env.user(t, "user-dan").Balance))
	txs, err := env.txs.ListByUser(context.Background(), "user-dan")
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestLedger_Transfer_ConcurrentNeverOverdraws(t *testing.T) {
	env := newTestEnv(t)
	env.disableFees(t)
	env.addUser(t, "user-eve", "eve@example.com", "100", entities.CurrencyUSD)
	env.addUser(t, "user-dan", "dan@example.com", "0", entities.CurrencyUSD)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.ledger.Transfer(context.Background(), "user-eve", &entities.TransferInput{RecipientEmail: "dan@example.com", Amount: dec("10")})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.True(t, env.user(t, "user-eve").Balance.IsZero())
	assert.True(t, dec("100").Equal(env.user(t, "user-dan").Balance))
}

func TestLedger_Exchange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ledger.Exchange(ctx, aliceID, &entities.ExchangeInput{FromCurrency: entities.CurrencyUSD, ToCurrency: entities.CurrencyUSD})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = env.ledger.Exchange(ctx, aliceID, &entities.ExchangeInput{FromCurrency: entities.CurrencyEUR, ToCurrency: entities.CurrencyGBP})
	assert.ErrorIs(t, err, domainerrors.ErrCurrencyMismatch)

	_, err = env.ledger.Exchange(ctx, bobID, &entities.ExchangeInput{FromCurrency: entities.CurrencyEUR, ToCurrency: entities.CurrencyUSD})
	assert.ErrorIs(t, err, domainerrors.ErrKYCRequired)

	result, err := env.ledger.Exchange(ctx, aliceID, &entities.ExchangeInput{FromCurrency: entities.CurrencyUSD, ToCurrency: entities.CurrencyEUR})
	require.NoError(t, err)
	assert.Equal(t, entities.CurrencyEUR, result.Currency)
	assert.True(t, dec("46500.70").Equal(result.Balance), result.Balance.String())
	assert.Equal(t, entities.TransactionTypeExchange, result.Transaction.Type)
	assert.Equal(t, entities.CurrencyUSD, result.Transaction.Currency)
	assert.True(t, dec("50000.75").Equal(result.Transaction.Amount))
	assert.Equal(t, "Exchanged 50000.75 USD to 46500.70 EUR. Rate: 0.9300. Account currency now EUR.", result.Transaction.Description)

	alice := env.user(t, aliceID)
	assert.Equal(t, entities.CurrencyEUR, alice.Currency)
	assert.True(t, alice.Balance.Equal(result.Balance))
}

func TestLedger_Exchange_EmptyBalanceAndUnsupported(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addUser(t, "user-zero", "zero@example.com", "0", entities.CurrencyUSD)

	_, err := env.ledger.Exchange(ctx, "user-zero", &entities.ExchangeInput{FromCurrency: entities.CurrencyUSD, ToCurrency: entities.CurrencyEUR})
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)

	_, err = env.settingsUC.Update(ctx, &entities.UpdateSettingsInput{SupportedCurrencies: []entities.Currency{entities.CurrencyUSD}})
	require.NoError(t, err)
	_, err = env.ledger.Exchange(ctx, aliceID, &entities.ExchangeInput{FromCurrency: entities.CurrencyUSD, ToCurrency: entities.CurrencyEUR})
	assert.ErrorIs(t, err, domainerrors.ErrUnsupportedCurrency)
}

func TestLedger_Exchange_DustBalanceIsKept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addUser(t, "user-dust", "dust@example.com", "1", entities.CurrencyNGN)

	_, err := env.ledger.Exchange(ctx, "user-dust", &entities.ExchangeInput{FromCurrency: entities.CurrencyNGN, ToCurrency: entities.CurrencyUSD})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	user := env.user(t, "user-dust")
	assert.Equal(t, entities.CurrencyNGN, user.Currency)
	assert.True(t, dec("1").Equal(user.Balance), user.Balance.String())

	txs, err := env.ledger.ListTransactions(ctx, "user-dust")
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestLedger_RateAndQuote(t *testing.T) {
	env := newTestEnv(t)

	assert.True(t, dec("1500").Equal(env.ledger.Rate(entities.CurrencyUSD, entities.CurrencyNGN)))
	assert.True(t, env.ledger.Rate(entities.CurrencyUSD, "XYZ").IsZero())
	assert.Len(t, env.ledger.Rates(), len(entities.AllCurrencies))

	quote, err := env.ledger.Quote(entities.CurrencyGBP, entities.CurrencyUSD, dec("10"))
	require.NoError(t, err)
	assert.True(t, dec("12.70").Equal(quote.ToAmount))

	_, err = env.ledger.Quote("XYZ", entities.CurrencyUSD, dec("10"))
	assert.ErrorIs(t, err, domainerrors.ErrUnsupportedCurrency)

	_, err = env.ledger.Quote(entities.CurrencyUSD, entities.CurrencyEUR, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestLedger_ListAllTransactions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	all, meta, err := env.ledger.ListAllTransactions(ctx, &entities.ListTransactionsQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, int64(3), meta.TotalCount)
	assert.Equal(t, "txn-003", all[0].ID)

	page, meta, err := env.ledger.ListAllTransactions(ctx, &entities.ListTransactionsQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 1)
	assert.Equal(t, 2, meta.TotalPages)

	bobs, _, err := env.ledger.ListAllTransactions(ctx, &entities.ListTransactionsQuery{
		TransactionFilter: entities.TransactionFilter{UserID: bobID},
	})
	require.NoError(t, err)
	assert.Len(t, bobs, 2)

	pending, _, err := env.ledger.ListAllTransactions(ctx, &entities.ListTransactionsQuery{
		TransactionFilter: entities.TransactionFilter{Status: entities.TransactionStatusPending},
	})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "txn-003", pending[0].ID)
}
