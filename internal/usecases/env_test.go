package usecases_test

import (
	"context"
	"testing"
	"time"

	"brixium.backend/internal/domain/entities"
	domainRepos "brixium.backend/internal/domain/repositories"
	"brixium.backend/internal/infrastructure/repositories"
	"brixium.backend/internal/infrastructure/seed"
	"brixium.backend/internal/infrastructure/snapshot"
	"brixium.backend/internal/usecases"
	"brixium.backend/pkg/crypto"
	"brixium.backend/pkg/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	aliceID   = "user-001" // USD, verified, PIN 1234
	bobID     = "user-002" // EUR, unverified, pending KYC
	charlieID = "user-003" // NGN, verified, PIN 5678
	adminID   = "admin-001"
)

var testAdmin = usecases.AdminCredentials{ID: adminID, Email: "admin@brixium.com", Password: "adminpassword"}

// testEnv wires every usecase to a seeded in-memory store
type testEnv struct {
	store    *repositories.Store
	backend  *snapshot.MemoryStore
	hasher   *crypto.Hasher
	jwt      *jwt.JWTService
	uow      domainRepos.UnitOfWork
	users    *repositories.UserRepository
	txs      *repositories.TransactionRepository
	kycs     *repositories.KYCRepository
	wds      *repositories.WithdrawalRepository
	notifs   *repositories.NotificationRepository
	settings *repositories.SettingsRepository

	feeGate      *usecases.FeeGate
	auth         *usecases.AuthUsecase
	account      *usecases.AccountUsecase
	ledger       *usecases.LedgerUsecase
	kyc          *usecases.KYCUsecase
	withdrawal   *usecases.WithdrawalUsecase
	notification *usecases.NotificationUsecase
	settingsUC   *usecases.SettingsUsecase
	admin        *usecases.AdminUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{
		backend: snapshot.NewMemoryStore(),
		hasher:  crypto.NewHasher(bcrypt.MinCost),
		jwt:     jwt.NewJWTService("test-secret", "brixium", 15*time.Minute, 24*time.Hour),
	}
	e.store = repositories.NewStore(e.backend)
	require.NoError(t, e.store.Load(context.Background(), func() (*seed.Data, error) {
		return seed.Load(time.Now().UTC(), e.hasher)
	}))

	e.uow = repositories.NewUnitOfWork(e.store)
	e.users = repositories.NewUserRepository(e.store)
	e.txs = repositories.NewTransactionRepository(e.store)
	e.kycs = repositories.NewKYCRepository(e.store)
	e.wds = repositories.NewWithdrawalRepository(e.store)
	e.notifs = repositories.NewNotificationRepository(e.store)
	e.settings = repositories.NewSettingsRepository(e.store)

	e.feeGate = usecases.NewFeeGate(e.settings)
	e.auth = usecases.NewAuthUsecase(e.users, e.settings, e.jwt, e.hasher, nil, time.Hour, testAdmin)
	e.account = usecases.NewAccountUsecase(e.uow, e.users, e.settings, e.hasher)
	e.ledger = usecases.NewLedgerUsecase(e.uow, e.users, e.txs, e.notifs, e.settings, e.feeGate, e.hasher)
	e.kyc = usecases.NewKYCUsecase(e.uow, e.kycs, e.users, e.notifs)
	e.withdrawal = usecases.NewWithdrawalUsecase(e.uow, e.wds, e.users, e.txs, e.notifs, e.settings, e.feeGate)
	e.notification = usecases.NewNotificationUsecase(e.notifs, e.users)
	e.settingsUC = usecases.NewSettingsUsecase(e.uow, e.settings)
	e.admin = usecases.NewAdminUsecase(e.uow, e.users, e.kycs, e.wds, e.settings)
	return e
}

// addUser creates a verified customer without a PIN
func (e *testEnv) addUser(t *testing.T, id, email string, balance string, currency entities.Currency) *entities.User {
	t.Helper()
	hash, err := e.hasher.Hash("password123")
	require.NoError(t, err)
	u := &entities.User{
		ID:            id,
		Name:          id,
		Email:         email,
		PasswordHash:  hash,
		Balance:       decimal.RequireFromString(balance),
		Currency:      currency,
		IsVerifiedKYC: true,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) user(t *testing.T, id string) *entities.User {
	t.Helper()
	u, err := e.users.GetByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

// disableFees turns every fee rule off
func (e *testEnv) disableFees(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	s, err := e.settings.Get(ctx)
	require.NoError(t, err)
	for i := range s.NetworkFees {
		s.NetworkFees[i].IsEnabled = false
	}
	require.NoError(t, e.settings.Save(ctx, s))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func paid(feeID string) *entities.FeeConfirmation {
	return &entities.FeeConfirmation{FeeSettingID: feeID, Paid: true}
}
