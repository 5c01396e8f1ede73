package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/infrastructure/seed"
	"brixium.backend/pkg/crypto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var errBackendDown = errors.New("backend down")

// fakeSnapshotStore is an in-memory backend whose failures can be toggled
type fakeSnapshotStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	saves    map[string]int
	failSave bool
	failLoad bool
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{data: map[string][]byte{}, saves: map[string]int{}}
}

func (f *fakeSnapshotStore) Load(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLoad {
		return nil, errBackendDown
	}
	payload, ok := f.data[key]
	if !ok {
		return nil, domainerrors.ErrSnapshotNotFound
	}
	return payload, nil
}

func (f *fakeSnapshotStore) Save(_ context.Context, key string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return errBackendDown
	}
	f.data[key] = append([]byte(nil), payload...)
	f.saves[key]++
	return nil
}

func (f *fakeSnapshotStore) setFailSave(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSave = v
}

func (f *fakeSnapshotStore) saveCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[key]
}

func (f *fakeSnapshotStore) payload(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.data[key])
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testSeed() (*seed.Data, error) {
	return seed.Load(testNow, crypto.NewHasher(bcrypt.MinCost))
}

// newSeededStore returns a store loaded from the fixture
func newSeededStore(t *testing.T) (*Store, *fakeSnapshotStore) {
	t.Helper()
	backend := newFakeSnapshotStore()
	store := NewStore(backend)
	require.NoError(t, store.Load(context.Background(), testSeed))
	return store, backend
}

func newUser(id, email string, balance int64) *entities.User {
	return &entities.User{
		ID:        id,
		Name:      id,
		Email:     email,
		Balance:   decimal.NewFromInt(balance),
		Currency:  entities.CurrencyUSD,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}
