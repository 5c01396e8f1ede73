package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	domainRepos "brixium.backend/internal/domain/repositories"
	"brixium.backend/internal/infrastructure/models"
	"brixium.backend/internal/infrastructure/seed"
	"brixium.backend/pkg/logger"
	"brixium.backend/pkg/metrics"
	"go.uber.org/zap"
)

// Snapshot keys, one per collection
const (
	KeyUsers              = "brixiumUsers"
	KeyTransactions       = "brixiumTransactions"
	KeyKYCRequests        = "brixiumKycRequests"
	KeyWithdrawalRequests = "brixiumWithdrawalRequests"
	KeyNotifications      = "brixiumNotifications"
	KeySettings           = "brixiumAppSettings"
)

// CollectionKeys lists every mirrored collection
var CollectionKeys = []string{
	KeyUsers,
	KeyTransactions,
	KeyKYCRequests,
	KeyWithdrawalRequests,
	KeyNotifications,
	KeySettings,
}

type state struct {
	users         []*entities.User
	transactions  []*entities.Transaction
	kycRequests   []*entities.KYCRequest
	withdrawals   []*entities.WithdrawalRequest
	notifications []*entities.Notification
	settings      entities.AppSettings
}

func (s *state) clone() *state {
	out := &state{
		users:         make([]*entities.User, len(s.users)),
		transactions:  make([]*entities.Transaction, len(s.transactions)),
		kycRequests:   make([]*entities.KYCRequest, len(s.kycRequests)),
		withdrawals:   make([]*entities.WithdrawalRequest, len(s.withdrawals)),
		notifications: make([]*entities.Notification, len(s.notifications)),
		settings:      s.settings.Clone(),
	}
	for i, u := range s.users {
		out.users[i] = cloneUser(u)
	}
	for i, t := range s.transactions {
		out.transactions[i] = cloneTransaction(t)
	}
	for i, k := range s.kycRequests {
		out.kycRequests[i] = cloneKYC(k)
	}
	for i, w := range s.withdrawals {
		out.withdrawals[i] = cloneWithdrawal(w)
	}
	for i, n := range s.notifications {
		out.notifications[i] = cloneNotification(n)
	}
	return out
}

func cloneUser(u *entities.User) *entities.User {
	c := *u
	return &c
}

func cloneTransaction(t *entities.Transaction) *entities.Transaction {
	c := *t
	return &c
}

func cloneKYC(k *entities.KYCRequest) *entities.KYCRequest {
	c := k.Clone()
	return &c
}

func cloneWithdrawal(w *entities.WithdrawalRequest) *entities.WithdrawalRequest {
	c := *w
	return &c
}

func cloneNotification(n *entities.Notification) *entities.Notification {
	c := *n
	return &c
}

type storeTxKey struct{}

// txScope marks a context as running inside a unit of work of one store.
type txScope struct {
	store   *Store
	touched map[string]bool
}

// Store is the process-wide container of every collection. All access goes
// through one mutex; a unit of work holds it for its whole duration.
type Store struct {
	mu      sync.Mutex
	st      *state
	dirty   map[string]bool
	backend domainRepos.SnapshotStore
}

// NewStore creates an empty store mirrored to backend
func NewStore(backend domainRepos.SnapshotStore) *Store {
	return &Store{
		st:      &state{},
		dirty:   make(map[string]bool),
		backend: backend,
	}
}

func (s *Store) scope(ctx context.Context) *txScope {
	if sc, ok := ctx.Value(storeTxKey{}).(*txScope); ok && sc.store == s {
		return sc
	}
	return nil
}

func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if s.scope(ctx) != nil {
		return fn(s.st)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// write applies fn to one collection. Inside a unit of work the mirror is
// deferred to commit; otherwise the collection is mirrored right away.
func (s *Store) write(ctx context.Context, key string, fn func(st *state) error) error {
	if sc := s.scope(ctx); sc != nil {
		if err := fn(s.st); err != nil {
			return err
		}
		sc.touched[key] = true
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.st); err != nil {
		return err
	}
	s.dirty[key] = true
	_ = s.flushLocked(ctx, key)
	return nil
}

// Load fills the store from the backend. Collections that are missing or
// unreadable are taken from the seed, which is built at most once.
func (s *Store) Load(ctx context.Context, seedFn func() (*seed.Data, error)) error {
	var initial *seed.Data
	seedData := func() (*seed.Data, error) {
		if initial != nil {
			return initial, nil
		}
		d, err := seedFn()
		if err != nil {
			return nil, err
		}
		initial = d
		return d, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := &state{}
	for _, key := range CollectionKeys {
		raw, err := s.backend.Load(ctx, key)
		if err != nil && !errors.Is(err, domainerrors.ErrSnapshotNotFound) {
			return err
		}

		if err == nil {
			migrated, decodeErr := decode(st, key, raw)
			if decodeErr == nil {
				if migrated {
					logger.Warn(ctx, "Legacy settings document migrated", zap.String("key", key))
					s.dirty[key] = true
				}
				continue
			}
			logger.Warn(ctx, "Snapshot unreadable, using seed", zap.String("key", key), zap.Error(decodeErr))
		}

		d, err := seedData()
		if err != nil {
			return err
		}
		applySeed(st, key, d)
		s.dirty[key] = true
	}
	s.st = st

	_ = s.flushLocked(ctx, s.dirtyKeysLocked()...)
	return nil
}

func applySeed(st *state, key string, d *seed.Data) {
	switch key {
	case KeyUsers:
		st.users = make([]*entities.User, 0, len(d.Users))
		for _, u := range d.Users {
			st.users = append(st.users, cloneUser(u))
		}
	case KeyTransactions:
		st.transactions = make([]*entities.Transaction, 0, len(d.Transactions))
		for _, t := range d.Transactions {
			st.transactions = append(st.transactions, cloneTransaction(t))
		}
	case KeyKYCRequests:
		st.kycRequests = make([]*entities.KYCRequest, 0, len(d.KYCRequests))
		for _, k := range d.KYCRequests {
			st.kycRequests = append(st.kycRequests, cloneKYC(k))
		}
	case KeyWithdrawalRequests:
		st.withdrawals = make([]*entities.WithdrawalRequest, 0, len(d.WithdrawalRequests))
		for _, w := range d.WithdrawalRequests {
			st.withdrawals = append(st.withdrawals, cloneWithdrawal(w))
		}
	case KeyNotifications:
		st.notifications = make([]*entities.Notification, 0, len(d.Notifications))
		for _, n := range d.Notifications {
			st.notifications = append(st.notifications, cloneNotification(n))
		}
	case KeySettings:
		st.settings = d.Settings.Clone()
	}
}

func decode(st *state, key string, raw []byte) (bool, error) {
	switch key {
	case KeyUsers:
		var users []models.User
		if err := json.Unmarshal(raw, &users); err != nil {
			return false, err
		}
		st.users = make([]*entities.User, 0, len(users))
		for i := range users {
			st.users = append(st.users, users[i].ToEntity())
		}
	case KeyTransactions:
		st.transactions = []*entities.Transaction{}
		return false, json.Unmarshal(raw, &st.transactions)
	case KeyKYCRequests:
		st.kycRequests = []*entities.KYCRequest{}
		return false, json.Unmarshal(raw, &st.kycRequests)
	case KeyWithdrawalRequests:
		st.withdrawals = []*entities.WithdrawalRequest{}
		return false, json.Unmarshal(raw, &st.withdrawals)
	case KeyNotifications:
		st.notifications = []*entities.Notification{}
		return false, json.Unmarshal(raw, &st.notifications)
	case KeySettings:
		defaults, err := seed.Settings()
		if err != nil {
			return false, err
		}
		settings, migrated, err := models.DecodeSettings(raw, defaults)
		if err != nil {
			return false, err
		}
		st.settings = settings
		return migrated, nil
	}
	return false, nil
}

func encodeList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

func (s *Store) encode(key string) ([]byte, error) {
	switch key {
	case KeyUsers:
		users := make([]*models.User, 0, len(s.st.users))
		for _, u := range s.st.users {
			users = append(users, models.UserFromEntity(u))
		}
		return json.Marshal(users)
	case KeyTransactions:
		return encodeList(s.st.transactions)
	case KeyKYCRequests:
		return encodeList(s.st.kycRequests)
	case KeyWithdrawalRequests:
		return encodeList(s.st.withdrawals)
	case KeyNotifications:
		return encodeList(s.st.notifications)
	case KeySettings:
		return models.EncodeSettings(s.st.settings)
	}
	return nil, domainerrors.ErrNotFound
}

// flushLocked mirrors the given collections. Failed ones stay dirty.
func (s *Store) flushLocked(ctx context.Context, keys ...string) error {
	ctx = context.WithoutCancel(ctx)
	var errs []error
	for _, key := range keys {
		payload, err := s.encode(key)
		if err == nil {
			err = s.backend.Save(ctx, key, payload)
		}
		metrics.ObserveFlush(key, err)
		if err != nil {
			logger.Warn(ctx, "Snapshot flush failed", zap.String("key", key), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		delete(s.dirty, key)
	}
	return errors.Join(errs...)
}

func (s *Store) dirtyKeysLocked() []string {
	keys := make([]string, 0, len(s.dirty))
	for _, key := range CollectionKeys {
		if s.dirty[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

// DirtyKeys lists collections whose last mirror attempt failed
func (s *Store) DirtyKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirtyKeysLocked()
}

// FlushDirty retries every collection whose mirror is out of date
func (s *Store) FlushDirty(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked(ctx, s.dirtyKeysLocked()...)
}

// FlushAll mirrors every collection regardless of state
func (s *Store) FlushAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked(ctx, CollectionKeys...)
}

func newestFirst[T any](items []T, at func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return at(items[i]).After(at(items[j]))
	})
}
