package repositories

import (
	"context"

	domainRepos "brixium.backend/internal/domain/repositories"
)

// UnitOfWorkImpl implements UnitOfWork on top of the in-memory store
type UnitOfWorkImpl struct {
	store *Store
}

// NewUnitOfWork creates a new UnitOfWork
func NewUnitOfWork(store *Store) domainRepos.UnitOfWork {
	return &UnitOfWorkImpl{store: store}
}

// Do executes fn with the store locked. The state is restored from a copy
// taken at begin when fn fails or panics.
func (u *UnitOfWorkImpl) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s := u.store
	if s.scope(ctx) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.st.clone()
	sc := &txScope{store: s, touched: make(map[string]bool)}
	txCtx := context.WithValue(ctx, storeTxKey{}, sc)

	committed := false
	defer func() {
		if !committed {
			s.st = backup
		}
	}()

	if err := fn(txCtx); err != nil {
		return err
	}
	committed = true

	keys := make([]string, 0, len(sc.touched))
	for _, key := range CollectionKeys {
		if sc.touched[key] {
			s.dirty[key] = true
			keys = append(keys, key)
		}
	}
	_ = s.flushLocked(ctx, keys...)
	return nil
}

// InTransaction reports whether ctx runs inside a unit of work of store
func InTransaction(ctx context.Context, store *Store) bool {
	return store.scope(ctx) != nil
}
