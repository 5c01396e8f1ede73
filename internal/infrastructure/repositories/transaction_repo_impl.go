package repositories

import (
	"context"
	"time"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
)

// TransactionRepository keeps the append-only ledger history
type TransactionRepository struct {
	store *Store
}

func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	return r.store.write(ctx, KeyTransactions, func(st *state) error {
		for _, t := range st.transactions {
			if t.ID == tx.ID {
				return domainerrors.ErrAlreadyExists
			}
		}
		st.transactions = append(st.transactions, cloneTransaction(tx))
		return nil
	})
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entities.Transaction, error) {
	var out *entities.Transaction
	err := r.store.read(ctx, func(st *state) error {
		for _, t := range st.transactions {
			if t.ID == id {
				out = cloneTransaction(t)
				return nil
			}
		}
		return domainerrors.ErrNotFound
	})
	return out, err
}

// ListByUser returns transactions the user sent or received, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Transaction, error) {
	items, _, err := r.List(ctx, entities.TransactionFilter{UserID: userID}, 0, 0)
	return items, err
}

// List filters, sorts newest first and pages the history. A limit of 0 returns everything.
func (r *TransactionRepository) List(ctx context.Context, filter entities.TransactionFilter, limit, offset int) ([]*entities.Transaction, int64, error) {
	matched := []*entities.Transaction{}
	err := r.store.read(ctx, func(st *state) error {
		for _, t := range st.transactions {
			if filter.Matches(t) {
				matched = append(matched, cloneTransaction(t))
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	newestFirst(matched, func(t *entities.Transaction) time.Time { return t.Date })
	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	if offset < 0 {
		offset = 0
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}
