package repositories

import (
	"context"
	"time"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
)

// WithdrawalRepository implements withdrawal request operations
type WithdrawalRepository struct {
	store *Store
}

func NewWithdrawalRepository(store *Store) *WithdrawalRepository {
	return &WithdrawalRepository{store: store}
}

func (r *WithdrawalRepository) Create(ctx context.Context, req *entities.WithdrawalRequest) error {
	return r.store.write(ctx, KeyWithdrawalRequests, func(st *state) error {
		for _, w := range st.withdrawals {
			if w.ID == req.ID {
				return domainerrors.ErrAlreadyExists
			}
		}
		st.withdrawals = append(st.withdrawals, cloneWithdrawal(req))
		return nil
	})
}

func (r *WithdrawalRepository) GetByID(ctx context.Context, id string) (*entities.WithdrawalRequest, error) {
	var out *entities.WithdrawalRequest
	err := r.store.read(ctx, func(st *state) error {
		for _, w := range st.withdrawals {
			if w.ID == id {
				out = cloneWithdrawal(w)
				return nil
			}
		}
		return domainerrors.ErrNotFound
	})
	return out, err
}

func (r *WithdrawalRepository) Update(ctx context.Context, req *entities.WithdrawalRequest) error {
	return r.store.write(ctx, KeyWithdrawalRequests, func(st *state) error {
		for i, w := range st.withdrawals {
			if w.ID == req.ID {
				st.withdrawals[i] = cloneWithdrawal(req)
				return nil
			}
		}
		return domainerrors.ErrNotFound
	})
}

func (r *WithdrawalRepository) ListByUser(ctx context.Context, userID string) ([]*entities.WithdrawalRequest, error) {
	return r.list(ctx, func(w *entities.WithdrawalRequest) bool { return w.UserID == userID })
}

// List returns requests with the given status (all when empty), newest first
func (r *WithdrawalRepository) List(ctx context.Context, status entities.TransactionStatus) ([]*entities.WithdrawalRequest, error) {
	return r.list(ctx, func(w *entities.WithdrawalRequest) bool { return status == "" || w.Status == status })
}

func (r *WithdrawalRepository) list(ctx context.Context, keep func(*entities.WithdrawalRequest) bool) ([]*entities.WithdrawalRequest, error) {
	out := []*entities.WithdrawalRequest{}
	err := r.store.read(ctx, func(st *state) error {
		for _, w := range st.withdrawals {
			if keep(w) {
				out = append(out, cloneWithdrawal(w))
			}
		}
		return nil
	})
	newestFirst(out, func(w *entities.WithdrawalRequest) time.Time { return w.RequestedAt })
	return out, err
}
