package repositories

import (
	"context"
	"time"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
)

// KYCRepository stores the latest verification request per user
type KYCRepository struct {
	store *Store
}

func NewKYCRepository(store *Store) *KYCRepository {
	return &KYCRepository{store: store}
}

// Replace drops earlier requests of the same user and stores req
func (r *KYCRepository) Replace(ctx context.Context, req *entities.KYCRequest) error {
	return r.store.write(ctx, KeyKYCRequests, func(st *state) error {
		kept := make([]*entities.KYCRequest, 0, len(st.kycRequests)+1)
		for _, k := range st.kycRequests {
			if k.UserID != req.UserID {
				kept = append(kept, k)
			}
		}
		st.kycRequests = append(kept, cloneKYC(req))
		return nil
	})
}

func (r *KYCRepository) GetByID(ctx context.Context, id string) (*entities.KYCRequest, error) {
	var out *entities.KYCRequest
	err := r.store.read(ctx, func(st *state) error {
		for _, k := range st.kycRequests {
			if k.ID == id {
				out = cloneKYC(k)
				return nil
			}
		}
		return domainerrors.ErrNotFound
	})
	return out, err
}

// GetByUserID returns the most recent request of the user
func (r *KYCRepository) GetByUserID(ctx context.Context, userID string) (*entities.KYCRequest, error) {
	var out *entities.KYCRequest
	err := r.store.read(ctx, func(st *state) error {
		for _, k := range st.kycRequests {
			if k.UserID == userID && (out == nil || k.SubmittedAt.After(out.SubmittedAt)) {
				out = cloneKYC(k)
			}
		}
		if out == nil {
			return domainerrors.ErrNotFound
		}
		return nil
	})
	return out, err
}

func (r *KYCRepository) Update(ctx context.Context, req *entities.KYCRequest) error {
	return r.store.write(ctx, KeyKYCRequests, func(st *state) error {
		for i, k := range st.kycRequests {
			if k.ID == req.ID {
				st.kycRequests[i] = cloneKYC(req)
				return nil
			}
		}
		return domainerrors.ErrNotFound
	})
}

// List returns requests with the given status (all when empty), newest first
func (r *KYCRepository) List(ctx context.Context, status entities.KYCStatus) ([]*entities.KYCRequest, error) {
	out := []*entities.KYCRequest{}
	err := r.store.read(ctx, func(st *state) error {
		for _, k := range st.kycRequests {
			if status == "" || k.Status == status {
				out = append(out, cloneKYC(k))
			}
		}
		return nil
	})
	newestFirst(out, func(k *entities.KYCRequest) time.Time { return k.SubmittedAt })
	return out, err
}
