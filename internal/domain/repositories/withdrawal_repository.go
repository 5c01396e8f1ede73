package repositories

import (
	"context"

	"brixium.backend/internal/domain/entities"
)

// WithdrawalRepository defines withdrawal request operations
type WithdrawalRepository interface {
	Create(ctx context.Context, req *entities.WithdrawalRequest) error
	GetByID(ctx context.Context, id string) (*entities.WithdrawalRequest, error)
	Update(ctx context.Context, req *entities.WithdrawalRequest) error
	ListByUser(ctx context.Context, userID string) ([]*entities.WithdrawalRequest, error)
	List(ctx context.Context, status entities.TransactionStatus) ([]*entities.WithdrawalRequest, error)
}
