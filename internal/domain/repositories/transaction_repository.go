package repositories

import (
	"context"

	"brixium.backend/internal/domain/entities"
)

// TransactionRepository stores the immutable ledger history
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	GetByID(ctx context.Context, id string) (*entities.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Transaction, error)
	List(ctx context.Context, filter entities.TransactionFilter, limit, offset int) ([]*entities.Transaction, int64, error)
}
