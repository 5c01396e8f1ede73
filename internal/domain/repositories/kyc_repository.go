package repositories

import (
	"context"

	"brixium.backend/internal/domain/entities"
)

// KYCRepository keeps at most one request per user
type KYCRepository interface {
	// Replace stores the request and drops any earlier request of the same user.
	Replace(ctx context.Context, req *entities.KYCRequest) error
	GetByID(ctx context.Context, id string) (*entities.KYCRequest, error)
	GetByUserID(ctx context.Context, userID string) (*entities.KYCRequest, error)
	Update(ctx context.Context, req *entities.KYCRequest) error
	List(ctx context.Context, status entities.KYCStatus) ([]*entities.KYCRequest, error)
}
