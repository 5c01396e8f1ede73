package repositories

import (
	"context"

	"brixium.backend/internal/domain/entities"
)

// UserRepository defines customer data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	List(ctx context.Context, search string) ([]*entities.User, error)
}
