package repositories

import (
	"context"

	"brixium.backend/internal/domain/entities"
)

// NotificationRepository defines notification operations
type NotificationRepository interface {
	Create(ctx context.Context, n *entities.Notification) error
	GetByID(ctx context.Context, id string) (*entities.Notification, error)
	MarkRead(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID string) ([]*entities.Notification, error)
	ListForAdmin(ctx context.Context) ([]*entities.Notification, error)
}
