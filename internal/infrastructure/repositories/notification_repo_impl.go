package repositories

import (
	"context"
	"time"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
)

// NotificationRepository implements notification operations
type NotificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entities.Notification) error {
	return r.store.write(ctx, KeyNotifications, func(st *state) error {
		st.notifications = append(st.notifications, cloneNotification(n))
		return nil
	})
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*entities.Notification, error) {
	var out *entities.Notification
	err := r.store.read(ctx, func(st *state) error {
		for _, n := range st.notifications {
			if n.ID == id {
				out = cloneNotification(n)
				return nil
			}
		}
		return domainerrors.ErrNotFound
	})
	return out, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	return r.store.write(ctx, KeyNotifications, func(st *state) error {
		for _, n := range st.notifications {
			if n.ID == id {
				n.Read = true
				return nil
			}
		}
		return domainerrors.ErrNotFound
	})
}

// ListForUser returns the customer's own notifications, newest first
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string) ([]*entities.Notification, error) {
	return r.list(ctx, func(n *entities.Notification) bool { return n.VisibleTo(userID, false) })
}

// ListForAdmin returns admin-only notifications, newest first
func (r *NotificationRepository) ListForAdmin(ctx context.Context) ([]*entities.Notification, error) {
	return r.list(ctx, func(n *entities.Notification) bool { return n.AdminOnly })
}

func (r *NotificationRepository) list(ctx context.Context, keep func(*entities.Notification) bool) ([]*entities.Notification, error) {
	out := []*entities.Notification{}
	err := r.store.read(ctx, func(st *state) error {
		for _, n := range st.notifications {
			if keep(n) {
				out = append(out, cloneNotification(n))
			}
		}
		return nil
	})
	newestFirst(out, func(n *entities.Notification) time.Time { return n.CreatedAt })
	return out, err
}
