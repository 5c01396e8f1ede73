package usecases

import (
	"context"
	"strings"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/domain/repositories"
	"brixium.backend/pkg/utils"
	"github.com/volatiletech/null/v8"
)

// NotificationUsecase handles in-app notifications for customers and admins
type NotificationUsecase struct {
	notifRepo repositories.NotificationRepository
	userRepo  repositories.UserRepository
}

// NewNotificationUsecase creates a new notification usecase
func NewNotificationUsecase(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationUsecase {
	return &NotificationUsecase{notifRepo: notifRepo, userRepo: userRepo}
}

func newNotification(input entities.NotificationInput) *entities.Notification {
	n := &entities.Notification{
		ID:        utils.NewID(notificationIDPrefix),
		AdminOnly: input.AdminOnly,
		Type:      input.Type,
		Message:   input.Message,
		CreatedAt: now(),
	}
	if input.UserID != "" && !input.AdminOnly {
		n.UserID = null.StringFrom(input.UserID)
	}
	if input.LinkTo != "" {
		n.LinkTo = null.StringFrom(input.LinkTo)
	}
	return n
}

// notify is shared by the usecases that emit notifications as part of a larger operation
func notify(ctx context.Context, repo repositories.NotificationRepository, input entities.NotificationInput) error {
	return repo.Create(ctx, newNotification(input))
}

// Notify creates an unread notification
func (u *NotificationUsecase) Notify(ctx context.Context, input entities.NotificationInput) (*entities.Notification, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, domainerrors.BadRequest("message is required")
	}
	if !input.AdminOnly && input.UserID == "" {
		return nil, domainerrors.BadRequest("a customer notification needs a user")
	}
	n := newNotification(input)
	if err := u.notifRepo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListForUser returns the customer's notifications, newest first
func (u *NotificationUsecase) ListForUser(ctx context.Context, userID string) ([]*entities.Notification, error) {
	return u.notifRepo.ListForUser(ctx, userID)
}

// ListForAdmin returns admin-only notifications, newest first
func (u *NotificationUsecase) ListForAdmin(ctx context.Context) ([]*entities.Notification, error) {
	return u.notifRepo.ListForAdmin(ctx)
}

// MarkRead marks a notification the viewer is allowed to see as read.
func (u *NotificationUsecase) MarkRead(ctx context.Context, id, viewerID string, isAdmin bool) error {
	n, err := u.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !n.VisibleTo(viewerID, isAdmin) {
		return domainerrors.NotFound("notification not found")
	}
	return u.notifRepo.MarkRead(ctx, id)
}

// Broadcast sends an admin message to one customer
func (u *NotificationUsecase) Broadcast(ctx context.Context, userID string, input *entities.AdminMessageInput) (*entities.Notification, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return u.Notify(ctx, entities.NotificationInput{
		UserID:  userID,
		Type:    entities.NotificationAdminMessage,
		Message: strings.TrimSpace(input.Message),
	})
}
