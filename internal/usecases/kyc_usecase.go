package usecases

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/domain/repositories"
	"brixium.backend/pkg/utils"
	"github.com/volatiletech/null/v8"
)

// KYCUsecase handles identity verification submissions and reviews
type KYCUsecase struct {
	uow       repositories.UnitOfWork
	kycRepo   repositories.KYCRepository
	userRepo  repositories.UserRepository
	notifRepo repositories.NotificationRepository
}

// NewKYCUsecase creates a new KYC usecase
func NewKYCUsecase(
	uow repositories.UnitOfWork,
	kycRepo repositories.KYCRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
) *KYCUsecase {
	return &KYCUsecase{
		uow:       uow,
		kycRepo:   kycRepo,
		userRepo:  userRepo,
		notifRepo: notifRepo,
	}
}

// Submit files a new request, replacing an earlier rejected one
func (u *KYCUsecase) Submit(ctx context.Context, userID string, input *entities.KYCSubmissionInput) (*entities.KYCRequest, error) {
	docs := make([]string, 0, len(input.DocumentURLs))
	for _, d := range input.DocumentURLs {
		if d = strings.TrimSpace(d); d != "" {
			docs = append(docs, d)
		}
	}
	if len(docs) == 0 || len(docs) > entities.MaxKYCDocuments {
		return nil, domainerrors.BadRequest("between 1 and 3 documents are required")
	}

	var req *entities.KYCRequest
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		user, err := u.userRepo.GetByID(txCtx, userID)
		if err != nil {
			return err
		}

		existing, err := u.kycRepo.GetByUserID(txCtx, userID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		if existing != nil && existing.BlocksSubmission(user.IsVerifiedKYC) {
			return domainerrors.NewAppError(http.StatusConflict, "KYC_ALREADY_SUBMITTED", "KYC request already pending or approved", domainerrors.ErrAlreadyExists)
		}

		req = &entities.KYCRequest{
			ID:           utils.NewID(kycIDPrefix),
			UserID:       userID,
			DocumentURLs: docs,
			Status:       entities.KYCStatusPending,
			SubmittedAt:  now(),
		}
		if err := u.kycRepo.Replace(txCtx, req); err != nil {
			return err
		}

		user.IsVerifiedKYC = false
		user.UpdatedAt = now()
		if err := u.userRepo.Update(txCtx, user); err != nil {
			return err
		}

		return notify(txCtx, u.notifRepo, entities.NotificationInput{
			AdminOnly: true,
			Type:      entities.NotificationNewKYCSubmission,
			Message:   "New KYC submission from user " + user.Name + ".",
			LinkTo:    AdminKYCLink,
		})
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Status returns the latest request, or a Not Submitted placeholder
func (u *KYCUsecase) Status(ctx context.Context, userID string) (*entities.KYCRequest, error) {
	req, err := u.kycRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return &entities.KYCRequest{UserID: userID, Status: entities.KYCStatusNotSubmitted, DocumentURLs: []string{}}, nil
	}
	return req, err
}

// Review approves or rejects a pending request
func (u *KYCUsecase) Review(ctx context.Context, requestID string, approve bool, adminID string) (*entities.KYCRequest, error) {
	var req *entities.KYCRequest
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		req, err = u.kycRepo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		return u.review(txCtx, req, approve, adminID)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (u *KYCUsecase) review(ctx context.Context, req *entities.KYCRequest, approve bool, adminID string) error {
	if req.Status != entities.KYCStatusPending {
		return domainerrors.InvalidTransition("KYC request is already " + strings.ToLower(string(req.Status)))
	}
	return u.decide(ctx, req, approve, adminID)
}

// decide records the outcome on the request, the user flag and the user's feed
func (u *KYCUsecase) decide(ctx context.Context, req *entities.KYCRequest, approve bool, adminID string) error {
	req.Status = entities.KYCStatusRejected
	notifType := entities.NotificationKYCRejected
	message := "Your KYC has been rejected. Please contact support or resubmit documents if applicable."
	if approve {
		req.Status = entities.KYCStatusApproved
		notifType = entities.NotificationKYCApproved
		message = "Your KYC has been approved."
	}
	req.ReviewedAt = null.TimeFrom(now())
	req.ReviewerID = null.StringFrom(adminID)
	if err := u.kycRepo.Update(ctx, req); err != nil {
		return err
	}

	user, err := u.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return err
	}
	user.IsVerifiedKYC = approve
	user.UpdatedAt = now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return notify(ctx, u.notifRepo, entities.NotificationInput{
		UserID:  user.ID,
		Type:    notifType,
		Message: message,
	})
}

// SetVerification is the admin override of the verified flag.
// The latest request is moved to the matching status so request and flag stay
// consistent; a revoked user can then submit again.
func (u *KYCUsecase) SetVerification(ctx context.Context, userID string, verified bool, adminID string) (*entities.User, error) {
	var user *entities.User
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		req, err := u.kycRepo.GetByUserID(txCtx, userID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		if req != nil && (req.Status == entities.KYCStatusPending || !req.MatchesVerification(verified)) {
			if err := u.decide(txCtx, req, verified, adminID); err != nil {
				return err
			}
			user, err = u.userRepo.GetByID(txCtx, userID)
			return err
		}

		user, err = u.userRepo.GetByID(txCtx, userID)
		if err != nil {
			return err
		}
		user.IsVerifiedKYC = verified
		user.UpdatedAt = now()
		return u.userRepo.Update(txCtx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List returns requests, optionally filtered by status
func (u *KYCUsecase) List(ctx context.Context, status entities.KYCStatus) ([]*entities.KYCRequest, error) {
	return u.kycRepo.List(ctx, status)
}
