package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/domain/repositories"
	"brixium.backend/pkg/crypto"
	"brixium.backend/pkg/jwt"
	"brixium.backend/pkg/redis"
	"brixium.backend/pkg/utils"
	"github.com/shopspring/decimal"
)

// SecretHasher hashes and checks passwords and transfer PINs
type SecretHasher interface {
	Hash(secret string) (string, error)
	Check(secret, hash string) bool
}

// SessionStore keeps server-side sessions behind opaque ids
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	DeleteSession(ctx context.Context, sessionID string) error
}

// AdminCredentials is the single configured admin account
type AdminCredentials struct {
	ID       string
	Email    string
	Password string
}

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	settingsRepo repositories.SettingsRepository
	jwtService   *jwt.JWTService
	hasher       SecretHasher
	sessions     SessionStore
	sessionTTL   time.Duration
	admin        AdminCredentials
}

// NewAuthUsecase creates a new auth usecase. sessions may be nil when Redis is not configured.
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	settingsRepo repositories.SettingsRepository,
	jwtService *jwt.JWTService,
	hasher SecretHasher,
	sessions SessionStore,
	sessionTTL time.Duration,
	admin AdminCredentials,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		jwtService:   jwtService,
		hasher:       hasher,
		sessions:     sessions,
		sessionTTL:   sessionTTL,
		admin:        admin,
	}
}

// Signup registers a new customer with an empty wallet
func (u *AuthUsecase) Signup(ctx context.Context, input *entities.SignupInput) (*entities.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, domainerrors.BadRequest("name, email and password are required")
	}
	if len(input.Password) < MinPasswordLength {
		return nil, domainerrors.BadRequest("password must be at least 6 characters")
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		return nil, domainerrors.BadRequest("passwords do not match")
	}

	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	currency := input.Currency
	if currency == "" {
		currency = settings.DefaultUserCurrency
	}
	if !settings.Supports(currency) {
		return nil, domainerrors.UnsupportedCurrency("currency " + string(currency) + " is not supported")
	}

	_, err = u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.Conflict("email already exists")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	ts := now()
	user := &entities.User{
		ID:           utils.NewID(userIDPrefix),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Balance:      decimal.Zero,
		Currency:     currency,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("email already exists")
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a customer and returns tokens or a session id
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid credentials")
		}
		return nil, err
	}
	if !u.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.InvalidCredentials("invalid credentials")
	}

	resp, err := u.issue(ctx, user.ID, user.Email, entities.RoleUser, input.UseSession)
	if err != nil {
		return nil, err
	}
	resp.User = user
	return resp, nil
}

// AdminLogin authenticates the configured admin account
func (u *AuthUsecase) AdminLogin(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	emailOK := crypto.ConstantTimeEqual(strings.ToLower(strings.TrimSpace(input.Email)), strings.ToLower(u.admin.Email))
	passwordOK := crypto.ConstantTimeEqual(input.Password, u.admin.Password)
	if !emailOK || !passwordOK {
		return nil, domainerrors.InvalidCredentials("invalid credentials")
	}

	resp, err := u.issue(ctx, u.admin.ID, u.admin.Email, entities.RoleAdmin, input.UseSession)
	if err != nil {
		return nil, err
	}
	resp.Admin = &entities.Admin{ID: u.admin.ID, Email: u.admin.Email}
	return resp, nil
}

func (u *AuthUsecase) issue(ctx context.Context, id, email, role string, useSession bool) (*entities.AuthResponse, error) {
	if useSession {
		if u.sessions == nil {
			return nil, domainerrors.BadRequest("sessions are not available")
		}
		sessionID := utils.NewID(sessionIDPrefix)
		err := u.sessions.CreateSession(ctx, sessionID, &redis.SessionData{
			UserID:    id,
			Email:     email,
			Role:      role,
			CreatedAt: now(),
		}, u.sessionTTL)
		if err != nil {
			return nil, err
		}
		return &entities.AuthResponse{SessionID: sessionID}, nil
	}

	pair, err := u.jwtService.GenerateTokenPair(id, email, role)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Refresh exchanges a refresh token for a new pair
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.TokenExpired("refresh token has expired")
		}
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}

	if claims.Role == entities.RoleAdmin {
		if claims.UserID != u.admin.ID {
			return nil, domainerrors.Unauthorized("invalid refresh token")
		}
		return u.jwtService.GenerateTokenPair(u.admin.ID, u.admin.Email, entities.RoleAdmin)
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("account no longer exists")
		}
		return nil, err
	}
	return u.jwtService.GenerateTokenPair(user.ID, user.Email, entities.RoleUser)
}

// Logout drops a server-side session; token clients simply discard their tokens
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" || u.sessions == nil {
		return nil
	}
	return u.sessions.DeleteSession(ctx, sessionID)
}

// Me returns the signed-in customer
func (u *AuthUsecase) Me(ctx context.Context, userID string) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// ChangePassword replaces the password after checking the current one
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID string, input *entities.ChangePasswordInput) error {
	if len(input.NewPassword) < MinPasswordLength {
		return domainerrors.BadRequest("new password must be at least 6 characters")
	}
	if input.NewPassword != input.ConfirmNewPassword {
		return domainerrors.BadRequest("new passwords do not match")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !u.hasher.Check(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.InvalidCredentials("current password is incorrect")
	}

	hash, err := u.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = now()
	return u.userRepo.Update(ctx, user)
}
