package usecases_test

import (
	"context"
	"time"

	"brixium.backend/internal/domain/entities"
	"brixium.backend/pkg/redis"
	"github.com/stretchr/testify/mock"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// Mock SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*entities.AppSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AppSettings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, settings *entities.AppSettings) error {
	return m.Called(ctx, settings).Error(0)
}

// Mock NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *entities.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id string) (*entities.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNotificationRepository) ListForUser(ctx context.Context, userID string) ([]*entities.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListForAdmin(ctx context.Context) ([]*entities.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Notification), args.Error(1)
}

// Mock SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error {
	return m.Called(ctx, sessionID, data, expiration).Error(0)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}
