package repositories

import (
	"context"
	"strings"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
)

// UserRepository implements user data operations
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create adds a user; emails are unique regardless of case
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	return r.store.write(ctx, KeyUsers, func(st *state) error {
		for _, u := range st.users {
			if u.ID == user.ID || strings.EqualFold(u.Email, user.Email) {
				return domainerrors.ErrAlreadyExists
			}
		}
		st.users = append(st.users, cloneUser(user))
		return nil
	})
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var out *entities.User
	err := r.store.read(ctx, func(st *state) error {
		for _, u := range st.users {
			if u.ID == id {
				out = cloneUser(u)
				return nil
			}
		}
		return domainerrors.ErrNotFound
	})
	return out, err
}

// GetByEmail gets a user by email, ignoring case
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	email = strings.TrimSpace(email)
	var out *entities.User
	err := r.store.read(ctx, func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				out = cloneUser(u)
				return nil
			}
		}
		return domainerrors.ErrNotFound
	})
	return out, err
}

// Update replaces the stored user
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	return r.store.write(ctx, KeyUsers, func(st *state) error {
		for i, u := range st.users {
			if u.ID == user.ID {
				st.users[i] = cloneUser(user)
				return nil
			}
		}
		return domainerrors.ErrNotFound
	})
}

// List returns users whose name or email contains search
func (r *UserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	search = strings.ToLower(strings.TrimSpace(search))
	out := []*entities.User{}
	err := r.store.read(ctx, func(st *state) error {
		for _, u := range st.users {
			if search == "" ||
				strings.Contains(strings.ToLower(u.Name), search) ||
				strings.Contains(strings.ToLower(u.Email), search) {
				out = append(out, cloneUser(u))
			}
		}
		return nil
	})
	return out, err
}
