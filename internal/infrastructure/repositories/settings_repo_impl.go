package repositories

import (
	"context"

	"brixium.backend/internal/domain/entities"
)

// SettingsRepository holds the single settings document
type SettingsRepository struct {
	store *Store
}

func NewSettingsRepository(store *Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

func (r *SettingsRepository) Get(ctx context.Context) (*entities.AppSettings, error) {
	var out entities.AppSettings
	err := r.store.read(ctx, func(st *state) error {
		out = st.settings.Clone()
		return nil
	})
	return &out, err
}

func (r *SettingsRepository) Save(ctx context.Context, settings *entities.AppSettings) error {
	return r.store.write(ctx, KeySettings, func(st *state) error {
		st.settings = settings.Clone()
		return nil
	})
}
