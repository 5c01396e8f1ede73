package repositories

import (
	"context"

	"brixium.backend/internal/domain/entities"
)

// SettingsRepository holds the single settings document
type SettingsRepository interface {
	Get(ctx context.Context) (*entities.AppSettings, error)
	Save(ctx context.Context, settings *entities.AppSettings) error
}
