package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/infrastructure/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore keeps snapshots in the state_snapshots table
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates the snapshot table when missing
func (s *SQLStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&models.StateSnapshot{})
}

func (s *SQLStore) Load(ctx context.Context, key string) ([]byte, error) {
	var m models.StateSnapshot
	if err := s.db.WithContext(ctx).Where("snapshot_key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return []byte(m.Payload), nil
}

func (s *SQLStore) Save(ctx context.Context, key string, payload []byte) error {
	m := &models.StateSnapshot{
		Key:       key,
		Payload:   string(payload),
		UpdatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}
