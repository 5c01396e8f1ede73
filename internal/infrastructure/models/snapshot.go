package models

import "time"

// StateSnapshot stores one collection document in the SQL snapshot backend
type StateSnapshot struct {
	Key       string    `gorm:"column:snapshot_key;type:varchar(64);primaryKey"`
	Payload   string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (StateSnapshot) TableName() string {
	return "state_snapshots"
}
