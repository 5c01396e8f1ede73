package utils

import (
	"github.com/google/uuid"
)

var newUUIDv7 = uuid.NewV7

// GenerateUUIDv7 generates a new UUID v7
func GenerateUUIDv7() uuid.UUID {
	id, err := newUUIDv7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// NewID returns a time-ordered identifier such as "txn-0190c3...".
func NewID(prefix string) string {
	if prefix == "" {
		return GenerateUUIDv7().String()
	}
	return prefix + "-" + GenerateUUIDv7().String()
}
