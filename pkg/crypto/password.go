package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
)

// Hasher hashes passwords and transfer PINs with a fixed bcrypt cost.
type Hasher struct {
	Cost int
}

// NewHasher returns a hasher; out-of-range costs fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{Cost: cost}
}

// Hash returns the bcrypt hash of secret
func (h *Hasher) Hash(secret string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(secret), h.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(bytes), nil
}

// Check compares a secret with a hash
func (h *Hasher) Check(secret, hash string) bool {
	return CheckPassword(secret, hash)
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	return NewHasher(DefaultCost).Hash(password)
}

// CheckPassword compares a password with a hash
func CheckPassword(password, hash string) bool {
	if hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ConstantTimeEqual compares two plaintext secrets without leaking their common prefix length.
func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// GenerateRandomToken generates a random token of specified length
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
