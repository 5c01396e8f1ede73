package redis

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	jose "github.com/go-jose/go-jose/v3"
)

// ErrSessionNotFound is returned when the session id is unknown or expired
var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "session:"

// SessionData holds the principal stored behind an opaque session id
type SessionData struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStore keeps sessions in Redis as compact JWE objects
// (direct key agreement, A256GCM content encryption).
type SessionStore struct {
	encryptionKey []byte
}

var (
	setSessionValue = Set
	getSessionValue = Get
	delSessionValue = Del
)

// NewSessionStore creates a new session store
func NewSessionStore(encryptionKeyHex string) (*SessionStore, error) {
	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, errors.New("invalid encryption key hex")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}
	return &SessionStore{encryptionKey: key}, nil
}

// CreateSession stores encrypted session data in Redis
func (s *SessionStore) CreateSession(ctx context.Context, sessionID string, data *SessionData, expiration time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	encryptedData, err := s.encrypt(jsonData)
	if err != nil {
		return err
	}

	return setSessionValue(ctx, sessionKeyPrefix+sessionID, encryptedData, expiration)
}

// GetSession retrieves and decrypts session data from Redis
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	encryptedDataStr, err := getSessionValue(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	decryptedData, err := s.decrypt(encryptedDataStr)
	if err != nil {
		return nil, err
	}

	var data SessionData
	if err := json.Unmarshal(decryptedData, &data); err != nil {
		return nil, err
	}

	return &data, nil
}

// DeleteSession removes a session from Redis
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return delSessionValue(ctx, sessionKeyPrefix+sessionID)
}

func (s *SessionStore) encrypt(plaintext []byte) (string, error) {
	encrypter, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.DIRECT, Key: s.encryptionKey},
		(&jose.EncrypterOptions{}).WithContentType("application/json"),
	)
	if err != nil {
		return "", err
	}

	obj, err := encrypter.Encrypt(plaintext)
	if err != nil {
		return "", err
	}
	return obj.CompactSerialize()
}

func (s *SessionStore) decrypt(compact string) ([]byte, error) {
	obj, err := jose.ParseEncrypted(compact)
	if err != nil {
		return nil, err
	}
	return obj.Decrypt(s.encryptionKey)
}
