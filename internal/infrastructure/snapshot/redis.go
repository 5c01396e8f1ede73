package snapshot

import (
	"context"
	"errors"
	"fmt"

	domainerrors "brixium.backend/internal/domain/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each collection as a plain string value under prefix+key
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	payload, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerrors.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return payload, nil
}

func (r *RedisStore) Save(ctx context.Context, key string, payload []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}
