package repositories

import "context"

// SnapshotStore mirrors whole collections as JSON documents under a key.
// Load returns errors.ErrSnapshotNotFound when nothing was stored yet.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}
