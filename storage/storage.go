package storage

import "context"

// SnapshotStorage is the durable key-value store a cart snapshot lives in.
// Load returns ok=false when no snapshot exists for the key.
type SnapshotStorage interface {
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	Save(ctx context.Context, key string, data []byte) error
}
