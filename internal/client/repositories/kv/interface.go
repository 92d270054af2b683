// Package kv provides the client's key-value stores: a durable one backed
// by SQLite and a session-scoped one that lives only in process memory.
package kv

import "context"

// Store is a string-keyed byte store. Get reports whether the key exists;
// absence is not an error. Delete of a missing key is a no-op.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
