package state

import (
	"context"
	"io"
)

// KVStore handles key-value persistence of opaque blobs.
type KVStore interface {
	io.Closer
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Migrator handles database schema migrations.
type Migrator interface {
	// Migrate applies all pending schema migrations.
	Migrate() error
}

// Compile-time verification that DB implements all interfaces.
var (
	_ KVStore  = (*DB)(nil)
	_ Migrator = (*DB)(nil)
)
