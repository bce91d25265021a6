package storage

import (
	"context"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/mitraa/internal/errors"
)

// ErrKeyNotFound is returned when a key is not found in the store.
var ErrKeyNotFound = errors.ErrKeyNotFound

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// Store is a durable string-keyed byte store. Values are opaque to the
// store; the repository layer owns their encoding.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// ListKeys returns every key starting with prefix.
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	// Close releases the underlying connection.
	Close() error
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*RedisStore)(nil)
)
