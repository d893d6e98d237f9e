package storage

import (
	"context"
	"errors"
)

// ErrNotLoaded is returned when a backend is used before Init or Load.
var ErrNotLoaded = errors.New("storage not loaded")

// KV is the host key-value namespace every entity is persisted in.
// Values are opaque strings; callers own the encoding.
type KV interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the value at key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete is a no-op for keys that do not exist.
	Delete(ctx context.Context, key string) error
	// Keys lists every key that starts with prefix, sorted ascending.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Describer is implemented by backends that can name where their data lives.
type Describer interface {
	Describe() string
}

// Pinger is implemented by backends with a remote connection to check.
type Pinger interface {
	Ping(ctx context.Context) error
}
