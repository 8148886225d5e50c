package storage

import "errors"

var ErrNotLoaded = errors.New("storage not loaded")

// Provider persists raw JSON values under string keys.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// SetMany writes every entry or none of them.
	SetMany(entries map[string][]byte) error
	Remove(key string) error
	Keys() ([]string, error)
	Clear() error

	// Utils
	GetConfigPath() string
}
