package storage

import "errors"

// ErrNotLoaded is returned when a provider is used before Init or Load
var ErrNotLoaded = errors.New("storage not loaded")

// Provider is a string key-value store backing the plan.
//
// Providers are not safe for concurrent use by multiple goroutines without
// external synchronization.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error

	// Utils
	GetConfigPath() string
}
