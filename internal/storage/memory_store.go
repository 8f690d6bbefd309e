package storage

import (
	"errors"
	"fmt"
	"sync"
)

// ErrQuotaExceeded is returned when a write would push a MemoryStore past its quota
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// MemoryLocation selects the in-process store in Open
const MemoryLocation = ":memory:"

// MemoryStore is an in-process store. A positive quota caps the total bytes
// of keys plus values, mirroring a browser storage quota.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	quota  int
	loaded bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// WithQuota sets the byte quota; 0 means unlimited
func (s *MemoryStore) WithQuota(bytes int) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quota = bytes
	return s
}

func (s *MemoryStore) Init() error {
	return s.Load()
}

func (s *MemoryStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return "", false, ErrNotLoaded
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	if s.quota > 0 {
		used := 0
		for k, v := range s.values {
			if k != key {
				used += len(k) + len(v)
			}
		}
		if used+len(key)+len(value) > s.quota {
			return fmt.Errorf("set %q: %w", key, ErrQuotaExceeded)
		}
	}
	s.values[key] = value
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return MemoryLocation
}
