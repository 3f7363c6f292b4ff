package services

import (
	"sync"
	"time"
)

// KVStore is a process-agnostic key-value store with per-key expiry. The
// auth layer uses it for token revocation; a multi-process deployment can
// back it with an external cache instead of the in-memory implementation.
type KVStore interface {
	Get(key string) (string, bool)
	SetWithTTL(key, value string, ttl time.Duration)
	Delete(key string)
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryKVStore is the single-process implementation: a mutex-guarded map
// with a janitor goroutine evicting expired keys.
type MemoryKVStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	stop    chan struct{}
}

func NewMemoryKVStore() *MemoryKVStore {
	s := &MemoryKVStore{
		entries: make(map[string]memoryEntry),
		stop:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *MemoryKVStore) Get(key string) (string, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.value, true
}

func (s *MemoryKVStore) SetWithTTL(key, value string, ttl time.Duration) {
	s.mu.Lock()
	s.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
}

func (s *MemoryKVStore) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Close stops the janitor goroutine.
func (s *MemoryKVStore) Close() {
	close(s.stop)
}

func (s *MemoryKVStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for key, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
