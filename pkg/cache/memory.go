package cache

import (
	"sync"
	"time"
)

// Memory is an in-process Cache with per-entry expiry. Safe for concurrent
// use; expired entries are dropped lazily on lookup.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	// now is replaceable for tests.
	now func() time.Time
}

type memoryEntry struct {
	body    []byte
	expires time.Time
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the stored body for key if the entry is still fresh.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().After(entry.expires) {
		delete(m.entries, key)
		return nil, false
	}
	return entry.body, true
}

// Set stores body under key until the TTL elapses.
func (m *Memory) Set(key string, body []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		body:    body,
		expires: m.now().Add(ttl),
	}
}

// Len returns the number of entries currently held, including entries that
// have expired but not yet been dropped.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
