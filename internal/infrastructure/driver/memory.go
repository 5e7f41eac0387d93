package driver

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value    string
	expireAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && !now.Before(e.expireAt)
}

// MemoryKV in-process KeyValueDB, values live as long as the process
type MemoryKV struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ KeyValueDB = &MemoryKV{}

// NewMemoryKV create an empty MemoryKV
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// SetEX implement KeyValueDB
func (m *MemoryKV) SetEX(ctx context.Context, key string, value string, expiration time.Duration) error {
	entry := memoryEntry{value: value}
	if expiration > 0 {
		entry.expireAt = m.now().Add(expiration)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Get implement KeyValueDB
func (m *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || entry.expired(m.now()) {
		return "", ErrKeyNotFound
	}
	return entry.value, nil
}

// Exists implement KeyValueDB
func (m *MemoryKV) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	if err == ErrKeyNotFound {
		return false, nil
	}
	return err == nil, err
}

// Ping implement KeyValueDB
func (m *MemoryKV) Ping(ctx context.Context) error {
	return nil
}

// Close implement KeyValueDB
func (m *MemoryKV) Close() error {
	return nil
}
