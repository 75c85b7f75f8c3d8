package storage

import (
	"context"
	"sync"

	"videobrowse-service/errs"
)

// Memory is an in-process Storage. A positive quota bounds the total size of
// keys and values in bytes; writes past it fail with errs.ErrQuotaExceeded.
type Memory struct {
	mu    sync.RWMutex
	data  map[string]string
	size  int
	quota int
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// NewMemoryWithQuota is NewMemory with a byte quota.
func NewMemoryWithQuota(quota int) *Memory {
	m := NewMemory()
	m.quota = quota
	return m
}

func (m *Memory) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.size + len(key) + len(value)
	if old, ok := m.data[key]; ok {
		next -= len(key) + len(old)
	}
	if m.quota > 0 && next > m.quota {
		return errs.ErrQuotaExceeded
	}
	m.data[key] = value
	m.size = next
	return nil
}

func (m *Memory) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.data[key]; ok {
		m.size -= len(key) + len(old)
		delete(m.data, key)
	}
	return nil
}

// Len reports the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
