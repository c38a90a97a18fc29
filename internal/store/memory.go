package store

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"
)

// MemoryKV is an in-memory KV for tests and ephemeral sessions.
// Errors and delays can be injected per key.
type MemoryKV struct {
	mu     sync.RWMutex
	data   map[string][]byte
	writes []Write
	closed bool

	// Error and delay injection for testing
	getErr   map[string]error
	setErr   map[string]error
	setDelay map[string]time.Duration
}

// Write records one successful Set call.
type Write struct {
	Key   string
	Value string
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		data:     make(map[string][]byte),
		getErr:   make(map[string]error),
		setErr:   make(map[string]error),
		setDelay: make(map[string]time.Duration),
	}
}

// Get implements KV.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.getErr[key]; err != nil {
		return nil, false, err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

// Set implements KV.
func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	m.mu.RLock()
	delay := m.setDelay[key]
	err := m.setErr[key]
	m.mu.RUnlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = slices.Clone(value)
	m.writes = append(m.writes, Write{Key: key, Value: string(value)})
	return nil
}

// Close implements KV.
func (m *MemoryKV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// FailGet makes Get for key return err. A nil err clears the failure.
func (m *MemoryKV) FailGet(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr[key] = err
}

// FailSet makes Set for key return err. A nil err clears the failure.
func (m *MemoryKV) FailSet(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr[key] = err
}

// DelaySet makes Set for key wait d before applying, honoring ctx cancellation.
func (m *MemoryKV) DelaySet(key string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setDelay[key] = d
}

// Put seeds a raw value without recording a write.
func (m *MemoryKV) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = []byte(value)
}

// Value returns the raw stored value for key.
func (m *MemoryKV) Value(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return string(v), ok
}

// Writes returns every successful Set in the order it was applied.
func (m *MemoryKV) Writes() []Write {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.writes)
}

// Keys returns the stored keys, sorted.
func (m *MemoryKV) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.data))
}

// Closed reports whether Close was called.
func (m *MemoryKV) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}
