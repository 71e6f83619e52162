package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/jwebster45206/casino/pkg/player"
)

// MockStorage is an in-memory Store for testing.
// It keeps a copy of every record passed to Save.
type MockStorage struct {
	mu        sync.RWMutex
	record    player.Record
	saves     []player.Record
	resets    int
	pingError error
	loadError error
	saveError error
}

// Ensure MockStorage implements Store interface
var _ Store = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetLoadError configures the mock to fail on load with the given error
func (m *MockStorage) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadError = err
}

// SetSaveError configures the mock to fail on save with the given error
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// Seed sets the stored record without counting as a save.
func (m *MockStorage) Seed(rec player.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = rec.Clone()
}

// Saves returns a copy of every record saved so far, oldest first.
func (m *MockStorage) Saves() []player.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]player.Record, len(m.saves))
	for i, r := range m.saves {
		out[i] = r.Clone()
	}
	return out
}

// Resets returns how many times Reset was called.
func (m *MockStorage) Resets() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resets
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	return nil
}

// Load mocks loading the record
func (m *MockStorage) Load(ctx context.Context) (player.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loadError != nil {
		return nil, m.loadError
	}
	return m.record.Clone(), nil
}

// Save mocks saving the record
func (m *MockStorage) Save(ctx context.Context, rec player.Record) error {
	if rec == nil {
		return errors.New("record cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.record = rec.Clone()
	m.saves = append(m.saves, rec.Clone())
	return nil
}

// Reset mocks deleting the record
func (m *MockStorage) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = nil
	m.resets++
	return nil
}
