package storage

import (
	"context"
	"fmt"

	"github.com/jwebster45206/casino/pkg/player"
)

// HealthChecker defines basic health check capabilities
type HealthChecker interface {
	// Ping tests the backing store
	Ping(ctx context.Context) error
}

// Closer defines cleanup capabilities
type Closer interface {
	// Close releases the backing store
	Close() error
}

// Store persists the single player record.
// Each save overwrites the whole record; there is no field-level patching.
type Store interface {
	HealthChecker
	Closer

	// Load returns the saved record.
	// Returns nil, nil if nothing has been saved yet.
	Load(ctx context.Context) (player.Record, error)

	// Save overwrites the saved record with rec.
	Save(ctx context.Context, rec player.Record) error

	// Reset deletes the saved record. Deleting a missing record succeeds.
	Reset(ctx context.Context) error
}

// Init loads the saved record, falling back to player.Default when none exists.
func Init(ctx context.Context, s Store) (player.Record, error) {
	rec, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load player state: %w", err)
	}
	if rec == nil {
		return player.Default(), nil
	}
	return rec, nil
}
