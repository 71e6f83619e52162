package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jwebster45206/casino/pkg/player"
	"github.com/jwebster45206/casino/pkg/storage"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const playerStateSchema = `CREATE TABLE IF NOT EXISTS player_state (
	profile TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);`

// SQLiteStore keeps the player record as a JSON column, one row per profile.
type SQLiteStore struct {
	db      *sql.DB
	logger  *slog.Logger
	profile string
}

// Ensure SQLiteStore implements Store interface
var _ storage.Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(ctx context.Context, dbPath, profile string, logger *slog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if _, err := db.ExecContext(ctx, playerStateSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:      db,
		logger:  logger,
		profile: profile,
	}, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (player.Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM player_state WHERE profile = ?`, s.profile).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Debug("No saved player state", "profile", s.profile)
			return nil, nil
		}
		s.logger.Error("Failed to load player state", "profile", s.profile, "error", err)
		return nil, fmt.Errorf("failed to load player state: %w", err)
	}

	rec, err := player.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal player state: %w", err)
	}
	return rec, nil
}

func (s *SQLiteStore) Save(ctx context.Context, rec player.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal player state: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO player_state (profile, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(profile) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.profile, string(data), time.Now().UTC())
	if err != nil {
		s.logger.Error("Failed to save player state", "profile", s.profile, "error", err)
		return fmt.Errorf("failed to save player state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM player_state WHERE profile = ?`, s.profile); err != nil {
		return fmt.Errorf("failed to delete player state: %w", err)
	}
	return nil
}
