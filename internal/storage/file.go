package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jwebster45206/casino/pkg/player"
	"github.com/jwebster45206/casino/pkg/storage"
)

// FileStore keeps the player record as a single JSON object on disk.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// Ensure FileStore implements Store interface
var _ storage.Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the JSON file at path.
// The file and its directory are created on first save.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Path returns the save file location.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Ping(ctx context.Context) error {
	_, err := os.Stat(filepath.Dir(f.path))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("save directory unavailable: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}

func (f *FileStore) Load(ctx context.Context) (player.Record, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.logger.Debug("No saved player state", "path", f.path)
			return nil, nil
		}
		f.logger.Error("Failed to read save file", "path", f.path, "error", err)
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	rec, err := player.Decode(data)
	if err != nil {
		f.logger.Error("Failed to unmarshal save file", "path", f.path, "error", err)
		return nil, fmt.Errorf("failed to unmarshal save file %s: %w", f.path, err)
	}
	if rec == nil {
		// A literal "null" in the file; treat it like no save.
		return nil, nil
	}
	return rec, nil
}

// Save writes the record to a temp file beside the target and renames it
// into place, so an interrupted save leaves the previous file intact.
func (f *FileStore) Save(ctx context.Context, rec player.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal player state: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp save file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName) // No-op after a successful rename
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close save file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		f.logger.Error("Failed to replace save file", "path", f.path, "error", err)
		return fmt.Errorf("failed to replace save file: %w", err)
	}

	f.logger.Debug("Player state saved", "path", f.path, "bytes", len(data))
	return nil
}

func (f *FileStore) Reset(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete save file: %w", err)
	}
	f.logger.Info("Player state reset", "path", f.path)
	return nil
}
