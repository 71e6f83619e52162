package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jwebster45206/casino/internal/config"
	"github.com/jwebster45206/casino/pkg/player"
	"github.com/jwebster45206/casino/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	rs, err := NewRedisStore("redis://"+mr.Addr(), "test", testLogger())
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create redis store: %v", err)
	}
	return rs, mr
}

// backends returns a fresh instance of every Store implementation.
func backends(t *testing.T) map[string]storage.Store {
	t.Helper()
	dir := t.TempDir()

	rs, mr := setupTestRedis(t)
	t.Cleanup(mr.Close)
	t.Cleanup(func() { _ = rs.Close() })

	ss, err := NewSQLiteStore(context.Background(), filepath.Join(dir, "db", "casino.db"), "test", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	return map[string]storage.Store{
		"file":   NewFileStore(filepath.Join(dir, "saves", "latest.json"), testLogger()),
		"redis":  rs,
		"sqlite": ss,
		"mock":   storage.NewMockStorage(),
	}
}

func TestStores_LoadMissing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			rec, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.Nil(t, rec)
		})
	}
}

func TestStores_RoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			rec := player.Record{
				"money":    float64(-3.5),
				"days":     float64(12),
				"nickname": "high roller",
				"vip":      true,
				"sponsor":  nil,
				"id":       json.Number("9007199254740993"),
			}

			require.NoError(t, s.Save(ctx, rec))
			loaded, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, rec, loaded)
		})
	}
}

func TestStores_SaveOverwritesWholeRecord(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, player.Record{"money": 1.0, "days": 1.0, "stale": "x"}))
			require.NoError(t, s.Save(ctx, player.Record{"money": 2.0, "days": 1.0}))

			loaded, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, player.Record{"money": 2.0, "days": 1.0}, loaded)
		})
	}
}

func TestStores_ResetIsIdempotent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Reset(ctx), "reset before any save")
			require.NoError(t, s.Save(ctx, player.Default()))
			require.NoError(t, s.Reset(ctx))
			require.NoError(t, s.Reset(ctx))

			loaded, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Nil(t, loaded)
		})
	}
}

func TestStores_Ping(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, s.Ping(context.Background()))
		})
	}
}

func TestFileStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "latest.json")
	fs := NewFileStore(path, testLogger())

	require.NoError(t, fs.Save(context.Background(), player.Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"money":0,"days":0}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_MalformedData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path, testLogger()).Load(context.Background())
	assert.Error(t, err)
}

func TestFileStore_LargeIntegersKeepTheirDigits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"days":3,"id":9007199254740993,"money":2}`), 0o644))
	fs := NewFileStore(path, testLogger())
	ctx := context.Background()

	rec, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, rec.Money())
	assert.Equal(t, 3.0, rec.Days())

	rec.NextDay()
	require.NoError(t, fs.Save(ctx, rec))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":9007199254740993`)
	assert.Contains(t, string(data), `"days":4`)
}

func TestFileStore_NullTreatedAsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

	rec, err := NewFileStore(path, testLogger()).Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRedisStore_KeyPerProfile(t *testing.T) {
	rs, mr := setupTestRedis(t)
	defer mr.Close()
	defer rs.Close()

	require.NoError(t, rs.Save(context.Background(), player.Default()))

	raw, err := mr.Get("casino:player:test")
	require.NoError(t, err)
	assert.JSONEq(t, `{"money":0,"days":0}`, raw)
	assert.Equal(t, "casino:player:test", rs.Key())
}

func TestRedisStore_MalformedData(t *testing.T) {
	rs, mr := setupTestRedis(t)
	defer mr.Close()
	defer rs.Close()

	require.NoError(t, mr.Set(rs.Key(), "[1,2"))
	_, err := rs.Load(context.Background())
	assert.Error(t, err)
}

func TestRedisStore_WaitForConnection(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		rs, mr := setupTestRedis(t)
		defer mr.Close()
		defer rs.Close()

		assert.NoError(t, rs.WaitForConnection(context.Background(), 3, 10*time.Millisecond))
	})

	t.Run("connection timeout", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		addr := mr.Addr()
		mr.Close()

		rs, err := NewRedisStore(addr, "test", testLogger())
		require.NoError(t, err)
		defer rs.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		assert.Error(t, rs.WaitForConnection(ctx, 30, 2*time.Second))
	})
}

func TestSQLiteStore_ProfilesAreIndependent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "casino.db")

	a, err := NewSQLiteStore(ctx, path, "alice", testLogger())
	require.NoError(t, err)
	defer a.Close()
	b, err := NewSQLiteStore(ctx, path, "bob", testLogger())
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Save(ctx, player.Record{"money": 5.0}))

	rec, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec)

	rec, err = a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5.0, rec.Money())
}

func TestNew_SelectsBackend(t *testing.T) {
	dir := t.TempDir()
	mr := miniredis.RunT(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.Config
		want    any
		wantErr bool
	}{
		{name: "file", cfg: config.Config{SaveBackend: config.BackendFile, SavePath: filepath.Join(dir, "s.json")}, want: &FileStore{}},
		{name: "redis", cfg: config.Config{SaveBackend: config.BackendRedis, RedisURL: mr.Addr(), Profile: "p"}, want: &RedisStore{}},
		{name: "sqlite", cfg: config.Config{SaveBackend: config.BackendSQLite, SQLitePath: filepath.Join(dir, "c.db"), Profile: "p"}, want: &SQLiteStore{}},
		{name: "unknown", cfg: config.Config{SaveBackend: "tape"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(ctx, &tt.cfg, testLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tt.want, s)
			if fs, ok := s.(*FileStore); ok {
				assert.Equal(t, tt.cfg.SavePath, fs.Path())
			}
		})
	}
}
