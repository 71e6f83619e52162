package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Storage backends accepted by SAVE_BACKEND.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Console modes accepted by CONSOLE_MODE.
const (
	ConsoleLine = "line"
	ConsoleTUI  = "tui"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelRaw string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFile     string `env:"LOG_FILE"`

	SaveBackend string `env:"SAVE_BACKEND" envDefault:"file"`
	SavePath    string `env:"SAVE_PATH"`
	RedisURL    string `env:"REDIS_URL" envDefault:"localhost:6379"`
	SQLitePath  string `env:"SQLITE_PATH"`
	Profile     string `env:"PROFILE" envDefault:"latest"`

	GamesDir    string `env:"GAMES_DIR"`
	ConsoleMode string `env:"CONSOLE_MODE" envDefault:"line"`

	LogLevel slog.Level
}

// Load reads configuration from the environment and fills derived defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	cfg.LogLevel = parseLogLevel(cfg.LogLevelRaw)
	cfg.SaveBackend = strings.ToLower(strings.TrimSpace(cfg.SaveBackend))
	cfg.ConsoleMode = strings.ToLower(strings.TrimSpace(cfg.ConsoleMode))

	if cfg.SavePath == "" {
		cfg.SavePath = filepath.Join(dataDir(), cfg.Profile+".json")
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(dataDir(), "casino.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component can act on.
func (c *Config) Validate() error {
	switch c.SaveBackend {
	case BackendFile, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("unknown SAVE_BACKEND %q (want file, redis or sqlite)", c.SaveBackend)
	}
	switch c.ConsoleMode {
	case ConsoleLine, ConsoleTUI:
	default:
		return fmt.Errorf("unknown CONSOLE_MODE %q (want line or tui)", c.ConsoleMode)
	}
	if strings.TrimSpace(c.Profile) == "" {
		return fmt.Errorf("PROFILE cannot be empty")
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// dataDir is where saves live when no explicit path is configured.
func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "casino-saves")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "casino-saves")
	}
	return "casino-saves"
}
