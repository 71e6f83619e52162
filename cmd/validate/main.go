package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/casino/internal/config"
	"github.com/jwebster45206/casino/internal/games"
	"github.com/jwebster45206/casino/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	paths := os.Args[1:]
	if len(paths) == 0 {
		if cfg.GamesDir == "" {
			fmt.Fprintf(os.Stderr, "Usage: %s <game.json|games_dir>...\n(or set GAMES_DIR)\n", os.Args[0])
			os.Exit(1)
		}
		paths = []string{cfg.GamesDir}
	}

	validator := &GameValidator{
		out:    os.Stdout,
		logger: logger.Setup(cfg, os.Stderr),
	}
	if err := validator.Validate(context.Background(), paths); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Game manifests are valid!")
}

// GameValidator checks game manifests before they are dropped into GAMES_DIR.
type GameValidator struct {
	out    io.Writer
	logger *slog.Logger
	errors []string
}

// Validate checks every path, which may be a manifest file or a games directory.
func (v *GameValidator) Validate(ctx context.Context, paths []string) error {
	v.errors = nil
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			v.addError(fmt.Sprintf("%s: %v", path, err))
			continue
		}
		if info.IsDir() {
			v.validateDir(ctx, path)
		} else {
			v.validateFile(path)
		}
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("%d problem(s):\n%s", len(v.errors), strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *GameValidator) validateFile(filename string) {
	fmt.Fprintf(v.out, "Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		v.addError(fmt.Sprintf("game manifest must have .json extension: %s", baseName))
		return
	}
	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidGameFilename(nameWithoutExt) {
		v.addError(fmt.Sprintf("game manifest filename '%s' must be lowercase snake_case (e.g., high_roller.json, not high-roller.json or HighRoller.json)", baseName))
		return
	}

	g, err := games.NewRegistry("", v.logger).LoadManifest(filename)
	if err != nil {
		v.addError(err.Error())
		return
	}
	fmt.Fprintf(v.out, "  %s\n", describe(g))
}

// validateDir loads the directory the way the casino does, so name clashes
// with built-in games are reported too.
func (v *GameValidator) validateDir(ctx context.Context, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		v.addError(fmt.Sprintf("failed to read games directory %s: %v", dir, err))
		return
	}

	before := len(v.errors)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		v.validateFile(filepath.Join(dir, entry.Name()))
	}
	if len(v.errors) > before {
		return
	}

	registry := games.DefaultRegistry(dir, v.logger)
	found, err := registry.List(ctx)
	if err != nil {
		v.addError(err.Error())
		return
	}
	fmt.Fprintf(v.out, "Games available from %s:\n", registry.Dir())
	for _, name := range games.SortedNames(found) {
		fmt.Fprintf(v.out, "  - %s\n", name)
	}
}

func (v *GameValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func describe(g games.Game) string {
	if c, ok := g.(*games.Chance); ok {
		return fmt.Sprintf("%s: chance, stake %g, win probability %g, %g hours", c.Name(), c.Stake, c.WinProbability, c.Hours)
	}
	return g.Name()
}

var validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidGameFilename(name string) bool {
	return validFilenameRegex.MatchString(name)
}
