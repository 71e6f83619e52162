package games

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrInvalidManifest marks a games directory entry that cannot be turned into a Game.
	ErrInvalidManifest = errors.New("invalid game manifest")
	// ErrDuplicateGame is returned when two games share a name.
	ErrDuplicateGame = errors.New("duplicate game name")
	// ErrUnknownGame is returned by Get for names that are not registered.
	ErrUnknownGame = errors.New("unknown game")
)

// Factory builds a Game from a manifest of its kind.
type Factory func(m Manifest) (Game, error)

// Manifest describes a configured game variant in the games directory.
type Manifest struct {
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	Stake          *float64 `json:"stake,omitempty"`
	WinProbability *float64 `json:"win_probability,omitempty"`
	Hours          *float64 `json:"hours,omitempty"`
}

// Registry maps names to mini-games.
//
// Built-in games are registered explicitly. When a directory is set, every
// *.json manifest in it is discovered again on each List call, so new files
// are picked up without a restart. A bad manifest fails the whole listing.
type Registry struct {
	builtins  map[string]Game
	factories map[string]Factory
	dir       string
	logger    *slog.Logger
}

// NewRegistry creates a registry that also discovers manifests under dir.
// An empty dir disables discovery.
func NewRegistry(dir string, logger *slog.Logger) *Registry {
	r := &Registry{
		builtins:  make(map[string]Game),
		factories: make(map[string]Factory),
		dir:       dir,
		logger:    logger,
	}
	r.RegisterKind(ChanceName, chanceFactory)
	return r
}

// DefaultRegistry registers the built-in games.
func DefaultRegistry(dir string, logger *slog.Logger) *Registry {
	r := NewRegistry(dir, logger)
	if err := r.Register(NewChance()); err != nil {
		panic(err) // Built-in names are static
	}
	return r
}

// Register adds a built-in game. Names are matched case-insensitively.
func (r *Registry) Register(g Game) error {
	if g == nil {
		return fmt.Errorf("%w: nil game", ErrInvalidManifest)
	}
	name := normalizeName(g.Name())
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidManifest)
	}
	if _, exists := r.builtins[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGame, name)
	}
	r.builtins[name] = g
	return nil
}

// RegisterKind adds a manifest kind.
func (r *Registry) RegisterKind(kind string, f Factory) {
	r.factories[normalizeName(kind)] = f
}

// Dir returns the discovery directory, empty when discovery is off.
func (r *Registry) Dir() string {
	return r.dir
}

// List returns every available game keyed by lower-cased name.
func (r *Registry) List(ctx context.Context) (map[string]Game, error) {
	out := make(map[string]Game, len(r.builtins))
	for name, g := range r.builtins {
		out[name] = g
	}

	discovered, err := r.discover(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range discovered {
		name := normalizeName(d.game.Name())
		if _, exists := out[name]; exists {
			return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicateGame, name, d.path)
		}
		out[name] = d.game
	}
	return out, nil
}

// Names returns the sorted names of every available game.
func (r *Registry) Names(ctx context.Context) ([]string, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return SortedNames(all), nil
}

// Get looks up a single game by name.
func (r *Registry) Get(ctx context.Context, name string) (Game, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	g, ok := all[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, name)
	}
	return g, nil
}

// SortedNames returns the keys of games in sorted order.
func SortedNames(games map[string]Game) []string {
	names := make([]string, 0, len(games))
	for name := range games {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type discoveredGame struct {
	path string
	game Game
}

func (r *Registry) discover(ctx context.Context) ([]discoveredGame, error) {
	if r.dir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("Games directory not found", "dir", r.dir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read games directory: %w", err)
	}

	var found []discoveredGame
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(r.dir, entry.Name())
		g, err := r.LoadManifest(path)
		if err != nil {
			r.logger.Error("Failed to load game manifest", "path", path, "error", err)
			return nil, err
		}
		found = append(found, discoveredGame{path: path, game: g})
	}
	return found, nil
}

// LoadManifest reads and validates a single manifest file.
func (r *Registry) LoadManifest(path string) (Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game manifest %s: %w", path, err)
	}

	var m Manifest
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, path, err)
	}

	if m.Name == "" {
		// The file name doubles as the game name.
		m.Name = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	m.Name = normalizeName(m.Name)
	if m.Name == "" {
		return nil, fmt.Errorf("%w: %s: empty name", ErrInvalidManifest, path)
	}

	factory, ok := r.factories[normalizeName(m.Kind)]
	if !ok {
		return nil, fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidManifest, path, m.Kind)
	}
	g, err := factory(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, path, err)
	}
	return g, nil
}

func chanceFactory(m Manifest) (Game, error) {
	c := NewChance().WithName(m.Name)
	if m.Stake != nil {
		if *m.Stake <= 0 {
			return nil, fmt.Errorf("stake must be positive, got %g", *m.Stake)
		}
		c.Stake = *m.Stake
	}
	if m.WinProbability != nil {
		if *m.WinProbability < 0 || *m.WinProbability > 1 {
			return nil, fmt.Errorf("win_probability must be within [0, 1], got %g", *m.WinProbability)
		}
		c.WinProbability = *m.WinProbability
	}
	if m.Hours != nil {
		if *m.Hours < 0 {
			return nil, fmt.Errorf("hours cannot be negative, got %g", *m.Hours)
		}
		c.Hours = *m.Hours
	}
	return c, nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
