package games

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/casino/pkg/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeManifest(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestChance_Play(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		stake       float64
		wantMoney   float64
		wantMsg     string
	}{
		{name: "always wins", probability: 1, stake: 1, wantMoney: 1, wantMsg: "You won a coin!"},
		{name: "always loses", probability: 0, stake: 1, wantMoney: -1, wantMsg: "You lost a coin!"},
		{name: "bigger stake", probability: 1, stake: 5, wantMoney: 5, wantMsg: "You won 5 coins!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewChance()
			c.WinProbability = tt.probability
			c.Stake = tt.stake

			rec := player.Default()
			clock, got, err := c.Play(context.Background(), &out, 3, rec)
			require.NoError(t, err)

			assert.Equal(t, 4.0, clock, "chance reports one hour spent")
			assert.Equal(t, tt.wantMoney, got.Money())
			assert.Equal(t, tt.wantMoney, rec.Money(), "record is mutated in place")
			assert.Contains(t, out.String(), tt.wantMsg)
		})
	}
}

func TestChance_SeededIsDeterministicAndMovesByOne(t *testing.T) {
	a := NewChance().WithRand(rand.New(rand.NewPCG(1, 2)))
	b := NewChance().WithRand(rand.New(rand.NewPCG(1, 2)))
	ra, rb := player.Default(), player.Default()

	var out bytes.Buffer
	for i := 0; i < 50; i++ {
		before := ra.Money()
		_, _, err := a.Play(context.Background(), &out, 0, ra)
		require.NoError(t, err)
		_, _, err = b.Play(context.Background(), &out, 0, rb)
		require.NoError(t, err)

		delta := ra.Money() - before
		assert.True(t, delta == 1 || delta == -1, "each flip moves money by exactly one, got %v", delta)
	}
	assert.Equal(t, ra, rb)
}

func TestRegistry_Builtins(t *testing.T) {
	r := DefaultRegistry("", testLogger())

	names, err := r.Names(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"chance"}, names)

	g, err := r.Get(context.Background(), "CHANCE")
	require.NoError(t, err)
	assert.Equal(t, "chance", g.Name())

	_, err = r.Get(context.Background(), "roulette")
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestRegistry_RegisterRejects(t *testing.T) {
	r := DefaultRegistry("", testLogger())

	assert.ErrorIs(t, r.Register(NewChance()), ErrDuplicateGame)
	assert.ErrorIs(t, r.Register(NewChance().WithName("  ")), ErrInvalidManifest)
	assert.ErrorIs(t, r.Register(nil), ErrInvalidManifest)
}

func TestRegistry_DiscoversManifestsOnEveryCall(t *testing.T) {
	dir := t.TempDir()
	r := DefaultRegistry(dir, testLogger())
	ctx := context.Background()

	names, err := r.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"chance"}, names)

	writeManifest(t, dir, "high_roller.json", `{"name": "High Roller", "kind": "chance", "stake": 10, "win_probability": 0.4}`)
	writeManifest(t, dir, "double.json", `{"kind": "chance", "stake": 2}`)
	writeManifest(t, dir, "notes.txt", `not a manifest`)

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"chance", "double", "high roller"}, SortedNames(all))

	hr, ok := all["high roller"].(*Chance)
	require.True(t, ok)
	assert.Equal(t, 10.0, hr.Stake)
	assert.Equal(t, 0.4, hr.WinProbability)
	assert.Equal(t, DefaultHours, hr.Hours)
}

func TestRegistry_BadManifestFailsFast(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{name: "bad json", body: `{"kind": `, want: ErrInvalidManifest},
		{name: "unknown kind", body: `{"name": "slots", "kind": "slots"}`, want: ErrInvalidManifest},
		{name: "unknown field", body: `{"name": "x", "kind": "chance", "jackpot": 1}`, want: ErrInvalidManifest},
		{name: "probability out of range", body: `{"name": "x", "kind": "chance", "win_probability": 1.5}`, want: ErrInvalidManifest},
		{name: "non-positive stake", body: `{"name": "x", "kind": "chance", "stake": 0}`, want: ErrInvalidManifest},
		{name: "negative hours", body: `{"name": "x", "kind": "chance", "hours": -1}`, want: ErrInvalidManifest},
		{name: "shadows builtin", body: `{"name": "Chance", "kind": "chance"}`, want: ErrDuplicateGame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, "game.json", tt.body)

			_, err := DefaultRegistry(dir, testLogger()).List(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "game.json")
		})
	}
}

func TestRegistry_MissingDirectoryIsEmpty(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "nope"), testLogger())

	all, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

type flatGame struct {
	name string
}

func (g flatGame) Name() string { return g.name }

func (g flatGame) Play(ctx context.Context, out io.Writer, clock float64, rec player.Record) (float64, player.Record, error) {
	return clock, rec, nil
}

func TestRegistry_RegisterKind(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "slots.json", `{"kind": "Flat"}`)

	r := DefaultRegistry(dir, testLogger())
	_, err := r.List(context.Background())
	require.ErrorIs(t, err, ErrInvalidManifest, "kind is unknown until registered")

	r.RegisterKind("flat", func(m Manifest) (Game, error) {
		return flatGame{name: m.Name}, nil
	})
	found, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"chance", "slots"}, SortedNames(found))
	assert.Equal(t, dir, r.Dir())
}
