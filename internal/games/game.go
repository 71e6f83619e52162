package games

import (
	"context"
	"io"

	"github.com/jwebster45206/casino/pkg/player"
)

// Game is a mini-game reachable through the casino's "play game" activity.
//
// Play receives the session clock in hours and the shared player record.
// It may mutate rec in place and returns the clock and record as it left
// them; callers are free to ignore the returned clock.
type Game interface {
	Name() string
	Play(ctx context.Context, out io.Writer, clock float64, rec player.Record) (float64, player.Record, error)
}
