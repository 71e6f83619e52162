package games

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/jwebster45206/casino/pkg/player"
)

// Defaults for the built-in coin flip.
const (
	ChanceName            = "chance"
	DefaultStake          = 1.0
	DefaultWinProbability = 0.5
	DefaultHours          = 1.0
)

// Chance is a coin flip: win or lose Stake with probability WinProbability.
type Chance struct {
	name           string
	Stake          float64
	WinProbability float64
	Hours          float64

	rng *rand.Rand
}

// Ensure Chance implements Game interface
var _ Game = (*Chance)(nil)

// NewChance creates the default coin flip using a randomly seeded source.
func NewChance() *Chance {
	return &Chance{
		name:           ChanceName,
		Stake:          DefaultStake,
		WinProbability: DefaultWinProbability,
		Hours:          DefaultHours,
		rng:            rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithName returns the game registered under a different name.
func (c *Chance) WithName(name string) *Chance {
	c.name = name
	return c
}

// WithRand replaces the random source, mainly for deterministic tests.
func (c *Chance) WithRand(r *rand.Rand) *Chance {
	c.rng = r
	return c
}

func (c *Chance) Name() string {
	return c.name
}

func (c *Chance) Play(ctx context.Context, out io.Writer, clock float64, rec player.Record) (float64, player.Record, error) {
	if c.rng.Float64() < c.WinProbability {
		rec.AddMoney(c.Stake)
		_, _ = fmt.Fprintln(out, c.message("won"))
	} else {
		rec.AddMoney(-c.Stake)
		_, _ = fmt.Fprintln(out, c.message("lost"))
	}
	return clock + c.Hours, rec, nil
}

func (c *Chance) message(verb string) string {
	if c.Stake == 1 {
		return fmt.Sprintf("You %s a coin!", verb)
	}
	return fmt.Sprintf("You %s %g coins!", verb, c.Stake)
}
