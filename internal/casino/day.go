package casino

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwebster45206/casino/internal/console"
)

// DayState is a step of the per-day casino visit.
type DayState int

const (
	AwaitingEntryDecision DayState = iota
	Active
	Terminated
)

func (d DayState) String() string {
	switch d {
	case AwaitingEntryDecision:
		return "awaiting_entry_decision"
	case Active:
		return "active"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("DayState(%d)", int(d))
	}
}

// ErrExitRequested is returned by Day.Run when the player declines to enter.
// The caller owns the exit path (persist and stop).
var ErrExitRequested = errors.New("exit requested")

// DayResult summarises a finished visit.
type DayResult struct {
	Clock  float64
	Closed bool // the clock ran out before the player left
	Turns  int
}

// Day runs one casino visit.
type Day struct {
	menu  *Menu
	state DayState
	clock float64
}

// NewDay creates a visit awaiting the entry decision.
func NewDay(menu *Menu) *Day {
	return &Day{menu: menu, state: AwaitingEntryDecision}
}

// State reports where the visit currently is.
func (d *Day) State() DayState {
	return d.state
}

// Run drives the visit to Terminated. It returns ErrExitRequested when the
// player answers "n" at the door, and console.ErrInputClosed when input ends.
func (d *Day) Run(ctx context.Context, s *Session) (DayResult, error) {
	var res DayResult
	for d.state != Terminated {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		switch d.state {
		case AwaitingEntryDecision:
			enter, err := d.askEntry(s)
			if err != nil {
				return res, err
			}
			if !enter {
				return res, ErrExitRequested
			}
			s.Console.Banner("WELCOME TO THE CASINO")
			d.clock = 0
			d.state = Active

		case Active:
			closed, err := d.turn(ctx, s)
			res.Turns++
			if err != nil {
				res.Clock = d.clock
				return res, err
			}
			if closed {
				res.Closed = true
			}
		}
	}

	res.Clock = d.clock
	s.Console.Println()
	s.Console.Println("You have reached the end of the day. Time to sleep. Good night!")
	return res, nil
}

func (d *Day) askEntry(s *Session) (bool, error) {
	s.Console.Println()
	answer, err := s.Console.Choose("A new day has begun. Do you want to enter the casino? (y/n) ",
		[]string{"y", "n"},
		console.ChooseOptions{Invalid: "Invalid input. Please enter 'y' or 'n'."})
	if err != nil {
		return false, err
	}
	return answer == "y", nil
}

// turn resolves and applies one activity. It reports whether the casino
// closed on the player.
func (d *Day) turn(ctx context.Context, s *Session) (bool, error) {
	s.Console.Println()
	s.Console.Printf("Time: %s hours\n", formatHours(d.clock))

	name, err := s.Console.Choose("What do you want to do? ", d.menu.Names(), console.ChooseOptions{
		ShowList: true,
		Invalid:  "Invalid input. Please enter a valid action.",
	})
	if err != nil {
		return false, err
	}
	s.Console.Println()

	activity, _ := d.menu.Lookup(name)
	next, err := activity.Apply(ctx, s, d.clock)
	if err != nil {
		return false, fmt.Errorf("activity %q failed: %w", name, err)
	}
	d.clock = next
	s.Logger.Debug("Activity applied", "activity", name, "clock", d.clock)

	if name == ActionLeave {
		d.state = Terminated
		return false, nil
	}

	if d.clock >= HoursPerDay {
		s.Console.Println()
		s.Console.Println("The casino is closed now.")
		if _, err := Leave(ctx, s, d.clock); err != nil {
			return true, err
		}
		d.state = Terminated
		return true, nil
	}
	return false, nil
}
