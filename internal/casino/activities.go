package casino

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jwebster45206/casino/internal/console"
	"github.com/jwebster45206/casino/internal/games"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HoursPerDay is the length of a casino visit; the casino closes once the
// clock reaches it.
const HoursPerDay = 24.0

// Leave persists the player record. It is the only activity that saves.
func Leave(ctx context.Context, s *Session, clock float64) (float64, error) {
	s.Console.Println("You left the casino.")
	s.Console.Println("Saving player state...")
	if err := s.Save(ctx); err != nil {
		return clock, fmt.Errorf("failed to save player state: %w", err)
	}
	return clock, nil
}

// Wait advances the clock by a number of hours the player enters.
// Anything that is not a number in [0, HoursPerDay-clock] is asked again.
func Wait(ctx context.Context, s *Session, clock float64) (float64, error) {
	remaining := HoursPerDay - clock
	for {
		answer, err := s.Console.Ask("How many hours do you want to wait? ")
		if err != nil {
			return clock, err
		}

		hours, ok := parseHours(answer, remaining)
		if ok {
			s.Console.Printf("You waited for %s hours.\n", formatHours(hours))
			return clock + hours, nil
		}
		s.Console.Warn(fmt.Sprintf("Invalid input. Please enter a number between 0 and %s.", formatHours(remaining)))
	}
}

// ViewSelf prints every field of the player record. It changes nothing.
func ViewSelf(ctx context.Context, s *Session, clock float64) (float64, error) {
	s.Console.Println("Player overview:")
	for _, key := range s.Player.Fields() {
		s.Console.Printf("\t%s: %v\n", capitalize(key), s.Player[key])
	}
	return clock, nil
}

// GetRich adds exactly one to the player's money.
func GetRich(ctx context.Context, s *Session, clock float64) (float64, error) {
	s.Console.Notice("You got rich!")
	s.Player.AddMoney(1)
	return clock, nil
}

// PlayGame lets the player pick a mini-game and plays it.
//
// The clock returned by the game is not applied: time spent in
// a mini-game does not advance the session.
func PlayGame(ctx context.Context, s *Session, clock float64) (float64, error) {
	available, err := s.Games.List(ctx)
	if err != nil {
		return clock, fmt.Errorf("failed to list games: %w", err)
	}
	if len(available) == 0 {
		s.Console.Println("No games available.")
		return clock, nil
	}

	names := games.SortedNames(available)
	s.Console.Println("Choose a game:")
	s.Console.List(names)

	choice, err := s.Console.Choose("Enter your choice: ", names, console.ChooseOptions{
		Invalid: "Invalid input. Please enter the name of a game.",
	})
	if err != nil {
		return clock, err
	}

	s.Console.Println()
	s.Console.Println("Playing " + choice)

	gameClock, rec, err := available[choice].Play(ctx, s.Console.Writer(), clock, s.Player)
	if err != nil {
		return clock, fmt.Errorf("failed to play %s: %w", choice, err)
	}
	if rec != nil {
		s.Player = rec
	}
	s.Logger.Debug("Mini-game finished", "game", choice, "discarded_hours", gameClock-clock)

	return clock, nil
}

// capitalize upper-cases the first letter of s and lower-cases the rest,
// so "high score" reads "High score".
func capitalize(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Upper(language.English).String(s[:size]) + cases.Lower(language.English).String(s[size:])
}

func parseHours(answer string, remaining float64) (float64, bool) {
	h, err := strconv.ParseFloat(answer, 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, false
	}
	if h < 0 || h > remaining {
		return 0, false
	}
	return h + 0, true // -0 becomes 0
}

// formatHours keeps a trailing ".0" on whole numbers (5 -> "5.0").
func formatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
