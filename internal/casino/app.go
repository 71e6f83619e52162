package casino

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/casino/internal/console"
	"github.com/jwebster45206/casino/pkg/storage"
)

// App is the outer day loop.
type App struct {
	store   storage.Store
	console *console.Console
	games   GameLister
	menu    *Menu
	logger  *slog.Logger

	session *Session
}

// NewApp wires the day loop to its collaborators.
func NewApp(store storage.Store, con *console.Console, gl GameLister, logger *slog.Logger) *App {
	return &App{
		store:   store,
		console: con,
		games:   gl,
		menu:    DefaultMenu(),
		logger:  logger,
	}
}

// Session returns the active session, nil before Run has loaded the player.
func (a *App) Session() *Session {
	return a.session
}

// Run loads the player and plays day after day. There is no stopping
// condition besides the player declining to enter (or input ending, or ctx
// being cancelled or expiring); each of those persists the record and
// returns nil.
// Any other error is fatal.
func (a *App) Run(ctx context.Context) error {
	if err := a.store.Ping(ctx); err != nil {
		return fmt.Errorf("failed to reach save backend: %w", err)
	}

	rec, err := storage.Init(ctx, a.store)
	if err != nil {
		return err
	}
	a.session = NewSession(rec, a.store, a.console, a.games, a.logger)
	a.session.Logger.Info("Player loaded", "money", rec.Money(), "days", rec.Days())

	for {
		day := a.session.Player.NextDay()
		a.console.Println()
		a.console.Printf("Day %v\n", day)

		res, err := NewDay(a.menu).Run(ctx, a.session)
		switch {
		case err == nil:
			a.session.Logger.Info("Day ended", "day", day, "clock", res.Clock, "closed", res.Closed, "turns", res.Turns)
		case errors.Is(err, ErrExitRequested), errors.Is(err, console.ErrInputClosed),
			errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			a.session.Logger.Info("Exit requested", "day", day, "reason", err.Error())
			return a.exit(context.WithoutCancel(ctx))
		default:
			return err
		}
	}
}

func (a *App) exit(ctx context.Context) error {
	a.console.Println("Saving player state...")
	if err := a.session.Save(ctx); err != nil {
		return fmt.Errorf("failed to save player state: %w", err)
	}
	a.console.Println()
	a.console.Println("Exiting app...")
	return nil
}
