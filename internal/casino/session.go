package casino

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwebster45206/casino/internal/console"
	"github.com/jwebster45206/casino/internal/games"
	"github.com/jwebster45206/casino/internal/logger"
	"github.com/jwebster45206/casino/pkg/player"
	"github.com/jwebster45206/casino/pkg/storage"
)

// GameLister provides the mini-games offered by "play game".
type GameLister interface {
	List(ctx context.Context) (map[string]games.Game, error)
}

// Session is everything an activity may touch during a run: the shared
// player record and the collaborators that read or persist it.
type Session struct {
	ID      uuid.UUID
	Player  player.Record
	Store   storage.Store
	Console *console.Console
	Games   GameLister
	Logger  *slog.Logger
}

// NewSession binds the loaded player record to its collaborators.
func NewSession(rec player.Record, store storage.Store, con *console.Console, gl GameLister, log *slog.Logger) *Session {
	id := uuid.New()
	return &Session{
		ID:      id,
		Player:  rec,
		Store:   store,
		Console: con,
		Games:   gl,
		Logger:  logger.WithSessionID(log, id),
	}
}

// Save persists the full player record.
func (s *Session) Save(ctx context.Context) error {
	if err := s.Store.Save(ctx, s.Player); err != nil {
		logger.WithError(s.Logger, err).Error("Failed to save player state")
		return err
	}
	s.Logger.Info("Player state saved", "money", s.Player.Money(), "days", s.Player.Days())
	return nil
}
