package casino

import "context"

// Activity is one of the actions a player can take inside the casino.
// Apply receives the hours elapsed since entering and returns the new
// clock. The player record is shared through the session and may be
// mutated in place.
type Activity interface {
	Apply(ctx context.Context, s *Session, clock float64) (float64, error)
}

// ActivityFunc adapts a plain function to Activity.
type ActivityFunc func(ctx context.Context, s *Session, clock float64) (float64, error)

func (f ActivityFunc) Apply(ctx context.Context, s *Session, clock float64) (float64, error) {
	return f(ctx, s, clock)
}

// Menu keys, in display order.
const (
	ActionLeave    = "leave"
	ActionWait     = "wait"
	ActionViewSelf = "view self"
	ActionGetRich  = "get rich"
	ActionPlayGame = "play game"
)

// entry pairs a menu key with its handler.
type entry struct {
	name     string
	activity Activity
}

// Menu is the fixed set of in-casino actions.
type Menu struct {
	entries []entry
}

// DefaultMenu returns leave, wait, view self, get rich and play game.
func DefaultMenu() *Menu {
	return &Menu{entries: []entry{
		{ActionLeave, ActivityFunc(Leave)},
		{ActionWait, ActivityFunc(Wait)},
		{ActionViewSelf, ActivityFunc(ViewSelf)},
		{ActionGetRich, ActivityFunc(GetRich)},
		{ActionPlayGame, ActivityFunc(PlayGame)},
	}}
}

// Names returns the menu keys in display order.
func (m *Menu) Names() []string {
	names := make([]string, len(m.entries))
	for i, e := range m.entries {
		names[i] = e.name
	}
	return names
}

// Lookup returns the activity registered under name.
func (m *Menu) Lookup(name string) (Activity, bool) {
	for _, e := range m.entries {
		if e.name == name {
			return e.activity, true
		}
	}
	return nil, false
}
