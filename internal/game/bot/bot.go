package bot

import (
	"errors"
	"time"

	"dourado/internal/game/match"
)

// Names are the fixed seat names used for automated opponents in
// singleplayer rooms.
var Names = []string{"Bot 1", "Bot 2", "Bot 3"}

// MoveSource produces the next move token for a seat. Interactive seats
// are fed by the websocket layer; automated seats use AutoSource. Both
// go through the same AwaitAndSubmit path.
type MoveSource interface {
	Next(m *match.Match, seat int) string
}

// AutoSource always plays a random card.
type AutoSource struct{}

func (AutoSource) Next(*match.Match, int) string { return match.AutoToken }

// Run drives one automated seat until the match finishes. It blocks in
// AwaitAndSubmit like any human seat would, so turn ordering is
// identical for both.
func Run(m *match.Match, seat int, src MoveSource, delay time.Duration) {
	m.WaitStart()
	for {
		if delay > 0 {
			time.Sleep(delay)
		}
		_, err := m.AwaitAndSubmit(seat, src.Next(m, seat))
		if errors.Is(err, match.ErrMatchFinished) {
			return
		}
		if err != nil {
			// auto moves only fail once the hand is gone
			return
		}
	}
}
