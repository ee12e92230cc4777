package match

import (
	"fmt"

	"dourado/internal/game/deck"
	"dourado/internal/game/rules"
)

// TrickOutcome is what a seat gets back from AwaitAndSubmit.
type TrickOutcome struct {
	Played     deck.Card
	TrickDone  bool
	Resolution *rules.Outcome // set when TrickDone
	MatchDone  bool
	Scores     [2]int
}

// AwaitAndSubmit blocks until it is the seat's turn, then validates and
// applies the move. A recoverable parse error returns with the state
// untouched and the seat still on turn. The caller completing a trick
// resolves it before anyone else is woken, so resolution happens exactly
// once.
func (m *Match) AwaitAndSubmit(seat int, token string) (TrickOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seat < 0 || seat >= SeatCount {
		return TrickOutcome{}, ErrBadSeat
	}

	// Re-check on every wakeup: cond waits are allowed to wake spuriously.
	for m.phase == PhaseForming || (m.phase == PhaseInProgress && m.current != seat) {
		m.turn.Wait()
	}
	if m.phase == PhaseFinished {
		return TrickOutcome{}, ErrMatchFinished
	}

	card, err := parseMove(token, m.hands[seat], m.rnd)
	if err != nil {
		return TrickOutcome{}, err
	}

	// Ownership moves from the hand to the trick buffer.
	m.hands[seat] = removeCard(m.hands[seat], card)
	m.trick = append(m.trick, rules.Play{Seat: seat, Card: card})

	out := TrickOutcome{Played: card}

	if !m.trickCompleteLocked() {
		m.advanceTurnLocked()
		out.Scores = m.scores
		m.turn.Broadcast()
		return out, nil
	}

	// Trick complete: this caller resolves it.
	res := rules.Resolve(m.trick, m.trumpSuit, m.seatNamesLocked())
	m.scores[res.Team]++
	m.tricks++
	m.history = append(m.history, res.Summary,
		historyWinLine(res))
	// The winning team collects the trick into its monte.
	for _, p := range m.trick {
		m.montes[res.Team] = append(m.montes[res.Team], p.Card)
	}
	m.trick = m.trick[:0]
	m.current = res.Winner // winner leads the next trick

	out.TrickDone = true
	out.Resolution = &res
	out.Scores = m.scores

	if m.handsEmptyLocked() {
		out.MatchDone = true
		m.endGameLocked()
	} else {
		if len(m.hands[m.current]) == 0 {
			// winner played its last card; the lead passes on
			m.advanceTurnLocked()
		}
		m.turn.Broadcast()
	}
	return out, nil
}

// trickCompleteLocked reports whether every seat that still holds cards
// has played into the current trick.
func (m *Match) trickCompleteLocked() bool {
	for i := 0; i < SeatCount; i++ {
		if len(m.hands[i]) > 0 && !m.playedLocked(i) {
			return false
		}
	}
	return len(m.trick) > 0
}

func (m *Match) playedLocked(seat int) bool {
	for _, p := range m.trick {
		if p.Seat == seat {
			return true
		}
	}
	return false
}

// advanceTurnLocked rotates to the next seat that can still act this
// trick. Seats with empty hands are skipped so a short hand cannot stall
// the rotation.
func (m *Match) advanceTurnLocked() {
	for i := 0; i < SeatCount; i++ {
		next := (m.current + 1 + i) % SeatCount
		if len(m.hands[next]) > 0 && !m.playedLocked(next) {
			m.current = next
			return
		}
	}
}

func (m *Match) handsEmptyLocked() bool {
	for i := 0; i < SeatCount; i++ {
		if len(m.hands[i]) > 0 {
			return false
		}
	}
	return true
}

func historyWinLine(res rules.Outcome) string {
	return fmt.Sprintf("Dupla %d venceu a rodada. Motivo: %s", res.Team+1, res.Reason)
}
