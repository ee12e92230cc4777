package match

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dourado/internal/game/deck"
)

func newStarted(t *testing.T, variant deck.Variant) *Match {
	t.Helper()
	m := New("room-1", variant, false)
	for _, n := range []string{"ana", "bia", "caio", "duda"} {
		_, err := m.AddSeat(n, false)
		assert.NoError(t, err)
	}
	assert.NoError(t, m.Start(deck.NewFactory(time.Now().UnixNano())))
	return m
}

// collectCards gathers every card currently owned somewhere in the
// match: hands, trick buffer, the team montes, undealt stock and the
// trump card.
func collectCards(m *Match) []deck.Card {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []deck.Card
	for i := 0; i < SeatCount; i++ {
		all = append(all, m.hands[i]...)
	}
	for _, p := range m.trick {
		all = append(all, p.Card)
	}
	for _, pile := range m.montes {
		all = append(all, pile...)
	}
	all = append(all, m.stock...)
	all = append(all, m.trumpCard)
	return all
}

func assertPartition(t *testing.T, m *Match, total int) {
	t.Helper()
	all := collectCards(m)
	assert.Len(t, all, total)
	seen := make(map[deck.Card]bool)
	for _, c := range all {
		assert.False(t, seen[c], "card %s appears twice", c)
		seen[c] = true
	}
}

func TestStartDealsDisjointHands(t *testing.T) {
	m := newStarted(t, deck.VariantReduced)

	assert.Equal(t, PhaseInProgress, m.Phase())
	for i := 0; i < SeatCount; i++ {
		hand, err := m.Hand(i)
		assert.NoError(t, err)
		assert.Len(t, hand, 3)
	}
	// hands + trick + stock + trump always partition the deck
	assertPartition(t, m, 20)
}

func TestStartRequiresFourSeats(t *testing.T) {
	m := New("r", deck.VariantReduced, false)
	_, _ = m.AddSeat("solo", false)
	err := m.Start(deck.NewFactory(1))
	assert.Error(t, err)
	assert.Equal(t, PhaseForming, m.Phase())
}

func TestAddSeatAfterStart(t *testing.T) {
	m := newStarted(t, deck.VariantReduced)
	_, err := m.AddSeat("late", false)
	assert.ErrorIs(t, err, ErrMatchStarted)
}

// A full reduced match: four seats each drive their own goroutine, the
// match runs exactly three tricks and the team scores sum to three.
func TestFullMatchReduced(t *testing.T) {
	m := newStarted(t, deck.VariantReduced)

	var plays int64
	var wg sync.WaitGroup
	for seat := 0; seat < SeatCount; seat++ {
		wg.Add(1)
		go func(seat int) {
			defer wg.Done()
			for {
				_, err := m.AwaitAndSubmit(seat, AutoToken)
				if err == ErrMatchFinished {
					return
				}
				assert.NoError(t, err)
				atomic.AddInt64(&plays, 1)
			}
		}(seat)
	}
	wg.Wait()

	assert.True(t, m.Finished())
	scores := m.Scores()
	assert.Equal(t, 3, scores[0]+scores[1], "three tricks, three points")
	assert.EqualValues(t, 12, plays, "every seat plays once per trick")
	assertPartition(t, m, 20)
}

// Each resolved trick lands whole in the winning team's monte, so the
// piles grow by four per trick and their sizes match the scores.
func TestTrickCardsGoToWinnersMonte(t *testing.T) {
	m := newStarted(t, deck.VariantReduced)

	for trick := 1; trick <= 3; trick++ {
		for i := 0; i < SeatCount; i++ {
			seat := m.CurrentTurn()
			out, err := m.AwaitAndSubmit(seat, AutoToken)
			assert.NoError(t, err)
			if out.TrickDone {
				montes := m.Montes()
				assert.Len(t, montes[out.Resolution.Team], 4*out.Scores[out.Resolution.Team])
				assert.Equal(t, 4*trick, len(montes[0])+len(montes[1]))
			}
		}
		assertPartition(t, m, 20)
	}

	montes := m.Montes()
	scores := m.Scores()
	assert.Len(t, montes[0], 4*scores[0])
	assert.Len(t, montes[1], 4*scores[1])
}

// Turn order within a trick is a strict rotation starting from the
// previous trick's winner; no seat acts twice before the others have
// acted.
func TestRotationOrder(t *testing.T) {
	m := newStarted(t, deck.VariantReduced)

	for trick := 0; trick < 3; trick++ {
		leader := m.CurrentTurn()
		for i := 0; i < SeatCount; i++ {
			seat := m.CurrentTurn()
			assert.Equal(t, (leader+i)%SeatCount, seat, "trick %d play %d", trick, i)
			_, err := m.AwaitAndSubmit(seat, AutoToken)
			assert.NoError(t, err)
		}
	}
	assert.True(t, m.Finished())
}

// The winner of a trick leads the next one, and seats rotate from the
// leader.
func TestWinnerLeadsNextTrick(t *testing.T) {
	m := newStarted(t, deck.VariantReduced)

	var winner int
	for i := 0; i < SeatCount; i++ {
		seat := m.CurrentTurn()
		out, err := m.AwaitAndSubmit(seat, AutoToken)
		assert.NoError(t, err)
		if out.TrickDone {
			winner = out.Resolution.Winner
		}
	}
	assert.Equal(t, winner, m.CurrentTurn())
}

// Invalid tokens never touch the hand, the scores or the turn pointer.
func TestInvalidMoveLeavesStateUntouched(t *testing.T) {
	m := newStarted(t, deck.VariantReduced)
	seat := m.CurrentTurn()

	handBefore, _ := m.Hand(seat)
	scoresBefore := m.Scores()

	for _, token := range []string{"", "Q", "QX", "ZC", "5"} {
		_, err := m.AwaitAndSubmit(seat, token)
		assert.Error(t, err, "token %q", token)
	}

	handAfter, _ := m.Hand(seat)
	assert.Equal(t, handBefore, handAfter)
	assert.Equal(t, scoresBefore, m.Scores())
	assert.Equal(t, seat, m.CurrentTurn())
	assertPartition(t, m, 20)
}

func TestInvalidMoveErrors(t *testing.T) {
	m := newStarted(t, deck.VariantReduced)
	seat := m.CurrentTurn()

	_, err := m.AwaitAndSubmit(seat, "Q")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = m.AwaitAndSubmit(seat, "QX")
	assert.ErrorIs(t, err, ErrInvalidSuitLetter)

	// a syntactically valid card the seat cannot possibly hold four of
	missing := ""
	hand, _ := m.Hand(seat)
	held := make(map[string]bool)
	for _, h := range hand {
		held[h] = true
	}
	for _, c := range []deck.Card{
		{Rank: "J", Suit: deck.Ouros},
		{Rank: "Q", Suit: deck.Ouros},
		{Rank: "K", Suit: deck.Ouros},
		{Rank: "A", Suit: deck.Ouros},
	} {
		if !held[c.String()] {
			missing = c.Token()
			break
		}
	}
	_, err = m.AwaitAndSubmit(seat, missing)
	assert.ErrorIs(t, err, ErrCardNotInHand)
}

// A tied score resolves to team 2 per the house rule.
func TestTieGoesToTeamTwo(t *testing.T) {
	m := newStarted(t, deck.VariantReduced)

	done := make(chan Result, 1)
	m.OnFinished = func(res Result) { done <- res }

	m.mu.Lock()
	m.scores = [2]int{3, 3}
	m.endGameLocked()
	m.mu.Unlock()

	res := <-done
	assert.Equal(t, 2, res.WinnerTeam)
	assert.ElementsMatch(t, []string{"bia", "duda"}, res.WinnerNames)
}

func TestFinishedResult(t *testing.T) {
	m := newStarted(t, deck.VariantReduced)

	done := make(chan Result, 1)
	m.OnFinished = func(res Result) { done <- res }

	for !m.Finished() {
		seat := m.CurrentTurn()
		_, err := m.AwaitAndSubmit(seat, AutoToken)
		assert.NoError(t, err)
	}

	res := <-done
	assert.Equal(t, 3, res.Scores[0]+res.Scores[1])
	assert.Len(t, res.Players, 4)
	assert.NotZero(t, res.StartedAt)
	assert.NotZero(t, res.EndedAt)
	assert.Contains(t, res.History[0], "Carta virada (Bebi)")

	// terminal: no further moves are admitted
	_, err := m.AwaitAndSubmit(0, AutoToken)
	assert.ErrorIs(t, err, ErrMatchFinished)
}

// A seat that leaves is marked automated; the remaining seats are not
// corrupted and a substitute source can finish its turns.
func TestLeaveHandsSeatToAutomation(t *testing.T) {
	m := newStarted(t, deck.VariantReduced)

	assert.NoError(t, m.Leave(2))
	seats := m.Seats()
	assert.True(t, seats[2].Gone)
	assert.True(t, seats[2].Automated)

	for !m.Finished() {
		seat := m.CurrentTurn()
		_, err := m.AwaitAndSubmit(seat, AutoToken)
		assert.NoError(t, err)
	}
	scores := m.Scores()
	assert.Equal(t, 3, scores[0]+scores[1])
}

func TestWaitStartBlocksUntilDealt(t *testing.T) {
	m := New("r", deck.VariantReduced, false)
	for _, n := range []string{"a", "b", "c", "d"} {
		_, _ = m.AddSeat(n, false)
	}

	released := make(chan struct{})
	go func() {
		m.WaitStart()
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("WaitStart returned before deal")
	case <-time.After(30 * time.Millisecond):
	}

	assert.NoError(t, m.Start(deck.NewFactory(1)))

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("WaitStart never released")
	}
}

func TestHistoryLimit(t *testing.T) {
	m := newStarted(t, deck.VariantReduced)
	h := m.History(0)
	assert.Len(t, h, 2) // vira + trump suit lines

	assert.Len(t, m.History(1), 1)
	assert.Contains(t, m.History(1)[0], "Naipe principal")
}
