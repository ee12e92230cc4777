package match

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"dourado/internal/game/deck"
	"dourado/internal/game/rules"
)

type Phase string

const (
	PhaseForming    Phase = "forming"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
)

const SeatCount = 4

// Seat is one of the four positions at the table.
type Seat struct {
	Name      string `json:"name"`
	Automated bool   `json:"automated"`
	Gone      bool   `json:"gone"` // left mid-match; turns handed to the bot runner
}

// Result is the summary handed to the ledger and the persistence sink
// when a match finishes.
type Result struct {
	RoomID       string
	Variant      deck.Variant
	Players      []string
	History      []string
	WinnerTeam   int // 1 or 2
	WinnerNames  []string
	Scores       [2]int
	TrumpSuit    deck.Suit
	TrumpCard    deck.Card
	Singleplayer bool
	StartedAt    time.Time
	EndedAt      time.Time
}

// Match owns the authoritative state of one game. All mutation goes
// through the single mutex; the cond signals turn changes and phase
// changes to seats blocked in AwaitAndSubmit or WaitStart.
type Match struct {
	mu   sync.Mutex
	turn *sync.Cond
	rnd  *rand.Rand

	ID           string
	Variant      deck.Variant
	Singleplayer bool

	seats     []Seat
	hands     [SeatCount][]deck.Card
	stock     []deck.Card // undealt remainder
	trumpCard deck.Card
	trumpSuit deck.Suit
	scores    [2]int
	montes    [2][]deck.Card // cards won per team, a trick at a time
	history   []string
	current   int // seat whose turn it is
	trick     []rules.Play
	phase     Phase
	tricks    int
	startedAt time.Time
	endedAt   time.Time

	// OnFinished runs inside the final lock release path, once, when the
	// match reaches PhaseFinished.
	OnFinished func(Result)
}

func New(id string, variant deck.Variant, singleplayer bool) *Match {
	m := &Match{
		ID:           id,
		Variant:      variant,
		Singleplayer: singleplayer,
		rnd:          rand.New(rand.NewSource(time.Now().UnixNano())),
		phase:        PhaseForming,
	}
	m.turn = sync.NewCond(&m.mu)
	return m
}

// AddSeat places a player (or bot) at the next free position and
// returns its seat index. Teams pair by parity: seats 0&2 vs 1&3.
func (m *Match) AddSeat(name string, automated bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseForming {
		return 0, ErrMatchStarted
	}
	if len(m.seats) >= SeatCount {
		return 0, ErrSeatsFull
	}
	m.seats = append(m.seats, Seat{Name: name, Automated: automated})
	m.turn.Broadcast()
	return len(m.seats) - 1, nil
}

// Start builds the deck, reveals the trump card and deals the hands.
// Requires all four seats to be filled.
func (m *Match) Start(f *deck.Factory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseForming {
		return ErrMatchStarted
	}
	if len(m.seats) != SeatCount {
		return fmt.Errorf("%w: have %d seats", ErrSeatsFull, len(m.seats))
	}

	cards, err := f.Build(m.Variant)
	if err != nil {
		return err
	}
	per, err := m.Variant.HandSize()
	if err != nil {
		return err
	}
	if len(cards) < SeatCount*per+1 {
		return ErrInsufficientCards
	}

	// Trump card first ("Bebi"/vira), then the hands.
	m.trumpCard, cards, _ = deck.Draw(cards)
	m.trumpSuit = m.trumpCard.Suit
	for i := 0; i < SeatCount; i++ {
		m.hands[i] = append([]deck.Card(nil), cards[:per]...)
		cards = cards[per:]
	}
	m.stock = cards

	m.history = append(m.history,
		fmt.Sprintf("Carta virada (Bebi): %s", m.trumpCard),
		fmt.Sprintf("Naipe principal: %s", m.trumpSuit))

	m.phase = PhaseInProgress // dealt -> in progress is immediate
	m.startedAt = time.Now()
	m.current = 0
	m.turn.Broadcast()
	return nil
}

// WaitStart blocks until the match has been dealt (or finished).
func (m *Match) WaitStart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.phase == PhaseForming {
		m.turn.Wait()
	}
}

// Leave marks a seat as abandoned. The seat is not removed; its
// remaining turns are played by the automated move source.
func (m *Match) Leave(seat int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seat < 0 || seat >= len(m.seats) {
		return ErrBadSeat
	}
	m.seats[seat].Gone = true
	m.seats[seat].Automated = true
	m.history = append(m.history, fmt.Sprintf("%s saiu da partida.", m.seats[seat].Name))
	m.turn.Broadcast()
	return nil
}

func (m *Match) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

func (m *Match) Finished() bool {
	return m.Phase() == PhaseFinished
}

func (m *Match) Scores() [2]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores
}

func (m *Match) TrumpCard() deck.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trumpCard
}

func (m *Match) TrumpSuit() deck.Suit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trumpSuit
}

// Montes returns a copy of each team's pile of won cards.
func (m *Match) Montes() [2][]deck.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out [2][]deck.Card
	for i := range m.montes {
		out[i] = append([]deck.Card(nil), m.montes[i]...)
	}
	return out
}

func (m *Match) CurrentTurn() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Seats returns a copy of the seat list.
func (m *Match) Seats() []Seat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Seat(nil), m.seats...)
}

// SeatNames returns the display names in seat order.
func (m *Match) SeatNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seatNamesLocked()
}

func (m *Match) seatNamesLocked() []string {
	names := make([]string, len(m.seats))
	for i, s := range m.seats {
		names[i] = s.Name
	}
	return names
}

// Hand returns the display strings of a seat's current hand.
func (m *Match) Hand(seat int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seat < 0 || seat >= SeatCount {
		return nil, ErrBadSeat
	}
	out := make([]string, len(m.hands[seat]))
	for i, c := range m.hands[seat] {
		out[i] = c.String()
	}
	return out, nil
}

// History returns up to limit most recent events (all of them when
// limit <= 0).
func (m *Match) History(limit int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.history
	if limit > 0 && len(h) > limit {
		h = h[len(h)-limit:]
	}
	return append([]string(nil), h...)
}

// endGame runs with the lock held. A tied score goes to team 2, the
// game's house rule.
func (m *Match) endGameLocked() {
	winner := 2
	if m.scores[0] > m.scores[1] {
		winner = 1
	}
	m.history = append(m.history,
		fmt.Sprintf("Dupla %d venceu a partida com placar [%d %d]", winner, m.scores[0], m.scores[1]))

	m.phase = PhaseFinished
	m.endedAt = time.Now()

	var winners []string
	for i, s := range m.seats {
		if i%2 == winner-1 {
			winners = append(winners, s.Name)
		}
	}

	res := Result{
		RoomID:       m.ID,
		Variant:      m.Variant,
		Players:      m.seatNamesLocked(),
		History:      append([]string(nil), m.history...),
		WinnerTeam:   winner,
		WinnerNames:  winners,
		Scores:       m.scores,
		TrumpSuit:    m.trumpSuit,
		TrumpCard:    m.trumpCard,
		Singleplayer: m.Singleplayer,
		StartedAt:    m.startedAt,
		EndedAt:      m.endedAt,
	}

	m.turn.Broadcast()
	if m.OnFinished != nil {
		go m.OnFinished(res)
	}
}
