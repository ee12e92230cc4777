package rules

import (
	"fmt"
	"strings"

	"dourado/internal/game/deck"
)

// Play is one card put down by a seat during a trick.
type Play struct {
	Seat int
	Card deck.Card
}

// Outcome of a resolved trick.
type Outcome struct {
	Winner  int
	Team    int // winner % 2
	Lead    deck.Suit
	Summary string
	Reason  string
}

// Resolve determines the winner of a completed trick. Plays must be in
// seat order; the leading suit is the suit of the first play. Some seats
// may be absent (empty hand), so len(plays) can be below four.
func Resolve(plays []Play, trump deck.Suit, names []string) Outcome {
	lead := plays[0].Card.Suit

	best := 0
	bestVal := Rank(plays[0].Card, trump, lead)
	for i := 1; i < len(plays); i++ {
		if v := Rank(plays[i].Card, trump, lead); bestVal.Less(v) {
			best, bestVal = i, v
		}
	}

	win := plays[best]
	parts := make([]string, 0, len(plays))
	for _, p := range plays {
		parts = append(parts, fmt.Sprintf("%s: %s", seatName(names, p.Seat), p.Card))
	}

	return Outcome{
		Winner:  win.Seat,
		Team:    win.Seat % 2,
		Lead:    lead,
		Summary: "Rodada: " + strings.Join(parts, ", "),
		Reason:  fmt.Sprintf("A carta %s foi a maior.", win.Card),
	}
}

func seatName(names []string, seat int) string {
	if seat < len(names) && names[seat] != "" {
		return names[seat]
	}
	return fmt.Sprintf("Jogador %d", seat+1)
}
