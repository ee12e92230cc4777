package rules

import "dourado/internal/game/deck"

// Tier categories, strongest first. A card that matches more than one tier
// always ranks at the strongest one.
const (
	tierOther    = 1 // plain off-suit cards
	tierLead     = 2 // cards following the trick's leading suit
	tierTrump    = 3 // ordinary trump-suit cards
	tierSpecial  = 4 // fixed special cards, independent of trump/lead
	tierTwoTrump = 5 // 2 of the trump suit
	tierQueen    = 6 // queen of the trump suit
	tierBebi     = 7 // 3 de Espadas, always the strongest card
)

// faceValue orders ranks inside a tier. The order comes from the classic
// game: 4 is the weakest, threes and twos sit above the aces. The full
// deck's 8/9/10 slot in between 7 and Q.
var faceValue = map[string]int{
	"4": 1, "5": 2, "6": 3, "7": 4,
	"8": 5, "9": 6, "10": 7,
	"Q": 8, "J": 9, "K": 10, "A": 11,
	"2": 12, "3": 13,
}

// specials are fixed cards that beat every ordinary trump, in this
// priority order, regardless of which suit is trump or leading.
var specials = []deck.Card{
	{Rank: "2", Suit: deck.Espadas},
	{Rank: "3", Suit: deck.Paus},
	{Rank: "A", Suit: deck.Ouros},
	{Rank: "2", Suit: deck.Paus},
	{Rank: "A", Suit: deck.Paus},
}

// Value is a totally ordered rank for one card under a fixed trump and
// leading suit. Comparison is lexicographic: tier, then face value, then
// suit. No two distinct cards compare equal.
type Value struct {
	Tier int
	Face int
	Suit int
}

// Less reports whether v ranks below w.
func (v Value) Less(w Value) bool {
	if v.Tier != w.Tier {
		return v.Tier < w.Tier
	}
	if v.Face != w.Face {
		return v.Face < w.Face
	}
	return v.Suit < w.Suit
}

// Rank computes the card's value for a trick with the given trump and
// leading suit.
func Rank(c deck.Card, trump, lead deck.Suit) Value {
	v := Value{Face: faceValue[c.Rank], Suit: int(c.Suit)}

	switch {
	case c.Rank == "3" && c.Suit == deck.Espadas:
		v.Tier = tierBebi
	case c.Rank == "Q" && c.Suit == trump:
		v.Tier = tierQueen
	case c.Rank == "2" && c.Suit == trump:
		v.Tier = tierTwoTrump
	default:
		if p, ok := specialPriority(c); ok {
			v.Tier = tierSpecial
			v.Face = p
		} else if c.Suit == trump {
			v.Tier = tierTrump
		} else if c.Suit == lead {
			v.Tier = tierLead
		} else {
			v.Tier = tierOther
		}
	}
	return v
}

func specialPriority(c deck.Card) (int, bool) {
	for i, s := range specials {
		if c == s {
			// first entry is the strongest
			return len(specials) - i, true
		}
	}
	return 0, false
}
