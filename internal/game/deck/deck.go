package deck

import (
	"errors"
	"fmt"
	"math/rand"
)

var ErrInvalidVariant = errors.New("invalid deck variant")
var ErrEmptyDeck = errors.New("deck is empty")

type Suit int

const (
	Ouros Suit = iota
	Espadas
	Copas
	Paus
)

var suitNames = []string{"Ouros", "Espadas", "Copas", "Paus"}

func (s Suit) String() string {
	if s < 0 || int(s) >= len(suitNames) {
		return "?"
	}
	return suitNames[s]
}

// Letter is the one-character abbreviation used in move tokens (O/E/C/P).
func (s Suit) Letter() string {
	return string(suitNames[s][0])
}

// SuitFromLetter maps O/E/C/P back to a suit.
func SuitFromLetter(l string) (Suit, bool) {
	switch l {
	case "O", "o":
		return Ouros, true
	case "E", "e":
		return Espadas, true
	case "C", "c":
		return Copas, true
	case "P", "p":
		return Paus, true
	default:
		return 0, false
	}
}

// Card is an immutable rank/suit pair. Rank is the display symbol
// ("2".."10", "J", "Q", "K", "A").
type Card struct {
	Rank string `json:"rank"`
	Suit Suit   `json:"suit"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s de %s", c.Rank, c.Suit)
}

// Token is the short form used on the wire, e.g. "QC", "10O".
func (c Card) Token() string {
	return c.Rank + c.Suit.Letter()
}

type Variant string

const (
	VariantReduced Variant = "reduced" // 20 cards, 3 per hand
	VariantFull    Variant = "full"    // 52 cards, 9 per hand
)

// HandSize returns how many cards each seat is dealt.
func (v Variant) HandSize() (int, error) {
	switch v {
	case VariantReduced:
		return 3, nil
	case VariantFull:
		return 9, nil
	default:
		return 0, ErrInvalidVariant
	}
}

var fullRanks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
var faceRanks = []string{"J", "Q", "K", "A"}

// Factory builds and shuffles decks (no rule knowledge).
type Factory struct {
	rnd *rand.Rand
}

func NewFactory(seed int64) *Factory {
	return &Factory{rnd: rand.New(rand.NewSource(seed))}
}

// Build returns a freshly shuffled deck for the variant.
func (f *Factory) Build(v Variant) ([]Card, error) {
	var deck []Card
	switch v {
	case VariantReduced:
		// J/Q/K/A of every suit plus the twos and threes of Espadas and Paus.
		for s := Ouros; s <= Paus; s++ {
			for _, r := range faceRanks {
				deck = append(deck, Card{Rank: r, Suit: s})
			}
		}
		for _, s := range []Suit{Espadas, Paus} {
			deck = append(deck, Card{Rank: "2", Suit: s}, Card{Rank: "3", Suit: s})
		}
	case VariantFull:
		for s := Ouros; s <= Paus; s++ {
			for _, r := range fullRanks {
				deck = append(deck, Card{Rank: r, Suit: s})
			}
		}
	default:
		return nil, ErrInvalidVariant
	}

	f.shuffle(deck)
	return deck, nil
}

func (f *Factory) shuffle(deck []Card) {
	f.rnd.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// Draw pops the top card.
func Draw(deck []Card) (Card, []Card, error) {
	if len(deck) == 0 {
		return Card{}, deck, ErrEmptyDeck
	}
	return deck[0], deck[1:], nil
}
