package match

import (
	"math/rand"
	"strings"

	"dourado/internal/game/deck"
)

// AutoToken asks the engine to pick a random card from the hand.
const AutoToken = "auto"

var validRanks = map[string]bool{
	"2": true, "3": true, "4": true, "5": true, "6": true, "7": true,
	"8": true, "9": true, "10": true,
	"J": true, "Q": true, "K": true, "A": true,
}

// parseMove resolves a move token against a hand. Tokens are either
// "auto" or <rank><suitLetter>, e.g. "QC" (Q de Copas) or "10O"
// (10 de Ouros). The hand is not modified.
func parseMove(token string, hand []deck.Card, rnd *rand.Rand) (deck.Card, error) {
	token = strings.TrimSpace(token)

	if strings.EqualFold(token, AutoToken) {
		if len(hand) == 0 {
			return deck.Card{}, ErrCardNotInHand
		}
		return hand[rnd.Intn(len(hand))], nil
	}

	if len(token) < 2 {
		return deck.Card{}, ErrInvalidFormat
	}

	suit, ok := deck.SuitFromLetter(token[len(token)-1:])
	if !ok {
		return deck.Card{}, ErrInvalidSuitLetter
	}

	rank := strings.ToUpper(token[:len(token)-1])
	if !validRanks[rank] {
		return deck.Card{}, ErrInvalidFormat
	}

	want := deck.Card{Rank: rank, Suit: suit}
	for _, c := range hand {
		if c == want {
			return c, nil
		}
	}
	return deck.Card{}, ErrCardNotInHand
}

// removeCard takes a card out of a hand, returning the shrunk hand.
func removeCard(hand []deck.Card, c deck.Card) []deck.Card {
	for i, h := range hand {
		if h == c {
			return append(hand[:i], hand[i+1:]...)
		}
	}
	return hand
}
