package domain

import (
	"math/rand"
	"sort"
)

// Card is a numbered playing card. Only LowestCard..HighestCard are ever dealt.
type Card int

const (
	LowestCard  Card = 2
	HighestCard Card = 99

	// DeckSize is the number of playable cards in a fresh deck.
	DeckSize = int(HighestCard-LowestCard) + 1
)

// Deck is an ordered stack of cards. The top of the deck is the last element.
type Deck []Card

// NewDeck returns every playable card in ascending order.
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for c := LowestCard; c <= HighestCard; c++ {
		deck = append(deck, c)
	}
	return deck
}

// ShuffledDeck returns a fresh deck permuted with rng.
func ShuffledDeck(rng *rand.Rand) Deck {
	deck := NewDeck()
	deck.Shuffle(rng)
	return deck
}

// Shuffle permutes the deck in place.
func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) { d[i], d[j] = d[j], d[i] })
}

// Draw removes up to n cards from the top of the deck and returns them.
func (d *Deck) Draw(n int) []Card {
	if n > len(*d) {
		n = len(*d)
	}
	if n <= 0 {
		return nil
	}
	cut := len(*d) - n
	drawn := make([]Card, n)
	copy(drawn, (*d)[cut:])
	*d = (*d)[:cut]
	return drawn
}

// SortHand orders a hand ascending.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return cards[i] < cards[j]
	})
}
