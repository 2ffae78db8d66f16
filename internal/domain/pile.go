package domain

import "fmt"

// PileID names one of the four placement piles.
type PileID string

const (
	PileUp1   PileID = "up1"
	PileUp2   PileID = "up2"
	PileDown1 PileID = "down1"
	PileDown2 PileID = "down2"
)

// PileIDs lists the piles in display order.
var PileIDs = [...]PileID{PileUp1, PileUp2, PileDown1, PileDown2}

// ParsePileID validates a pile name received from a client.
func ParsePileID(s string) (PileID, error) {
	for _, id := range PileIDs {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPile, s)
}

// Direction is the order in which a pile accepts cards.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

const (
	// AscendingStart and DescendingStart are the sentinels the piles open with.
	AscendingStart  Card = 1
	DescendingStart Card = 100

	// JumpBack is the exact distance that lets a card go against a pile's direction.
	JumpBack = 10

	// PoopThreshold is the jump size at which a placement is flagged as a poop move.
	PoopThreshold = 20
)

// Direction reports the fixed direction of the pile.
func (id PileID) Direction() Direction {
	if id == PileDown1 || id == PileDown2 {
		return Descending
	}
	return Ascending
}

// Pile is an append-only sequence of cards. The first element is the sentinel.
type Pile struct {
	ID        PileID
	Direction Direction
	Cards     []Card
}

// NewPile returns a pile holding only its sentinel.
func NewPile(id PileID) *Pile {
	start := AscendingStart
	if id.Direction() == Descending {
		start = DescendingStart
	}
	return &Pile{ID: id, Direction: id.Direction(), Cards: []Card{start}}
}

// Top returns the last card placed, or the sentinel.
func (p *Pile) Top() Card {
	return p.Cards[len(p.Cards)-1]
}

// CanPlace reports whether card may legally go on top of the pile.
func (p *Pile) CanPlace(card Card) bool {
	top := p.Top()
	if p.Direction == Ascending {
		return card > top || card == top-JumpBack
	}
	return card < top || card == top+JumpBack
}

// IsJumpBack reports whether card would use the jump-back exception on this pile.
func (p *Pile) IsJumpBack(card Card) bool {
	if p.Direction == Ascending {
		return card == p.Top()-JumpBack
	}
	return card == p.Top()+JumpBack
}

// Placed returns the number of real cards on the pile.
func (p *Pile) Placed() int {
	return len(p.Cards) - 1
}

func (p *Pile) place(card Card) (previous Card) {
	previous = p.Top()
	p.Cards = append(p.Cards, card)
	return previous
}

// IsPoopMove reports whether going from previous to card is a big jump.
func IsPoopMove(previous, card Card) bool {
	diff := int(card - previous)
	if diff < 0 {
		diff = -diff
	}
	return diff >= PoopThreshold
}
