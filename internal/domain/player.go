package domain

// Player holds state for a participant in a room.
type Player struct {
	ID    string
	Name  string
	Hand  []Card
	Ready bool
}

// Holds reports whether card is in the player's hand.
func (p *Player) Holds(card Card) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

func (p *Player) take(card Card) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Player) give(cards []Card) {
	p.Hand = append(p.Hand, cards...)
	SortHand(p.Hand)
}
