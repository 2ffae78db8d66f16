package bot

import (
	"sort"

	"thegame/internal/domain"
)

// candidate is one legal placement scored by how much pile room it burns.
// Jump-backs have a negative gap.
type candidate struct {
	Card domain.Card
	Pile domain.PileID
	Gap  int
}

// candidates lists every legal placement for the hand, cheapest first.
func candidates(view domain.PlayerView) []candidate {
	var out []candidate
	for _, id := range domain.PileIDs {
		pile := domain.Pile{ID: id, Direction: id.Direction(), Cards: view.Piles[id]}
		if len(pile.Cards) == 0 {
			continue
		}
		top := pile.Top()
		for _, c := range view.MyHand {
			if !pile.CanPlace(c) {
				continue
			}
			gap := int(c - top)
			if pile.Direction == domain.Descending {
				gap = int(top - c)
			}
			out = append(out, candidate{Card: c, Pile: id, Gap: gap})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Gap < out[j].Gap
	})
	return out
}

// GoodBot plays the cheapest legal card and ends the turn as soon as allowed.
type GoodBot struct{}

func (b *GoodBot) CalculateMove(view domain.PlayerView) (Move, error) {
	if view.CanEndTurn {
		return Move{EndTurn: true}, nil
	}
	moves := candidates(view)
	if len(moves) == 0 {
		// Nothing legal: the engine has already ended the game.
		return Move{EndTurn: true}, nil
	}
	return Move{Card: moves[0].Card, Pile: moves[0].Pile}, nil
}

// SmartBot behaves like GoodBot but keeps playing cheap cards past the
// minimum while the deck still has cards to draw.
type SmartBot struct {
	Tuning Tuning
}

func (b *SmartBot) CalculateMove(view domain.PlayerView) (Move, error) {
	moves := candidates(view)
	if !view.CanEndTurn {
		if len(moves) == 0 {
			return Move{EndTurn: true}, nil
		}
		return Move{Card: moves[0].Card, Pile: moves[0].Pile}, nil
	}

	if len(moves) > 0 && view.DeckCount > b.Tuning.EndgameDeck && moves[0].Gap <= b.Tuning.ContinueGap {
		return Move{Card: moves[0].Card, Pile: moves[0].Pile}, nil
	}
	return Move{EndTurn: true}, nil
}
