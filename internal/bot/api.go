package bot

import (
	"thegame/internal/domain"
)

// Move represents the decision made by the AI.
type Move struct {
	EndTurn bool
	Card    domain.Card
	Pile    domain.PileID
}

// Brain is the interface that all bot strategies must implement. Brains only
// see what a human at the same seat would see.
type Brain interface {
	CalculateMove(view domain.PlayerView) (Move, error)
}
