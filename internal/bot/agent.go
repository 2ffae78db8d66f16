package bot

import (
	"errors"
	"fmt"

	"thegame/internal/domain"
)

var ErrNotMyTurn = errors.New("bot asked to move out of turn")

// Agent represents an autonomous player seated in a room.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Play asks the agent for its next move and applies it to the room.
func (a *Agent) Play(room *domain.Room) (Move, error) {
	view := room.ViewFor(a.ID)
	if !view.IsMyTurn {
		return Move{}, ErrNotMyTurn
	}

	move, err := a.Strategy.CalculateMove(view)
	if err != nil {
		return Move{}, err
	}

	if move.EndTurn {
		if _, err := room.EndTurn(a.ID); err != nil {
			return move, fmt.Errorf("%s end turn: %w", a.Name, err)
		}
		return move, nil
	}
	if _, err := room.PlayCard(a.ID, move.Card, move.Pile); err != nil {
		return move, fmt.Errorf("%s play %d on %s: %w", a.Name, move.Card, move.Pile, err)
	}
	return move, nil
}
