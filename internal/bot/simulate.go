package bot

import (
	"context"
	"fmt"
	"math/rand"

	"thegame/internal/domain"
)

// maxSimulationSteps bounds a single game. Every step either places a card or
// ends a turn, and a turn needs at least one placement, so a finished game
// takes far fewer steps.
const maxSimulationSteps = domain.DeckSize * 4

// SimulationResult summarizes one bot-only game.
type SimulationResult struct {
	Outcome        domain.Outcome
	CardsRemaining int
	Turns          int
	Plays          int
}

// Simulate plays a full game with players agents of the given level.
func Simulate(ctx context.Context, players int, level BotLevel, rng *rand.Rand) (SimulationResult, error) {
	room := domain.NewRoom("simulation", rng)
	agents := make(map[string]*Agent, players)
	for i := 1; i <= players; i++ {
		brain, err := NewBrain(level)
		if err != nil {
			return SimulationResult{}, err
		}
		agent := &Agent{ID: fmt.Sprintf("bot-%d", i), Name: fmt.Sprintf("Bot %d", i), Strategy: brain}
		if _, err := room.Join(agent.ID, agent.Name); err != nil {
			return SimulationResult{}, err
		}
		if _, err := room.ToggleReady(agent.ID); err != nil {
			return SimulationResult{}, err
		}
		agents[agent.ID] = agent
	}
	if _, err := room.Start("bot-1"); err != nil {
		return SimulationResult{}, err
	}

	var res SimulationResult
	for step := 0; room.Phase() == domain.PhaseInProgress; step++ {
		if step >= maxSimulationSteps {
			return res, fmt.Errorf("game did not finish after %d steps", step)
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		current, ok := room.CurrentPlayer()
		if !ok {
			break
		}
		move, err := agents[current.ID].Play(room)
		if err != nil {
			return res, err
		}
		if move.EndTurn {
			res.Turns++
		} else {
			res.Plays++
		}
	}

	res.Outcome = room.Outcome()
	res.CardsRemaining = room.CardsRemaining()
	return res, nil
}

// Summary aggregates many simulations.
type Summary struct {
	Games          int
	Wins           int
	CardsRemaining int
}

// WinRate returns the share of won games.
func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// AverageRemaining returns the mean number of cards left at the end.
func (s Summary) AverageRemaining() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.CardsRemaining) / float64(s.Games)
}

// Add folds one game into the summary.
func (s *Summary) Add(r SimulationResult) {
	s.Games++
	if r.Outcome == domain.OutcomeWon {
		s.Wins++
	}
	s.CardsRemaining += r.CardsRemaining
}
