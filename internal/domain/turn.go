package domain

// Phase represents the lifecycle stage of a room.
type Phase string

const (
	// PhaseNotStarted is the lobby state where players can join and ready up.
	PhaseNotStarted Phase = "not_started"
	// PhaseInProgress is the active game state where cards are played.
	PhaseInProgress Phase = "in_progress"
	// PhaseEnded is the state after the game was won or lost.
	PhaseEnded Phase = "ended"
)

// Outcome is the result of an ended game.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// TurnState tracks whose turn it is and how far they got.
type TurnState struct {
	CurrentPlayerIndex  int
	CardsPlayedThisTurn int
	MinCardsRequired    int
}

// MinCardsFor returns the end-turn minimum for a deck of the given size.
func MinCardsFor(deckSize int) int {
	if deckSize == 0 {
		return 1
	}
	return 2
}

// CanEnd reports whether enough cards were placed to end the turn.
func (t TurnState) CanEnd() bool {
	return t.CardsPlayedThisTurn >= t.MinCardsRequired
}

func (t *TurnState) handTo(index int) {
	t.CurrentPlayerIndex = index
	t.CardsPlayedThisTurn = 0
}
