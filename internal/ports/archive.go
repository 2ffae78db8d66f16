package ports

import (
	"context"
	"time"
)

// GameRecord is the archived outcome of one finished game.
type GameRecord struct {
	RoomID         string
	MatchID        string
	Outcome        string
	Won            bool
	Players        []string
	CardsRemaining int
	StartedAt      time.Time
	EndedAt        time.Time
}

// GameArchive stores finished games.
type GameArchive interface {
	// SaveGame persists a record once the game has been won or lost.
	SaveGame(ctx context.Context, record GameRecord) error
}
