package app

import (
	"time"

	"thegame/internal/domain"
)

// EventKind identifies emitted room events for transport dispatch.
type EventKind string

const (
	EventPlayerJoined   EventKind = "player_joined"
	EventPlayerReady    EventKind = "player_ready"
	EventPlayerLeft     EventKind = "player_left"
	EventStateRefreshed EventKind = "state_refreshed"
	EventGameStarted    EventKind = "game_started"
	EventCardPlayed     EventKind = "card_played"
	EventTurnEnded      EventKind = "turn_ended"
	EventWarningSet     EventKind = "warning_set"
	EventIntentionSet   EventKind = "intention_set"
	EventGameEnded      EventKind = "game_ended"
)

// Event is a room event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player IDs; empty means broadcast
}

// Private reports whether the event is addressed to specific players.
func (e Event) Private() bool {
	return len(e.Recipients) > 0
}

type PlayerJoinedPayload struct {
	PlayerID    string `json:"playerId"`
	PlayerName  string `json:"playerName"`
	PlayerCount int    `json:"playerCount"`
}

type PlayerReadyPayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Ready      bool   `json:"ready"`
	AllReady   bool   `json:"allReady"`
}

type PlayerLeftPayload struct {
	PlayerID         string `json:"playerId"`
	PlayerName       string `json:"playerName"`
	Message          string `json:"message"`
	NewCurrentPlayer string `json:"newCurrentPlayer,omitempty"`
	ReturnedCards    int    `json:"returnedCards"`
}

type CardPlayedPayload struct {
	PlayerID            string        `json:"playerId"`
	PlayerName          string        `json:"playerName"`
	Card                domain.Card   `json:"card"`
	PreviousCard        domain.Card   `json:"previousCard"`
	PileType            domain.PileID `json:"pileType"`
	CardsPlayedThisTurn int           `json:"cardsPlayedThisTurn"`
	IsPoopMove          bool          `json:"isPoopMove"`
	IsDefeated          bool          `json:"isDefeated"`
}

type TurnEndedPayload struct {
	PreviousPlayer string `json:"previousPlayer"`
	CurrentPlayer  string `json:"currentPlayer"`
	CardsDrawn     int    `json:"cardsDrawn"`
	IsDefeated     bool   `json:"isDefeated"`
}

// SignalPayload is shared by warning_set and intention_set.
type SignalPayload struct {
	PlayerID   string        `json:"playerId"`
	PlayerName string        `json:"playerName"`
	PileType   domain.PileID `json:"pileType"`
	IsActive   bool          `json:"isActive"`
}

type GameEndedPayload struct {
	RoomID         string         `json:"roomId"`
	Outcome        domain.Outcome `json:"outcome"`
	Won            bool           `json:"won"`
	CardsRemaining int            `json:"cardsRemaining"`
	Players        []string       `json:"players"`
	StartedAt      time.Time      `json:"startedAt"`
	EndedAt        time.Time      `json:"endedAt"`
}
