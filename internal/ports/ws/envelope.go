package ws

import (
	"encoding/json"

	"thegame/internal/app"
)

// InMsg is the client to server envelope.
type InMsg struct {
	T     string          `json:"t"`
	ReqID string          `json:"reqId,omitempty"`
	P     json.RawMessage `json:"p,omitempty"`
}

// OutMsg is the server to client envelope.
type OutMsg struct {
	T     string `json:"t"`
	ReqID string `json:"reqId,omitempty"`
	P     any    `json:"p,omitempty"`
}

// Inbound message types.
const (
	TypeJoinRoom     = "joinRoom"
	TypePlayerReady  = "playerReady"
	TypeStartGame    = "startGame"
	TypePlayCard     = "playCard"
	TypeEndTurn      = "endTurn"
	TypeSetWarning   = "setWarning"
	TypeSetIntention = "setIntention"
)

// Outbound message types.
const (
	TypeJoinSuccess        = "joinSuccess"
	TypeJoinFailed         = "joinFailed"
	TypeGameState          = "gameState"
	TypePlayerJoined       = "playerJoined"
	TypePlayerReadyChanged = "playerReady"
	TypeGameStarted        = "gameStarted"
	TypeCardPlayed         = "cardPlayed"
	TypeTurnEnded          = "turnEnded"
	TypeWarningSet         = "warningSet"
	TypeIntentionSet       = "intentionSet"
	TypePlayerDisconnected = "playerDisconnected"
	TypeGameEnded          = "gameEnded"
	TypeInvalidMove        = "invalidMove"
)

type JoinRoomRequest struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type PlayCardRequest struct {
	Card     int    `json:"card"`
	PileType string `json:"pileType"`
}

type SignalRequest struct {
	PileType string `json:"pileType"`
}

type JoinSuccess struct {
	RoomID     string `json:"roomId"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

var outboundTypes = map[app.EventKind]string{
	app.EventStateRefreshed: TypeGameState,
	app.EventPlayerJoined:   TypePlayerJoined,
	app.EventPlayerReady:    TypePlayerReadyChanged,
	app.EventGameStarted:    TypeGameStarted,
	app.EventCardPlayed:     TypeCardPlayed,
	app.EventTurnEnded:      TypeTurnEnded,
	app.EventWarningSet:     TypeWarningSet,
	app.EventIntentionSet:   TypeIntentionSet,
	app.EventPlayerLeft:     TypePlayerDisconnected,
	app.EventGameEnded:      TypeGameEnded,
}

func outboundType(kind app.EventKind) (string, bool) {
	t, ok := outboundTypes[kind]
	return t, ok
}
