package nakama

import (
	"encoding/json"
	"fmt"

	"thegame/internal/app"
	"thegame/internal/domain"
)

// PlayCardRequest is the OpPlayCard payload.
type PlayCardRequest struct {
	Card     int    `json:"card"`
	PileType string `json:"pileType"`
}

// SignalRequest is the OpSetWarning and OpSetIntention payload.
type SignalRequest struct {
	PileType string `json:"pileType"`
}

// ErrorEvent is the OpInvalidMove payload.
type ErrorEvent struct {
	Message string `json:"message"`
}

var eventOpCodes = map[app.EventKind]int64{
	app.EventStateRefreshed: OpGameState,
	app.EventPlayerJoined:   OpPlayerJoined,
	app.EventPlayerReady:    OpPlayerReady,
	app.EventGameStarted:    OpGameStarted,
	app.EventCardPlayed:     OpCardPlayed,
	app.EventTurnEnded:      OpTurnEnded,
	app.EventWarningSet:     OpWarningSet,
	app.EventIntentionSet:   OpIntentionSet,
	app.EventPlayerLeft:     OpPlayerDisconnected,
	app.EventGameEnded:      OpGameEnded,
}

// opCodeFor maps an app event kind to its server opcode.
func opCodeFor(kind app.EventKind) (int64, bool) {
	op, ok := eventOpCodes[kind]
	return op, ok
}

func decodePlayCard(data []byte) (domain.Card, domain.PileID, error) {
	var req PlayCardRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return 0, "", fmt.Errorf("invalid play payload: %w", err)
	}
	pile, err := domain.ParsePileID(req.PileType)
	if err != nil {
		return 0, "", err
	}
	return domain.Card(req.Card), pile, nil
}

func decodeSignal(data []byte) (domain.PileID, error) {
	var req SignalRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return "", fmt.Errorf("invalid signal payload: %w", err)
	}
	return domain.ParsePileID(req.PileType)
}
