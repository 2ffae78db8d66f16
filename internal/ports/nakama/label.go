package nakama

import (
	"encoding/json"

	"thegame/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// matchLabel is the decoded form of the JSON match label.
type matchLabel struct {
	Game    string `json:"game"`
	RoomID  string `json:"room_id"`
	Phase   string `json:"phase"`
	Players int    `json:"players"`
	Open    bool   `json:"open"`
}

// buildLabel renders the searchable label for a room.
func buildLabel(room *domain.Room) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		LabelKeyGame:    GameLabel,
		LabelKeyRoomID:  room.ID,
		LabelKeyPhase:   string(room.Phase()),
		LabelKeyPlayers: room.PlayerCount(),
		LabelKeyOpen:    room.CanJoin(0) == nil,
	})
	if err != nil {
		return "", err
	}
	b, err := protojson.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func parseLabel(raw string) (matchLabel, error) {
	var label matchLabel
	err := json.Unmarshal([]byte(raw), &label)
	return label, err
}
