package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"thegame/internal/app"
	"thegame/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// gRPC status codes used by runtime.NewError.
const (
	codeInvalidArgument = 3
	codeInternal        = 13
)

// JoinRoomRequest is the join_room payload.
type JoinRoomRequest struct {
	RoomID string `json:"room_id"`
}

// RoomResponse is returned by join_room and quick_room.
type RoomResponse struct {
	MatchID string `json:"match_id"`
	RoomID  string `json:"room_id"`
	IsNew   bool   `json:"is_new"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcJoinRoom, rpcJoinRoom); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcQuickRoom, rpcQuickRoom)
}

// rpcJoinRoom resolves a room id to its match, creating the match on first use.
// Clients then join the returned match id with {"player_name": ...} metadata.
func rpcJoinRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req JoinRoomRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}
	roomID, err := app.NormalizeRoomID(req.RoomID)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}

	query := fmt.Sprintf("+label.%s:%s +label.%s:%q", LabelKeyGame, GameLabel, LabelKeyRoomID, roomID)
	minSize := 0
	maxSize := domain.MaxPlayers
	matches, err := nk.MatchList(ctx, 10, true, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("rpcJoinRoom [User:%s]: Failed to list matches: %v", userID, err)
		return "", runtime.NewError("failed to list rooms", codeInternal)
	}

	for _, m := range matches {
		label, err := parseLabel(m.GetLabel().GetValue())
		if err != nil || label.RoomID != roomID {
			continue
		}
		logger.Debug("rpcJoinRoom [User:%s]: Found room %s in match %s", userID, roomID, m.GetMatchId())
		return encodeRoomResponse(RoomResponse{MatchID: m.GetMatchId(), RoomID: roomID})
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameTheGame, map[string]interface{}{LabelKeyRoomID: roomID})
	if err != nil {
		logger.Error("rpcJoinRoom [User:%s]: Failed to create match: %v", userID, err)
		return "", runtime.NewError("failed to create room", codeInternal)
	}

	logger.Info("rpcJoinRoom [User:%s]: Created room %s in match %s", userID, roomID, matchID)
	return encodeRoomResponse(RoomResponse{MatchID: matchID, RoomID: roomID, IsNew: true})
}

func encodeRoomResponse(resp RoomResponse) (string, error) {
	b, err := json.Marshal(resp)
	if err != nil {
		return "", runtime.NewError("failed to encode response", codeInternal)
	}
	return string(b), nil
}

func envString(ctx context.Context, key, def string) string {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env[key]; ok && val != "" {
		return val
	}
	return def
}

func envInt(ctx context.Context, key string, def int) int {
	if i, err := strconv.Atoi(envString(ctx, key, "")); err == nil && i > 0 {
		return i
	}
	return def
}
