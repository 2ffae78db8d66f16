package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"thegame/internal/domain"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

// rpcQuickRoom returns any lobby that still has a free seat, or creates a new
// room with a generated id.
func rpcQuickRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	query := fmt.Sprintf("+label.%s:%s +label.%s:%s +label.%s:T",
		LabelKeyGame, GameLabel, LabelKeyPhase, domain.PhaseNotStarted, LabelKeyOpen)

	limit := envInt(ctx, EnvMaxRoomsListed, defaultMaxRoomsListed)
	minSize := 0
	maxSize := domain.MaxPlayers - 1

	matches, err := nk.MatchList(ctx, limit, true, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("MatchList error: %v", err)
		return "", runtime.NewError("failed to list rooms", codeInternal)
	}

	for _, m := range matches {
		label, err := parseLabel(m.GetLabel().GetValue())
		if err != nil || !label.Open {
			continue
		}
		return encodeRoomResponse(RoomResponse{MatchID: m.GetMatchId(), RoomID: label.RoomID})
	}

	roomID := uuid.NewString()
	matchID, err := nk.MatchCreate(ctx, MatchNameTheGame, map[string]interface{}{LabelKeyRoomID: roomID})
	if err != nil {
		logger.Error("MatchCreate error: %v", err)
		return "", runtime.NewError("failed to create room", codeInternal)
	}

	return encodeRoomResponse(RoomResponse{MatchID: matchID, RoomID: roomID, IsNew: true})
}
