package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"thegame/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaArchiveAdapter implements ports.GameArchive using Nakama storage.
// Records are system-owned and publicly readable.
type NakamaArchiveAdapter struct {
	nk         runtime.NakamaModule
	collection string
}

// NewNakamaArchiveAdapter creates an archive writing into collection.
func NewNakamaArchiveAdapter(nk runtime.NakamaModule, collection string) *NakamaArchiveAdapter {
	if collection == "" {
		collection = defaultArchiveCollection
	}
	return &NakamaArchiveAdapter{nk: nk, collection: collection}
}

type archivedGame struct {
	RoomID         string   `json:"room_id"`
	MatchID        string   `json:"match_id"`
	Outcome        string   `json:"outcome"`
	Won            bool     `json:"won"`
	Players        []string `json:"players"`
	CardsRemaining int      `json:"cards_remaining"`
	StartedAt      string   `json:"started_at"`
	EndedAt        string   `json:"ended_at"`
}

// SaveGame stores the record under a key derived from the match and end time.
func (a *NakamaArchiveAdapter) SaveGame(ctx context.Context, record ports.GameRecord) error {
	value, err := json.Marshal(archivedGame{
		RoomID:         record.RoomID,
		MatchID:        record.MatchID,
		Outcome:        record.Outcome,
		Won:            record.Won,
		Players:        record.Players,
		CardsRemaining: record.CardsRemaining,
		StartedAt:      record.StartedAt.UTC().Format(time.RFC3339),
		EndedAt:        record.EndedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal game record: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      a.collection,
			Key:             archiveKey(record),
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_PUBLIC_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to store game record for room %s: %w", record.RoomID, err)
	}
	return nil
}

func archiveKey(record ports.GameRecord) string {
	id := record.MatchID
	if id == "" {
		id = record.RoomID
	}
	return fmt.Sprintf("%s-%d", id, record.EndedAt.Unix())
}

var _ ports.GameArchive = (*NakamaArchiveAdapter)(nil)
