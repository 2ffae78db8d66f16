package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"thegame/internal/ports"
)

// Relay forwards public room events to the optional event bus and archives
// finished games. Either port may be nil.
type Relay struct {
	publisher ports.EventPublisher
	archive   ports.GameArchive
}

// NewRelay constructs a Relay over the given ports.
func NewRelay(publisher ports.EventPublisher, archive ports.GameArchive) *Relay {
	return &Relay{publisher: publisher, archive: archive}
}

// Forward publishes every broadcast event and archives game_ended. Private
// events carry hands and are never published. Failures are joined and
// returned after every event was attempted.
func (r *Relay) Forward(ctx context.Context, roomID, matchID string, events []Event) error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, ev := range events {
		if ev.Private() {
			continue
		}
		if r.publisher != nil {
			payload, err := json.Marshal(ev.Payload)
			if err != nil {
				errs = append(errs, fmt.Errorf("encode %s: %w", ev.Kind, err))
			} else if err := r.publisher.Publish(ctx, roomID, string(ev.Kind), payload); err != nil {
				errs = append(errs, fmt.Errorf("publish %s: %w", ev.Kind, err))
			}
		}
		if ev.Kind == EventGameEnded && r.archive != nil {
			if err := r.archive.SaveGame(ctx, RecordFrom(matchID, ev.Payload.(GameEndedPayload))); err != nil {
				errs = append(errs, fmt.Errorf("archive %s: %w", roomID, err))
			}
		}
	}
	return errors.Join(errs...)
}

// RecordFrom converts a game_ended payload into an archive record.
func RecordFrom(matchID string, p GameEndedPayload) ports.GameRecord {
	return ports.GameRecord{
		RoomID:         p.RoomID,
		MatchID:        matchID,
		Outcome:        string(p.Outcome),
		Won:            p.Won,
		Players:        append([]string(nil), p.Players...),
		CardsRemaining: p.CardsRemaining,
		StartedAt:      p.StartedAt,
		EndedAt:        p.EndedAt,
	}
}
