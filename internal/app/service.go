package app

import (
	"fmt"
	"math/rand"
	"time"

	"thegame/internal/domain"
)

// Service contains The Game use-cases operating on domain rooms. Every method
// returns the events a host has to deliver after the command succeeded.
// Failed commands return no events.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
// The rng is only used to seed new rooms, so callers must serialize NewRoom.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// NewRoom creates an empty room with its own shuffle source.
func (s *Service) NewRoom(roomID string) *domain.Room {
	return domain.NewRoom(roomID, rand.New(rand.NewSource(s.rng.Int63())))
}

// Join seats a player and refreshes everyone's view.
func (s *Service) Join(room *domain.Room, playerID, name string) ([]Event, error) {
	res, err := room.Join(playerID, name)
	if err != nil {
		return nil, err
	}
	events := []Event{{
		Kind: EventPlayerJoined,
		Payload: PlayerJoinedPayload{
			PlayerID:    res.PlayerID,
			PlayerName:  res.PlayerName,
			PlayerCount: res.PlayerCount,
		},
	}}
	return append(events, s.refresh(room)...), nil
}

// ToggleReady flips a player's ready flag.
func (s *Service) ToggleReady(room *domain.Room, playerID string) ([]Event, error) {
	res, err := room.ToggleReady(playerID)
	if err != nil {
		return nil, err
	}
	events := []Event{{
		Kind: EventPlayerReady,
		Payload: PlayerReadyPayload{
			PlayerID:   res.PlayerID,
			PlayerName: res.PlayerName,
			Ready:      res.Ready,
			AllReady:   res.AllReady,
		},
	}}
	return append(events, s.refresh(room)...), nil
}

// StartGame deals the room. Each player receives their own view as the
// game_started payload.
func (s *Service) StartGame(room *domain.Room, playerID string) ([]Event, error) {
	res, err := room.Start(playerID)
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, res.PlayerCount+1)
	for _, id := range room.PlayerIDs() {
		events = append(events, Event{
			Kind:       EventGameStarted,
			Payload:    room.ViewFor(id),
			Recipients: []string{id},
		})
	}
	return s.withEnd(room, events), nil
}

// PlayCard places a card for the current player.
func (s *Service) PlayCard(room *domain.Room, playerID string, card domain.Card, pile domain.PileID) ([]Event, error) {
	res, err := room.PlayCard(playerID, card, pile)
	if err != nil {
		return nil, err
	}
	events := []Event{{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			PlayerID:            res.PlayerID,
			PlayerName:          res.PlayerName,
			Card:                res.Card,
			PreviousCard:        res.PreviousCard,
			PileType:            res.Pile,
			CardsPlayedThisTurn: res.CardsPlayedThisTurn,
			IsPoopMove:          res.IsPoopMove,
			IsDefeated:          res.Defeated,
		},
	}}
	events = append(events, s.refresh(room)...)
	return s.withEnd(room, events), nil
}

// EndTurn closes the current player's turn.
func (s *Service) EndTurn(room *domain.Room, playerID string) ([]Event, error) {
	res, err := room.EndTurn(playerID)
	if err != nil {
		return nil, err
	}
	events := []Event{{
		Kind: EventTurnEnded,
		Payload: TurnEndedPayload{
			PreviousPlayer: res.PreviousPlayer,
			CurrentPlayer:  res.CurrentPlayer,
			CardsDrawn:     res.CardsDrawn,
			IsDefeated:     res.Defeated,
		},
	}}
	events = append(events, s.refresh(room)...)
	return s.withEnd(room, events), nil
}

// SetWarning toggles the player's warning marker on a pile.
func (s *Service) SetWarning(room *domain.Room, playerID string, pile domain.PileID) ([]Event, error) {
	res, err := room.ToggleWarning(playerID, pile)
	if err != nil {
		return nil, err
	}
	return s.signalEvents(room, EventWarningSet, res), nil
}

// SetIntention toggles the player's intention marker on a pile.
func (s *Service) SetIntention(room *domain.Room, playerID string, pile domain.PileID) ([]Event, error) {
	res, err := room.ToggleIntention(playerID, pile)
	if err != nil {
		return nil, err
	}
	return s.signalEvents(room, EventIntentionSet, res), nil
}

func (s *Service) signalEvents(room *domain.Room, kind EventKind, res domain.SignalResult) []Event {
	events := []Event{{
		Kind: kind,
		Payload: SignalPayload{
			PlayerID:   res.PlayerID,
			PlayerName: res.PlayerName,
			PileType:   res.Pile,
			IsActive:   res.Active,
		},
	}}
	return append(events, s.refresh(room)...)
}

// Leave removes a disconnected player. An emptied room yields no events; the
// host is expected to destroy it.
func (s *Service) Leave(room *domain.Room, playerID string) ([]Event, error) {
	res, err := room.Leave(playerID)
	if err != nil {
		return nil, err
	}
	if res.RoomEmpty {
		return nil, nil
	}
	msg := fmt.Sprintf("%s left the game", res.PlayerName)
	if res.NewCurrentPlayer != "" {
		msg = fmt.Sprintf("%s left the game, it is now %s's turn", res.PlayerName, res.NewCurrentPlayer)
	}
	events := []Event{{
		Kind: EventPlayerLeft,
		Payload: PlayerLeftPayload{
			PlayerID:         res.PlayerID,
			PlayerName:       res.PlayerName,
			Message:          msg,
			NewCurrentPlayer: res.NewCurrentPlayer,
			ReturnedCards:    res.ReturnedCards,
		},
	}}
	events = append(events, s.refresh(room)...)
	if res.Defeated {
		events = append(events, gameEnded(room))
	}
	return events, nil
}

// Snapshot returns a fresh view for every seated player.
func (s *Service) Snapshot(room *domain.Room) []Event {
	return s.refresh(room)
}

func (s *Service) refresh(room *domain.Room) []Event {
	ids := room.PlayerIDs()
	events := make([]Event, 0, len(ids))
	for _, id := range ids {
		events = append(events, Event{
			Kind:       EventStateRefreshed,
			Payload:    room.ViewFor(id),
			Recipients: []string{id},
		})
	}
	return events
}

// withEnd appends game_ended when the command finished the game.
func (s *Service) withEnd(room *domain.Room, events []Event) []Event {
	if room.Phase() != domain.PhaseEnded {
		return events
	}
	return append(events, gameEnded(room))
}

func gameEnded(room *domain.Room) Event {
	return Event{
		Kind: EventGameEnded,
		Payload: GameEndedPayload{
			RoomID:         room.ID,
			Outcome:        room.Outcome(),
			Won:            room.Outcome() == domain.OutcomeWon,
			CardsRemaining: room.CardsRemaining(),
			Players:        room.PlayerNames(),
			StartedAt:      room.StartedAt(),
			EndedAt:        room.EndedAt(),
		},
	}
}
