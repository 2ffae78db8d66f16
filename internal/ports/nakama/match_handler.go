package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"thegame/internal/app"
	"thegame/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for one room. Nakama runs
// every handler callback of a match on the same goroutine, so Room has a
// single writer.
type MatchState struct {
	MatchID     string                      `json:"match_id"`
	CreatedTick int64                       `json:"created_tick"`
	Tick        int64                       `json:"tick"`
	Presences   map[string]runtime.Presence `json:"-"` // Map UserId -> Presence for targeted messaging
	Pending     map[string]string           `json:"-"` // UserId -> display name accepted by MatchJoinAttempt
	App         *app.Service                `json:"-"`
	Room        *domain.Room                `json:"-"`
	Relay       *app.Relay                  `json:"-"`
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created. params carries the room id
// chosen by the RPC that created it.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	roomID, _ := params[LabelKeyRoomID].(string)
	if roomID == "" {
		logger.Error("MatchInit: missing room id")
		return nil, 0, ""
	}
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)

	svc := app.NewService(nil)
	archive := NewNakamaArchiveAdapter(nk, envString(ctx, EnvArchiveCollection, defaultArchiveCollection))
	state := &MatchState{
		MatchID:   matchID,
		Presences: make(map[string]runtime.Presence),
		Pending:   make(map[string]string),
		App:       svc,
		Room:      svc.NewRoom(roomID),
		Relay:     app.NewRelay(nil, archive),
	}

	label, err := buildLabel(state.Room)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	logger.Debug("MatchInit: room %s ready in match %s", roomID, matchID)
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	userID := presence.GetUserId()
	if _, joined := matchState.Presences[userID]; joined {
		return state, false, domain.ErrAlreadyJoined.Error()
	}
	if _, pending := matchState.Pending[userID]; pending {
		return state, false, domain.ErrAlreadyJoined.Error()
	}
	if err := matchState.Room.CanJoin(len(matchState.Pending)); err != nil {
		return state, false, err.Error()
	}

	name := app.NormalizePlayerName(metadata["player_name"])
	if name == "" {
		name = presence.GetUsername()
	}
	matchState.Pending[userID] = name
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		name, ok := matchState.Pending[userID]
		if !ok {
			name = p.GetUsername()
		}
		delete(matchState.Pending, userID)

		// Store presence before dispatching so the joiner receives its own view.
		matchState.Presences[userID] = p
		events, err := matchState.App.Join(matchState.Room, userID, name)
		if err != nil {
			logger.Warn("MatchJoin: User %s could not take a seat: %v", userID, err)
			delete(matchState.Presences, userID)
			if err := dispatcher.MatchKick([]runtime.Presence{p}); err != nil {
				logger.Error("MatchJoin: Failed to kick %s: %v", userID, err)
			}
			continue
		}
		logger.Info("MatchJoin: %s joined room %s as %s", userID, matchState.Room.ID, name)
		mh.dispatchEvents(ctx, matchState, dispatcher, logger, events)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players leave the match. The match
// terminates once the room is empty.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)
		delete(matchState.Pending, userID)

		events, err := matchState.App.Leave(matchState.Room, userID)
		if err != nil {
			logger.Debug("MatchLeave: %s had no seat: %v", userID, err)
			continue
		}
		logger.Debug("MatchLeave: User %s left room %s.", userID, matchState.Room.ID)
		mh.dispatchEvents(ctx, matchState, dispatcher, logger, events)
	}

	if matchState.Room.Empty() && len(matchState.Pending) == 0 {
		logger.Info("MatchLeave: Terminating empty room %s.", matchState.Room.ID)
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	if matchState.CreatedTick == 0 {
		matchState.CreatedTick = tick
	}
	matchState.Tick = tick

	phase := matchState.Room.Phase()
	for _, msg := range messages {
		mh.handleMessage(ctx, matchState, dispatcher, logger, msg)
	}
	if matchState.Room.Phase() != phase {
		mh.updateLabel(matchState, dispatcher, logger)
	}

	if matchState.Room.Empty() && tick-matchState.CreatedTick >= int64(emptyRoomTimeoutSec*tickRate) {
		logger.Info("MatchLoop: Closing room %s that nobody joined.", matchState.Room.ID)
		return nil
	}

	return matchState
}

// handleMessage routes one client message to the app service.
func (mh *matchHandler) handleMessage(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	room := state.Room

	var (
		events []app.Event
		err    error
	)
	switch msg.GetOpCode() {
	case OpToggleReady:
		events, err = state.App.ToggleReady(room, senderID)
	case OpStartGame:
		events, err = state.App.StartGame(room, senderID)
	case OpPlayCard:
		card, pile, decodeErr := decodePlayCard(msg.GetData())
		if decodeErr != nil {
			err = decodeErr
			break
		}
		events, err = state.App.PlayCard(room, senderID, card, pile)
	case OpEndTurn:
		events, err = state.App.EndTurn(room, senderID)
	case OpSetWarning, OpSetIntention:
		pile, decodeErr := decodeSignal(msg.GetData())
		if decodeErr != nil {
			err = decodeErr
			break
		}
		if msg.GetOpCode() == OpSetWarning {
			events, err = state.App.SetWarning(room, senderID, pile)
		} else {
			events, err = state.App.SetIntention(room, senderID, pile)
		}
	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		return
	}

	if errors.Is(err, domain.ErrUnknownPlayer) {
		logger.Warn("MatchLoop: Dropping opcode %d from unseated user %s", msg.GetOpCode(), senderID)
		return
	}
	if err != nil {
		logger.Debug("MatchLoop: User %s opcode %d rejected: %v", senderID, msg.GetOpCode(), err)
		mh.sendError(state, dispatcher, logger, senderID, err.Error())
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// dispatchEvents delivers events to presences and hands them to the relay.
func (mh *matchHandler) dispatchEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	if err := state.Relay.Forward(ctx, state.Room.ID, state.MatchID, events); err != nil {
		logger.Error("Failed to relay events for room %s: %v", state.Room.ID, err)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := opCodeFor(ev.Kind)
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if ev.Private() {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Private events must never fall back to a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true); err != nil {
		logger.Error("Failed to broadcast %v: %v", ev.Kind, err)
	}
}

// sendError sends an invalid move notice to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	bytes, err := json.Marshal(ErrorEvent{Message: message})
	if err != nil {
		logger.Error("Failed to marshal error event: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpInvalidMove, bytes, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send error to %s: %v", userID, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := buildLabel(state.Room)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	if matchState, ok := state.(*MatchState); ok {
		logger.Debug("MatchTerminate: Room %s terminated with %d players", matchState.Room.ID, matchState.Room.PlayerCount())
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
