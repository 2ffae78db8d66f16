package domain

import "errors"

var (
	ErrRoomFull         = errors.New("room is full")
	ErrGameStarted      = errors.New("game already started")
	ErrAlreadyJoined    = errors.New("player already in room")
	ErrTooFewPlayers    = errors.New("not enough players to start")
	ErrNotAllReady      = errors.New("not all players are ready")
	ErrNotInLobby       = errors.New("room is not in lobby")
	ErrNotInProgress    = errors.New("game is not in progress")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrCardNotInHand    = errors.New("card not in hand")
	ErrIllegalPlacement = errors.New("illegal placement")
	ErrMinimumNotMet    = errors.New("minimum cards not placed")
	ErrUnknownPile      = errors.New("unknown pile")

	// ErrUnknownPlayer marks commands from identities without a seat.
	// Hosts drop these silently.
	ErrUnknownPlayer = errors.New("player not found")
)
