package domain

// JoinResult describes a successful join.
type JoinResult struct {
	PlayerID    string
	PlayerName  string
	PlayerCount int
}

// ReadyResult describes a ready toggle.
type ReadyResult struct {
	PlayerID   string
	PlayerName string
	Ready      bool
	AllReady   bool
}

// StartResult describes a started game.
type StartResult struct {
	PlayerCount int
	HandSize    int
	Defeated    bool
}

// PlayResult describes a card placed on a pile.
type PlayResult struct {
	PlayerID            string
	PlayerName          string
	Card                Card
	Pile                PileID
	PreviousCard        Card
	IsPoopMove          bool
	CardsPlayedThisTurn int
	Defeated            bool
	Won                 bool
}

// EndTurnResult describes a completed turn.
type EndTurnResult struct {
	PreviousPlayerID string
	PreviousPlayer   string
	CurrentPlayerID  string
	CurrentPlayer    string
	CardsDrawn       int
	Defeated         bool
}

// SignalResult describes a toggled warning or intention marker.
type SignalResult struct {
	Kind       SignalKind
	PlayerID   string
	PlayerName string
	Pile       PileID
	// Active reports whether the pile still carries any marker of this kind.
	Active bool
}

// LeaveResult describes a removed player.
type LeaveResult struct {
	PlayerID         string
	PlayerName       string
	PlayerRemoved    bool
	WasCurrentPlayer bool
	// NewCurrentPlayer is set when the leaver held the turn and someone inherited it.
	NewCurrentPlayer string
	ReturnedCards    int
	RoomEmpty        bool
	Defeated         bool
}
