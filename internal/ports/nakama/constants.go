package nakama

const (
	// RpcJoinRoom finds the match hosting a named room or creates it.
	RpcJoinRoom = "join_room"

	// RpcQuickRoom finds any open lobby or creates one with a generated id.
	RpcQuickRoom = "quick_room"

	// MatchNameTheGame is the authoritative match handler name registered with Nakama.
	MatchNameTheGame = "thegame_room"

	// GameLabel is the value of the "game" label key, used to scope MatchList queries.
	GameLabel = "thegame"
)

// Keys of the JSON match label.
const (
	LabelKeyGame    = "game"
	LabelKeyRoomID  = "room_id"
	LabelKeyPhase   = "phase"
	LabelKeyPlayers = "players"
	LabelKeyOpen    = "open"
)

// Runtime env keys read from RUNTIME_CTX_ENV.
const (
	EnvArchiveCollection = "thegame_archive_collection"
	EnvMaxRoomsListed    = "thegame_max_rooms_listed"
)

const (
	defaultArchiveCollection = "thegame_results"
	defaultMaxRoomsListed    = 10

	tickRate = 5
	// Rooms created by an RPC but never joined are closed after this many seconds.
	emptyRoomTimeoutSec = 60
)

// Op codes for client messages and server events. Payloads are JSON.
const (
	// Client -> Server
	OpToggleReady  int64 = 1
	OpStartGame    int64 = 2
	OpPlayCard     int64 = 3
	OpEndTurn      int64 = 4
	OpSetWarning   int64 = 5
	OpSetIntention int64 = 6

	// Server -> Client events
	OpGameState          int64 = 100 // send privately
	OpPlayerJoined       int64 = 101
	OpGameStarted        int64 = 102 // send privately
	OpCardPlayed         int64 = 103
	OpTurnEnded          int64 = 104
	OpWarningSet         int64 = 105
	OpIntentionSet       int64 = 106
	OpPlayerDisconnected int64 = 107
	OpGameEnded          int64 = 108
	OpInvalidMove        int64 = 109 // send privately
	OpPlayerReady        int64 = 110
)
