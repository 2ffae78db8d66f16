package app

const (
	// MaxRoomIDLength bounds room identifiers accepted from clients.
	MaxRoomIDLength = 64

	// MaxPlayerNameLength bounds display names, counted in runes.
	MaxPlayerNameLength = 24
)
