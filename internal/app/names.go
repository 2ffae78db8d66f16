package app

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var ErrInvalidRoomID = errors.New("room id must be 1-64 letters, digits, '-' or '_'")

// NormalizeRoomID trims a client supplied room id and validates its alphabet.
func NormalizeRoomID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > MaxRoomIDLength {
		return "", ErrInvalidRoomID
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return "", ErrInvalidRoomID
		}
	}
	return id, nil
}

// NormalizePlayerName trims a display name and cuts it to MaxPlayerNameLength runes.
// The result may be empty; callers pick a generated name in that case.
func NormalizePlayerName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= MaxPlayerNameLength {
		return name
	}
	runes := []rune(name)
	return strings.TrimSpace(string(runes[:MaxPlayerNameLength]))
}
