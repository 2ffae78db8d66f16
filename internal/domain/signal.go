package domain

// SignalKind distinguishes the two advisory marker boards.
type SignalKind string

const (
	SignalWarning   SignalKind = "warning"
	SignalIntention SignalKind = "intention"
)

// Marker is one player's flag on a pile.
type Marker struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// SignalBoard holds per-pile marker sets for warnings and intentions.
// Markers have no effect on legality or turns.
type SignalBoard struct {
	sets map[SignalKind]map[PileID][]Marker
}

// NewSignalBoard returns an empty board.
func NewSignalBoard() *SignalBoard {
	b := &SignalBoard{}
	b.Reset()
	return b
}

// Reset clears every marker.
func (b *SignalBoard) Reset() {
	b.sets = map[SignalKind]map[PileID][]Marker{
		SignalWarning:   {},
		SignalIntention: {},
	}
}

// Toggle adds the marker if absent and removes it if present.
// It returns whether the pile has any marker of that kind afterwards.
func (b *SignalBoard) Toggle(kind SignalKind, pile PileID, m Marker) bool {
	set := b.sets[kind]
	markers := set[pile]
	for i, existing := range markers {
		if existing.PlayerID == m.PlayerID {
			set[pile] = append(markers[:i:i], markers[i+1:]...)
			return len(set[pile]) > 0
		}
	}
	set[pile] = append(markers, m)
	return true
}

// Has reports whether playerID has a marker of kind on pile.
func (b *SignalBoard) Has(kind SignalKind, pile PileID, playerID string) bool {
	for _, m := range b.sets[kind][pile] {
		if m.PlayerID == playerID {
			return true
		}
	}
	return false
}

// Markers returns a copy of the markers of kind on every pile. Piles without
// markers map to an empty slice.
func (b *SignalBoard) Markers(kind SignalKind) map[PileID][]Marker {
	out := make(map[PileID][]Marker, len(PileIDs))
	for _, id := range PileIDs {
		out[id] = append([]Marker{}, b.sets[kind][id]...)
	}
	return out
}

// RemovePlayer drops every marker raised by playerID.
func (b *SignalBoard) RemovePlayer(playerID string) {
	for _, set := range b.sets {
		for pile, markers := range set {
			kept := markers[:0]
			for _, m := range markers {
				if m.PlayerID != playerID {
					kept = append(kept, m)
				}
			}
			set[pile] = kept
		}
	}
}
