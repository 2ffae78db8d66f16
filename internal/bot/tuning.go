package bot

// Tuning controls when SmartBot keeps playing past the turn minimum.
type Tuning struct {
	// ContinueGap is the largest pile gap SmartBot accepts for an optional card.
	ContinueGap int
	// EndgameDeck is the deck size at or below which optional plays stop.
	EndgameDeck int
}

// DefaultTuning plays one extra card only when it costs almost nothing.
var DefaultTuning = Tuning{
	ContinueGap: 2,
	EndgameDeck: 0,
}
