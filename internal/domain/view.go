package domain

// PlayerSummary is the public part of a seated player.
type PlayerSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	HandSize        int    `json:"handSize"`
	Ready           bool   `json:"ready"`
	IsCurrentPlayer bool   `json:"isCurrentPlayer"`
}

// TurnView mirrors TurnState for clients.
type TurnView struct {
	CurrentPlayerIndex  int `json:"currentPlayerIndex"`
	CardsPlayedThisTurn int `json:"cardsPlayedThisTurn"`
	MinCardsRequired    int `json:"minCardsRequired"`
}

// PlayerView is the snapshot of a room as one player is allowed to see it.
// Other players' hands are reduced to counts.
type PlayerView struct {
	RoomID          string              `json:"roomId"`
	Phase           Phase               `json:"phase"`
	Started         bool                `json:"started"`
	Ended           bool                `json:"ended"`
	Won             bool                `json:"won"`
	Piles           map[PileID][]Card   `json:"piles"`
	PilePoopEffects map[PileID]bool     `json:"pilePoopEffects"`
	PileWarnings    map[PileID][]Marker `json:"pileWarnings"`
	PileIntentions  map[PileID][]Marker `json:"pileIntentions"`
	CardsRemaining  int                 `json:"cardsRemaining"` // deck plus every hand
	DeckCount       int                 `json:"deckCount"`
	TurnState       TurnView            `json:"turnState"`
	Players         []PlayerSummary     `json:"players"`

	MyHand            []Card `json:"myHand"`
	IsMyTurn          bool   `json:"isMyTurn"`
	CanEndTurn        bool   `json:"canEndTurn"`
	CurrentPlayerName string `json:"currentPlayerName"`
	GoodMoveCards     []Card `json:"goodMoveCards"`
}

// ViewFor projects the room for playerID. An unknown id gets the public view
// with an empty hand.
func (r *Room) ViewFor(playerID string) PlayerView {
	v := PlayerView{
		RoomID:          r.ID,
		Phase:           r.phase,
		Started:         r.phase != PhaseNotStarted,
		Ended:           r.phase == PhaseEnded,
		Won:             r.outcome == OutcomeWon,
		Piles:           make(map[PileID][]Card, len(PileIDs)),
		PilePoopEffects: make(map[PileID]bool, len(PileIDs)),
		PileWarnings:    r.signals.Markers(SignalWarning),
		PileIntentions:  r.signals.Markers(SignalIntention),
		CardsRemaining:  r.CardsRemaining(),
		DeckCount:       len(r.deck),
		TurnState: TurnView{
			CurrentPlayerIndex:  r.turn.CurrentPlayerIndex,
			CardsPlayedThisTurn: r.turn.CardsPlayedThisTurn,
			MinCardsRequired:    r.turn.MinCardsRequired,
		},
		Players:       make([]PlayerSummary, 0, len(r.players)),
		MyHand:        []Card{},
		GoodMoveCards: []Card{},
	}
	for _, id := range PileIDs {
		v.Piles[id] = append([]Card{}, r.piles[id].Cards...)
		v.PilePoopEffects[id] = r.poop[id]
	}

	current, inGame := r.CurrentPlayer()
	if inGame {
		v.CurrentPlayerName = current.Name
	}
	for _, p := range r.players {
		v.Players = append(v.Players, PlayerSummary{
			ID:              p.ID,
			Name:            p.Name,
			HandSize:        len(p.Hand),
			Ready:           p.Ready,
			IsCurrentPlayer: inGame && p == current,
		})
	}

	idx := r.indexOf(playerID)
	if idx < 0 {
		return v
	}
	me := r.players[idx]
	v.MyHand = append(v.MyHand, me.Hand...)
	v.IsMyTurn = inGame && me == current
	v.CanEndTurn = v.IsMyTurn && r.turn.CanEnd()
	v.GoodMoveCards = r.goodMoves(me.Hand)
	return v
}

// goodMoves lists each card in hand that would hit the jump-back exception on
// some pile, once, in hand order.
func (r *Room) goodMoves(hand []Card) []Card {
	out := []Card{}
	for _, c := range hand {
		for _, id := range PileIDs {
			if r.piles[id].IsJumpBack(c) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
