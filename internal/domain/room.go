package domain

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	// MaxPlayers is the room capacity.
	MaxPlayers = 6
	// MinPlayers is the number of players required to start.
	MinPlayers = 2

	handSizeTwoPlayers = 7
	handSizeDefault    = 6
)

// HandSizeFor returns the number of cards dealt to each of n players.
func HandSizeFor(n int) int {
	if n == 2 {
		return handSizeTwoPlayers
	}
	return handSizeDefault
}

// Room is the authoritative state of one game table. It owns the deck, the
// piles, the seated players, the turn state and the signal board.
//
// A Room is not safe for concurrent use. Hosts must funnel every command for a
// room through a single writer.
type Room struct {
	ID string

	phase   Phase
	outcome Outcome

	deck    Deck
	piles   map[PileID]*Pile
	poop    map[PileID]bool
	players []*Player
	turn    TurnState
	signals *SignalBoard

	rng       *rand.Rand
	now       func() time.Time
	startedAt time.Time
	endedAt   time.Time
}

// NewRoom returns an empty room in the lobby. rng may be nil to use a
// time-seeded default.
func NewRoom(id string, rng *rand.Rand) *Room {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	r := &Room{
		ID:      id,
		phase:   PhaseNotStarted,
		signals: NewSignalBoard(),
		rng:     rng,
		now:     time.Now,
	}
	r.resetPiles()
	return r
}

func (r *Room) resetPiles() {
	r.piles = make(map[PileID]*Pile, len(PileIDs))
	r.poop = make(map[PileID]bool, len(PileIDs))
	for _, id := range PileIDs {
		r.piles[id] = NewPile(id)
		r.poop[id] = false
	}
}

// Phase returns the lifecycle stage of the room.
func (r *Room) Phase() Phase { return r.phase }

// Outcome returns the result of an ended game.
func (r *Room) Outcome() Outcome { return r.outcome }

// Turn returns a copy of the turn state.
func (r *Room) Turn() TurnState { return r.turn }

// DeckCount returns the number of undrawn cards.
func (r *Room) DeckCount() int { return len(r.deck) }

// PlayerCount returns the number of seated players.
func (r *Room) PlayerCount() int { return len(r.players) }

// Empty reports whether nobody is seated.
func (r *Room) Empty() bool { return len(r.players) == 0 }

// StartedAt returns when the current game was dealt.
func (r *Room) StartedAt() time.Time { return r.startedAt }

// EndedAt returns when the game was won or lost.
func (r *Room) EndedAt() time.Time { return r.endedAt }

// PlayerIDs returns seated identities in turn order.
func (r *Room) PlayerIDs() []string {
	ids := make([]string, len(r.players))
	for i, p := range r.players {
		ids[i] = p.ID
	}
	return ids
}

// PlayerNames returns seated display names in turn order.
func (r *Room) PlayerNames() []string {
	names := make([]string, len(r.players))
	for i, p := range r.players {
		names[i] = p.Name
	}
	return names
}

// Pile returns the pile with the given id.
func (r *Room) Pile(id PileID) (*Pile, bool) {
	p, ok := r.piles[id]
	return p, ok
}

// CardsRemaining returns the cards still in the deck or in any hand.
func (r *Room) CardsRemaining() int {
	n := len(r.deck)
	for _, p := range r.players {
		n += len(p.Hand)
	}
	return n
}

// CurrentPlayer returns the player holding the turn while a game is in progress.
func (r *Room) CurrentPlayer() (*Player, bool) {
	if r.phase != PhaseInProgress || len(r.players) == 0 {
		return nil, false
	}
	return r.players[r.turn.CurrentPlayerIndex], true
}

// CanJoin reports whether a new player could take a seat, counting pending
// seats already promised by the host.
func (r *Room) CanJoin(pending int) error {
	if r.phase != PhaseNotStarted {
		return ErrGameStarted
	}
	if len(r.players)+pending >= MaxPlayers {
		return ErrRoomFull
	}
	return nil
}

// Join seats a new player with an empty hand.
func (r *Room) Join(playerID, name string) (JoinResult, error) {
	if r.indexOf(playerID) >= 0 {
		return JoinResult{}, ErrAlreadyJoined
	}
	if err := r.CanJoin(0); err != nil {
		return JoinResult{}, err
	}
	r.players = append(r.players, &Player{ID: playerID, Name: name})
	return JoinResult{PlayerID: playerID, PlayerName: name, PlayerCount: len(r.players)}, nil
}

// ToggleReady flips the ready flag of a player in the lobby.
func (r *Room) ToggleReady(playerID string) (ReadyResult, error) {
	p, _, err := r.seat(playerID)
	if err != nil {
		return ReadyResult{}, err
	}
	if r.phase != PhaseNotStarted {
		return ReadyResult{}, ErrNotInLobby
	}
	p.Ready = !p.Ready
	return ReadyResult{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Ready:      p.Ready,
		AllReady:   r.allReady(),
	}, nil
}

func (r *Room) allReady() bool {
	for _, p := range r.players {
		if !p.Ready {
			return false
		}
	}
	return len(r.players) > 0
}

// Start shuffles a fresh deck, deals every hand and hands the first turn to
// the first seated player.
func (r *Room) Start(playerID string) (StartResult, error) {
	if _, _, err := r.seat(playerID); err != nil {
		return StartResult{}, err
	}
	if r.phase != PhaseNotStarted {
		return StartResult{}, ErrGameStarted
	}
	if len(r.players) < MinPlayers {
		return StartResult{}, ErrTooFewPlayers
	}
	if !r.allReady() {
		return StartResult{}, ErrNotAllReady
	}

	r.deck = ShuffledDeck(r.rng)
	r.resetPiles()
	r.signals.Reset()

	handSize := HandSizeFor(len(r.players))
	for _, p := range r.players {
		p.Hand = nil
		p.give(r.deck.Draw(handSize))
	}

	r.phase = PhaseInProgress
	r.outcome = OutcomeNone
	r.startedAt = r.now()
	r.turn = TurnState{}
	r.recompute()

	return StartResult{
		PlayerCount: len(r.players),
		HandSize:    handSize,
		Defeated:    r.checkDefeat(),
	}, nil
}

// PlayCard moves card from the current player's hand onto the named pile.
func (r *Room) PlayCard(playerID string, card Card, pileID PileID) (PlayResult, error) {
	p, _, err := r.actingPlayer(playerID)
	if err != nil {
		return PlayResult{}, err
	}
	pile, ok := r.piles[pileID]
	if !ok {
		return PlayResult{}, fmt.Errorf("%w: %q", ErrUnknownPile, pileID)
	}
	if !p.Holds(card) {
		return PlayResult{}, fmt.Errorf("%w: %d", ErrCardNotInHand, card)
	}
	if !pile.CanPlace(card) {
		return PlayResult{}, fmt.Errorf("%w: %d cannot go on %s (top %d)", ErrIllegalPlacement, card, pileID, pile.Top())
	}

	p.take(card)
	previous := pile.place(card)
	poop := IsPoopMove(previous, card)
	r.poop[pileID] = poop
	r.turn.CardsPlayedThisTurn++

	res := PlayResult{
		PlayerID:            p.ID,
		PlayerName:          p.Name,
		Card:                card,
		Pile:                pileID,
		PreviousCard:        previous,
		IsPoopMove:          poop,
		CardsPlayedThisTurn: r.turn.CardsPlayedThisTurn,
	}
	res.Won = r.checkWin()
	if !res.Won {
		res.Defeated = r.checkDefeat()
	}
	return res, nil
}

// EndTurn refills the current player's hand and passes the turn on.
func (r *Room) EndTurn(playerID string) (EndTurnResult, error) {
	p, idx, err := r.actingPlayer(playerID)
	if err != nil {
		return EndTurnResult{}, err
	}
	if !r.turn.CanEnd() {
		return EndTurnResult{}, fmt.Errorf("%w: must place at least %d %s", ErrMinimumNotMet, r.turn.MinCardsRequired, plural(r.turn.MinCardsRequired, "card", "cards"))
	}

	drawn := r.deck.Draw(r.turn.CardsPlayedThisTurn)
	p.give(drawn)

	next := r.seatWithCards((idx + 1) % len(r.players))
	r.turn.handTo(next)
	r.recompute()

	current := r.players[next]
	return EndTurnResult{
		PreviousPlayerID: p.ID,
		PreviousPlayer:   p.Name,
		CurrentPlayerID:  current.ID,
		CurrentPlayer:    current.Name,
		CardsDrawn:       len(drawn),
		Defeated:         r.checkDefeat(),
	}, nil
}

// ToggleWarning flips the player's warning marker on a pile.
func (r *Room) ToggleWarning(playerID string, pileID PileID) (SignalResult, error) {
	return r.toggleSignal(SignalWarning, playerID, pileID)
}

// ToggleIntention flips the player's intention marker on a pile.
func (r *Room) ToggleIntention(playerID string, pileID PileID) (SignalResult, error) {
	return r.toggleSignal(SignalIntention, playerID, pileID)
}

func (r *Room) toggleSignal(kind SignalKind, playerID string, pileID PileID) (SignalResult, error) {
	p, _, err := r.seat(playerID)
	if err != nil {
		return SignalResult{}, err
	}
	if r.phase != PhaseInProgress {
		return SignalResult{}, ErrNotInProgress
	}
	if _, ok := r.piles[pileID]; !ok {
		return SignalResult{}, fmt.Errorf("%w: %q", ErrUnknownPile, pileID)
	}
	active := r.signals.Toggle(kind, pileID, Marker{PlayerID: p.ID, PlayerName: p.Name})
	return SignalResult{
		Kind:       kind,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Pile:       pileID,
		Active:     active,
	}, nil
}

// Leave removes a player in any phase. During a game the leaver's hand is
// shuffled back into the deck so no card leaves circulation.
func (r *Room) Leave(playerID string) (LeaveResult, error) {
	p, idx, err := r.seat(playerID)
	if err != nil {
		return LeaveResult{}, err
	}

	inGame := r.phase == PhaseInProgress
	wasCurrent := inGame && idx == r.turn.CurrentPlayerIndex

	r.players = append(r.players[:idx], r.players[idx+1:]...)
	r.signals.RemovePlayer(p.ID)

	res := LeaveResult{
		PlayerID:         p.ID,
		PlayerName:       p.Name,
		PlayerRemoved:    true,
		WasCurrentPlayer: wasCurrent,
		RoomEmpty:        len(r.players) == 0,
	}
	if !inGame || res.RoomEmpty {
		return res, nil
	}

	if len(p.Hand) > 0 {
		r.deck = append(r.deck, p.Hand...)
		r.deck.Shuffle(r.rng)
		res.ReturnedCards = len(p.Hand)
		p.Hand = nil
	}

	// A bystander leaving keeps the running turn, minimum included, so
	// returned cards cannot push the current player below it.
	if !wasCurrent {
		if idx < r.turn.CurrentPlayerIndex {
			r.turn.CurrentPlayerIndex--
		}
		return res, nil
	}

	next := r.turn.CurrentPlayerIndex
	if next >= len(r.players) {
		next = 0
	}
	r.turn.handTo(r.seatWithCards(next))
	r.recompute()
	res.NewCurrentPlayer = r.players[r.turn.CurrentPlayerIndex].Name
	res.Defeated = r.checkDefeat()
	return res, nil
}

// checkDefeat ends the game as lost when the current player still owes cards
// and nothing in their hand fits any pile.
func (r *Room) checkDefeat() bool {
	current, ok := r.CurrentPlayer()
	if !ok || r.turn.CanEnd() {
		return false
	}
	if r.hasLegalMove(current.Hand) {
		return false
	}
	r.end(OutcomeLost)
	return true
}

func (r *Room) checkWin() bool {
	if r.phase != PhaseInProgress || r.CardsRemaining() > 0 {
		return false
	}
	r.end(OutcomeWon)
	return true
}

func (r *Room) hasLegalMove(hand []Card) bool {
	for _, c := range hand {
		for _, id := range PileIDs {
			if r.piles[id].CanPlace(c) {
				return true
			}
		}
	}
	return false
}

func (r *Room) end(outcome Outcome) {
	r.phase = PhaseEnded
	r.outcome = outcome
	r.endedAt = r.now()
}

// recompute sets the minimum for the turn that was just handed out. The deck
// does not change during a turn except through a bystander leaving, which
// must not move the minimum.
func (r *Room) recompute() {
	r.turn.MinCardsRequired = MinCardsFor(len(r.deck))
}

// seatWithCards returns start unless the deck is empty and that seat has no
// cards left, in which case the turn moves on to the next seat holding cards.
func (r *Room) seatWithCards(start int) int {
	if len(r.deck) > 0 {
		return start
	}
	n := len(r.players)
	for i := 0; i < n; i++ {
		j := (start + i) % n
		if len(r.players[j].Hand) > 0 {
			return j
		}
	}
	return start
}

func (r *Room) indexOf(playerID string) int {
	for i, p := range r.players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

func (r *Room) seat(playerID string) (*Player, int, error) {
	idx := r.indexOf(playerID)
	if idx < 0 {
		return nil, -1, ErrUnknownPlayer
	}
	return r.players[idx], idx, nil
}

// actingPlayer resolves a command issued during a game and enforces turn order.
func (r *Room) actingPlayer(playerID string) (*Player, int, error) {
	p, idx, err := r.seat(playerID)
	if err != nil {
		return nil, -1, err
	}
	if r.phase != PhaseInProgress {
		return nil, -1, ErrNotInProgress
	}
	if idx != r.turn.CurrentPlayerIndex {
		return nil, -1, ErrNotYourTurn
	}
	return p, idx, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
