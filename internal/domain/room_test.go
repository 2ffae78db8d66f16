package domain

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

// startedRoom seats the given ids (named after their upper-cased id), readies
// everyone and deals.
func startedRoom(t *testing.T, seed int64, ids ...string) *Room {
	t.Helper()
	r := lobbyRoom(t, seed, ids...)
	for _, id := range ids {
		if _, err := r.ToggleReady(id); err != nil {
			t.Fatalf("ToggleReady(%s) error: %v", id, err)
		}
	}
	if _, err := r.Start(ids[0]); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	return r
}

func lobbyRoom(t *testing.T, seed int64, ids ...string) *Room {
	t.Helper()
	r := NewRoom("room-1", rand.New(rand.NewSource(seed)))
	for _, id := range ids {
		if _, err := r.Join(id, strings.ToUpper(id)); err != nil {
			t.Fatalf("Join(%s) error: %v", id, err)
		}
	}
	return r
}

// totalCards counts every real card in the room.
func totalCards(r *Room) int {
	n := len(r.deck)
	for _, p := range r.players {
		n += len(p.Hand)
	}
	for _, p := range r.piles {
		n += p.Placed()
	}
	return n
}

func setTops(r *Room, up1, up2, down1, down2 Card) {
	r.piles[PileUp1].Cards = []Card{AscendingStart, up1}
	r.piles[PileUp2].Cards = []Card{AscendingStart, up2}
	r.piles[PileDown1].Cards = []Card{DescendingStart, down1}
	r.piles[PileDown2].Cards = []Card{DescendingStart, down2}
}

func firstLegal(r *Room, hand []Card) (Card, PileID, bool) {
	for _, c := range hand {
		for _, id := range PileIDs {
			if r.piles[id].CanPlace(c) {
				return c, id, true
			}
		}
	}
	return 0, "", false
}

func TestJoinRejections(t *testing.T) {
	t.Run("RoomFull", func(t *testing.T) {
		r := lobbyRoom(t, 1, "a", "b", "c", "d", "e", "f")
		if _, err := r.Join("g", "G"); !errors.Is(err, ErrRoomFull) {
			t.Fatalf("Join() error = %v, want ErrRoomFull", err)
		}
	})
	t.Run("GameStarted", func(t *testing.T) {
		r := startedRoom(t, 1, "a", "b")
		if _, err := r.Join("c", "C"); !errors.Is(err, ErrGameStarted) {
			t.Fatalf("Join() error = %v, want ErrGameStarted", err)
		}
	})
	t.Run("AlreadyJoined", func(t *testing.T) {
		r := lobbyRoom(t, 1, "a")
		if _, err := r.Join("a", "A again"); !errors.Is(err, ErrAlreadyJoined) {
			t.Fatalf("Join() error = %v, want ErrAlreadyJoined", err)
		}
	})
	t.Run("PendingSeatsCount", func(t *testing.T) {
		r := lobbyRoom(t, 1, "a", "b", "c", "d", "e")
		if err := r.CanJoin(1); !errors.Is(err, ErrRoomFull) {
			t.Fatalf("CanJoin(1) error = %v, want ErrRoomFull", err)
		}
	})
}

func TestStartPreconditions(t *testing.T) {
	t.Run("TooFewPlayers", func(t *testing.T) {
		r := lobbyRoom(t, 1, "a")
		r.ToggleReady("a")
		if _, err := r.Start("a"); !errors.Is(err, ErrTooFewPlayers) {
			t.Fatalf("Start() error = %v, want ErrTooFewPlayers", err)
		}
	})
	t.Run("NotAllReady", func(t *testing.T) {
		r := lobbyRoom(t, 1, "a", "b")
		r.ToggleReady("a")
		if _, err := r.Start("a"); !errors.Is(err, ErrNotAllReady) {
			t.Fatalf("Start() error = %v, want ErrNotAllReady", err)
		}
		if r.Phase() != PhaseNotStarted {
			t.Fatalf("phase = %s, want %s", r.Phase(), PhaseNotStarted)
		}
	})
	t.Run("ReadyToggles", func(t *testing.T) {
		r := lobbyRoom(t, 1, "a", "b")
		first, _ := r.ToggleReady("a")
		second, _ := r.ToggleReady("a")
		if !first.Ready || second.Ready {
			t.Fatalf("ready toggles = %t, %t, want true, false", first.Ready, second.Ready)
		}
	})
	t.Run("AlreadyStarted", func(t *testing.T) {
		r := startedRoom(t, 1, "a", "b")
		if _, err := r.Start("b"); !errors.Is(err, ErrGameStarted) {
			t.Fatalf("Start() error = %v, want ErrGameStarted", err)
		}
	})
}

func TestStartDealsHands(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		handSize int
	}{
		{name: "TwoPlayers", ids: []string{"a", "b"}, handSize: 7},
		{name: "ThreePlayers", ids: []string{"a", "b", "c"}, handSize: 6},
		{name: "SixPlayers", ids: []string{"a", "b", "c", "d", "e", "f"}, handSize: 6},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := startedRoom(t, 3, test.ids...)
			for _, p := range r.players {
				if len(p.Hand) != test.handSize {
					t.Fatalf("%s hand size = %d, want %d", p.ID, len(p.Hand), test.handSize)
				}
				for i := 1; i < len(p.Hand); i++ {
					if p.Hand[i-1] > p.Hand[i] {
						t.Fatalf("%s hand not sorted: %v", p.ID, p.Hand)
					}
				}
			}
			if got := r.DeckCount(); got != DeckSize-len(test.ids)*test.handSize {
				t.Fatalf("deck count = %d, want %d", got, DeckSize-len(test.ids)*test.handSize)
			}
			if got := totalCards(r); got != DeckSize {
				t.Fatalf("total cards = %d, want %d", got, DeckSize)
			}
			turn := r.Turn()
			if turn.CurrentPlayerIndex != 0 || turn.CardsPlayedThisTurn != 0 || turn.MinCardsRequired != 2 {
				t.Fatalf("turn = %+v, want index 0, played 0, min 2", turn)
			}
		})
	}
}

func TestEndTurnRequiresTwoCardsWhileDeckHasCards(t *testing.T) {
	r := startedRoom(t, 5, "a", "b")
	hand := r.players[0].Hand

	if _, err := r.PlayCard("a", hand[0], PileUp1); err != nil {
		t.Fatalf("first PlayCard() error: %v", err)
	}
	_, err := r.EndTurn("a")
	if !errors.Is(err, ErrMinimumNotMet) {
		t.Fatalf("EndTurn() error = %v, want ErrMinimumNotMet", err)
	}
	if !strings.Contains(err.Error(), "at least 2 cards") {
		t.Fatalf("EndTurn() error = %q, want the minimum of 2 stated", err)
	}

	if _, err := r.PlayCard("a", r.players[0].Hand[0], PileUp1); err != nil {
		t.Fatalf("second PlayCard() error: %v", err)
	}
	deckBefore := r.DeckCount()
	res, err := r.EndTurn("a")
	if err != nil {
		t.Fatalf("EndTurn() error: %v", err)
	}
	if res.CardsDrawn != 2 {
		t.Fatalf("CardsDrawn = %d, want 2", res.CardsDrawn)
	}
	if got := r.DeckCount(); got != deckBefore-2 {
		t.Fatalf("deck count = %d, want %d", got, deckBefore-2)
	}
	if got := len(r.players[0].Hand); got != 7 {
		t.Fatalf("hand size after draw = %d, want 7", got)
	}
	if res.PreviousPlayer != "A" || res.CurrentPlayer != "B" {
		t.Fatalf("turn passed %s -> %s, want A -> B", res.PreviousPlayer, res.CurrentPlayer)
	}
	if turn := r.Turn(); turn.CurrentPlayerIndex != 1 || turn.CardsPlayedThisTurn != 0 {
		t.Fatalf("turn = %+v, want index 1 with 0 played", turn)
	}
	if got := totalCards(r); got != DeckSize {
		t.Fatalf("total cards = %d, want %d", got, DeckSize)
	}
}

func TestEmptyDeckRelaxesMinimum(t *testing.T) {
	r := startedRoom(t, 5, "a", "b")
	r.deck = Deck{}
	r.recompute()

	if got := r.Turn().MinCardsRequired; got != 1 {
		t.Fatalf("MinCardsRequired = %d, want 1", got)
	}
	if _, err := r.EndTurn("a"); err == nil || !strings.Contains(err.Error(), "at least 1 card") {
		t.Fatalf("EndTurn() error = %v, want the minimum of 1 stated", err)
	}
	if _, err := r.PlayCard("a", r.players[0].Hand[0], PileUp1); err != nil {
		t.Fatalf("PlayCard() error: %v", err)
	}
	res, err := r.EndTurn("a")
	if err != nil {
		t.Fatalf("EndTurn() error: %v", err)
	}
	if res.CardsDrawn != 0 {
		t.Fatalf("CardsDrawn = %d, want 0", res.CardsDrawn)
	}
}

func TestPlayCardRejections(t *testing.T) {
	r := startedRoom(t, 9, "a", "b")
	setTops(r, 60, 60, 40, 40)
	r.players[0].Hand = []Card{45, 70}
	r.players[1].Hand = []Card{30}

	tests := []struct {
		name   string
		player string
		card   Card
		pile   PileID
		want   error
	}{
		{name: "NotYourTurn", player: "b", card: 30, pile: PileDown1, want: ErrNotYourTurn},
		{name: "NotInHand", player: "a", card: 30, pile: PileDown1, want: ErrCardNotInHand},
		{name: "Illegal", player: "a", card: 45, pile: PileUp1, want: ErrIllegalPlacement},
		{name: "UnknownPile", player: "a", card: 70, pile: PileID("middle"), want: ErrUnknownPile},
		{name: "UnknownPlayer", player: "z", card: 70, pile: PileUp1, want: ErrUnknownPlayer},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := r.PlayCard(test.player, test.card, test.pile); !errors.Is(err, test.want) {
				t.Fatalf("PlayCard() error = %v, want %v", err, test.want)
			}
		})
	}
	if r.Turn().CardsPlayedThisTurn != 0 {
		t.Fatalf("rejected plays changed the turn state: %+v", r.Turn())
	}
}

func TestPlayCardReportsPreviousAndPoop(t *testing.T) {
	r := startedRoom(t, 9, "a", "b")
	setTops(r, 10, 10, 90, 90)
	r.players[0].Hand = []Card{35, 80}

	res, err := r.PlayCard("a", 35, PileUp1)
	if err != nil {
		t.Fatalf("PlayCard() error: %v", err)
	}
	if res.PreviousCard != 10 || !res.IsPoopMove {
		t.Fatalf("result = %+v, want previous 10 and a poop move", res)
	}
	if !r.poop[PileUp1] {
		t.Fatalf("poop effect not recorded for %s", PileUp1)
	}

	res, err = r.PlayCard("a", 80, PileDown1)
	if err != nil {
		t.Fatalf("PlayCard() error: %v", err)
	}
	if res.PreviousCard != 90 || res.IsPoopMove {
		t.Fatalf("result = %+v, want previous 90 and no poop move", res)
	}
	if res.CardsPlayedThisTurn != 2 {
		t.Fatalf("CardsPlayedThisTurn = %d, want 2", res.CardsPlayedThisTurn)
	}
}

func TestPlayingLastCardWins(t *testing.T) {
	r := startedRoom(t, 2, "a", "b")
	r.deck = Deck{}
	r.players[0].Hand = []Card{50}
	r.players[1].Hand = nil
	r.recompute()

	res, err := r.PlayCard("a", 50, PileUp1)
	if err != nil {
		t.Fatalf("PlayCard() error: %v", err)
	}
	if !res.Won || res.Defeated {
		t.Fatalf("result = %+v, want won and not defeated", res)
	}
	if r.Phase() != PhaseEnded || r.Outcome() != OutcomeWon {
		t.Fatalf("phase = %s outcome = %s, want ended/won", r.Phase(), r.Outcome())
	}
	if r.EndedAt().IsZero() {
		t.Fatalf("EndedAt not recorded")
	}
}

func TestBlockedPlayerLoses(t *testing.T) {
	r := startedRoom(t, 4, "a", "b")
	setTops(r, 60, 60, 40, 40)
	r.players[1].Hand = []Card{45, 55}
	r.turn.CardsPlayedThisTurn = 2

	res, err := r.EndTurn("a")
	if err != nil {
		t.Fatalf("EndTurn() error: %v", err)
	}
	if !res.Defeated {
		t.Fatalf("EndTurn() Defeated = false, want true")
	}
	if r.Phase() != PhaseEnded || r.Outcome() != OutcomeLost {
		t.Fatalf("phase = %s outcome = %s, want ended/lost", r.Phase(), r.Outcome())
	}
}

func TestDefeatCheckSkippedOnceMinimumMet(t *testing.T) {
	r := startedRoom(t, 4, "a", "b")
	setTops(r, 60, 60, 40, 40)
	r.players[0].Hand = []Card{45, 55}
	r.turn.CardsPlayedThisTurn = 2

	if r.checkDefeat() {
		t.Fatalf("checkDefeat() = true with the minimum already met")
	}
	if r.Phase() != PhaseInProgress {
		t.Fatalf("phase = %s, want %s", r.Phase(), PhaseInProgress)
	}
}

func TestJumpBackSavesBlockedHand(t *testing.T) {
	r := startedRoom(t, 4, "a", "b")
	setTops(r, 60, 60, 40, 40)
	r.players[0].Hand = []Card{50}

	if r.checkDefeat() {
		t.Fatalf("checkDefeat() = true although 50 fits both jump-backs")
	}
}

func TestEmptyHandedPlayerIsSkippedOnceDeckRunsOut(t *testing.T) {
	r := startedRoom(t, 4, "a", "b", "c")
	r.deck = Deck{}
	r.players[1].Hand = nil
	r.recompute()

	if _, err := r.PlayCard("a", r.players[0].Hand[0], PileUp1); err != nil {
		t.Fatalf("PlayCard() error: %v", err)
	}
	res, err := r.EndTurn("a")
	if err != nil {
		t.Fatalf("EndTurn() error: %v", err)
	}
	if res.CurrentPlayerID != "c" || res.Defeated {
		t.Fatalf("result = %+v, want c to take the turn without defeat", res)
	}
}

func TestLeaveCurrentPlayerMidTurn(t *testing.T) {
	r := startedRoom(t, 6, "a", "b", "c")
	if _, err := r.PlayCard("a", r.players[0].Hand[0], PileUp1); err != nil {
		t.Fatalf("PlayCard() error: %v", err)
	}
	deckBefore := r.DeckCount()

	res, err := r.Leave("a")
	if err != nil {
		t.Fatalf("Leave() error: %v", err)
	}
	if !res.PlayerRemoved || !res.WasCurrentPlayer {
		t.Fatalf("result = %+v, want removed current player", res)
	}
	if res.NewCurrentPlayer != "B" {
		t.Fatalf("NewCurrentPlayer = %q, want B", res.NewCurrentPlayer)
	}
	turn := r.Turn()
	if turn.CurrentPlayerIndex != 0 || r.players[0].ID != "b" {
		t.Fatalf("current = %d (%s), want index 0 held by b", turn.CurrentPlayerIndex, r.players[turn.CurrentPlayerIndex].ID)
	}
	if turn.CardsPlayedThisTurn != 0 {
		t.Fatalf("CardsPlayedThisTurn = %d, want 0", turn.CardsPlayedThisTurn)
	}
	if res.ReturnedCards != 5 || r.DeckCount() != deckBefore+5 {
		t.Fatalf("returned %d cards, deck %d -> %d", res.ReturnedCards, deckBefore, r.DeckCount())
	}
	if got := totalCards(r); got != DeckSize {
		t.Fatalf("total cards = %d, want %d", got, DeckSize)
	}
}

func TestLeaveAdjustsCurrentIndex(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		leaver    string
		wantIndex int
		wantID    string
	}{
		{name: "EarlierPlayer", current: 2, leaver: "a", wantIndex: 1, wantID: "c"},
		{name: "LaterPlayer", current: 0, leaver: "b", wantIndex: 0, wantID: "a"},
		{name: "LastSeatWraps", current: 2, leaver: "c", wantIndex: 0, wantID: "a"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := startedRoom(t, 8, "a", "b", "c")
			r.turn.CurrentPlayerIndex = test.current
			if _, err := r.Leave(test.leaver); err != nil {
				t.Fatalf("Leave() error: %v", err)
			}
			idx := r.Turn().CurrentPlayerIndex
			if idx != test.wantIndex || r.players[idx].ID != test.wantID {
				t.Fatalf("current = %d (%s), want %d (%s)", idx, r.players[idx].ID, test.wantIndex, test.wantID)
			}
			if got := totalCards(r); got != DeckSize {
				t.Fatalf("total cards = %d, want %d", got, DeckSize)
			}
		})
	}
}

func TestLeaveLobbyAndEmptyRoom(t *testing.T) {
	r := lobbyRoom(t, 1, "a", "b")
	res, err := r.Leave("a")
	if err != nil {
		t.Fatalf("Leave() error: %v", err)
	}
	if res.WasCurrentPlayer || res.RoomEmpty || r.PlayerCount() != 1 {
		t.Fatalf("result = %+v, count %d", res, r.PlayerCount())
	}
	res, _ = r.Leave("b")
	if !res.RoomEmpty || !r.Empty() {
		t.Fatalf("room should be empty after the last leave")
	}
	if _, err := r.Leave("b"); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("second Leave() error = %v, want ErrUnknownPlayer", err)
	}
}

func TestCommandsGatedByPhase(t *testing.T) {
	lobby := lobbyRoom(t, 1, "a", "b")
	ended := startedRoom(t, 1, "a", "b")
	ended.end(OutcomeLost)

	for name, r := range map[string]*Room{"Lobby": lobby, "Ended": ended} {
		t.Run(name, func(t *testing.T) {
			if _, err := r.PlayCard("a", 50, PileUp1); !errors.Is(err, ErrNotInProgress) {
				t.Fatalf("PlayCard() error = %v, want ErrNotInProgress", err)
			}
			if _, err := r.EndTurn("a"); !errors.Is(err, ErrNotInProgress) {
				t.Fatalf("EndTurn() error = %v, want ErrNotInProgress", err)
			}
			if _, err := r.ToggleWarning("a", PileUp1); !errors.Is(err, ErrNotInProgress) {
				t.Fatalf("ToggleWarning() error = %v, want ErrNotInProgress", err)
			}
		})
	}

	if _, err := ended.ToggleReady("a"); !errors.Is(err, ErrNotInLobby) {
		t.Fatalf("ToggleReady() after end error = %v, want ErrNotInLobby", err)
	}
	if _, err := ended.Join("c", "C"); !errors.Is(err, ErrGameStarted) {
		t.Fatalf("Join() after end error = %v, want ErrGameStarted", err)
	}
}

func TestCardConservationAcrossPlay(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		r := startedRoom(t, seed, "a", "b", "c", "d")
		choices := rand.New(rand.NewSource(seed * 31))

		for step := 0; step < 400 && r.Phase() == PhaseInProgress; step++ {
			if seed%4 == 0 && step == 15 {
				if _, err := r.Leave(r.PlayerIDs()[choices.Intn(r.PlayerCount())]); err != nil {
					t.Fatalf("seed %d: Leave() error: %v", seed, err)
				}
			} else {
				current, _ := r.CurrentPlayer()
				card, pile, ok := firstLegal(r, current.Hand)
				switch {
				case r.Turn().CanEnd() && (!ok || choices.Intn(3) == 0):
					if _, err := r.EndTurn(current.ID); err != nil {
						t.Fatalf("seed %d: EndTurn() error: %v", seed, err)
					}
				case ok:
					if _, err := r.PlayCard(current.ID, card, pile); err != nil {
						t.Fatalf("seed %d: PlayCard() error: %v", seed, err)
					}
				default:
					t.Fatalf("seed %d: current player is stuck but the game did not end", seed)
				}
			}
			if got := totalCards(r); got != DeckSize {
				t.Fatalf("seed %d step %d: total cards = %d, want %d", seed, step, got, DeckSize)
			}
		}
	}
}

// emptyDeckTurn puts three players into a late game: the deck is gone, the
// piles sit at 60/60/40/40 and a is to move holding {45, 61}.
func emptyDeckTurn(t *testing.T) *Room {
	t.Helper()
	r := startedRoom(t, 3, "a", "b", "c")
	r.deck = Deck{}
	setTops(r, 60, 60, 40, 40)
	r.players[0].Hand = []Card{45, 61}
	r.players[1].Hand = []Card{20, 30}
	r.players[2].Hand = []Card{70}
	r.turn = TurnState{}
	r.recompute()
	return r
}

func TestLeaveByBystanderKeepsTurn(t *testing.T) {
	tests := []struct {
		name        string
		playFirst   bool
		leaver      string
		wantIndex   int
		wantMin     int
		wantCanEnd  bool
		wantDeck    int
		wantPlayers int
	}{
		{name: "AfterMinimumMet", playFirst: true, leaver: "b", wantIndex: 0, wantMin: 1, wantCanEnd: true, wantDeck: 2, wantPlayers: 2},
		{name: "BeforeAnyPlay", leaver: "b", wantIndex: 0, wantMin: 1, wantCanEnd: false, wantDeck: 2, wantPlayers: 2},
		{name: "LastSeat", playFirst: true, leaver: "c", wantIndex: 0, wantMin: 1, wantCanEnd: true, wantDeck: 1, wantPlayers: 2},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := emptyDeckTurn(t)
			if test.playFirst {
				if _, err := r.PlayCard("a", 61, PileUp1); err != nil {
					t.Fatalf("PlayCard() error: %v", err)
				}
			}

			res, err := r.Leave(test.leaver)
			if err != nil {
				t.Fatalf("Leave() error: %v", err)
			}
			if res.WasCurrentPlayer || res.NewCurrentPlayer != "" || res.Defeated {
				t.Fatalf("result = %+v, want a bystander leave without defeat", res)
			}
			if r.Phase() != PhaseInProgress {
				t.Fatalf("phase = %s, want %s", r.Phase(), PhaseInProgress)
			}
			turn := r.Turn()
			if turn.CurrentPlayerIndex != test.wantIndex || turn.MinCardsRequired != test.wantMin || turn.CanEnd() != test.wantCanEnd {
				t.Fatalf("turn = %+v canEnd=%t, want index %d min %d canEnd=%t", turn, turn.CanEnd(), test.wantIndex, test.wantMin, test.wantCanEnd)
			}
			if r.DeckCount() != test.wantDeck || r.PlayerCount() != test.wantPlayers {
				t.Fatalf("deck %d players %d, want %d and %d", r.DeckCount(), r.PlayerCount(), test.wantDeck, test.wantPlayers)
			}
		})
	}
}

func TestBystanderLeaveMinimumHoldsForRestOfTurn(t *testing.T) {
	r := emptyDeckTurn(t)
	if _, err := r.Leave("b"); err != nil {
		t.Fatalf("Leave() error: %v", err)
	}
	if _, err := r.PlayCard("a", 61, PileUp1); err != nil {
		t.Fatalf("PlayCard() error: %v", err)
	}
	if got := r.Turn().MinCardsRequired; got != 1 {
		t.Fatalf("MinCardsRequired after play = %d, want 1", got)
	}

	res, err := r.EndTurn("a")
	if err != nil {
		t.Fatalf("EndTurn() error: %v", err)
	}
	if res.CardsDrawn != 1 || res.CurrentPlayerID != "c" || res.Defeated {
		t.Fatalf("result = %+v, want a draw of 1 and c to move", res)
	}
	// The returned cards count again from the next turn on.
	if got := r.Turn().MinCardsRequired; got != 2 {
		t.Fatalf("MinCardsRequired for c = %d, want 2", got)
	}
}

func TestLeaveCurrentPlayerRunsDefeatCheck(t *testing.T) {
	r := emptyDeckTurn(t)
	r.players[0].Hand = []Card{61}
	r.players[1].Hand = []Card{45}

	res, err := r.Leave("a")
	if err != nil {
		t.Fatalf("Leave() error: %v", err)
	}
	if res.NewCurrentPlayer != "B" || !res.Defeated {
		t.Fatalf("result = %+v, want B blocked and the game lost", res)
	}
	if r.Phase() != PhaseEnded || r.Outcome() != OutcomeLost {
		t.Fatalf("phase %s outcome %s, want ended and lost", r.Phase(), r.Outcome())
	}
}

func TestLeaveAfterGameEnded(t *testing.T) {
	r := startedRoom(t, 2, "a", "b", "c")
	r.end(OutcomeLost)
	deck := r.DeckCount()

	res, err := r.Leave("b")
	if err != nil {
		t.Fatalf("Leave() error: %v", err)
	}
	if res.WasCurrentPlayer || res.ReturnedCards != 0 || res.Defeated || res.RoomEmpty {
		t.Fatalf("result = %+v, want a plain removal", res)
	}
	if r.Phase() != PhaseEnded || r.Outcome() != OutcomeLost || r.DeckCount() != deck {
		t.Fatalf("phase %s outcome %s deck %d, want the finished game untouched", r.Phase(), r.Outcome(), r.DeckCount())
	}
	if r.PlayerCount() != 2 {
		t.Fatalf("PlayerCount() = %d, want 2", r.PlayerCount())
	}
}
