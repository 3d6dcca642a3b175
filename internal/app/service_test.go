package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"cribbage/internal/bot"
	"cribbage/internal/domain"
	"cribbage/internal/ports"
	"cribbage/internal/ports/memory"
)

var (
	alice = ports.Identity{PlayerID: "alice", Display: "Alice"}
	bob   = ports.Identity{PlayerID: "bob", Display: "Bob"}
	carol = ports.Identity{PlayerID: "carol", Display: "Carol"}
)

var testNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestService(store ports.GameStore, seed int64, opts ...Option) *Service {
	ids := 0
	base := []Option{
		WithRand(rand.New(rand.NewSource(seed))),
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("game-%d", ids)
		}),
	}
	return NewService(store, Settings{}, append(base, opts...)...)
}

// startHumanGame creates a game for alice, seats bob and returns the stored document.
func startHumanGame(t *testing.T, svc *Service) *domain.Game {
	t.Helper()
	ctx := context.Background()
	g, err := svc.CreateGame(ctx, alice, CreateRequest{Opponent: OpponentHuman})
	if err != nil {
		t.Fatalf("create game error: %v", err)
	}
	g, _, err = svc.JoinGame(ctx, g.ID, bob)
	if err != nil {
		t.Fatalf("join game error: %v", err)
	}
	return g
}

func identityAt(g *domain.Game, seat domain.Seat) ports.Identity {
	p := g.Players[seat]
	return ports.Identity{PlayerID: p.ID, Display: p.Display}
}

func TestCreateGame_Human(t *testing.T) {
	store := memory.NewGameStore()
	svc := newTestService(store, 1)

	g, err := svc.CreateGame(context.Background(), alice, CreateRequest{})
	if err != nil {
		t.Fatalf("create game error: %v", err)
	}
	if g.ID != "game-1" || g.Version != 1 || g.Status != domain.StatusWaiting {
		t.Fatalf("game = %s v%d %s", g.ID, g.Version, g.Status)
	}
	if g.Players[0].ID != "alice" || g.Players[1] != nil || g.Winner != domain.NoSeat {
		t.Fatalf("players = %+v winner %d", g.Players, g.Winner)
	}
	if g.Options.TargetScore != domain.DefaultTargetScore || g.Options.MugginsPolicy != domain.PolicyNoPenalty {
		t.Fatalf("options = %+v", g.Options)
	}
	if store.Len() != 1 {
		t.Fatalf("store has %d games", store.Len())
	}
}

func TestCreateGame_Computer(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		svc := newTestService(memory.NewGameStore(), seed)
		g, err := svc.CreateGame(context.Background(), alice, CreateRequest{Opponent: OpponentComputer, Difficulty: "expert"})
		if err != nil {
			t.Fatalf("seed %d: create game error: %v", seed, err)
		}
		if g.Status != domain.StatusActive || !g.Players[1].Computer {
			t.Fatalf("seed %d: status %s players %+v", seed, g.Status, g.Players[1])
		}
		if g.Options.Difficulty != domain.DifficultyExpert {
			t.Fatalf("seed %d: difficulty %s", seed, g.Options.Difficulty)
		}

		// The computer deals and discards on its own; afterwards it is alice's move.
		switch st := g.State.Current.(type) {
		case domain.DealingState:
			if g.State.Dealer != 0 {
				t.Fatalf("seed %d: computer left its own deal", seed)
			}
		case domain.DiscardingState:
			if !st.Submitted[1] || st.Submitted[0] {
				t.Fatalf("seed %d: submitted %v", seed, st.Submitted)
			}
		default:
			t.Fatalf("seed %d: unexpected phase %s", seed, g.State.Phase())
		}
	}
}

func TestCreateGame_RejectsBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		creator ports.Identity
		req     CreateRequest
		want    error
	}{
		{name: "Anonymous", creator: ports.Identity{}, req: CreateRequest{}, want: domain.ErrNotParticipant},
		{name: "Unknown opponent", creator: alice, req: CreateRequest{Opponent: "robot"}, want: domain.ErrInvalidPayload},
		{name: "Unknown difficulty", creator: alice, req: CreateRequest{Difficulty: "godlike"}, want: domain.ErrInvalidPayload},
		{name: "Negative target", creator: alice, req: CreateRequest{TargetScore: -5}, want: domain.ErrInvalidPayload},
		{name: "Unknown policy", creator: alice, req: CreateRequest{MugginsPolicy: "double"}, want: domain.ErrInvalidPayload},
		{name: "Penalty without points", creator: alice, req: CreateRequest{MugginsPolicy: domain.PolicyFixedPenalty}, want: domain.ErrInvalidPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewGameStore()
			svc := newTestService(store, 1)
			if _, err := svc.CreateGame(context.Background(), tt.creator, tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if store.Len() != 0 {
				t.Fatalf("rejected game was stored")
			}
		})
	}
}

func TestJoinGame(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewGameStore(), 7)
	g, err := svc.CreateGame(ctx, alice, CreateRequest{})
	if err != nil {
		t.Fatal(err)
	}

	joined, events, err := svc.JoinGame(ctx, g.ID, bob)
	if err != nil {
		t.Fatalf("join error: %v", err)
	}
	if joined.Status != domain.StatusActive || joined.Version != 2 || joined.State.Phase() != domain.PhaseDealing {
		t.Fatalf("joined = %s v%d %s", joined.Status, joined.Version, joined.State.Phase())
	}
	if len(events) != 2 || events[0].Kind != EventPlayerJoined {
		t.Fatalf("events = %+v", events)
	}

	again, events, err := svc.JoinGame(ctx, g.ID, bob)
	if err != nil || again.Version != 2 || len(events) != 0 {
		t.Fatalf("second join: v%d events %d err %v", again.Version, len(events), err)
	}
	if _, _, err := svc.JoinGame(ctx, g.ID, carol); !errors.Is(err, domain.ErrGameFull) {
		t.Fatalf("third player: err = %v", err)
	}
	if _, _, err := svc.JoinGame(ctx, "missing", carol); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("missing game: err = %v", err)
	}
}

func TestJoinGame_AfterForfeit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewGameStore(), 7)
	g, _ := svc.CreateGame(ctx, alice, CreateRequest{})

	res, err := svc.Forfeit(ctx, g.ID, alice)
	if err != nil {
		t.Fatalf("forfeit error: %v", err)
	}
	if res.Game.Status != domain.StatusAbandoned || res.Game.Winner != domain.NoSeat {
		t.Fatalf("status %s winner %d", res.Game.Status, res.Game.Winner)
	}
	if _, _, err := svc.JoinGame(ctx, g.ID, bob); !errors.Is(err, domain.ErrGameNotActive) {
		t.Fatalf("join abandoned game: err = %v", err)
	}
}

func TestSubmit_ValidationOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewGameStore(), 3)

	waiting, _ := svc.CreateGame(ctx, carol, CreateRequest{})
	g := startHumanGame(t, svc)
	dealer := identityAt(g, g.State.Dealer)
	pone := identityAt(g, g.State.Pone())

	tests := []struct {
		name     string
		gameID   string
		actor    ports.Identity
		moveType string
		payload  string
		want     error
	}{
		{name: "Stranger", gameID: g.ID, actor: carol, moveType: "deal", want: domain.ErrNotParticipant},
		{name: "Waiting game", gameID: waiting.ID, actor: carol, moveType: "deal", want: domain.ErrGameNotActive},
		{name: "Pone deals", gameID: g.ID, actor: pone, moveType: "deal", want: domain.ErrNotYourTurn},
		{name: "Dealer plays", gameID: g.ID, actor: dealer, moveType: "play", payload: `{"card":"5H"}`, want: domain.ErrIllegalMoveForPhase},
		{name: "Unknown move", gameID: g.ID, actor: dealer, moveType: "shuffle", want: domain.ErrInvalidPayload},
		{name: "Missing game", gameID: "nope", actor: dealer, moveType: "deal", want: domain.ErrGameNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Submit(ctx, tt.gameID, tt.actor, tt.moveType, []byte(tt.payload))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if res.Success || !errors.Is(res.Err, tt.want) {
				t.Fatalf("result = %+v", res)
			}
		})
	}

	if _, err := svc.Submit(ctx, g.ID, dealer, "deal", nil); err != nil {
		t.Fatalf("deal error: %v", err)
	}
	stored, _ := svc.store.Get(ctx, g.ID)
	notHeld := stored.State.Hands[g.State.Pone()]
	payload := fmt.Sprintf(`{"cards":[%q,%q]}`, notHeld[0], notHeld[1])
	if _, err := svc.Submit(ctx, g.ID, dealer, "discard", []byte(payload)); !errors.Is(err, domain.ErrInvalidCard) {
		t.Fatalf("discard of opponent cards: err = %v", err)
	}
	if _, err := svc.Submit(ctx, g.ID, dealer, "discard", []byte(`{"cards":["5H"]}`)); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("short discard: err = %v", err)
	}
	after, _ := svc.store.Get(ctx, g.ID)
	if after.Version != stored.Version {
		t.Fatalf("rejected moves changed the version: %d -> %d", stored.Version, after.Version)
	}
}

func TestApplyMove_RejectionLeavesGameUntouched(t *testing.T) {
	svc := newTestService(memory.NewGameStore(), 5)
	g := startHumanGame(t, svc)
	dealer := g.Players[g.State.Dealer].ID
	res := svc.ApplyMove(g, dealer, "deal", nil)
	if !res.Success {
		t.Fatalf("deal: %v", res.Err)
	}
	g = res.Game

	before, _ := json.Marshal(g)
	opponentCard := g.State.Hands[g.State.Pone()][0]
	res = svc.ApplyMove(g, dealer, "discard", json.RawMessage(fmt.Sprintf(`{"cards":[%q,%q]}`, g.State.Hands[g.State.Dealer][0], opponentCard)))
	if res.Success || !errors.Is(res.Err, domain.ErrInvalidCard) {
		t.Fatalf("result = %+v", res)
	}
	after, _ := json.Marshal(g)
	if string(before) != string(after) {
		t.Fatalf("rejected move modified the game")
	}
}

func TestApplyMove_Bookkeeping(t *testing.T) {
	svc := newTestService(memory.NewGameStore(), 5)
	g := startHumanGame(t, svc)
	dealerSeat := g.State.Dealer
	dealer := g.Players[dealerSeat]

	res := svc.ApplyMove(g, dealer.ID, "deal", nil)
	if !res.Success {
		t.Fatalf("deal: %v", res.Err)
	}
	next := res.Game
	if next == g || next.Version != g.Version+1 || len(next.History) != len(g.History)+1 {
		t.Fatalf("version %d history %d", next.Version, len(next.History))
	}
	rec := next.History[len(next.History)-1]
	if rec.Seq != 1 || rec.Seat != dealerSeat || rec.PlayerID != dealer.ID || rec.Type != domain.MoveDeal || !rec.At.Equal(testNow) {
		t.Fatalf("history record = %+v", rec)
	}
	if res.Description != dealer.Display+" dealt round 1" {
		t.Fatalf("description = %q", res.Description)
	}
	if res.NextTurn != "" {
		t.Fatalf("both players discard, next turn = %q", res.NextTurn)
	}
	if !next.Players[dealerSeat].LastSeen.Equal(testNow) {
		t.Fatalf("last seen not updated")
	}
	kinds := []EventKind{}
	for _, ev := range res.Events {
		kinds = append(kinds, ev.Kind)
	}
	if !reflect.DeepEqual(kinds, []EventKind{EventMoveApplied, EventPhaseChanged}) {
		t.Fatalf("events = %v", kinds)
	}
}

func TestDeckSecretReproducesDeal(t *testing.T) {
	deal := func() [2][]domain.Card {
		svc := newTestService(memory.NewGameStore(), 11, WithDeckSecret([]byte("audit")))
		g := startHumanGame(t, svc)
		res := svc.ApplyMove(g, g.Players[g.State.Dealer].ID, "deal", nil)
		if !res.Success {
			t.Fatalf("deal: %v", res.Err)
		}
		return res.Game.State.Hands
	}
	if a, b := deal(), deal(); !reflect.DeepEqual(a, b) {
		t.Fatalf("same secret, game and round dealt %v and %v", a, b)
	}
}

// playOut drives every human seat with a normal agent until the game ends and
// checks that the score deltas add up.
func playOut(t *testing.T, svc *Service, gameID string) *domain.Game {
	t.Helper()
	ctx := context.Background()
	var totals [2]int
	agents := [2]*bot.Agent{
		{Seat: 0, Strategy: &bot.NormalBot{}},
		{Seat: 1, Strategy: &bot.NormalBot{}},
	}
	for moves := 0; moves < 2000; moves++ {
		g, err := svc.store.Get(ctx, gameID)
		if err != nil {
			t.Fatal(err)
		}
		if g.Status.Terminal() {
			if totals != g.Scores {
				t.Fatalf("score deltas add to %v, scores are %v", totals, g.Scores)
			}
			if g.Version != int64(len(g.History))+2 && !g.Players[1].Computer {
				t.Fatalf("version %d after %d moves", g.Version, len(g.History))
			}
			return g
		}
		acted := false
		for _, a := range agents {
			if g.Players[a.Seat].Computer {
				continue
			}
			m, ok := a.NextMove(g)
			if !ok {
				continue
			}
			res, err := svc.SubmitMove(ctx, gameID, identityAt(g, a.Seat), m)
			if err != nil {
				t.Fatalf("seat %d %s during %s: %v", a.Seat, m.Type(), g.State.Phase(), err)
			}
			for _, r := range append([]MoveResult{res}, res.ComputerMoves...) {
				totals[0] += r.ScoreDelta[0]
				totals[1] += r.ScoreDelta[1]
			}
			acted = true
			break
		}
		if !acted {
			t.Fatalf("nobody can move during %s", g.State.Phase())
		}
	}
	t.Fatalf("game %s did not finish", gameID)
	return nil
}

func TestSubmit_PlaysHumanGame(t *testing.T) {
	svc := newTestService(memory.NewGameStore(), 21)
	g := startHumanGame(t, svc)
	final := playOut(t, svc, g.ID)
	if final.Status != domain.StatusCompleted || final.Scores[final.Winner] < domain.DefaultTargetScore {
		t.Fatalf("status %s scores %v winner %d", final.Status, final.Scores, final.Winner)
	}
	for i := 1; i < len(final.History); i++ {
		if final.History[i].Seq != final.History[i-1].Seq+1 {
			t.Fatalf("history sequence broken at %d", i)
		}
	}
}

func TestSubmit_PlaysComputerGame(t *testing.T) {
	for _, d := range []string{"normal", "expert"} {
		t.Run(d, func(t *testing.T) {
			svc := newTestService(memory.NewGameStore(), 8)
			g, err := svc.CreateGame(context.Background(), alice, CreateRequest{Opponent: OpponentComputer, Difficulty: d, TargetScore: 61})
			if err != nil {
				t.Fatal(err)
			}
			final := playOut(t, svc, g.ID)
			if final.Status != domain.StatusCompleted || final.Scores[final.Winner] < 61 {
				t.Fatalf("status %s scores %v", final.Status, final.Scores)
			}
		})
	}
}

func TestSubmit_BuildsStrategyOncePerDifficulty(t *testing.T) {
	built := make(map[domain.Difficulty]int)
	factory := func(d domain.Difficulty) (bot.Strategy, error) {
		built[d]++
		return bot.NewStrategy(d)
	}
	svc := newTestService(memory.NewGameStore(), 5, WithStrategies(factory))
	ctx := context.Background()
	for _, d := range []string{"normal", "expert", "normal"} {
		g, err := svc.CreateGame(ctx, alice, CreateRequest{Opponent: OpponentComputer, Difficulty: d, TargetScore: 31})
		if err != nil {
			t.Fatal(err)
		}
		playOut(t, svc, g.ID)
	}
	if built[domain.DifficultyNormal] != 1 || built[domain.DifficultyExpert] != 1 || len(built) != 2 {
		t.Fatalf("strategies built = %v", built)
	}
}

func TestSubmit_StrategyErrorStopsComputer(t *testing.T) {
	failing := func(domain.Difficulty) (bot.Strategy, error) {
		return nil, errors.New("no strategy")
	}
	svc := newTestService(memory.NewGameStore(), 2, WithStrategies(failing))
	g, err := svc.CreateGame(context.Background(), alice, CreateRequest{Opponent: OpponentComputer})
	if err != nil {
		t.Fatal(err)
	}
	if g.Status != domain.StatusActive || len(g.History) != 0 {
		t.Fatalf("status %s history %d", g.Status, len(g.History))
	}
}

func TestSubmit_ComputerCallsMuggins(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 20; seed++ {
		svc := newTestService(memory.NewGameStore(), seed)
		g, err := svc.CreateGame(ctx, alice, CreateRequest{Opponent: OpponentComputer})
		if err != nil {
			t.Fatal(err)
		}
		me := &bot.Agent{Seat: 0, Strategy: &bot.NormalBot{}}
		for moves := 0; moves < 200; moves++ {
			g, _ = svc.store.Get(ctx, g.ID)
			if g.Status != domain.StatusActive {
				break
			}
			m, ok := me.NextMove(g)
			if !ok {
				t.Fatalf("seed %d: alice has no move during %s", seed, g.State.Phase())
			}
			if claim, isClaim := m.(domain.ClaimMove); isClaim && claim.Points > 0 {
				res, err := svc.SubmitMove(ctx, g.ID, alice, domain.ClaimMove{Points: 0})
				if err != nil {
					t.Fatalf("seed %d: claim: %v", seed, err)
				}
				if len(res.ComputerMoves) == 0 {
					t.Fatalf("seed %d: computer did not answer the claim", seed)
				}
				answer := res.ComputerMoves[0]
				last := answer.Game.History[len(answer.Game.History)-1]
				if last.Type != domain.MoveMuggins || answer.ScoreDelta[1] != claim.Points || answer.ScoreDelta[0] != 0 {
					t.Fatalf("seed %d: answer %s delta %v, want muggins for %d", seed, last.Type, answer.ScoreDelta, claim.Points)
				}
				return
			}
			if _, err := svc.SubmitMove(ctx, g.ID, alice, m); err != nil {
				t.Fatalf("seed %d: %s: %v", seed, m.Type(), err)
			}
		}
	}
	t.Fatal("no scoring hand to under-claim")
}

func TestForfeit_ActiveGame(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewGameStore(), 9)
	g := startHumanGame(t, svc)

	res, err := svc.Forfeit(ctx, g.ID, bob)
	if err != nil {
		t.Fatalf("forfeit error: %v", err)
	}
	if res.Game.Status != domain.StatusAbandoned || res.Game.Winner != 0 {
		t.Fatalf("status %s winner %d", res.Game.Status, res.Game.Winner)
	}
	dealer := identityAt(g, g.State.Dealer)
	if _, err := svc.Submit(ctx, g.ID, dealer, "deal", nil); !errors.Is(err, domain.ErrGameNotActive) {
		t.Fatalf("move after forfeit: err = %v", err)
	}
	if _, err := svc.Forfeit(ctx, g.ID, alice); !errors.Is(err, domain.ErrGameNotActive) {
		t.Fatalf("second forfeit: err = %v", err)
	}
	if _, err := svc.Forfeit(ctx, g.ID, carol); !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("stranger forfeit: err = %v", err)
	}
	if _, err := svc.Submit(ctx, g.ID, carol, "bogus", nil); !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("stranger move: err = %v", err)
	}
	if _, err := svc.Submit(ctx, g.ID, bob, "bogus", nil); !errors.Is(err, domain.ErrGameNotActive) {
		t.Fatalf("unknown move after forfeit: err = %v", err)
	}
}

// racingStore lets another writer slip in before the first Put.
type racingStore struct {
	ports.GameStore
	race func()
	puts int
}

func (s *racingStore) Put(ctx context.Context, g *domain.Game, expectedVersion int64) error {
	s.puts++
	if s.race != nil {
		race := s.race
		s.race = nil
		race()
	}
	return s.GameStore.Put(ctx, g, expectedVersion)
}

func discardBody(g *domain.Game, seat domain.Seat) []byte {
	hand := g.State.Hands[seat]
	return []byte(fmt.Sprintf(`{"cards":[%q,%q]}`, hand[0], hand[1]))
}

func TestSubmit_RetriesSimultaneousDiscards(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewGameStore()
	store := &racingStore{GameStore: inner}
	svc := newTestService(store, 13)
	other := newTestService(inner, 14)

	g := startHumanGame(t, svc)
	if _, err := svc.Submit(ctx, g.ID, identityAt(g, g.State.Dealer), "deal", nil); err != nil {
		t.Fatal(err)
	}
	dealt, _ := inner.Get(ctx, g.ID)

	store.race = func() {
		if _, err := other.Submit(ctx, g.ID, bob, "discard", discardBody(dealt, 1)); err != nil {
			t.Errorf("racing discard: %v", err)
		}
	}
	store.puts = 0
	res, err := svc.Submit(ctx, g.ID, alice, "discard", discardBody(dealt, 0))
	if err != nil {
		t.Fatalf("discard after conflict: %v", err)
	}
	if store.puts != 2 {
		t.Fatalf("puts = %d, want a retry", store.puts)
	}
	if res.Game.State.Phase() != domain.PhaseCutting || res.Game.Version != dealt.Version+2 {
		t.Fatalf("phase %s version %d", res.Game.State.Phase(), res.Game.Version)
	}
}

// conflictStore rejects every write.
type conflictStore struct {
	ports.GameStore
	puts int
}

func (s *conflictStore) Put(context.Context, *domain.Game, int64) error {
	s.puts++
	return fmt.Errorf("%w: always", domain.ErrConcurrencyConflict)
}

func TestSubmit_GivesUpAfterRetries(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewGameStore()
	setup := newTestService(inner, 15)
	g := startHumanGame(t, setup)

	store := &conflictStore{GameStore: inner}
	svc := NewService(store, Settings{ConflictRetries: 2})
	_, err := svc.Submit(ctx, g.ID, identityAt(g, g.State.Dealer), "deal", nil)
	if !errors.Is(err, domain.ErrConcurrencyConflict) || domain.KindOf(err) != domain.KindConflict {
		t.Fatalf("err = %v", err)
	}
	if store.puts != 3 {
		t.Fatalf("puts = %d, want 3", store.puts)
	}
}

func TestSubmit_RefusesCorruptGame(t *testing.T) {
	ctx := context.Background()
	store := memory.NewGameStore()
	svc := newTestService(store, 16)
	g := startHumanGame(t, svc)

	corrupt := g.Clone()
	corrupt.Version++
	corrupt.Scores[0] = -3
	if err := store.Put(ctx, corrupt, g.Version); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Submit(ctx, g.ID, identityAt(g, g.State.Dealer), "deal", nil)
	if !errors.Is(err, domain.ErrCorruptState) || domain.KindOf(err) != domain.KindInvariant {
		t.Fatalf("err = %v", err)
	}
}

func TestSettingsDefaults(t *testing.T) {
	svc := NewService(memory.NewGameStore(), Settings{})
	got := svc.Settings()
	if got.TargetScore != domain.DefaultTargetScore || got.ConflictRetries != DefaultConflictRetries ||
		got.PollInterval != DefaultPollInterval || got.DefaultDifficulty != domain.DifficultyNormal {
		t.Fatalf("settings = %+v", got)
	}
}
