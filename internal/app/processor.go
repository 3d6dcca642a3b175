package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"cribbage/internal/domain"
)

// MoveResult is the outcome of one move. On failure only Err is meaningful and
// the input game is untouched.
type MoveResult struct {
	Success     bool
	Game        *domain.Game
	Err         error
	ScoreDelta  [2]int
	NextTurn    string // player id, empty when both players act or nobody can
	Description string
	Events      []Event
	// ComputerMoves are the computer turns applied after the move by Submit.
	ComputerMoves []MoveResult
}

func failed(err error) MoveResult {
	return MoveResult{Err: err}
}

// ApplyMove validates a wire move against g and returns the next document.
// Rejections are checked in this order: NotParticipant, GameNotActive,
// NotYourTurn, IllegalMoveForPhase, then payload and card errors.
func (s *Service) ApplyMove(g *domain.Game, actorID, moveType string, payload json.RawMessage) MoveResult {
	seat, err := precheck(g, actorID, domain.MoveType(moveType))
	if err != nil {
		return failed(err)
	}
	m, err := DecodeMove(moveType, payload)
	if err != nil {
		return failed(err)
	}
	return s.apply(g, seat, m)
}

// Apply is ApplyMove for an already decoded move.
func (s *Service) Apply(g *domain.Game, actorID string, m domain.Move) MoveResult {
	if m == nil {
		return failed(fmt.Errorf("%w: no move", domain.ErrInvalidPayload))
	}
	seat, err := precheck(g, actorID, m.Type())
	if err != nil {
		return failed(err)
	}
	return s.apply(g, seat, m)
}

func precheck(g *domain.Game, actorID string, t domain.MoveType) (domain.Seat, error) {
	if g == nil {
		return domain.NoSeat, domain.ErrGameNotFound
	}
	if err := g.Validate(); err != nil {
		return domain.NoSeat, err
	}
	seat := g.SeatOf(actorID)
	if !seat.Valid() {
		return domain.NoSeat, domain.ErrNotParticipant
	}
	if t == domain.MoveForfeit {
		if g.Status.Terminal() {
			return seat, domain.ErrGameNotActive
		}
		return seat, nil
	}
	if g.Status != domain.StatusActive {
		return seat, domain.ErrGameNotActive
	}
	if owner := g.TurnOwner(); owner != domain.NoSeat && owner != seat {
		return seat, domain.ErrNotYourTurn
	}
	if !t.Known() {
		return seat, fmt.Errorf("%w: unknown move type %q", domain.ErrInvalidPayload, t)
	}
	if phase := g.State.Phase(); !t.LegalIn(phase) {
		return seat, fmt.Errorf("%w: %s during %s", domain.ErrIllegalMoveForPhase, t, phase)
	}
	return seat, nil
}

func (s *Service) apply(g *domain.Game, seat domain.Seat, m domain.Move) MoveResult {
	rules, err := domain.RulesFor(g.Options)
	if err != nil {
		return failed(err)
	}
	if dm, ok := m.(domain.DealMove); ok && dm.Seed == nil {
		seed, err := s.dealSeed(g)
		if err != nil {
			return failed(err)
		}
		dm.Seed = &seed
		m = dm
	}

	next := g.Clone()
	out, err := domain.Transition(next, seat, m, rules)
	if err != nil {
		return failed(err)
	}

	now := s.now()
	actor := next.Players[seat]
	actor.LastSeen = now
	desc := describe(next, seat, out)
	next.History = append(next.History, domain.MoveRecord{
		Seq:         len(next.History) + 1,
		Seat:        seat,
		PlayerID:    actor.ID,
		Type:        m.Type(),
		Description: desc,
		Scores:      out.Events,
		At:          now,
	})
	next.Version++
	next.UpdatedAt = now

	res := MoveResult{
		Success:     true,
		Game:        next,
		NextTurn:    turnPlayer(next),
		Description: desc,
		Events:      moveEvents(g, next, seat, m.Type(), desc, out),
	}
	for i := range res.ScoreDelta {
		res.ScoreDelta[i] = next.Scores[i] - g.Scores[i]
	}
	return res
}

func (s *Service) dealSeed(g *domain.Game) (int64, error) {
	if len(s.deckSecret) == 0 {
		return s.int63(), nil
	}
	return domain.SeedFor(s.deckSecret, g.ID, g.State.Round)
}

func turnPlayer(g *domain.Game) string {
	if p := g.Player(g.TurnOwner()); p != nil {
		return p.ID
	}
	return ""
}

func displayName(g *domain.Game, seat domain.Seat) string {
	p := g.Player(seat)
	switch {
	case p == nil:
		return fmt.Sprintf("seat %d", seat)
	case p.Display != "":
		return p.Display
	default:
		return p.ID
	}
}

// describe renders a move for the history, e.g.
// "Alice played 8D for 15; Alice scores 2 for fifteen".
func describe(g *domain.Game, seat domain.Seat, out domain.Outcome) string {
	parts := []string{displayName(g, seat) + " " + out.Detail}
	for _, ev := range out.Events {
		parts = append(parts, fmt.Sprintf("%s scores %d for %s", displayName(g, ev.Seat), ev.Points, ev.Reason))
	}
	if g.Status == domain.StatusCompleted && g.Winner.Valid() {
		parts = append(parts, displayName(g, g.Winner)+" wins")
	}
	return strings.Join(parts, "; ")
}

func moveEvents(before, after *domain.Game, seat domain.Seat, t domain.MoveType, desc string, out domain.Outcome) []Event {
	actorID := after.Players[seat].ID
	events := []Event{{
		Kind:    EventMoveApplied,
		Payload: MoveAppliedPayload{PlayerID: actorID, Move: t, Description: desc},
	}}
	for _, ev := range out.Events {
		events = append(events, Event{
			Kind:    EventPointsScored,
			Payload: PointsScoredPayload{PlayerID: after.Players[ev.Seat].ID, Points: ev.Points, Reason: ev.Reason},
		})
	}
	if after.State != nil && (before.State == nil || before.State.Phase() != after.State.Phase() || before.State.Round != after.State.Round) {
		events = append(events, Event{
			Kind:    EventPhaseChanged,
			Payload: PhaseChangedPayload{Round: after.State.Round, Phase: after.State.Phase()},
		})
	}
	if out.GameOver {
		payload := GameEndedPayload{Status: after.Status, Scores: after.Scores}
		if p := after.Player(after.Winner); p != nil {
			payload.WinnerID = p.ID
		}
		events = append(events, Event{Kind: EventGameEnded, Payload: payload})
	}
	return events
}
