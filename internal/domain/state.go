package domain

import (
	"encoding/json"
	"fmt"
)

// Seat identifies one of the two players. Seat 0 created the game.
type Seat int

// NoSeat marks the absence of a player (no turn owner, no winner).
const NoSeat Seat = -1

// Opponent returns the other seat.
func (s Seat) Opponent() Seat {
	if s == NoSeat {
		return NoSeat
	}
	return 1 - s
}

// Valid reports whether s is seat 0 or 1.
func (s Seat) Valid() bool { return s == 0 || s == 1 }

// Phase is the tag of a round's current phase.
type Phase string

const (
	PhaseDealing    Phase = "dealing"
	PhaseDiscarding Phase = "discarding"
	PhaseCutting    Phase = "cutting"
	PhasePlaying    Phase = "playing"
	PhaseCounting   Phase = "counting"
	PhaseGameOver   Phase = "game_over"
)

// PhaseState is the phase-specific part of a GameState. The concrete types are
// DealingState, DiscardingState, CuttingState, PlayingState, CountingState and
// GameOverState; switch on them rather than on the Phase tag.
type PhaseState interface {
	Phase() Phase
	isPhaseState()
}

// DealingState waits for the dealer to shuffle and deal.
type DealingState struct{}

// DiscardingState waits for both players to give two cards to the crib.
type DiscardingState struct {
	Submitted [2]bool `json:"submitted"`
}

// CuttingState waits for the pone to cut for the starter.
type CuttingState struct{}

// PlayingState is the pegging phase.
type PlayingState struct {
	Pegging Pegging `json:"pegging"`
	Turn    Seat    `json:"turn"`
}

// CountStep is one of the three counting sub-phases, in order.
type CountStep int

const (
	CountPoneHand CountStep = iota
	CountDealerHand
	CountCrib
)

func (c CountStep) String() string {
	switch c {
	case CountPoneHand:
		return "pone hand"
	case CountDealerHand:
		return "dealer hand"
	case CountCrib:
		return "crib"
	default:
		return fmt.Sprintf("CountStep(%d)", int(c))
	}
}

// Claim is a counted total waiting for the opponent's accept or muggins.
type Claim struct {
	Points int `json:"points"`
	Actual int `json:"actual"`
}

// CountingState is the show. Claim is nil until the counter has claimed.
type CountingState struct {
	Step  CountStep `json:"step"`
	Claim *Claim    `json:"claim,omitempty"`
}

// GameOverState is terminal.
type GameOverState struct{}

func (DealingState) Phase() Phase    { return PhaseDealing }
func (DiscardingState) Phase() Phase { return PhaseDiscarding }
func (CuttingState) Phase() Phase    { return PhaseCutting }
func (PlayingState) Phase() Phase    { return PhasePlaying }
func (CountingState) Phase() Phase   { return PhaseCounting }
func (GameOverState) Phase() Phase   { return PhaseGameOver }

func (DealingState) isPhaseState()    {}
func (DiscardingState) isPhaseState() {}
func (CuttingState) isPhaseState()    {}
func (PlayingState) isPhaseState()    {}
func (CountingState) isPhaseState()   {}
func (GameOverState) isPhaseState()   {}

// RoundScore accumulates the points a seat made in the current round.
type RoundScore struct {
	Heels   int `json:"heels"`
	Pegging int `json:"pegging"`
	Hand    int `json:"hand"`
	Crib    int `json:"crib"`
	Muggins int `json:"muggins"`
}

// Total sums all categories.
func (r RoundScore) Total() int {
	return r.Heels + r.Pegging + r.Hand + r.Crib + r.Muggins
}

// GameState is the state of the current round.
type GameState struct {
	Round    int           `json:"round"`
	Dealer   Seat          `json:"dealer"`
	Stock    []Card        `json:"stock"`
	Hands    [2][]Card     `json:"hands"`
	Discards [2][]Card     `json:"discards"`
	Played   [2][]Card     `json:"played"`
	Starter  *Card         `json:"starter,omitempty"`
	Points   [2]RoundScore `json:"points"`
	Current  PhaseState    `json:"-"`
}

// NewRound returns the state at the start of a round, before the deal.
func NewRound(round int, dealer Seat) *GameState {
	return &GameState{Round: round, Dealer: dealer, Current: DealingState{}}
}

// Phase returns the current phase tag.
func (s *GameState) Phase() Phase {
	if s == nil || s.Current == nil {
		return ""
	}
	return s.Current.Phase()
}

// Pone is the non-dealer.
func (s *GameState) Pone() Seat { return s.Dealer.Opponent() }

// Crib returns the dealer's crib: the pone's discards followed by the dealer's.
func (s *GameState) Crib() []Card {
	crib := make([]Card, 0, 2*DiscardSize)
	crib = append(crib, s.Discards[s.Pone()]...)
	crib = append(crib, s.Discards[s.Dealer]...)
	return crib
}

// TurnOwner returns who must move next, or NoSeat while discarding (both
// players act) and after the game ends.
func (s *GameState) TurnOwner() Seat {
	switch st := s.Current.(type) {
	case DealingState:
		return s.Dealer
	case DiscardingState:
		return NoSeat
	case CuttingState:
		return s.Pone()
	case PlayingState:
		return st.Turn
	case CountingState:
		counter := s.Counter(st.Step)
		if st.Claim != nil {
			return counter.Opponent()
		}
		return counter
	case GameOverState:
		return NoSeat
	default:
		return NoSeat
	}
}

// Counter returns the seat whose cards are counted at step.
func (s *GameState) Counter(step CountStep) Seat {
	if step == CountPoneHand {
		return s.Pone()
	}
	return s.Dealer
}

// CountedCards returns the cards scored at step.
func (s *GameState) CountedCards(step CountStep) ([]Card, bool) {
	switch step {
	case CountPoneHand:
		return s.Played[s.Pone()], false
	case CountDealerHand:
		return s.Played[s.Dealer], false
	default:
		return s.Crib(), true
	}
}

// Clone returns a deep copy.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	out := *s
	out.Stock = cloneCards(s.Stock)
	for i := 0; i < 2; i++ {
		out.Hands[i] = cloneCards(s.Hands[i])
		out.Discards[i] = cloneCards(s.Discards[i])
		out.Played[i] = cloneCards(s.Played[i])
	}
	if s.Starter != nil {
		c := *s.Starter
		out.Starter = &c
	}
	switch st := s.Current.(type) {
	case PlayingState:
		st.Pegging = st.Pegging.clone()
		out.Current = st
	case CountingState:
		if st.Claim != nil {
			c := *st.Claim
			st.Claim = &c
		}
		out.Current = st
	}
	return &out
}

type gameStateAlias GameState

type gameStateJSON struct {
	*gameStateAlias
	Phase  Phase           `json:"phase"`
	Detail json.RawMessage `json:"detail,omitempty"`
}

// MarshalJSON writes the phase tag alongside its variant's fields.
func (s GameState) MarshalJSON() ([]byte, error) {
	if s.Current == nil {
		return nil, fmt.Errorf("%w: game state has no phase", ErrCorruptState)
	}
	detail, err := json.Marshal(s.Current)
	if err != nil {
		return nil, err
	}
	alias := gameStateAlias(s)
	return json.Marshal(gameStateJSON{gameStateAlias: &alias, Phase: s.Current.Phase(), Detail: detail})
}

// UnmarshalJSON restores the phase variant from its tag.
func (s *GameState) UnmarshalJSON(data []byte) error {
	aux := gameStateJSON{gameStateAlias: (*gameStateAlias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	switch aux.Phase {
	case PhaseDealing:
		s.Current = DealingState{}
	case PhaseDiscarding:
		var st DiscardingState
		err = decodeDetail(aux.Detail, &st)
		s.Current = st
	case PhaseCutting:
		s.Current = CuttingState{}
	case PhasePlaying:
		var st PlayingState
		err = decodeDetail(aux.Detail, &st)
		s.Current = st
	case PhaseCounting:
		var st CountingState
		err = decodeDetail(aux.Detail, &st)
		s.Current = st
	case PhaseGameOver:
		s.Current = GameOverState{}
	default:
		return fmt.Errorf("%w: unknown phase %q", ErrCorruptState, aux.Phase)
	}
	return err
}

func decodeDetail(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing phase detail", ErrCorruptState)
	}
	return json.Unmarshal(raw, v)
}
