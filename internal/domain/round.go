package domain

import "fmt"

// Rules parameterise transitions for one game.
type Rules struct {
	TargetScore int
	Muggins     MugginsPolicy
}

// RulesFor builds the rules recorded in a game's options.
func RulesFor(o Options) (Rules, error) {
	policy, err := o.Policy()
	if err != nil {
		return Rules{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	target := o.TargetScore
	if target <= 0 {
		target = DefaultTargetScore
	}
	return Rules{TargetScore: target, Muggins: policy}, nil
}

// Outcome describes the effect of one successful move.
type Outcome struct {
	Detail   string
	Events   []ScoreEvent
	GameOver bool
}

type category int

const (
	catHeels category = iota
	catPegging
	catHand
	catCrib
	catMuggins
)

type table struct {
	g     *Game
	rules Rules
	out   Outcome
}

// Transition applies m for seat. g must be a private copy: when an error is
// returned g may be partially modified and has to be discarded.
func Transition(g *Game, seat Seat, m Move, rules Rules) (Outcome, error) {
	t := &table{g: g, rules: rules}
	if fm, ok := m.(ForfeitMove); ok {
		return t.out, t.forfeit(seat, fm)
	}
	if g.Status != StatusActive {
		return t.out, ErrGameNotActive
	}
	if g.State == nil {
		return t.out, fmt.Errorf("%w: active game without state", ErrCorruptState)
	}
	if owner := g.State.TurnOwner(); owner != NoSeat && owner != seat {
		return t.out, ErrNotYourTurn
	}
	if !LegalIn(m, g.State.Phase()) {
		return t.out, fmt.Errorf("%w: %s during %s", ErrIllegalMoveForPhase, m.Type(), g.State.Phase())
	}

	var err error
	switch mv := m.(type) {
	case DealMove:
		err = t.deal(mv)
	case DiscardMove:
		err = t.discard(seat, mv)
	case CutMove:
		err = t.cut(mv)
	case PlayMove:
		err = t.play(seat, mv)
	case GoMove:
		err = t.goMove(seat)
	case ClaimMove:
		err = t.claim(seat, mv)
	case AcceptMove:
		err = t.accept()
	case MugginsMove:
		err = t.muggins(seat)
	default:
		err = fmt.Errorf("%w: unknown move %T", ErrInvalidPayload, m)
	}
	return t.out, err
}

func (t *table) state() *GameState { return t.g.State }

// award credits points and reports whether the game just ended.
func (t *table) award(ev ScoreEvent, cat category) bool {
	if ev.Points <= 0 || t.out.GameOver {
		return t.out.GameOver
	}
	t.g.Scores[ev.Seat] += ev.Points
	rs := &t.state().Points[ev.Seat]
	switch cat {
	case catHeels:
		rs.Heels += ev.Points
	case catPegging:
		rs.Pegging += ev.Points
	case catHand:
		rs.Hand += ev.Points
	case catCrib:
		rs.Crib += ev.Points
	case catMuggins:
		rs.Muggins += ev.Points
	}
	t.out.Events = append(t.out.Events, ev)
	if t.g.Scores[ev.Seat] >= t.rules.TargetScore {
		t.g.Status = StatusCompleted
		t.g.Winner = ev.Seat
		t.state().Current = GameOverState{}
		t.out.GameOver = true
	}
	return t.out.GameOver
}

func (t *table) awardAll(events []ScoreEvent, cat category) bool {
	for _, ev := range events {
		if t.award(ev, cat) {
			return true
		}
	}
	return false
}

func (t *table) deal(m DealMove) error {
	s := t.state()
	hands, stock, err := Deal(Shuffle(m.Seed), s.Pone())
	if err != nil {
		return err
	}
	s.Hands = hands
	s.Stock = stock
	s.Discards = [2][]Card{}
	s.Played = [2][]Card{}
	s.Starter = nil
	s.Current = DiscardingState{}
	t.out.Detail = fmt.Sprintf("dealt round %d", s.Round)
	return nil
}

func (t *table) discard(seat Seat, m DiscardMove) error {
	s := t.state()
	st := s.Current.(DiscardingState)
	if st.Submitted[seat] {
		return ErrAlreadyDiscarded
	}
	if m.Cards[0] == m.Cards[1] {
		return fmt.Errorf("%w: %s discarded twice", ErrInvalidCard, m.Cards[0])
	}
	for _, c := range m.Cards {
		if !ContainsCard(s.Hands[seat], c) {
			return fmt.Errorf("%w: %s", ErrInvalidCard, c)
		}
	}
	s.Hands[seat] = RemoveCards(s.Hands[seat], m.Cards[:])
	s.Discards[seat] = []Card{m.Cards[0], m.Cards[1]}
	st.Submitted[seat] = true
	if st.Submitted[0] && st.Submitted[1] {
		s.Current = CuttingState{}
	} else {
		s.Current = st
	}
	t.out.Detail = "discarded to the crib"
	return nil
}

func (t *table) cut(m CutMove) error {
	s := t.state()
	starter, stock, err := CutStarter(s.Stock, m.Index)
	if err != nil {
		return err
	}
	s.Starter = &starter
	s.Stock = stock
	s.Current = PlayingState{Pegging: NewPegging(), Turn: s.Pone()}
	t.out.Detail = fmt.Sprintf("cut the %s", starter)
	if starter.Rank == Jack {
		t.award(ScoreEvent{Seat: s.Dealer, Points: 2, Reason: "his heels"}, catHeels)
	}
	return nil
}

func (t *table) play(seat Seat, m PlayMove) error {
	s := t.state()
	ps := s.Current.(PlayingState)
	ps.Pegging = ps.Pegging.clone()
	if !ContainsCard(s.Hands[seat], m.Card) {
		return fmt.Errorf("%w: %s", ErrInvalidCard, m.Card)
	}
	count := ps.Pegging.Count + m.Card.Value()
	events, err := ps.Pegging.Play(seat, m.Card)
	if err != nil {
		return err
	}
	s.Hands[seat] = RemoveCards(s.Hands[seat], []Card{m.Card})
	s.Played[seat] = append(s.Played[seat], m.Card)
	s.Current = ps
	t.out.Detail = fmt.Sprintf("played %s for %d", m.Card, count)
	if t.awardAll(events, catPegging) {
		return nil
	}
	return t.settle(ps, seat.Opponent())
}

func (t *table) goMove(seat Seat) error {
	s := t.state()
	ps := s.Current.(PlayingState)
	ps.Pegging = ps.Pegging.clone()
	if ps.Pegging.HasPlay(s.Hands[seat]) {
		return ErrMustPlay
	}
	ps.Pegging.SayGo(seat)
	t.out.Detail = fmt.Sprintf("said go at %d", ps.Pegging.Count)
	return t.settle(ps, seat.Opponent())
}

// settle hands the turn on after a pegging move and closes the play phase when
// both hands are empty.
func (t *table) settle(ps PlayingState, next Seat) error {
	s := t.state()
	turn, events, done := ps.Pegging.advance(next, s.Hands)
	if done {
		s.Current = CountingState{Step: CountPoneHand}
	} else {
		ps.Turn = turn
		s.Current = ps
	}
	t.awardAll(events, catPegging)
	return nil
}

func (t *table) claim(seat Seat, m ClaimMove) error {
	s := t.state()
	cs := s.Current.(CountingState)
	if cs.Claim != nil {
		return fmt.Errorf("%w: %s already claimed", ErrIllegalMoveForPhase, cs.Step)
	}
	if !ValidHandTotal(m.Points) {
		return fmt.Errorf("%w: %d is not a possible score", ErrInvalidClaim, m.Points)
	}
	if s.Starter == nil {
		return fmt.Errorf("%w: counting without a starter", ErrCorruptState)
	}
	cards, crib := s.CountedCards(cs.Step)
	actual := ScoreHand(cards, *s.Starter, crib).Total
	if m.Points > actual {
		return fmt.Errorf("%w: claimed %d, %s is worth %d", ErrInvalidClaim, m.Points, cs.Step, actual)
	}
	cs.Claim = &Claim{Points: m.Points, Actual: actual}
	s.Current = cs
	t.out.Detail = fmt.Sprintf("claimed %d for the %s", m.Points, cs.Step)
	cat := catHand
	if crib {
		cat = catCrib
	}
	t.award(ScoreEvent{Seat: seat, Points: m.Points, Reason: cs.Step.String()}, cat)
	return nil
}

func (t *table) accept() error {
	cs := t.state().Current.(CountingState)
	if cs.Claim == nil {
		return fmt.Errorf("%w: nothing claimed yet", ErrIllegalMoveForPhase)
	}
	t.out.Detail = fmt.Sprintf("accepted %d for the %s", cs.Claim.Points, cs.Step)
	t.nextStep(cs)
	return nil
}

func (t *table) muggins(seat Seat) error {
	cs := t.state().Current.(CountingState)
	if cs.Claim == nil {
		return fmt.Errorf("%w: nothing claimed yet", ErrIllegalMoveForPhase)
	}
	missed := cs.Claim.Actual - cs.Claim.Points
	if missed > 0 {
		t.out.Detail = fmt.Sprintf("called muggins on the %s", cs.Step)
		if t.award(ScoreEvent{Seat: seat, Points: missed, Reason: "muggins"}, catMuggins) {
			return nil
		}
	} else {
		t.out.Detail = fmt.Sprintf("called muggins on the %s but nothing was missed", cs.Step)
		penalty := t.rules.Muggins.FailedChallengePenalty()
		if t.award(ScoreEvent{Seat: seat.Opponent(), Points: penalty, Reason: "muggins penalty"}, catMuggins) {
			return nil
		}
	}
	t.nextStep(cs)
	return nil
}

func (t *table) nextStep(cs CountingState) {
	s := t.state()
	if cs.Step < CountCrib {
		s.Current = CountingState{Step: cs.Step + 1}
		return
	}
	t.g.State = NewRound(s.Round+1, s.Dealer.Opponent())
}

func (t *table) forfeit(seat Seat, _ ForfeitMove) error {
	g := t.g
	if g.Status != StatusWaiting && g.Status != StatusActive {
		return ErrGameNotActive
	}
	g.Status = StatusAbandoned
	g.Winner = NoSeat
	if g.Player(seat.Opponent()) != nil {
		g.Winner = seat.Opponent()
	}
	if g.State != nil {
		g.State.Current = GameOverState{}
	}
	t.out.GameOver = true
	t.out.Detail = "forfeited"
	return nil
}
