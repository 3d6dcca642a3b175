package domain

import "fmt"

// Validate checks the document for states no sequence of legal moves can
// produce. A failure wraps ErrCorruptState.
func (g *Game) Validate() error {
	if err := g.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return nil
}

func (g *Game) validate() error {
	switch g.Status {
	case StatusWaiting, StatusActive, StatusCompleted, StatusAbandoned:
	default:
		return fmt.Errorf("unknown status %q", g.Status)
	}
	if g.Players[0] == nil {
		return fmt.Errorf("seat 0 is empty")
	}
	if g.Status != StatusWaiting && g.Status != StatusAbandoned && g.Players[1] == nil {
		return fmt.Errorf("%s game has one player", g.Status)
	}
	for i, s := range g.Scores {
		if s < 0 {
			return fmt.Errorf("seat %d has negative score %d", i, s)
		}
	}
	if g.Status == StatusCompleted && !g.Winner.Valid() {
		return fmt.Errorf("completed game without a winner")
	}
	if g.State == nil {
		if g.Status == StatusActive {
			return fmt.Errorf("active game without state")
		}
		return nil
	}
	return g.State.validate(g.Status)
}

func (s *GameState) validate(status Status) error {
	if s.Current == nil {
		return fmt.Errorf("state has no phase")
	}
	if !s.Dealer.Valid() {
		return fmt.Errorf("invalid dealer %d", s.Dealer)
	}
	if _, over := s.Current.(GameOverState); over != status.Terminal() {
		return fmt.Errorf("phase %s with status %s", s.Phase(), status)
	}
	if err := s.validateCards(); err != nil {
		return err
	}

	switch st := s.Current.(type) {
	case DealingState:
		return nil
	case DiscardingState:
		for seat := 0; seat < 2; seat++ {
			want := HandSize
			wantDiscards := 0
			if st.Submitted[seat] {
				want, wantDiscards = KeepSize, DiscardSize
			}
			if len(s.Hands[seat]) != want || len(s.Discards[seat]) != wantDiscards {
				return fmt.Errorf("seat %d holds %d cards with %d discards while discarding", seat, len(s.Hands[seat]), len(s.Discards[seat]))
			}
		}
		if s.Starter != nil {
			return fmt.Errorf("starter revealed before the cut")
		}
	case CuttingState:
		if err := s.checkKept(false); err != nil {
			return err
		}
		if s.Starter != nil {
			return fmt.Errorf("starter revealed before the cut")
		}
	case PlayingState:
		if err := s.checkKept(true); err != nil {
			return err
		}
		p := st.Pegging
		sum := 0
		for _, c := range p.Sequence {
			sum += c.Value()
		}
		if p.Count != sum || p.Count > MaxCount {
			return fmt.Errorf("pegging count %d does not match sequence sum %d", p.Count, sum)
		}
		if !st.Turn.Valid() {
			return fmt.Errorf("invalid pegging turn %d", st.Turn)
		}
	case CountingState:
		if err := s.checkKept(true); err != nil {
			return err
		}
		if len(s.Hands[0])+len(s.Hands[1]) != 0 {
			return fmt.Errorf("cards still held while counting")
		}
		if st.Step < CountPoneHand || st.Step > CountCrib {
			return fmt.Errorf("invalid counting step %d", st.Step)
		}
		if st.Claim != nil && (st.Claim.Points > st.Claim.Actual || !ValidHandTotal(st.Claim.Points)) {
			return fmt.Errorf("invalid pending claim %d of %d", st.Claim.Points, st.Claim.Actual)
		}
	case GameOverState:
		return nil
	default:
		return fmt.Errorf("unknown phase %T", st)
	}
	return nil
}

// checkKept verifies the post-discard card layout: four kept cards per seat
// split between hand and played, two discards each, and the starter once cut.
func (s *GameState) checkKept(cut bool) error {
	for seat := 0; seat < 2; seat++ {
		if n := len(s.Hands[seat]) + len(s.Played[seat]); n != KeepSize {
			return fmt.Errorf("seat %d has %d kept cards", seat, n)
		}
		if len(s.Discards[seat]) != DiscardSize {
			return fmt.Errorf("seat %d has %d discards", seat, len(s.Discards[seat]))
		}
	}
	if cut && s.Starter == nil {
		return fmt.Errorf("missing starter")
	}
	return nil
}

// validateCards checks that every card is real, appears once, and that a
// dealt round accounts for the whole deck.
func (s *GameState) validateCards() error {
	seen := make(map[Card]bool, DeckSize)
	n := 0
	check := func(cards ...Card) error {
		for _, c := range cards {
			if !c.Valid() {
				return fmt.Errorf("invalid card %+v", c)
			}
			if seen[c] {
				return fmt.Errorf("duplicate card %s", c)
			}
			seen[c] = true
			n++
		}
		return nil
	}
	if err := check(s.Stock...); err != nil {
		return err
	}
	for seat := 0; seat < 2; seat++ {
		for _, zone := range [][]Card{s.Hands[seat], s.Discards[seat], s.Played[seat]} {
			if err := check(zone...); err != nil {
				return err
			}
		}
	}
	if s.Starter != nil {
		if err := check(*s.Starter); err != nil {
			return err
		}
	}
	if n != 0 && n != DeckSize {
		return fmt.Errorf("round accounts for %d cards", n)
	}
	if n == 0 {
		switch s.Current.(type) {
		case DealingState, GameOverState:
		default:
			return fmt.Errorf("no cards in play during %s", s.Phase())
		}
	}
	return nil
}
