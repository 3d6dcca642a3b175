package bot

import (
	"math/rand"

	"cribbage/internal/domain"
)

// Agent represents a computer player sitting at one seat.
type Agent struct {
	Seat     domain.Seat
	Strategy Strategy
	// Rand chooses where to cut. Nil cuts the middle of the stock.
	Rand *rand.Rand
}

// NextMove returns the agent's move, or false when the agent has nothing to do.
// Deal moves are returned without a seed; the caller supplies it.
func (a *Agent) NextMove(g *domain.Game) (domain.Move, bool) {
	if g.Status != domain.StatusActive || g.State == nil {
		return nil, false
	}
	s := g.State
	switch st := s.Current.(type) {
	case domain.DealingState:
		if s.Dealer == a.Seat {
			return domain.DealMove{}, true
		}
	case domain.DiscardingState:
		if !st.Submitted[a.Seat] {
			return domain.DiscardMove{Cards: a.Strategy.SelectDiscard(s.Hands[a.Seat], s.Dealer == a.Seat)}, true
		}
	case domain.CuttingState:
		if s.Pone() == a.Seat {
			idx := len(s.Stock) / 2
			if a.Rand != nil {
				idx = a.Rand.Intn(len(s.Stock))
			}
			return domain.CutMove{Index: idx}, true
		}
	case domain.PlayingState:
		if st.Turn == a.Seat {
			if c, ok := a.Strategy.SelectPlay(s.Hands[a.Seat], st.Pegging.Sequence, st.Pegging.Count); ok {
				return domain.PlayMove{Card: c}, true
			}
			return domain.GoMove{}, true
		}
	case domain.CountingState:
		return a.count(s, st)
	}
	return nil, false
}

// count claims the full value of the agent's own cards and challenges any
// under-claim by the opponent.
func (a *Agent) count(s *domain.GameState, st domain.CountingState) (domain.Move, bool) {
	counter := s.Counter(st.Step)
	cards, crib := s.CountedCards(st.Step)
	actual := domain.ScoreHand(cards, *s.Starter, crib).Total
	switch {
	case st.Claim == nil && counter == a.Seat:
		return domain.ClaimMove{Points: actual}, true
	case st.Claim != nil && counter != a.Seat:
		if st.Claim.Points < actual {
			return domain.MugginsMove{}, true
		}
		return domain.AcceptMove{}, true
	}
	return nil, false
}
