package app

import (
	"time"

	"cribbage/internal/domain"
)

// PlayerView is the public part of a player.
type PlayerView struct {
	Seat        domain.Seat       `json:"seat"`
	Display     string            `json:"display"`
	Computer    bool              `json:"computer,omitempty"`
	Score       int               `json:"score"`
	RoundPoints domain.RoundScore `json:"round_points"`
}

// GameView is what one viewer may see of a game. Opponent cards in hand, the
// stock, and the crib before the show are never included.
type GameView struct {
	ID          string        `json:"id"`
	Version     int64         `json:"version"`
	Status      domain.Status `json:"status"`
	Phase       domain.Phase  `json:"phase,omitempty"`
	Round       int           `json:"round,omitempty"`
	TargetScore int           `json:"target_score"`
	You         domain.Seat   `json:"you"`
	Dealer      domain.Seat   `json:"dealer"`
	Players     []PlayerView  `json:"players"`

	Hand          []domain.Card    `json:"hand"`
	Discards      []domain.Card    `json:"discards,omitempty"`
	OpponentCards int              `json:"opponent_cards"`
	Discarded     [2]bool          `json:"discarded"`
	StockSize     int              `json:"stock_size"`
	Played        [2][]domain.Card `json:"played"`
	Crib          []domain.Card    `json:"crib,omitempty"`
	Starter       *domain.Card     `json:"starter,omitempty"`
	Count         int              `json:"count"`
	Sequence      []domain.Card    `json:"sequence,omitempty"`
	CountStep     string           `json:"count_step,omitempty"`
	Claim         *int             `json:"claim,omitempty"`

	Turn     domain.Seat `json:"turn"`
	YourTurn bool        `json:"your_turn"`
	Winner   domain.Seat `json:"winner"`
	LastMove string      `json:"last_move,omitempty"`

	PollIntervalSeconds int `json:"poll_interval_seconds"`
}

// View projects g for viewerID. Non-participants see only public information.
func View(g *domain.Game, viewerID string, poll time.Duration) GameView {
	me := g.SeatOf(viewerID)
	v := GameView{
		ID:                  g.ID,
		Version:             g.Version,
		Status:              g.Status,
		TargetScore:         g.Options.TargetScore,
		You:                 me,
		Dealer:              domain.NoSeat,
		Turn:                g.TurnOwner(),
		Winner:              g.Winner,
		OpponentCards:       0,
		PollIntervalSeconds: int(poll / time.Second),
	}
	if n := len(g.History); n > 0 {
		v.LastMove = g.History[n-1].Description
	}
	for i, p := range g.Players {
		if p == nil {
			continue
		}
		pv := PlayerView{Seat: domain.Seat(i), Display: p.Display, Computer: p.Computer, Score: g.Scores[i]}
		if g.State != nil {
			pv.RoundPoints = g.State.Points[i]
		}
		v.Players = append(v.Players, pv)
	}

	s := g.State
	if s == nil {
		return v
	}
	v.Phase = s.Phase()
	v.Round = s.Round
	v.Dealer = s.Dealer
	v.StockSize = len(s.Stock)
	v.Played = [2][]domain.Card{cloneCards(s.Played[0]), cloneCards(s.Played[1])}
	if s.Starter != nil {
		c := *s.Starter
		v.Starter = &c
	}
	if me.Valid() {
		v.Hand = cloneCards(s.Hands[me])
		domain.SortHand(v.Hand)
		v.Discards = cloneCards(s.Discards[me])
		v.OpponentCards = len(s.Hands[me.Opponent()])
		v.YourTurn = v.Turn == me
	}

	switch st := s.Current.(type) {
	case domain.DiscardingState:
		v.Discarded = st.Submitted
		if me.Valid() && !st.Submitted[me] && g.Status == domain.StatusActive {
			v.YourTurn = true
		}
	case domain.CuttingState:
		v.Discarded = [2]bool{true, true}
	case domain.PlayingState:
		v.Discarded = [2]bool{true, true}
		v.Count = st.Pegging.Count
		v.Sequence = cloneCards(st.Pegging.Sequence)
	case domain.CountingState:
		v.Discarded = [2]bool{true, true}
		v.Crib = s.Crib()
		v.CountStep = st.Step.String()
		if st.Claim != nil {
			pts := st.Claim.Points
			v.Claim = &pts
		}
	case domain.GameOverState:
		if s.Starter != nil {
			v.Crib = s.Crib()
		}
	}
	return v
}

func cloneCards(cards []domain.Card) []domain.Card {
	return append([]domain.Card{}, cards...)
}
