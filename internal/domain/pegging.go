package domain

import "fmt"

// MaxCount is the pegging count cap.
const MaxCount = 31

// Pegging tracks the current sequence of play. Sequence holds the cards played
// since the last reset; Count is always the sum of their values.
type Pegging struct {
	Count      int     `json:"count"`
	Sequence   []Card  `json:"sequence"`
	LastPlayer Seat    `json:"last_player"`
	SaidGo     [2]bool `json:"said_go"`
}

// NewPegging returns an empty sequence.
func NewPegging() Pegging {
	return Pegging{LastPlayer: NoSeat}
}

// ScoreEvent is a single award of points.
type ScoreEvent struct {
	Seat   Seat   `json:"seat"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// CanPlay reports whether c fits under the cap.
func (p *Pegging) CanPlay(c Card) bool {
	return p.Count+c.Value() <= MaxCount
}

// HasPlay reports whether any card in hand fits under the cap.
func (p *Pegging) HasPlay(hand []Card) bool {
	for _, c := range hand {
		if p.CanPlay(c) {
			return true
		}
	}
	return false
}

// Play lays a card for seat, returning the points it scored. The count resets
// when it reaches exactly 31.
func (p *Pegging) Play(seat Seat, c Card) ([]ScoreEvent, error) {
	if !p.CanPlay(c) {
		return nil, fmt.Errorf("%w: %s on %d", ErrCountExceeded, c, p.Count)
	}
	events := PegPoints(p.Sequence, c, p.Count)
	for i := range events {
		events[i].Seat = seat
	}
	p.Count += c.Value()
	p.Sequence = append(p.Sequence, c)
	p.LastPlayer = seat
	if p.Count == MaxCount {
		p.reset()
	}
	return events, nil
}

// SayGo records that seat cannot continue this sequence.
func (p *Pegging) SayGo(seat Seat) {
	p.SaidGo[seat] = true
}

// PegPoints scores a card laid on seq at the given count. Seat is left unset.
func PegPoints(seq []Card, c Card, count int) []ScoreEvent {
	var events []ScoreEvent
	total := count + c.Value()
	switch total {
	case 15:
		events = append(events, ScoreEvent{Points: 2, Reason: "fifteen"})
	case MaxCount:
		events = append(events, ScoreEvent{Points: 2, Reason: "thirty-one"})
	}

	same := 1
	for i := len(seq) - 1; i >= 0 && seq[i].Rank == c.Rank; i-- {
		same++
	}
	switch same {
	case 1:
	case 2:
		events = append(events, ScoreEvent{Points: pairPoints(2), Reason: "pair"})
	case 3:
		events = append(events, ScoreEvent{Points: pairPoints(3), Reason: "three of a kind"})
	default:
		events = append(events, ScoreEvent{Points: pairPoints(4), Reason: "four of a kind"})
	}

	window := append(cloneCards(seq), c)
	for n := len(window); n >= 3; n-- {
		if isRun(window[len(window)-n:]) {
			events = append(events, ScoreEvent{Points: n, Reason: fmt.Sprintf("run of %d", n)})
			break
		}
	}
	return events
}

// advance decides who acts next after next was offered the turn. Whenever
// neither player can continue, the sequence closes: the last player pegs one
// for the go, the count resets and the other player leads. done is true once
// both hands are empty; the final sequence's point is then the last-card point.
// The returned events must be applied in order.
func (p *Pegging) advance(next Seat, hands [2][]Card) (turn Seat, events []ScoreEvent, done bool) {
	for {
		if len(hands[0]) == 0 && len(hands[1]) == 0 {
			if p.Count > 0 && p.LastPlayer != NoSeat {
				events = append(events, ScoreEvent{Seat: p.LastPlayer, Points: 1, Reason: "last card"})
			}
			p.reset()
			return NoSeat, events, true
		}
		other := next.Opponent()
		nextIn := !p.SaidGo[next] && len(hands[next]) > 0
		otherIn := !p.SaidGo[other] && len(hands[other]) > 0
		switch {
		case nextIn && p.HasPlay(hands[next]):
			return next, events, false
		case nextIn && otherIn:
			// must say go
			return next, events, false
		case otherIn && p.HasPlay(hands[other]):
			return other, events, false
		}
		last := p.LastPlayer
		if p.Count > 0 && last != NoSeat {
			events = append(events, ScoreEvent{Seat: last, Points: 1, Reason: "go"})
		}
		p.reset()
		if last != NoSeat {
			next = last.Opponent()
		}
	}
}

func (p *Pegging) reset() {
	p.Count = 0
	p.Sequence = nil
	p.SaidGo = [2]bool{}
}

func (p Pegging) clone() Pegging {
	p.Sequence = cloneCards(p.Sequence)
	return p
}
