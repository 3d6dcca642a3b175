package domain

// MoveType is the wire name of a move.
type MoveType string

const (
	MoveDeal    MoveType = "deal"
	MoveDiscard MoveType = "discard"
	MoveCut     MoveType = "cut"
	MovePlay    MoveType = "play"
	MoveGo      MoveType = "go"
	MoveClaim   MoveType = "claim"
	MoveAccept  MoveType = "accept"
	MoveMuggins MoveType = "muggins"
	MoveForfeit MoveType = "forfeit"
)

// Move is one player action. Each concrete type belongs to exactly one phase,
// except ForfeitMove which is accepted whenever the game is open.
type Move interface {
	Type() MoveType
}

// DealMove shuffles and deals. Seed is filled in by the server, never by clients.
type DealMove struct {
	Seed *int64 `json:"-"`
}

// DiscardMove gives two cards to the crib.
type DiscardMove struct {
	Cards [DiscardSize]Card `json:"cards"`
}

// CutMove cuts the stock at Index to reveal the starter.
type CutMove struct {
	Index int `json:"index"`
}

// PlayMove lays a card during pegging.
type PlayMove struct {
	Card Card `json:"card"`
}

// GoMove declares that no held card fits under 31.
type GoMove struct{}

// ClaimMove announces the counter's total for the current counting step.
type ClaimMove struct {
	Points int `json:"points"`
}

// AcceptMove accepts the opponent's claim.
type AcceptMove struct{}

// MugginsMove challenges the opponent's claim for missed points.
type MugginsMove struct{}

// ForfeitMove concedes the game.
type ForfeitMove struct{}

func (DealMove) Type() MoveType    { return MoveDeal }
func (DiscardMove) Type() MoveType { return MoveDiscard }
func (CutMove) Type() MoveType     { return MoveCut }
func (PlayMove) Type() MoveType    { return MovePlay }
func (GoMove) Type() MoveType      { return MoveGo }
func (ClaimMove) Type() MoveType   { return MoveClaim }
func (AcceptMove) Type() MoveType  { return MoveAccept }
func (MugginsMove) Type() MoveType { return MoveMuggins }
func (ForfeitMove) Type() MoveType { return MoveForfeit }

// Known reports whether t names a move.
func (t MoveType) Known() bool {
	switch t {
	case MoveDeal, MoveDiscard, MoveCut, MovePlay, MoveGo, MoveClaim, MoveAccept, MoveMuggins, MoveForfeit:
		return true
	}
	return false
}

// LegalIn reports whether a move of type t may be made in phase p.
func (t MoveType) LegalIn(p Phase) bool {
	switch t {
	case MoveDeal:
		return p == PhaseDealing
	case MoveDiscard:
		return p == PhaseDiscarding
	case MoveCut:
		return p == PhaseCutting
	case MovePlay, MoveGo:
		return p == PhasePlaying
	case MoveClaim, MoveAccept, MoveMuggins:
		return p == PhaseCounting
	case MoveForfeit:
		return p != PhaseGameOver
	default:
		return false
	}
}

// LegalIn reports whether m may be made in phase p.
func LegalIn(m Move, p Phase) bool {
	return m.Type().LegalIn(p)
}
