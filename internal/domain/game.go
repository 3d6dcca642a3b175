package domain

import "time"

// DefaultTargetScore is the score that wins a standard game.
const DefaultTargetScore = 121

// Status is the lifecycle of a Game document.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// Terminal reports whether no further moves are possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// Difficulty selects the computer opponent's strategy.
type Difficulty string

const (
	DifficultyNormal Difficulty = "normal"
	DifficultyExpert Difficulty = "expert"
)

// ParseDifficulty validates a difficulty name; empty means normal.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyExpert:
		return DifficultyExpert, true
	}
	return "", false
}

// Player is one participant.
type Player struct {
	ID       string    `json:"id"`
	Display  string    `json:"display"`
	Computer bool      `json:"computer,omitempty"`
	LastSeen time.Time `json:"last_seen"`
}

// Options are fixed when the game is created.
type Options struct {
	TargetScore   int        `json:"target_score"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
	MugginsPolicy string     `json:"muggins_policy"`
	MugginsPoints int        `json:"muggins_points,omitempty"`
}

// Policy builds the configured muggins policy.
func (o Options) Policy() (MugginsPolicy, error) {
	return MugginsPolicyByName(o.MugginsPolicy, o.MugginsPoints)
}

// MoveRecord is one entry of the move history.
type MoveRecord struct {
	Seq         int          `json:"seq"`
	Seat        Seat         `json:"seat"`
	PlayerID    string       `json:"player_id"`
	Type        MoveType     `json:"type"`
	Description string       `json:"description"`
	Scores      []ScoreEvent `json:"scores,omitempty"`
	At          time.Time    `json:"at"`
}

// Game is the persisted aggregate. Version increases by one on every write.
type Game struct {
	ID        string       `json:"id"`
	Version   int64        `json:"version"`
	Players   [2]*Player   `json:"players"`
	State     *GameState   `json:"state,omitempty"`
	Scores    [2]int       `json:"scores"`
	Status    Status       `json:"status"`
	Winner    Seat         `json:"winner"`
	Options   Options      `json:"options"`
	History   []MoveRecord `json:"history"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// SeatOf returns the seat of playerID, or NoSeat.
func (g *Game) SeatOf(playerID string) Seat {
	for i, p := range g.Players {
		if p != nil && p.ID == playerID {
			return Seat(i)
		}
	}
	return NoSeat
}

// Player returns the player in seat, or nil.
func (g *Game) Player(seat Seat) *Player {
	if !seat.Valid() {
		return nil
	}
	return g.Players[seat]
}

// TurnOwner returns whose move it is, or NoSeat when both may act or none can.
func (g *Game) TurnOwner() Seat {
	if g.Status != StatusActive || g.State == nil {
		return NoSeat
	}
	return g.State.TurnOwner()
}

// Clone returns a deep copy.
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	out := *g
	for i, p := range g.Players {
		if p != nil {
			cp := *p
			out.Players[i] = &cp
		}
	}
	out.State = g.State.Clone()
	if g.History != nil {
		out.History = make([]MoveRecord, len(g.History))
		for i, rec := range g.History {
			rec.Scores = append([]ScoreEvent(nil), rec.Scores...)
			out.History[i] = rec
		}
	}
	return &out
}
