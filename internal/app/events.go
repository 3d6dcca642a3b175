package app

import "cribbage/internal/domain"

// EventKind identifies events produced by a submission.
type EventKind string

const (
	EventPlayerJoined EventKind = "player_joined"
	EventMoveApplied  EventKind = "move_applied"
	EventPointsScored EventKind = "points_scored"
	EventPhaseChanged EventKind = "phase_changed"
	EventGameEnded    EventKind = "game_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind `json:"kind"`
	Payload    any       `json:"payload"`
	Recipients []string  `json:"-"` // user IDs; empty means both players
}

type PlayerJoinedPayload struct {
	PlayerID string      `json:"player_id"`
	Seat     domain.Seat `json:"seat"`
}

type MoveAppliedPayload struct {
	PlayerID    string          `json:"player_id"`
	Move        domain.MoveType `json:"move"`
	Description string          `json:"description"`
}

type PointsScoredPayload struct {
	PlayerID string `json:"player_id"`
	Points   int    `json:"points"`
	Reason   string `json:"reason"`
}

type PhaseChangedPayload struct {
	Round int          `json:"round"`
	Phase domain.Phase `json:"phase"`
}

type GameEndedPayload struct {
	Status   domain.Status `json:"status"`
	WinnerID string        `json:"winner_id,omitempty"`
	Scores   [2]int        `json:"scores"`
}
