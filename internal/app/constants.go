package app

import "time"

// DefaultConflictRetries bounds how often a write is retried after a concurrent update.
const DefaultConflictRetries = 3

// DefaultPollInterval is the polling period suggested to clients.
const DefaultPollInterval = 2 * time.Second

// maxComputerMoves caps the computer moves chained after a single submission.
// A full round needs fewer than forty.
const maxComputerMoves = 200

// Opponent kinds accepted by CreateGame.
const (
	OpponentHuman    = "human"
	OpponentComputer = "computer"
)
