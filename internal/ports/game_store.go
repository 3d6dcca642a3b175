package ports

import (
	"context"

	"cribbage/internal/domain"
)

// GameStore persists game documents with optimistic concurrency.
type GameStore interface {
	// Get loads a game. Returns domain.ErrGameNotFound when no document exists.
	Get(ctx context.Context, gameID string) (*domain.Game, error)
	// Put writes g if the stored document is still at expectedVersion.
	// expectedVersion 0 creates a new document and fails if one exists.
	// Returns domain.ErrConcurrencyConflict when the check fails.
	Put(ctx context.Context, g *domain.Game, expectedVersion int64) error
}
