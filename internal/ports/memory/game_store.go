package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"cribbage/internal/domain"
	"cribbage/internal/ports"
)

// GameStore keeps encoded game documents in process memory. Documents are
// stored as JSON so callers never share pointers with the store.
type GameStore struct {
	games map[string][]byte
	mu    sync.RWMutex
}

// NewGameStore creates an empty store.
func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[string][]byte),
	}
}

// Get returns a private copy of the stored game.
func (s *GameStore) Get(ctx context.Context, gameID string) (*domain.Game, error) {
	s.mu.RLock()
	data, ok := s.games[gameID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	var g domain.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("%w: decode game %s: %v", domain.ErrCorruptState, gameID, err)
	}
	return &g, nil
}

// Put stores g when the current version matches expectedVersion.
func (s *GameStore) Put(ctx context.Context, g *domain.Game, expectedVersion int64) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.games[g.ID]
	switch {
	case expectedVersion == 0 && ok:
		return fmt.Errorf("%w: game %s already exists", domain.ErrConcurrencyConflict, g.ID)
	case expectedVersion != 0 && !ok:
		return domain.ErrGameNotFound
	case expectedVersion != 0:
		var head struct {
			Version int64 `json:"version"`
		}
		if err := json.Unmarshal(current, &head); err != nil {
			return fmt.Errorf("%w: decode game %s: %v", domain.ErrCorruptState, g.ID, err)
		}
		if head.Version != expectedVersion {
			return fmt.Errorf("%w: game %s is at version %d, expected %d", domain.ErrConcurrencyConflict, g.ID, head.Version, expectedVersion)
		}
	}
	s.games[g.ID] = data
	return nil
}

// Len reports how many games are stored.
func (s *GameStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

var _ ports.GameStore = (*GameStore)(nil)
