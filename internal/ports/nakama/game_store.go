package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cribbage/internal/domain"
	"cribbage/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaGameStore implements ports.GameStore on Nakama storage. Games are
// system-owned objects hidden from clients; the document version is checked
// against the stored one and the write is pinned to the storage version, so a
// concurrent writer makes it fail with ErrStorageRejectedVersion.
type NakamaGameStore struct {
	nk runtime.NakamaModule
}

// NewNakamaGameStore creates a new game store adapter.
func NewNakamaGameStore(nk runtime.NakamaModule) *NakamaGameStore {
	return &NakamaGameStore{nk: nk}
}

func (s *NakamaGameStore) read(ctx context.Context, gameID string) (*api.StorageObject, error) {
	objects, err := s.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: GameCollection, Key: gameID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read game %s: %w", gameID, err)
	}
	for _, obj := range objects {
		if obj.GetKey() == gameID {
			return obj, nil
		}
	}
	return nil, domain.ErrGameNotFound
}

func decodeGame(obj *api.StorageObject) (*domain.Game, error) {
	var g domain.Game
	if err := json.Unmarshal([]byte(obj.GetValue()), &g); err != nil {
		return nil, fmt.Errorf("%w: decode game %s: %v", domain.ErrCorruptState, obj.GetKey(), err)
	}
	return &g, nil
}

// Get loads a game.
func (s *NakamaGameStore) Get(ctx context.Context, gameID string) (*domain.Game, error) {
	obj, err := s.read(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return decodeGame(obj)
}

// Put writes g if the stored document is still at expectedVersion.
func (s *NakamaGameStore) Put(ctx context.Context, g *domain.Game, expectedVersion int64) error {
	storageVersion := "*"
	if expectedVersion != 0 {
		obj, err := s.read(ctx, g.ID)
		if err != nil {
			return err
		}
		current, err := decodeGame(obj)
		if err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return fmt.Errorf("%w: game %s is at version %d, expected %d", domain.ErrConcurrencyConflict, g.ID, current.Version, expectedVersion)
		}
		storageVersion = obj.GetVersion()
	}

	value, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal game %s: %w", g.ID, err)
	}
	_, err = s.nk.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      GameCollection,
			Key:             g.ID,
			Value:           string(value),
			Version:         storageVersion,
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return fmt.Errorf("%w: game %s changed during write", domain.ErrConcurrencyConflict, g.ID)
		}
		return fmt.Errorf("failed to write game %s: %w", g.ID, err)
	}
	return nil
}

var _ ports.GameStore = (*NakamaGameStore)(nil)
