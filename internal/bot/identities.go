package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"cribbage/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Identity is the account a computer opponent plays under.
type Identity struct {
	DeviceID    string            `json:"device_id"`
	UserID      string            `json:"user_id"`
	Username    string            `json:"username"`
	DisplayName string            `json:"display_name"`
	Difficulty  domain.Difficulty `json:"difficulty"`
}

var (
	identities    []Identity
	byDifficulty  map[domain.Difficulty]Identity
	computerIDs   map[string]bool
	identitiesMu  sync.RWMutex
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities loads the computer profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		var list []Identity
		if err := json.Unmarshal(data, &list); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		for _, identity := range list {
			if _, ok := domain.ParseDifficulty(string(identity.Difficulty)); !ok {
				loadErr = fmt.Errorf("bot %s has unknown difficulty %q", identity.Username, identity.Difficulty)
				return
			}
		}
		setIdentities(list)
	})
	return loadErr
}

func setIdentities(list []Identity) {
	identitiesMu.Lock()
	defer identitiesMu.Unlock()
	identities = list
	byDifficulty = make(map[domain.Difficulty]Identity)
	computerIDs = make(map[string]bool)
	for _, identity := range list {
		mapIdentity(identity)
	}
}

func mapIdentity(identity Identity) {
	if identity.UserID == "" {
		return
	}
	d, _ := domain.ParseDifficulty(string(identity.Difficulty))
	if _, ok := byDifficulty[d]; !ok {
		byDifficulty[d] = identity
	}
	computerIDs[identity.UserID] = true
}

// ProvisionIdentities ensures every configured computer has a Nakama account
// and records the resulting user ids.
func ProvisionIdentities(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) {
	provisionOnce.Do(func() {
		identitiesMu.Lock()
		defer identitiesMu.Unlock()
		for i := range identities {
			identity := &identities[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionIdentities: Failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":     true,
				"difficulty": identity.Difficulty,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionIdentities: Failed to update bot account %s: %v", userID, err)
			}

			mapIdentity(*identity)
			logger.Info("ProvisionIdentities: Bot %s (%s) is ready. Difficulty: %s", identity.DisplayName, userID, identity.Difficulty)
		}
	})
}

// IdentityFor returns the computer identity for a difficulty. Without a loaded
// profile it falls back to a fixed id per difficulty.
func IdentityFor(difficulty domain.Difficulty) Identity {
	d, ok := domain.ParseDifficulty(string(difficulty))
	if !ok {
		d = domain.DifficultyNormal
	}
	identitiesMu.RLock()
	identity, found := byDifficulty[d]
	identitiesMu.RUnlock()
	if found {
		return identity
	}
	return Identity{
		UserID:      "computer-" + string(d),
		Username:    "computer-" + string(d),
		DisplayName: defaultDisplayNames[d],
		Difficulty:  d,
	}
}

var defaultDisplayNames = map[domain.Difficulty]string{
	domain.DifficultyNormal: "Computer",
	domain.DifficultyExpert: "Computer (expert)",
}

// IsComputer reports whether userID belongs to a loaded computer identity.
func IsComputer(userID string) bool {
	identitiesMu.RLock()
	defer identitiesMu.RUnlock()
	return computerIDs[userID]
}
