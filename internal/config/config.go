package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"cribbage/internal/domain"
)

// GameConfig holds the server-wide defaults for new games.
type GameConfig struct {
	TargetScore          int    `json:"target_score"`
	DefaultDifficulty    string `json:"default_difficulty"`
	MugginsPolicy        string `json:"muggins_policy"`
	MugginsPenaltyPoints int    `json:"muggins_penalty_points"`
	ConflictRetries      int    `json:"conflict_retries"`
	PollIntervalSeconds  int    `json:"poll_interval_seconds"`
	// BotIdentitiesPath points at the computer opponent profiles. Empty uses built-in identities.
	BotIdentitiesPath string `json:"bot_identities_path"`
}

// Default returns the configuration used when no file is provided.
func Default() GameConfig {
	return GameConfig{
		TargetScore:         domain.DefaultTargetScore,
		DefaultDifficulty:   string(domain.DifficultyNormal),
		MugginsPolicy:       domain.PolicyNoPenalty,
		ConflictRetries:     3,
		PollIntervalSeconds: 2,
	}
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path. Fields
// missing from the file keep their defaults.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		c, err := Parse(path)
		if err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// Parse reads and validates a config file without touching the global one.
func Parse(path string) (GameConfig, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read game config: %w", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate rejects settings no game could be created with.
func (c GameConfig) Validate() error {
	if c.TargetScore <= 0 {
		return fmt.Errorf("target_score must be positive, got %d", c.TargetScore)
	}
	if _, ok := domain.ParseDifficulty(c.DefaultDifficulty); !ok {
		return fmt.Errorf("unknown default_difficulty %q", c.DefaultDifficulty)
	}
	if _, err := domain.MugginsPolicyByName(c.MugginsPolicy, c.MugginsPenaltyPoints); err != nil {
		return err
	}
	if c.ConflictRetries <= 0 {
		return fmt.Errorf("conflict_retries must be positive, got %d", c.ConflictRetries)
	}
	if c.PollIntervalSeconds <= 0 {
		return fmt.Errorf("poll_interval_seconds must be positive, got %d", c.PollIntervalSeconds)
	}
	return nil
}

// PollInterval is the suggested client polling period.
func (c GameConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// GetGameConfig returns the global game configuration, or the defaults when
// none was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Default()
	}
	return *cfg
}
