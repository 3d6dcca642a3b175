package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cribbage/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cribbage.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		check   func(t *testing.T, c GameConfig)
	}{
		{
			name: "Partial file keeps defaults",
			body: `{"target_score": 61}`,
			check: func(t *testing.T, c GameConfig) {
				if c.TargetScore != 61 || c.ConflictRetries != 3 || c.MugginsPolicy != domain.PolicyNoPenalty {
					t.Fatalf("config = %+v", c)
				}
				if c.PollInterval() != 2*time.Second {
					t.Fatalf("poll interval = %v", c.PollInterval())
				}
			},
		},
		{
			name: "Fixed penalty",
			body: `{"muggins_policy": "fixed_penalty", "muggins_penalty_points": 2, "default_difficulty": "expert"}`,
			check: func(t *testing.T, c GameConfig) {
				if c.MugginsPenaltyPoints != 2 || c.DefaultDifficulty != "expert" {
					t.Fatalf("config = %+v", c)
				}
			},
		},
		{name: "Penalty without points", body: `{"muggins_policy": "fixed_penalty"}`, wantErr: true},
		{name: "Unknown difficulty", body: `{"default_difficulty": "godlike"}`, wantErr: true},
		{name: "Zero target", body: `{"target_score": 0}`, wantErr: true},
		{name: "Zero conflict retries", body: `{"conflict_retries": 0}`, wantErr: true},
		{name: "Negative conflict retries", body: `{"conflict_retries": -1}`, wantErr: true},
		{name: "Bad JSON", body: `{`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(writeConfig(t, tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", c)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestGetGameConfigDefaults(t *testing.T) {
	if cfg != nil {
		t.Skip("config already loaded")
	}
	if got := GetGameConfig(); got != Default() {
		t.Fatalf("GetGameConfig() = %+v, want defaults", got)
	}
}
