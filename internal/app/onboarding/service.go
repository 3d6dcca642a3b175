package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"cribbage/internal/ports"
)

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// DisplayName is the name the player will be shown to opponents.
	DisplayName string
	// Generated is true when the account had no name and one was assigned.
	Generated bool
}

// Service handles post-auth onboarding for new players.
type Service struct {
	accounts ports.AccountPort
	rng      *rand.Rand
}

// NewService constructs an onboarding service.
// accounts must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		rng:      rng,
	}
}

// OnboardNewPlayer makes sure a new account has a display name opponents can
// see at the table. Accounts that already chose one are left alone.
func (s *Service) OnboardNewPlayer(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}
	if userID == "" {
		return Result{}, fmt.Errorf("userID is required")
	}

	current, err := s.accounts.DisplayName(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read account %s: %w", userID, err)
	}
	if current != "" && current != userID {
		return Result{DisplayName: current}, nil
	}

	name := s.generateFriendlyName()
	if err := s.accounts.UpdateProfile(ctx, userID, "", name); err != nil {
		return Result{}, fmt.Errorf("failed to name account %s: %w", userID, err)
	}
	return Result{DisplayName: name, Generated: true}, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Lucky", "Sharp", "Steady", "Clever", "Swift", "Calm", "Bold", "Witty", "Sly", "Quiet"}
	nouns := []string{"Pegger", "Dealer", "Cutter", "Skunk", "Knave", "Crib", "Nob", "Heel", "Muggins", "Pone"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
