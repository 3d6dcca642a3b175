package domain

import "fmt"

// MugginsPolicy decides what happens when a muggins call finds nothing missed.
// Scores never go down, so a penalty is paid as points to the counter.
type MugginsPolicy interface {
	Name() string
	FailedChallengePenalty() int
}

// NoPenalty lets a failed muggins call pass without consequence.
type NoPenalty struct{}

func (NoPenalty) Name() string                { return PolicyNoPenalty }
func (NoPenalty) FailedChallengePenalty() int { return 0 }

// FixedPenalty gives the counter Points when a muggins call finds nothing.
type FixedPenalty struct {
	Points int
}

func (FixedPenalty) Name() string                  { return PolicyFixedPenalty }
func (p FixedPenalty) FailedChallengePenalty() int { return p.Points }

const (
	PolicyNoPenalty    = "no_penalty"
	PolicyFixedPenalty = "fixed_penalty"
)

// MugginsPolicyByName builds a policy from its configured name.
func MugginsPolicyByName(name string, points int) (MugginsPolicy, error) {
	switch name {
	case "", PolicyNoPenalty:
		return NoPenalty{}, nil
	case PolicyFixedPenalty:
		if points <= 0 {
			return nil, fmt.Errorf("fixed muggins penalty must be positive, got %d", points)
		}
		return FixedPenalty{Points: points}, nil
	default:
		return nil, fmt.Errorf("unknown muggins policy %q", name)
	}
}
