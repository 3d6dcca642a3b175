package bot

import (
	"fmt"

	"cribbage/internal/domain"
)

// NewStrategy creates a computer opponent for the given difficulty.
func NewStrategy(difficulty domain.Difficulty) (Strategy, error) {
	switch difficulty {
	case "", domain.DifficultyNormal:
		return &NormalBot{}, nil
	case domain.DifficultyExpert:
		return &ExpertBot{Tuning: DefaultTuning}, nil
	default:
		return nil, fmt.Errorf("unknown difficulty: %s", difficulty)
	}
}
