package app

import (
	"math/rand"

	"cribbage/internal/bot"
	"cribbage/internal/domain"
)

// runComputer plays computer seats until a human has to act. Moves go through
// Apply so they are validated like any other.
func (s *Service) runComputer(g *domain.Game) (*domain.Game, []MoveResult) {
	agents := s.agentsFor(g)
	if len(agents) == 0 {
		return g, nil
	}
	var results []MoveResult
	for i := 0; i < maxComputerMoves; i++ {
		moved := false
		for _, agent := range agents {
			m, ok := agent.NextMove(g)
			if !ok {
				continue
			}
			res := s.Apply(g, g.Players[agent.Seat].ID, m)
			if !res.Success {
				s.logger.Error("runComputer [Game:%s]: Computer %s rejected: %v", g.ID, m.Type(), res.Err)
				return g, results
			}
			results = append(results, res)
			g = res.Game
			moved = true
			break
		}
		if !moved {
			return g, results
		}
	}
	s.logger.Warn("runComputer [Game:%s]: Stopped after %d computer moves", g.ID, maxComputerMoves)
	return g, results
}

func (s *Service) agentsFor(g *domain.Game) []*bot.Agent {
	if g.Status != domain.StatusActive {
		return nil
	}
	var agents []*bot.Agent
	for i, p := range g.Players {
		if p == nil || !p.Computer {
			continue
		}
		strategy, err := s.strategyFor(g.Options.Difficulty)
		if err != nil {
			s.logger.Error("runComputer [Game:%s]: No strategy for difficulty %q: %v", g.ID, g.Options.Difficulty, err)
			return nil
		}
		agents = append(agents, &bot.Agent{
			Seat:     domain.Seat(i),
			Strategy: strategy,
			Rand:     rand.New(rand.NewSource(s.int63())),
		})
	}
	return agents
}
