package commands

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"cribbage/internal/app"
	"cribbage/internal/bot"
	"cribbage/internal/domain"
	"cribbage/internal/ports"
	"cribbage/internal/ports/memory"
)

const maxSimulatedMoves = 5000

var simulatedPlayer = ports.Identity{PlayerID: "simulated-player", Display: "You"}

type simulation struct {
	Seed       int64
	Difficulty domain.Difficulty
	Player     domain.Difficulty
	Target     int
}

type simulationResult struct {
	Game  *domain.Game
	Moves []string
}

// simulate: play one game against the computer with a strategy in the human seat.
func simulateCmd() *cobra.Command {
	var (
		sim        simulation
		difficulty string
		player     string
		quiet      bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a full game against the computer in memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ok bool
			if sim.Difficulty, ok = domain.ParseDifficulty(difficulty); !ok {
				return fmt.Errorf("unknown difficulty %q", difficulty)
			}
			if sim.Player, ok = domain.ParseDifficulty(player); !ok {
				return fmt.Errorf("unknown player strategy %q", player)
			}
			res, err := runSimulation(cmd.Context(), sim)
			if err != nil {
				return err
			}
			if !quiet {
				for _, line := range res.Moves {
					pterm.Println(line)
				}
			}
			return renderResult(res.Game)
		},
	}
	cmd.Flags().Int64Var(&sim.Seed, "seed", 1, "random seed for shuffles and cuts")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(domain.DifficultyNormal), "computer difficulty: normal or expert")
	cmd.Flags().StringVar(&player, "player", string(domain.DifficultyNormal), "strategy for the simulated player: normal or expert")
	cmd.Flags().IntVar(&sim.Target, "target", 0, "target score (default from config)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the final result")
	return cmd
}

func runSimulation(ctx context.Context, sim simulation) (simulationResult, error) {
	strategy, err := bot.NewStrategy(sim.Player)
	if err != nil {
		return simulationResult{}, err
	}
	rng := rand.New(rand.NewSource(sim.Seed))
	store := memory.NewGameStore()
	svc := app.NewService(store, settings,
		app.WithLogger(ptermLogger{}),
		app.WithRand(rand.New(rand.NewSource(sim.Seed))),
		app.WithIDGenerator(func() string { return "simulation-" + strconv.FormatInt(sim.Seed, 10) }),
	)

	g, err := svc.CreateGame(ctx, simulatedPlayer, app.CreateRequest{
		Opponent:    app.OpponentComputer,
		Difficulty:  string(sim.Difficulty),
		TargetScore: sim.Target,
	})
	if err != nil {
		return simulationResult{}, err
	}
	seat := g.SeatOf(simulatedPlayer.PlayerID)
	agent := &bot.Agent{Seat: seat, Strategy: strategy, Rand: rng}

	var res simulationResult
	for _, rec := range g.History {
		res.Moves = append(res.Moves, rec.Description)
	}
	for i := 0; i < maxSimulatedMoves; i++ {
		if g.Status.Terminal() {
			res.Game = g
			return res, nil
		}
		m, ok := agent.NextMove(g)
		if !ok {
			return res, fmt.Errorf("simulated player has no move in phase %s", g.State.Phase())
		}
		out, err := svc.SubmitMove(ctx, g.ID, simulatedPlayer, m)
		if err != nil {
			return res, err
		}
		res.Moves = append(res.Moves, out.Description)
		for _, cm := range out.ComputerMoves {
			res.Moves = append(res.Moves, cm.Description)
		}
		g = out.Game
		pterm.Debug.Printfln("simulate: version %d scores %v", g.Version, g.Scores)
	}
	return res, errors.New("simulation did not finish")
}

func renderResult(g *domain.Game) error {
	data := pterm.TableData{{"Seat", "Player", "Score"}}
	for i, p := range g.Players {
		data = append(data, []string{strconv.Itoa(i), p.Display, strconv.Itoa(g.Scores[i])})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	if g.Winner.Valid() {
		pterm.Success.Printfln("%s wins after %d moves", g.Players[g.Winner].Display, len(g.History))
	}
	return nil
}
