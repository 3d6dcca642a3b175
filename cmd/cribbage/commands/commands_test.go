package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"cribbage/internal/domain"
)

func TestScoreHand(t *testing.T) {
	b, err := scoreHand([]string{"5C", "5D", "5H", "JS"}, "5S", false)
	if err != nil {
		t.Fatalf("score error: %v", err)
	}
	if b.Total != 29 {
		t.Fatalf("total = %d, want 29", b.Total)
	}

	if _, err := scoreHand([]string{"5C", "5D", "5H", "5S"}, "5S", false); err == nil {
		t.Fatal("expected duplicate card error")
	}
	if _, err := scoreHand([]string{"5C", "5D", "5H", "JS"}, "", false); err == nil {
		t.Fatal("expected starter error")
	}
}

func TestScoreCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"score", "2H", "3H", "4H", "5H", "--starter", "KC"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"fifteens", "runs", "flush", "total"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunSimulation(t *testing.T) {
	sim := simulation{Seed: 7, Difficulty: domain.DifficultyExpert, Player: domain.DifficultyNormal, Target: 61}
	res, err := runSimulation(context.Background(), sim)
	if err != nil {
		t.Fatalf("simulation error: %v", err)
	}
	g := res.Game
	if g.Status != domain.StatusCompleted || !g.Winner.Valid() {
		t.Fatalf("status %s winner %d", g.Status, g.Winner)
	}
	if g.Scores[g.Winner] < 61 || g.Scores[g.Winner.Opponent()] >= 61 {
		t.Fatalf("scores = %v", g.Scores)
	}
	if len(res.Moves) != len(g.History) {
		t.Fatalf("logged %d moves, history has %d", len(res.Moves), len(g.History))
	}

	again, err := runSimulation(context.Background(), sim)
	if err != nil {
		t.Fatal(err)
	}
	if again.Game.Scores != g.Scores || len(again.Moves) != len(res.Moves) {
		t.Fatalf("same seed gave %v, want %v", again.Game.Scores, g.Scores)
	}
}
