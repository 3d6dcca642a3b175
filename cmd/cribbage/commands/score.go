package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"cribbage/internal/domain"
)

// score <c1> <c2> <c3> <c4> --starter <card>: print a hand breakdown.
func scoreCmd() *cobra.Command {
	var (
		starter string
		crib    bool
	)
	cmd := &cobra.Command{
		Use:   "score <card> <card> <card> <card>",
		Short: "Score a hand or crib against a starter",
		Args:  cobra.ExactArgs(domain.KeepSize),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := scoreHand(args, starter, crib)
			if err != nil {
				return err
			}
			return renderBreakdown(cmd.OutOrStdout(), b)
		},
	}
	cmd.Flags().StringVarP(&starter, "starter", "s", "", "starter card, e.g. 5S")
	cmd.Flags().BoolVar(&crib, "crib", false, "score as a crib (flush needs all five cards)")
	_ = cmd.MarkFlagRequired("starter")
	return cmd
}

func scoreHand(args []string, starter string, crib bool) (domain.Breakdown, error) {
	cards, err := domain.ParseCards(args)
	if err != nil {
		return domain.Breakdown{}, err
	}
	st, err := domain.ParseCard(starter)
	if err != nil {
		return domain.Breakdown{}, fmt.Errorf("starter: %w", err)
	}
	seen := map[domain.Card]bool{st: true}
	for _, c := range cards {
		if seen[c] {
			return domain.Breakdown{}, fmt.Errorf("duplicate card %s", c)
		}
		seen[c] = true
	}
	return domain.ScoreHand(cards, st, crib), nil
}

func renderBreakdown(w io.Writer, b domain.Breakdown) error {
	data := pterm.TableData{{"Kind", "Points", "Cards"}}
	for _, it := range b.Items {
		sets := make([]string, 0, len(it.Sets))
		for _, set := range it.Sets {
			sets = append(sets, joinCards(set))
		}
		data = append(data, []string{string(it.Kind), strconv.Itoa(it.Points), strings.Join(sets, "  ")})
	}
	data = append(data, []string{"total", strconv.Itoa(b.Total), ""})
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func joinCards(cards []domain.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
