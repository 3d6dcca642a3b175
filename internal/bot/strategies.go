package bot

import (
	"cribbage/internal/domain"
)

// discardOption is one way to split a six-card hand.
type discardOption struct {
	keep    []domain.Card
	discard [2]domain.Card
}

// discardOptions enumerates the fifteen keep/discard splits of hand in a
// stable order.
func discardOptions(hand []domain.Card) []discardOption {
	var out []discardOption
	for i := 0; i < len(hand); i++ {
		for j := i + 1; j < len(hand); j++ {
			d := [2]domain.Card{hand[i], hand[j]}
			out = append(out, discardOption{
				keep:    domain.RemoveCards(hand, d[:]),
				discard: d,
			})
		}
	}
	return out
}

// playable returns the held cards that fit under 31.
func playable(hand []domain.Card, count int) []domain.Card {
	var out []domain.Card
	for _, c := range hand {
		if count+c.Value() <= domain.MaxCount {
			out = append(out, c)
		}
	}
	return out
}

func pegScore(sequence []domain.Card, c domain.Card, count int) int {
	pts := 0
	for _, ev := range domain.PegPoints(sequence, c, count) {
		pts += ev.Points
	}
	return pts
}

// unseen returns the cards not in any of the given groups.
func unseen(groups ...[]domain.Card) []domain.Card {
	seen := make(map[domain.Card]bool)
	for _, g := range groups {
		for _, c := range g {
			seen[c] = true
		}
	}
	var out []domain.Card
	for _, c := range domain.NewDeck() {
		if !seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// betterPlay breaks ties between two equally scored plays: stay off the
// danger counts, then keep the higher card.
func betterPlay(a, b domain.Card, count int) bool {
	da := dangerCounts[count+a.Value()]
	db := dangerCounts[count+b.Value()]
	if da != db {
		return !da
	}
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Suit < b.Suit
}
