package domain

import "sort"

// ScoreKind names one scoring combination.
type ScoreKind string

const (
	ScoreFifteens ScoreKind = "fifteens"
	ScorePairs    ScoreKind = "pairs"
	ScoreRuns     ScoreKind = "runs"
	ScoreFlush    ScoreKind = "flush"
	ScoreNobs     ScoreKind = "nobs"
)

// ScoreItem is one line of a hand breakdown. Sets lists each scoring
// combination separately (every fifteen, every pair, every run).
type ScoreItem struct {
	Kind   ScoreKind `json:"kind"`
	Points int       `json:"points"`
	Sets   [][]Card  `json:"sets,omitempty"`
}

// Breakdown is the scored value of a hand or crib. Items are always ordered
// fifteens, pairs, runs, flush, nobs and only include non-zero lines.
type Breakdown struct {
	Items []ScoreItem `json:"items"`
	Total int         `json:"total"`
}

// Points returns the points for one kind, or zero.
func (b Breakdown) Points(kind ScoreKind) int {
	for _, it := range b.Items {
		if it.Kind == kind {
			return it.Points
		}
	}
	return 0
}

// ScoreHand scores four kept cards (or the crib's four discards) with the starter.
func ScoreHand(kept []Card, starter Card, crib bool) Breakdown {
	all := make([]Card, 0, len(kept)+1)
	all = append(all, kept...)
	all = append(all, starter)

	var b Breakdown
	add := func(kind ScoreKind, pts int, sets [][]Card) {
		if pts == 0 {
			return
		}
		b.Items = append(b.Items, ScoreItem{Kind: kind, Points: pts, Sets: sets})
		b.Total += pts
	}

	fifteens := fifteenSets(all)
	add(ScoreFifteens, 2*len(fifteens), fifteens)
	pairs := pairSets(all)
	add(ScorePairs, 2*len(pairs), pairs)
	runs := runSets(all)
	runPts := 0
	for _, r := range runs {
		runPts += len(r)
	}
	add(ScoreRuns, runPts, runs)
	add(ScoreFlush, flushPoints(kept, starter, crib), nil)
	if nob, ok := nobsCard(kept, starter); ok {
		add(ScoreNobs, 1, [][]Card{{nob, starter}})
	}
	return b
}

// ScoreCards scores cards without a starter (no flush or nobs). Strategies use
// it to value partial holdings.
func ScoreCards(cards []Card) int {
	pts := 2*len(fifteenSets(cards)) + 2*len(pairSets(cards))
	for _, r := range runSets(cards) {
		pts += len(r)
	}
	return pts
}

// ValidHandTotal reports whether n may be entered as a hand or crib score.
// 25, 26 and 27 cannot be made with five cards.
func ValidHandTotal(n int) bool {
	if n < 0 {
		return false
	}
	return n <= 24 || n == 28 || n == 29
}

func fifteenSets(cards []Card) [][]Card {
	var sets [][]Card
	n := len(cards)
	for mask := 1; mask < (1 << n); mask++ {
		sum := 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sum += cards[i].Value()
			}
		}
		if sum != 15 {
			continue
		}
		set := make([]Card, 0, n)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				set = append(set, cards[i])
			}
		}
		sets = append(sets, set)
	}
	return sets
}

func pairSets(cards []Card) [][]Card {
	var sets [][]Card
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			if cards[i].Rank == cards[j].Rank {
				sets = append(sets, []Card{cards[i], cards[j]})
			}
		}
	}
	return sets
}

// runSets returns every distinct run of maximal length. A run with duplicated
// ranks expands into one set per choice of duplicate, so the point value is the
// run length times the product of the duplicate counts.
func runSets(cards []Card) [][]Card {
	byRank := make(map[Rank][]Card)
	for _, c := range cards {
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	ranks := make([]Rank, 0, len(byRank))
	for r := range byRank {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })

	var sets [][]Card
	start := 0
	for start < len(ranks) {
		end := start
		for end+1 < len(ranks) && ranks[end+1] == ranks[end]+1 {
			end++
		}
		if end-start+1 >= 3 {
			sets = append(sets, expandRun(ranks[start:end+1], byRank)...)
		}
		start = end + 1
	}
	return sets
}

func expandRun(ranks []Rank, byRank map[Rank][]Card) [][]Card {
	sets := [][]Card{{}}
	for _, r := range ranks {
		var next [][]Card
		for _, prefix := range sets {
			for _, c := range byRank[r] {
				set := append(append(make([]Card, 0, len(ranks)), prefix...), c)
				next = append(next, set)
			}
		}
		sets = next
	}
	return sets
}

func flushPoints(kept []Card, starter Card, crib bool) int {
	if len(kept) != KeepSize {
		return 0
	}
	s := kept[0].Suit
	for _, c := range kept[1:] {
		if c.Suit != s {
			return 0
		}
	}
	if starter.Suit == s {
		return 5
	}
	if crib {
		return 0
	}
	return 4
}

func nobsCard(kept []Card, starter Card) (Card, bool) {
	for _, c := range kept {
		if c.Rank == Jack && c.Suit == starter.Suit {
			return c, true
		}
	}
	return Card{}, false
}

// pairPoints is the score for n cards of one rank: C(n,2) pairs at 2 each.
func pairPoints(n int) int {
	return n * (n - 1)
}

// isRun reports whether cards form a run of consecutive distinct ranks in any order.
func isRun(cards []Card) bool {
	if len(cards) < 3 {
		return false
	}
	seen := make(map[Rank]bool, len(cards))
	lo, hi := King+1, Ace-1
	for _, c := range cards {
		if seen[c.Rank] {
			return false
		}
		seen[c.Rank] = true
		if c.Rank < lo {
			lo = c.Rank
		}
		if c.Rank > hi {
			hi = c.Rank
		}
	}
	return int(hi-lo)+1 == len(cards)
}
