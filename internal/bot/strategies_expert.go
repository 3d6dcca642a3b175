package bot

import (
	"cribbage/internal/domain"
)

// ExpertBot chooses its discard by expected value over every possible starter
// and pegs with an eye on the opponent's best reply.
type ExpertBot struct {
	Tuning Tuning
}

func (b *ExpertBot) SelectDiscard(hand []domain.Card, isDealer bool) [2]domain.Card {
	starters := unseen(hand)
	sign := -1.0
	if isDealer {
		sign = 1.0
	}

	var best discardOption
	bestEV := 0.0
	for i, opt := range discardOptions(hand) {
		total := 0.0
		for _, starter := range starters {
			total += float64(domain.ScoreHand(opt.keep, starter, false).Total)
			crib := append([]domain.Card{opt.discard[0], opt.discard[1]}, starter)
			total += sign * b.Tuning.CribWeight * float64(domain.ScoreCards(crib))
		}
		ev := total / float64(len(starters))
		if i == 0 || ev > bestEV {
			best, bestEV = opt, ev
		}
	}
	return best.discard
}

func (b *ExpertBot) SelectPlay(hand []domain.Card, sequence []domain.Card, count int) (domain.Card, bool) {
	cards := playable(hand, count)
	if len(cards) == 0 {
		return domain.Card{}, false
	}
	replies := unseen(hand, sequence)

	var best domain.Card
	bestScore := 0.0
	for i, c := range cards {
		score := float64(pegScore(sequence, c, count))
		score -= b.Tuning.ReplyRiskWeight * expectedReply(sequence, c, count, replies)
		if dangerCounts[count+c.Value()] {
			score -= b.Tuning.DangerCountPenalty
		}
		if i == 0 || score > bestScore || (score == bestScore && betterPlay(c, best, count)) {
			best, bestScore = c, score
		}
	}
	return best, true
}

// expectedReply averages what the opponent pegs over every unseen card that
// fits after c is laid.
func expectedReply(sequence []domain.Card, c domain.Card, count int, replies []domain.Card) float64 {
	next := count + c.Value()
	if next == domain.MaxCount {
		return 0
	}
	seq := append(append([]domain.Card(nil), sequence...), c)
	total, n := 0, 0
	for _, r := range replies {
		if r == c || next+r.Value() > domain.MaxCount {
			continue
		}
		total += pegScore(seq, r, next)
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
