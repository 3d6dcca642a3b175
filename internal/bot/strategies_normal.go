package bot

import (
	"cribbage/internal/domain"
)

// NormalBot keeps the hand that scores best on its own and pegs greedily.
type NormalBot struct{}

func (b *NormalBot) SelectDiscard(hand []domain.Card, isDealer bool) [2]domain.Card {
	options := discardOptions(hand)
	best := options[0]
	bestScore := normalDiscardScore(best, isDealer)
	for _, opt := range options[1:] {
		if score := normalDiscardScore(opt, isDealer); score > bestScore {
			best, bestScore = opt, score
		}
	}
	return best.discard
}

// normalDiscardScore counts the kept cards and credits or charges the pair
// laid away, depending on who owns the crib.
func normalDiscardScore(opt discardOption, isDealer bool) int {
	crib := domain.ScoreCards(opt.discard[:])
	if opt.discard[0].Value()+opt.discard[1].Value() == 5 {
		crib += 2
	}
	if !isDealer {
		crib = -crib
	}
	return domain.ScoreCards(opt.keep) + crib
}

func (b *NormalBot) SelectPlay(hand []domain.Card, sequence []domain.Card, count int) (domain.Card, bool) {
	cards := playable(hand, count)
	if len(cards) == 0 {
		return domain.Card{}, false
	}
	best := cards[0]
	bestScore := pegScore(sequence, best, count)
	for _, c := range cards[1:] {
		score := pegScore(sequence, c, count)
		if score > bestScore || (score == bestScore && betterPlay(c, best, count)) {
			best, bestScore = c, score
		}
	}
	return best, true
}
