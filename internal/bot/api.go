package bot

import (
	"cribbage/internal/domain"
)

// Strategy is the interface that all computer opponents must implement.
type Strategy interface {
	// SelectDiscard picks the two cards to lay away from a six-card hand.
	SelectDiscard(hand []domain.Card, isDealer bool) [2]domain.Card
	// SelectPlay picks the card to lay on the current sequence at count.
	// ok is false when no held card fits under 31.
	SelectPlay(hand []domain.Card, sequence []domain.Card, count int) (card domain.Card, ok bool)
}
