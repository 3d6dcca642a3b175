package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strconv"

	"golang.org/x/crypto/hkdf"
)

const (
	// DeckSize is the number of cards in a standard deck.
	DeckSize = 52
	// HandSize is the number of cards dealt to each player.
	HandSize = 6
	// KeepSize is the number of cards a player keeps after discarding.
	KeepSize = 4
	// DiscardSize is the number of cards each player gives to the crib.
	DiscardSize = 2
)

// NewDeck returns an ordered 52-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := Ace; r <= King; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// Shuffle returns a freshly shuffled deck. A non-nil seed makes the permutation
// reproducible; a nil seed draws from the process-wide source.
func Shuffle(seed *int64) []Card {
	deck := NewDeck()
	var rng *rand.Rand
	if seed != nil {
		rng = rand.New(rand.NewSource(*seed))
	}
	for i := len(deck) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.Intn(i + 1)
		} else {
			j = rand.Intn(i + 1)
		}
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

// SeedFor derives the shuffle seed for one round of one game from a server secret.
func SeedFor(secret []byte, gameID string, round int) (int64, error) {
	r := hkdf.New(sha256.New, secret, []byte(gameID), []byte("deal:"+strconv.Itoa(round)))
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("derive seed: %w", err)
	}
	return int64(binary.BigEndian.Uint64(buf[:]) >> 1), nil
}

// Deal hands out six cards to each player alternately, starting with the
// player to the dealer's left (seat order given by first), and returns the rest
// as the stock.
func Deal(deck []Card, first Seat) (hands [2][]Card, stock []Card, err error) {
	if len(deck) < 2*HandSize {
		return hands, nil, fmt.Errorf("%w: deck has %d cards", ErrCorruptState, len(deck))
	}
	hands[0] = make([]Card, 0, HandSize)
	hands[1] = make([]Card, 0, HandSize)
	seat := first
	for i := 0; i < 2*HandSize; i++ {
		hands[seat] = append(hands[seat], deck[i])
		seat = seat.Opponent()
	}
	stock = cloneCards(deck[2*HandSize:])
	return hands, stock, nil
}

// CutStarter reveals the card at cutIndex of the stock and returns it along with
// the stock minus that card.
func CutStarter(stock []Card, cutIndex int) (Card, []Card, error) {
	if cutIndex < 0 || cutIndex >= len(stock) {
		return Card{}, nil, fmt.Errorf("%w: cut index %d outside 0..%d", ErrInvalidPayload, cutIndex, len(stock)-1)
	}
	starter := stock[cutIndex]
	rest := make([]Card, 0, len(stock)-1)
	rest = append(rest, stock[:cutIndex]...)
	rest = append(rest, stock[cutIndex+1:]...)
	return starter, rest, nil
}

// SortHand orders a hand by rank, then suit.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return cardPower(cards[i]) < cardPower(cards[j])
	})
}

func cardPower(c Card) int {
	suit := 0
	for i, s := range Suits {
		if s == c.Suit {
			suit = i
		}
	}
	return int(c.Rank)*4 + suit
}
