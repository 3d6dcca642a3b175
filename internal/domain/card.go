package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit is one of the four French suits.
type Suit string

const (
	Spades   Suit = "S"
	Hearts   Suit = "H"
	Diamonds Suit = "D"
	Clubs    Suit = "C"
)

// Suits lists the suits in deck order.
var Suits = [4]Suit{Spades, Hearts, Diamonds, Clubs}

// Rank is the card rank, Ace=1 through King=13.
type Rank int

const (
	Ace   Rank = 1
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// Card is a single playing card.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// Value returns the counting value used for fifteens and the pegging count.
func (c Card) Value() int {
	if c.Rank >= Ten {
		return 10
	}
	return int(c.Rank)
}

// Valid reports whether the card is one of the 52 standard cards.
func (c Card) Valid() bool {
	if c.Rank < Ace || c.Rank > King {
		return false
	}
	switch c.Suit {
	case Spades, Hearts, Diamonds, Clubs:
		return true
	}
	return false
}

func (c Card) String() string {
	var r string
	switch c.Rank {
	case Ace:
		r = "A"
	case Jack:
		r = "J"
	case Queen:
		r = "Q"
	case King:
		r = "K"
	default:
		r = strconv.Itoa(int(c.Rank))
	}
	return r + string(c.Suit)
}

// ParseCard parses the text form produced by Card.String, e.g. "10S" or "jh".
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	var r Rank
	switch rankStr := s[:len(s)-1]; rankStr {
	case "A":
		r = Ace
	case "J":
		r = Jack
	case "Q":
		r = Queen
	case "K":
		r = King
	default:
		v, err := strconv.Atoi(rankStr)
		if err != nil || v < 2 || v > 10 {
			return Card{}, fmt.Errorf("invalid rank in %q", s)
		}
		r = Rank(v)
	}
	c := Card{Rank: r, Suit: Suit(s[len(s)-1:])}
	if !c.Valid() {
		return Card{}, fmt.Errorf("invalid suit in %q", s)
	}
	return c, nil
}

// ParseCards parses each element with ParseCard.
func ParseCards(in []string) ([]Card, error) {
	out := make([]Card, 0, len(in))
	for _, s := range in {
		c, err := ParseCard(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ContainsCard reports whether c is in cards.
func ContainsCard(cards []Card, c Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

// RemoveCards removes the specified cards from a hand and returns the updated hand.
// The input slice is not modified.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return append([]Card(nil), hand...)
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, card := range toRemove {
		removeCounts[card]++
	}

	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if count, ok := removeCounts[card]; ok && count > 0 {
			removeCounts[card] = count - 1
			continue
		}
		updated = append(updated, card)
	}

	return updated
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	return append(make([]Card, 0, len(cards)), cards...)
}
