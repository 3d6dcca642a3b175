package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestShuffleSeeded(t *testing.T) {
	seed := int64(42)
	a, b := Shuffle(&seed), Shuffle(&seed)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed gave different decks")
	}
	if reflect.DeepEqual(a, NewDeck()) {
		t.Fatal("shuffle left the deck in order")
	}
	seen := make(map[Card]bool)
	for _, c := range a {
		if !c.Valid() || seen[c] {
			t.Fatalf("bad or repeated card %s", c)
		}
		seen[c] = true
	}
	if len(seen) != DeckSize {
		t.Fatalf("deck has %d distinct cards", len(seen))
	}
}

func TestDealAlternates(t *testing.T) {
	deck := NewDeck()
	hands, stock, err := Deal(deck, 1)
	if err != nil {
		t.Fatalf("deal error: %v", err)
	}
	if len(hands[0]) != HandSize || len(hands[1]) != HandSize || len(stock) != DeckSize-2*HandSize {
		t.Fatalf("hands %d/%d stock %d", len(hands[0]), len(hands[1]), len(stock))
	}
	if hands[1][0] != deck[0] || hands[0][0] != deck[1] || hands[1][1] != deck[2] {
		t.Fatalf("deal did not alternate from seat 1: %v %v", hands[0], hands[1])
	}

	if _, _, err := Deal(deck[:5], 0); !errors.Is(err, ErrCorruptState) {
		t.Fatalf("short deck: err = %v", err)
	}
}

func TestCutStarter(t *testing.T) {
	stock := mustCards(t, "AS", "2S", "3S")
	starter, rest, err := CutStarter(stock, 1)
	if err != nil {
		t.Fatalf("cut error: %v", err)
	}
	if starter != mustCard(t, "2S") || !reflect.DeepEqual(rest, mustCards(t, "AS", "3S")) {
		t.Fatalf("starter %s rest %v", starter, rest)
	}
	if len(stock) != 3 {
		t.Fatalf("cut modified the stock: %v", stock)
	}
	for _, idx := range []int{-1, 3} {
		if _, _, err := CutStarter(stock, idx); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("index %d: err = %v", idx, err)
		}
	}
}

func TestSeedFor(t *testing.T) {
	secret := []byte("deck-secret")
	a, err := SeedFor(secret, "game-1", 1)
	if err != nil {
		t.Fatal(err)
	}
	again, _ := SeedFor(secret, "game-1", 1)
	nextRound, _ := SeedFor(secret, "game-1", 2)
	otherGame, _ := SeedFor(secret, "game-2", 1)
	if a != again {
		t.Fatalf("seed not stable: %d vs %d", a, again)
	}
	if a == nextRound || a == otherGame {
		t.Fatalf("seeds collide: %d %d %d", a, nextRound, otherGame)
	}
	if a < 0 {
		t.Fatalf("seed %d is negative", a)
	}
}

func TestSortHand(t *testing.T) {
	hand := mustCards(t, "KD", "AS", "5H", "5S", "10C", "AC")
	SortHand(hand)
	want := mustCards(t, "AS", "AC", "5S", "5H", "10C", "KD")
	if !reflect.DeepEqual(hand, want) {
		t.Fatalf("sorted = %v, want %v", hand, want)
	}
}
