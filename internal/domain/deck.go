package domain

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

const (
	// DeckSize is the number of cards in a full deck.
	DeckSize = 52
	// HandSize is the number of cards dealt to each seat.
	HandSize = 13
	// SeatCount is the fixed number of players at the table.
	SeatCount = 4
	// TricksPerRound is the number of tricks in a round.
	TricksPerRound = DeckSize / SeatCount
	// TensInDeck is the number of tens in a full deck, one per suit.
	TensInDeck = 4
)

// NewDeck returns the 52 distinct cards in a fixed order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck. The input is left untouched.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal hands out a full deck to four players: seat i receives deck[13i:13i+13].
// It panics when the deck or player count is wrong; callers must guarantee both.
func Deal(players []Player, deck []Card) []Player {
	if len(players) != SeatCount {
		panic(fmt.Sprintf("domain: deal needs %d players, got %d", SeatCount, len(players)))
	}
	if len(deck) != DeckSize {
		panic(fmt.Sprintf("domain: deal needs a %d card deck, got %d", DeckSize, len(deck)))
	}
	out := make([]Player, len(players))
	for i, p := range players {
		p.Hand = append([]Card(nil), deck[i*HandSize:(i+1)*HandSize]...)
		out[i] = p
	}
	return out
}

var displaySuitOrder = map[Suit]int{Spades: 0, Hearts: 1, Diamonds: 2, Clubs: 3}

// SortHand returns a copy of the hand grouped by suit with ranks descending.
// Display only: ordering never affects legality.
func SortHand(hand []Card) []Card {
	out := append([]Card(nil), hand...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Suit != out[j].Suit {
			return displaySuitOrder[out[i].Suit] < displaySuitOrder[out[j].Suit]
		}
		return out[i].Rank > out[j].Rank
	})
	return out
}

// ContainsCard reports whether the card is in the hand.
func ContainsCard(hand []Card, card Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}

// RemoveCard returns a new hand without the given card.
func RemoveCard(hand []Card, card Card) []Card {
	var out []Card
	for _, c := range hand {
		if c == card {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CountTens returns how many tens are in the given cards.
func CountTens(cards []Card) int {
	n := 0
	for _, c := range cards {
		if c.IsTen() {
			n++
		}
	}
	return n
}
