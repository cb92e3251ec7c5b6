package domain

import (
	"fmt"
	"strings"
)

// Suit is one of the four French suits.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in deck construction order.
var Suits = [4]Suit{Hearts, Diamonds, Clubs, Spades}

var suitNames = map[Suit]string{
	Hearts:   "hearts",
	Diamonds: "diamonds",
	Clubs:    "clubs",
	Spades:   "spades",
}

var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return fmt.Sprintf("suit(%d)", int(s))
}

// Symbol returns the single glyph used when rendering a card.
func (s Suit) Symbol() string {
	return suitSymbols[s]
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	_, ok := suitNames[s]
	return ok
}

// ParseSuit maps a suit name ("hearts") back to its Suit.
func ParseSuit(name string) (Suit, error) {
	for s, n := range suitNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", name)
}

// Rank is the face value of a card. The numeric value is the trick-taking
// strength: Two is lowest, Ace highest.
type Rank int

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// Ranks lists every rank from highest to lowest.
var Ranks = [13]Rank{Ace, King, Queen, Jack, Ten, Nine, Eight, Seven, Six, Five, Four, Three, Two}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case King:
		return "K"
	case Queen:
		return "Q"
	case Jack:
		return "J"
	}
	if r >= Two && r <= Ten {
		return fmt.Sprintf("%d", int(r))
	}
	return fmt.Sprintf("rank(%d)", int(r))
}

// Valid reports whether r is one of the thirteen ranks.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// ParseRank maps "A", "K", "10", "2"... back to a Rank.
func ParseRank(s string) (Rank, error) {
	for _, r := range Ranks {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", s)
}

// Card is an immutable playing card.
type Card struct {
	Suit Suit
	Rank Rank
}

// ID is the stable identifier of the card within a deck, e.g. "10-hearts".
func (c Card) ID() string {
	return c.Rank.String() + "-" + c.Suit.String()
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// IsTen reports whether the card counts towards the tens tally.
func (c Card) IsTen() bool {
	return c.Rank == Ten
}

// ParseCardID is the inverse of Card.ID.
func ParseCardID(id string) (Card, error) {
	rankPart, suitPart, ok := strings.Cut(id, "-")
	if !ok {
		return Card{}, fmt.Errorf("malformed card id %q", id)
	}
	rank, err := ParseRank(rankPart)
	if err != nil {
		return Card{}, err
	}
	suit, err := ParseSuit(suitPart)
	if err != nil {
		return Card{}, err
	}
	return Card{Suit: suit, Rank: rank}, nil
}
