package brain

import (
	"mendikot/internal/domain"
)

// CardStatus represents what the bot knows about a specific card.
type CardStatus int

const (
	StatusUnknown CardStatus = iota // Held by some other seat
	StatusMine                      // In the bot's hand
	StatusPlayed                    // Already on the table
)

// GameMemory stores the bot's private view of the round.
type GameMemory struct {
	// DeckStatus tracks all 52 cards. Index = Suit*13 + Rank-2.
	DeckStatus [domain.DeckSize]CardStatus
	// Opponents tracks what each other seat has revealed, by seat index.
	Opponents map[int]*OpponentProfile
}

// NewMemory initializes a fresh memory state.
func NewMemory() *GameMemory {
	return &GameMemory{
		Opponents: make(map[int]*OpponentProfile),
	}
}

// FromView rebuilds memory from everything visible to one seat.
func FromView(view domain.RoundView) *GameMemory {
	m := NewMemory()
	m.UpdateHand(view.Hand)
	for _, trick := range view.CompletedTricks {
		m.RecordTrick(trick.Cards)
	}
	m.RecordTrick(view.Trick.Cards)
	return m
}

// MarkMine records the cards currently in the bot's hand.
func (m *GameMemory) MarkMine(cards []domain.Card) {
	for _, c := range cards {
		m.DeckStatus[cardToIndex(c)] = StatusMine
	}
}

// UpdateHand marks the current hand as Mine and forgets cards that left it.
func (m *GameMemory) UpdateHand(hand []domain.Card) {
	for i, status := range m.DeckStatus {
		if status == StatusMine {
			m.DeckStatus[i] = StatusUnknown
		}
	}
	m.MarkMine(hand)
}

// RecordTrick logs the cards of a (possibly partial) trick in play order.
func (m *GameMemory) RecordTrick(plays []domain.PlayedCard) {
	if len(plays) == 0 {
		return
	}
	lead := plays[0].Card.Suit
	for _, p := range plays {
		m.DeckStatus[cardToIndex(p.Card)] = StatusPlayed
		m.profile(p.Seat).RecordPlay(p.Card, lead)
	}
}

func (m *GameMemory) profile(seat int) *OpponentProfile {
	p, ok := m.Opponents[seat]
	if !ok {
		p = NewOpponentProfile(seat)
		m.Opponents[seat] = p
	}
	return p
}

// IsBoss returns true if no higher card of the same suit is still unseen.
func (m *GameMemory) IsBoss(c domain.Card) bool {
	for r := c.Rank + 1; r <= domain.Ace; r++ {
		if m.DeckStatus[cardToIndex(domain.Card{Suit: c.Suit, Rank: r})] == StatusUnknown {
			return false
		}
	}
	return true
}

// IsVoid reports whether seat has shown out of suit.
func (m *GameMemory) IsVoid(seat int, suit domain.Suit) bool {
	p, ok := m.Opponents[seat]
	return ok && !p.CanFollow(suit)
}

// Outstanding counts cards of a suit held by other seats.
func (m *GameMemory) Outstanding(suit domain.Suit) int {
	n := 0
	for r := domain.Two; r <= domain.Ace; r++ {
		if m.DeckStatus[cardToIndex(domain.Card{Suit: suit, Rank: r})] == StatusUnknown {
			n++
		}
	}
	return n
}

// TensOutstanding counts tens held by other seats.
func (m *GameMemory) TensOutstanding() int {
	n := 0
	for _, s := range domain.Suits {
		if m.DeckStatus[cardToIndex(domain.Card{Suit: s, Rank: domain.Ten})] == StatusUnknown {
			n++
		}
	}
	return n
}

// cardToIndex converts domain.Card to a 0-51 index.
func cardToIndex(c domain.Card) int {
	return int(c.Suit)*13 + int(c.Rank) - int(domain.Two)
}
