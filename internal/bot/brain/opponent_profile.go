package brain

import (
	"mendikot/internal/domain"
)

// OpponentProfile tracks what the table has revealed about one seat.
type OpponentProfile struct {
	Seat        int
	CardsPlayed int
	TensPlayed  int
	// Voids is indexed by domain.Suit; set once the seat failed to follow that suit.
	Voids [4]bool
}

// NewOpponentProfile initializes a profile for a specific seat.
func NewOpponentProfile(seat int) *OpponentProfile {
	return &OpponentProfile{Seat: seat}
}

// RecordPlay logs a card played by this seat into a trick led in lead.
func (p *OpponentProfile) RecordPlay(card domain.Card, lead domain.Suit) {
	p.CardsPlayed++
	if card.IsTen() {
		p.TensPlayed++
	}
	if card.Suit != lead {
		p.Voids[lead] = true
	}
}

// CardsRemaining is the seat's hand size implied by its plays.
func (p *OpponentProfile) CardsRemaining() int {
	n := domain.HandSize - p.CardsPlayed
	if n < 0 {
		return 0
	}
	return n
}

// CanFollow returns false once the seat is known to be out of the suit.
func (p *OpponentProfile) CanFollow(suit domain.Suit) bool {
	return !p.Voids[suit]
}
