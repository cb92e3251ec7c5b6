package bot

import (
	"mendikot/internal/domain"
)

func mustCard(id string) domain.Card {
	c, err := domain.ParseCardID(id)
	if err != nil {
		panic(err)
	}
	return c
}

func cards(ids ...string) []domain.Card {
	out := make([]domain.Card, len(ids))
	for i, id := range ids {
		out[i] = mustCard(id)
	}
	return out
}

// trickFrom builds a trick whose plays start at seat first and go clockwise.
func trickFrom(first int, ids ...string) domain.Trick {
	t := domain.Trick{}
	for i, id := range ids {
		c := mustCard(id)
		if i == 0 {
			lead := c.Suit
			t.LeadSuit = &lead
		}
		t.Cards = append(t.Cards, domain.PlayedCard{Seat: (first + i) % domain.SeatCount, Card: c})
	}
	return t
}

func suit(s domain.Suit) *domain.Suit { return &s }

func viewFor(seat int, hand []domain.Card, trick domain.Trick, trump *domain.Suit) domain.RoundView {
	return domain.RoundView{
		Seat:      seat,
		Team:      domain.TeamForSeat(seat),
		Hand:      hand,
		Trick:     trick,
		TrumpSuit: trump,
	}
}
