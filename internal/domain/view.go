package domain

// RoundView is what one seat is allowed to see of a round: its own hand and
// the public table. Bots and presentation code receive this instead of the
// full state so opponents' cards never leak.
type RoundView struct {
	Seat      int
	Team      Team
	Hand      []Card
	HandSizes [SeatCount]int
	Names     [SeatCount]string

	CurrentSeat int
	Trick       Trick

	// TrumpSuit is nil until trump has been revealed.
	TrumpSuit   *Suit
	TrumpSetter *int

	CompletedTricks []CompletedTrick

	TeamATricks int
	TeamBTricks int
	TeamATens   int
	TeamBTens   int
	PotTens     int
	PotTeam     Team

	Phase   Phase
	Message string
}

// ViewFor builds the view of the given seat.
func (s *RoundState) ViewFor(seat int) RoundView {
	c := s.Clone()
	v := RoundView{
		Seat:            seat,
		Team:            TeamForSeat(seat),
		CurrentSeat:     c.CurrentSeat,
		Trick:           c.Trick,
		CompletedTricks: c.CompletedTricks,
		TeamATricks:     c.TeamATricks,
		TeamBTricks:     c.TeamBTricks,
		TeamATens:       c.TeamATens,
		TeamBTens:       c.TeamBTens,
		PotTens:         c.PotTens,
		PotTeam:         c.PotTeam,
		Phase:           c.Phase,
		Message:         c.Message,
	}
	for i, p := range c.Players {
		v.HandSizes[i] = len(p.Hand)
		v.Names[i] = p.Name
	}
	if seat >= 0 && seat < SeatCount {
		v.Hand = c.Players[seat].Hand
	}
	if c.TrumpRevealed {
		v.TrumpSuit = c.TrumpSuit
		v.TrumpSetter = c.TrumpSetter
	}
	return v
}

// LegalCards lists the cards the viewing seat may play right now.
func (v RoundView) LegalCards() []Card {
	return LegalCards(v.Hand, v.Trick)
}

// Partner returns the seat opposite the viewer.
func (v RoundView) Partner() int {
	return (v.Seat + 2) % SeatCount
}

// TrumpRevealed reports whether the view carries a trump suit.
func (v RoundView) TrumpRevealed() bool {
	return v.TrumpSuit != nil
}
