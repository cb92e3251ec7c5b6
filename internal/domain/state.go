package domain

// Phase represents the lifecycle stage of a Mendikot round.
type Phase string

const (
	// PhaseDealing is entered when a round is created and left as soon as cards are dealt.
	PhaseDealing Phase = "dealing"
	// PhasePlaying is the steady state where a seat's play is awaited.
	PhasePlaying Phase = "playing"
	// PhaseRoundEnd is terminal: all 13 tricks resolved and the winner is known.
	PhaseRoundEnd Phase = "round_end"
)

// Team identifies a partnership. The zero value means "no team".
type Team string

const (
	TeamNone Team = ""
	TeamA    Team = "A"
	TeamB    Team = "B"
)

// TeamForSeat returns the partnership of a seat: opposite seats play together.
func TeamForSeat(seat int) Team {
	if seat%2 == 0 {
		return TeamA
	}
	return TeamB
}

// Player holds the per-round state of a seat.
type Player struct {
	Seat  int
	Name  string
	Team  Team
	Human bool
	Hand  []Card
}

// PlayedCard is a card on the table tagged with the seat that played it.
type PlayedCard struct {
	Seat int
	Card Card
}

// Trick is the trick currently being played.
type Trick struct {
	Cards    []PlayedCard
	LeadSuit *Suit
}

// Empty reports whether nobody has played to the trick yet.
func (t Trick) Empty() bool {
	return len(t.Cards) == 0
}

// CompletedTrick is a resolved trick kept in the round history.
type CompletedTrick struct {
	Winner int
	Cards  []PlayedCard
}

// RoundState is the authoritative state of one round. It is only ever changed
// through ApplyPlay, which returns a new value.
type RoundState struct {
	ID     string
	Phase  Phase
	Dealer int

	Players     [SeatCount]Player
	CurrentSeat int
	Trick       Trick

	TrumpSuit     *Suit
	TrumpRevealed bool
	TrumpSetter   *int
	TrumpCard     *Card

	CompletedTricks []CompletedTrick

	TeamATricks int
	TeamBTricks int
	TeamATens   int
	TeamBTens   int

	// Tens captured but not yet confirmed, and the team that must confirm them.
	PotTens int
	PotTeam Team

	LastTrickWinner Team
	Message         string

	Winner    Team
	Mendikot  bool
	Whitewash bool
}

// TricksWon returns the number of tricks a team has taken so far.
func (s *RoundState) TricksWon(team Team) int {
	switch team {
	case TeamA:
		return s.TeamATricks
	case TeamB:
		return s.TeamBTricks
	}
	return 0
}

// Tens returns the confirmed ten tally of a team.
func (s *RoundState) Tens(team Team) int {
	switch team {
	case TeamA:
		return s.TeamATens
	case TeamB:
		return s.TeamBTens
	}
	return 0
}

func (s *RoundState) addTrick(team Team) {
	if team == TeamA {
		s.TeamATricks++
	} else {
		s.TeamBTricks++
	}
}

func (s *RoundState) addTens(team Team, n int) {
	if team == TeamA {
		s.TeamATens += n
	} else {
		s.TeamBTens += n
	}
}

// Ended reports whether the round has reached its terminal phase.
func (s *RoundState) Ended() bool {
	return s.Phase == PhaseRoundEnd
}

// TrickNumber is the 1-based number of the trick in progress.
func (s *RoundState) TrickNumber() int {
	return len(s.CompletedTricks) + 1
}

// Clone returns a deep copy of the state.
func (s *RoundState) Clone() *RoundState {
	out := *s
	for i := range s.Players {
		out.Players[i].Hand = append([]Card(nil), s.Players[i].Hand...)
	}
	out.Trick = cloneTrick(s.Trick)
	if s.TrumpSuit != nil {
		suit := *s.TrumpSuit
		out.TrumpSuit = &suit
	}
	if s.TrumpSetter != nil {
		seat := *s.TrumpSetter
		out.TrumpSetter = &seat
	}
	if s.TrumpCard != nil {
		card := *s.TrumpCard
		out.TrumpCard = &card
	}
	if s.CompletedTricks != nil {
		out.CompletedTricks = make([]CompletedTrick, len(s.CompletedTricks))
		for i, ct := range s.CompletedTricks {
			out.CompletedTricks[i] = CompletedTrick{
				Winner: ct.Winner,
				Cards:  append([]PlayedCard(nil), ct.Cards...),
			}
		}
	}
	return &out
}

func cloneTrick(t Trick) Trick {
	out := Trick{Cards: append([]PlayedCard(nil), t.Cards...)}
	if t.LeadSuit != nil {
		suit := *t.LeadSuit
		out.LeadSuit = &suit
	}
	return out
}
