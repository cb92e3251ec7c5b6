package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// SeatConfig describes who sits at a seat for a new round.
type SeatConfig struct {
	Name  string
	Human bool
}

// RoundConfig parameterizes NewRound.
type RoundConfig struct {
	Seats  [SeatCount]SeatConfig
	Dealer int
}

// NewRound deals the given shuffled deck and returns a round ready for the
// first play. The seat after the dealer leads. It panics on a malformed deck.
func NewRound(cfg RoundConfig, deck []Card) *RoundState {
	if cfg.Dealer < 0 || cfg.Dealer >= SeatCount {
		panic(fmt.Sprintf("domain: dealer seat %d out of range", cfg.Dealer))
	}
	players := make([]Player, SeatCount)
	for i, sc := range cfg.Seats {
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		players[i] = Player{Seat: i, Name: name, Team: TeamForSeat(i), Human: sc.Human}
	}

	s := &RoundState{
		ID:     uuid.NewString(),
		Phase:  PhaseDealing,
		Dealer: cfg.Dealer,
	}
	copy(s.Players[:], Deal(players, deck))

	s.CurrentSeat = nextSeat(cfg.Dealer)
	s.Phase = PhasePlaying
	s.Message = "Round started! " + s.Players[s.CurrentSeat].Name + " leads."
	return s
}

func nextSeat(seat int) int {
	return (seat + 1) % SeatCount
}

// PlayResult describes what a single accepted play did to the round.
type PlayResult struct {
	Seat          int
	Card          Card
	TrumpRevealed bool
	// Trick is set when this play completed a trick.
	Trick         *CompletedTrick
	WinningTeam   Team
	TensCaptured  int
	TensConfirmed int
	ConfirmedTeam Team
	RoundEnded    bool
}

// CheckPlay validates a proposed play without applying it.
func CheckPlay(s *RoundState, seat int, card Card) error {
	if s.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	if seat < 0 || seat >= SeatCount {
		return ErrUnknownSeat
	}
	if seat != s.CurrentSeat {
		return ErrNotYourTurn
	}
	hand := s.Players[seat].Hand
	if !ContainsCard(hand, card) {
		return ErrCardNotInHand
	}
	if !IsLegalPlay(card, hand, s.Trick, s.TrumpSuit, s.TrumpRevealed) {
		return ErrMustFollowSuit
	}
	return nil
}

// ApplyPlay is the single state transition of a round. The input state is not
// modified; on success a new state is returned. A rejected play returns the
// reason and a nil state.
func ApplyPlay(s *RoundState, seat int, card Card) (*RoundState, PlayResult, error) {
	if err := CheckPlay(s, seat, card); err != nil {
		return nil, PlayResult{}, err
	}

	next := s.Clone()
	res := PlayResult{Seat: seat, Card: card}
	player := &next.Players[seat]

	// Cut hukum: the first player unable to follow names trump with the card they play.
	if !next.TrumpRevealed && next.Trick.LeadSuit != nil && !HasSuit(player.Hand, *next.Trick.LeadSuit) {
		suit := card.Suit
		setter := seat
		trumpCard := card
		next.TrumpSuit = &suit
		next.TrumpRevealed = true
		next.TrumpSetter = &setter
		next.TrumpCard = &trumpCard
		res.TrumpRevealed = true
	}

	player.Hand = RemoveCard(player.Hand, card)
	if next.Trick.LeadSuit == nil {
		lead := card.Suit
		next.Trick.LeadSuit = &lead
	}
	next.Trick.Cards = append(next.Trick.Cards, PlayedCard{Seat: seat, Card: card})

	if len(next.Trick.Cards) < SeatCount {
		next.CurrentSeat = nextSeat(seat)
		next.Message = next.Players[next.CurrentSeat].Name + "'s turn"
		if res.TrumpRevealed {
			next.Message = fmt.Sprintf("%s cut hukum: %s is trump. %s", player.Name, card.Suit, next.Message)
		}
		return next, res, nil
	}

	next.resolveTrick(&res)
	return next, res, nil
}

// resolveTrick closes out a full trick: winner, tallies, the tens pot and,
// after the last trick, the round classification.
func (s *RoundState) resolveTrick(res *PlayResult) {
	winner := ResolveTrick(s.Trick, s.TrumpSuit, s.TrumpRevealed)
	team := s.Players[winner].Team

	completed := CompletedTrick{Winner: winner, Cards: s.Trick.Cards}
	s.CompletedTricks = append(s.CompletedTricks, completed)
	s.addTrick(team)
	s.LastTrickWinner = team
	s.Trick = Trick{}

	tens := CountTens(playedCards(completed.Cards))
	final := len(s.CompletedTricks) == TricksPerRound
	settle := s.settlePot(team, tens, final)

	res.Trick = &completed
	res.WinningTeam = team
	res.TensCaptured = tens
	res.TensConfirmed = settle.confirmed
	if settle.confirmed > 0 {
		res.ConfirmedTeam = team
	}

	if final {
		result := ClassifyRound(s.TeamATens, s.TeamBTens, s.TeamATricks, s.TeamBTricks)
		s.Winner = result.Winner
		s.Mendikot = result.Mendikot
		s.Whitewash = result.Whitewash
		s.Phase = PhaseRoundEnd
		s.Message = roundEndMessage(result)
		res.RoundEnded = true
		return
	}

	s.CurrentSeat = winner
	s.Message = fmt.Sprintf("%s wins the trick!%s%s", s.Players[winner].Name, confirmMessage(settle.confirmed), potMessage(s.PotTens))
}

func playedCards(plays []PlayedCard) []Card {
	out := make([]Card, len(plays))
	for i, p := range plays {
		out[i] = p.Card
	}
	return out
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

func confirmMessage(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf(" (%d ten%s confirmed!)", n, plural(n))
}

func potMessage(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf(" (%d ten%s in pot)", n, plural(n))
}

func roundEndMessage(r RoundResult) string {
	msg := fmt.Sprintf("Team %s wins", r.Winner)
	if r.Mendikot {
		msg += " with Mendikot!"
	}
	if r.Whitewash {
		msg += " Whitewash!"
	}
	if !r.Mendikot && !r.Whitewash {
		msg += "!"
	}
	return msg
}
