package domain

import "fmt"

// Validate checks a round that crossed a trust boundary, e.g. after decoding a
// stored snapshot. Beyond card conservation it rebuilds the deal from the cards
// each seat holds and has played, replays the recorded plays through ApplyPlay
// and requires every derived field (trick winners, tallies, the tens pot, trump,
// turn, phase and the round result) to match what the round claims.
func (s *RoundState) Validate() error {
	switch s.Phase {
	case PhaseDealing, PhasePlaying, PhaseRoundEnd:
	default:
		return fmt.Errorf("unknown phase %q", s.Phase)
	}
	if s.CurrentSeat < 0 || s.CurrentSeat >= SeatCount {
		return fmt.Errorf("current seat %d out of range", s.CurrentSeat)
	}
	if s.Dealer < 0 || s.Dealer >= SeatCount {
		return fmt.Errorf("dealer seat %d out of range", s.Dealer)
	}
	if err := s.checkConservation(); err != nil {
		return err
	}

	replayed, err := s.replay()
	if err != nil {
		return err
	}
	return s.compare(replayed)
}

func (s *RoundState) checkConservation() error {
	seen := make(map[Card]bool, DeckSize)
	played := [SeatCount]int{}
	addCard := func(c Card) error {
		if !c.Suit.Valid() || !c.Rank.Valid() {
			return fmt.Errorf("invalid card %+v", c)
		}
		if seen[c] {
			return fmt.Errorf("duplicate card %s", c.ID())
		}
		seen[c] = true
		return nil
	}
	addPlay := func(p PlayedCard) error {
		if p.Seat < 0 || p.Seat >= SeatCount {
			return fmt.Errorf("played card %s has seat %d", p.Card.ID(), p.Seat)
		}
		played[p.Seat]++
		return addCard(p.Card)
	}

	for i, p := range s.Players {
		if p.Seat != i {
			return fmt.Errorf("player at index %d claims seat %d", i, p.Seat)
		}
		if p.Team != TeamForSeat(i) {
			return fmt.Errorf("seat %d has team %q", i, p.Team)
		}
		for _, c := range p.Hand {
			if err := addCard(c); err != nil {
				return err
			}
		}
	}

	if len(s.CompletedTricks) > TricksPerRound {
		return fmt.Errorf("%d completed tricks", len(s.CompletedTricks))
	}
	for n, ct := range s.CompletedTricks {
		if len(ct.Cards) != SeatCount {
			return fmt.Errorf("trick %d holds %d cards", n+1, len(ct.Cards))
		}
		for _, p := range ct.Cards {
			if err := addPlay(p); err != nil {
				return err
			}
		}
	}

	if len(s.Trick.Cards) >= SeatCount {
		return fmt.Errorf("current trick holds %d cards", len(s.Trick.Cards))
	}
	if (s.Trick.LeadSuit == nil) != (len(s.Trick.Cards) == 0) {
		return fmt.Errorf("lead suit does not match current trick")
	}
	if len(s.Trick.Cards) > 0 && *s.Trick.LeadSuit != s.Trick.Cards[0].Card.Suit {
		return fmt.Errorf("lead suit differs from the first card")
	}
	for _, p := range s.Trick.Cards {
		if err := addPlay(p); err != nil {
			return err
		}
	}

	if len(seen) != DeckSize {
		return fmt.Errorf("round accounts for %d cards, want %d", len(seen), DeckSize)
	}
	for i, p := range s.Players {
		if len(p.Hand)+played[i] != HandSize {
			return fmt.Errorf("seat %d holds %d cards after playing %d", i, len(p.Hand), played[i])
		}
	}
	return nil
}

// replay deals every seat its original thirteen cards and plays the recorded
// history in order. Turn order and follow-suit are enforced by ApplyPlay.
func (s *RoundState) replay() (*RoundState, error) {
	r := &RoundState{ID: s.ID, Phase: PhasePlaying, Dealer: s.Dealer, CurrentSeat: nextSeat(s.Dealer)}
	for i, p := range s.Players {
		r.Players[i] = Player{Seat: p.Seat, Name: p.Name, Team: p.Team, Human: p.Human, Hand: append([]Card(nil), p.Hand...)}
	}

	var plays []PlayedCard
	for _, ct := range s.CompletedTricks {
		plays = append(plays, ct.Cards...)
	}
	plays = append(plays, s.Trick.Cards...)
	for _, p := range plays {
		r.Players[p.Seat].Hand = append(r.Players[p.Seat].Hand, p.Card)
	}

	for n, p := range plays {
		next, _, err := ApplyPlay(r, p.Seat, p.Card)
		if err != nil {
			return nil, fmt.Errorf("play %d (%s by seat %d): %w", n+1, p.Card.ID(), p.Seat, err)
		}
		r = next
	}
	return r, nil
}

func (s *RoundState) compare(r *RoundState) error {
	if s.Phase != r.Phase {
		return fmt.Errorf("phase %q, history gives %q", s.Phase, r.Phase)
	}
	if s.CurrentSeat != r.CurrentSeat {
		return fmt.Errorf("turn at seat %d, history gives seat %d", s.CurrentSeat, r.CurrentSeat)
	}
	for n, ct := range s.CompletedTricks {
		if want := r.CompletedTricks[n].Winner; ct.Winner != want {
			return fmt.Errorf("trick %d won by seat %d, cards give seat %d", n+1, ct.Winner, want)
		}
	}

	if s.TrumpRevealed != r.TrumpRevealed || !samePtr(s.TrumpSuit, r.TrumpSuit) ||
		!samePtr(s.TrumpSetter, r.TrumpSetter) || !samePtr(s.TrumpCard, r.TrumpCard) {
		return fmt.Errorf("trump fields do not match the first cut in the history")
	}

	if s.TeamATricks != r.TeamATricks || s.TeamBTricks != r.TeamBTricks {
		return fmt.Errorf("trick tallies %d/%d do not match history %d/%d", s.TeamATricks, s.TeamBTricks, r.TeamATricks, r.TeamBTricks)
	}
	if s.TeamATens != r.TeamATens || s.TeamBTens != r.TeamBTens {
		return fmt.Errorf("ten tallies %d/%d do not match history %d/%d", s.TeamATens, s.TeamBTens, r.TeamATens, r.TeamBTens)
	}
	if s.PotTens != r.PotTens || s.PotTeam != r.PotTeam {
		return fmt.Errorf("pot of %d tens owned by %q, history gives %d owned by %q", s.PotTens, s.PotTeam, r.PotTens, r.PotTeam)
	}
	if s.LastTrickWinner != r.LastTrickWinner {
		return fmt.Errorf("last trick winner %q, history gives %q", s.LastTrickWinner, r.LastTrickWinner)
	}

	if s.Winner != r.Winner || s.Mendikot != r.Mendikot || s.Whitewash != r.Whitewash {
		return fmt.Errorf("result %q (mendikot %t, whitewash %t) does not match history %q (mendikot %t, whitewash %t)",
			s.Winner, s.Mendikot, s.Whitewash, r.Winner, r.Mendikot, r.Whitewash)
	}
	return nil
}

func samePtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
