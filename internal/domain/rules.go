package domain

// HasSuit reports whether the hand holds at least one card of the suit.
func HasSuit(hand []Card, suit Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// IsLegalPlay checks a candidate card against the follow-suit rule.
// The card must be in the hand. An opening play is always legal; otherwise a
// player holding the lead suit must play it. Trump never affects legality, the
// parameters are accepted so callers can pass their full trick context.
func IsLegalPlay(card Card, hand []Card, trick Trick, trumpSuit *Suit, trumpRevealed bool) bool {
	if !ContainsCard(hand, card) {
		return false
	}
	if trick.LeadSuit == nil {
		return true
	}
	if HasSuit(hand, *trick.LeadSuit) {
		return card.Suit == *trick.LeadSuit
	}
	return true
}

// LegalCards returns every card of the hand that may be played to the trick.
func LegalCards(hand []Card, trick Trick) []Card {
	if trick.LeadSuit == nil || !HasSuit(hand, *trick.LeadSuit) {
		return append([]Card(nil), hand...)
	}
	var out []Card
	for _, c := range hand {
		if c.Suit == *trick.LeadSuit {
			out = append(out, c)
		}
	}
	return out
}

// Beats reports whether challenger takes the trick from holder.
// trump is nil while trump is unrevealed.
func Beats(challenger, holder Card, lead Suit, trump *Suit) bool {
	if trump != nil {
		challengerTrump := challenger.Suit == *trump
		holderTrump := holder.Suit == *trump
		switch {
		case challengerTrump && !holderTrump:
			return true
		case holderTrump && !challengerTrump:
			return false
		case challengerTrump && holderTrump:
			return challenger.Rank > holder.Rank
		}
	}
	if challenger.Suit != lead {
		return false
	}
	if holder.Suit != lead {
		return true
	}
	return challenger.Rank > holder.Rank
}

// TrickLeader returns the index into trick.Cards of the card currently
// winning the trick, or -1 for an empty trick.
func TrickLeader(trick Trick, trumpSuit *Suit, trumpRevealed bool) int {
	if len(trick.Cards) == 0 {
		return -1
	}
	lead := trick.Cards[0].Card.Suit
	if trick.LeadSuit != nil {
		lead = *trick.LeadSuit
	}
	var trump *Suit
	if trumpRevealed {
		trump = trumpSuit
	}
	best := 0
	for i := 1; i < len(trick.Cards); i++ {
		if Beats(trick.Cards[i].Card, trick.Cards[best].Card, lead, trump) {
			best = i
		}
	}
	return best
}

// ResolveTrick returns the seat that wins the trick.
func ResolveTrick(trick Trick, trumpSuit *Suit, trumpRevealed bool) int {
	idx := TrickLeader(trick, trumpSuit, trumpRevealed)
	if idx < 0 {
		return -1
	}
	return trick.Cards[idx].Seat
}

// RoundResult is the classification of a finished round.
type RoundResult struct {
	Winner    Team
	Mendikot  bool
	Whitewash bool
}

// ClassifyRound decides the round winner from the confirmed tens and trick
// counts. Three or more tens win outright; a 2-2 split goes to the team with
// at least seven tricks.
func ClassifyRound(teamATens, teamBTens, teamATricks, teamBTricks int) RoundResult {
	switch {
	case teamATens >= 3:
		return RoundResult{Winner: TeamA, Mendikot: teamATens == TensInDeck, Whitewash: teamATricks == TricksPerRound}
	case teamBTens >= 3:
		return RoundResult{Winner: TeamB, Mendikot: teamBTens == TensInDeck, Whitewash: teamBTricks == TricksPerRound}
	}
	if teamATricks >= 7 {
		return RoundResult{Winner: TeamA, Whitewash: teamATricks == TricksPerRound}
	}
	return RoundResult{Winner: TeamB, Whitewash: teamBTricks == TricksPerRound}
}
