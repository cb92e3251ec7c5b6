package internal

import "mendikot/internal/domain"

// PhaseWeights tune card scoring for a specific phase.
type PhaseWeights struct {
	WinTrickBonus     float64
	TenCaptureBonus   float64
	TenLossPenalty    float64
	FeedPartnerBonus  float64
	TrumpCost         float64
	RankCost          float64
	BossLeadBonus     float64
	LongSuitLeadBonus float64
	// ExhaustedLeadPenalty applies to leading a side suit no other seat still holds.
	ExhaustedLeadPenalty float64
	// PartnerVoidLeadBonus rewards leading a suit the partner has shown out of.
	PartnerVoidLeadBonus float64
	// UnsecuredWinFactor scales the value of a win a later seat may still overtake.
	UnsecuredWinFactor float64
}

// BotTuning defines phase weights for a bot difficulty.
type BotTuning struct {
	Opening PhaseWeights
	Mid     PhaseWeights
	End     PhaseWeights
}

// ForPhase returns the weights that match the supplied phase.
func (t BotTuning) ForPhase(phase GamePhase) PhaseWeights {
	switch phase {
	case PhaseOpening:
		return t.Opening
	case PhaseEnd:
		return t.End
	default:
		return t.Mid
	}
}

// Knowledge is what the scorer needs to know about cards outside the viewer's hand.
type Knowledge interface {
	// IsBoss reports whether no unseen card of the same suit outranks c.
	IsBoss(c domain.Card) bool
	// IsVoid reports whether seat has shown out of suit.
	IsVoid(seat int, suit domain.Suit) bool
	// Outstanding counts cards of suit held by other seats.
	Outstanding(suit domain.Suit) int
	// TensOutstanding counts tens held by other seats.
	TensOutstanding() int
}

// lowTrumps is the trump count at or below which trumps cost double.
const lowTrumps = 2

// ScoredCard holds a legal card with its computed score.
type ScoredCard struct {
	Card  domain.Card
	Score float64
	// WinsNow is set when the card would take the lead of the trick as it stands.
	WinsNow bool
}

// Outcome is the result of adding a card to the current trick.
type Outcome struct {
	WinsNow bool
	// Trump is the trump suit after the card, including a trump it would reveal.
	Trump *domain.Suit
	// Reveals is set when the card would cut hukum.
	Reveals bool
}

// Simulate adds card to the viewer's current trick and reports the outcome.
func Simulate(view domain.RoundView, card domain.Card) Outcome {
	trick := domain.Trick{
		Cards:    append(append([]domain.PlayedCard(nil), view.Trick.Cards...), domain.PlayedCard{Seat: view.Seat, Card: card}),
		LeadSuit: view.Trick.LeadSuit,
	}
	if trick.LeadSuit == nil {
		lead := card.Suit
		trick.LeadSuit = &lead
	}

	out := Outcome{Trump: view.TrumpSuit}
	if view.TrumpSuit == nil && view.Trick.LeadSuit != nil && !domain.HasSuit(view.Hand, *view.Trick.LeadSuit) {
		suit := card.Suit
		out.Trump = &suit
		out.Reveals = true
	}
	out.WinsNow = domain.TrickLeader(trick, out.Trump, out.Trump != nil) == len(trick.Cards)-1
	return out
}

// ScoreCards scores every legal card for the viewer.
func ScoreCards(view domain.RoundView, legal []domain.Card, know Knowledge, weights PhaseWeights) []ScoredCard {
	profile := ProfileHand(view.Hand, view.TrumpSuit)
	scored := make([]ScoredCard, 0, len(legal))
	for _, card := range legal {
		var score float64
		outcome := Simulate(view, card)
		if view.Trick.Empty() {
			score = scoreLead(view, card, profile, know, weights)
		} else {
			score = scoreFollow(view, card, outcome, know, weights)
		}

		score -= weights.RankCost * float64(card.Rank)
		if outcome.Trump != nil && card.Suit == *outcome.Trump {
			cost := weights.TrumpCost
			if profile.Trumps > 0 && profile.Trumps <= lowTrumps {
				cost *= 2
			}
			score -= cost
		}
		scored = append(scored, ScoredCard{Card: card, Score: score, WinsNow: outcome.WinsNow})
	}
	return scored
}

func scoreLead(view domain.RoundView, card domain.Card, profile HandProfile, know Knowledge, w PhaseWeights) float64 {
	score := 0.0
	boss := know.IsBoss(card)
	if boss && !card.IsTen() {
		score += w.BossLeadBonus
	}
	if card.IsTen() && !boss {
		score -= tenPenalty(know, w) / 2
	}
	if card.Suit == profile.LongestSuit {
		score += w.LongSuitLeadBonus
	}

	trump := view.TrumpSuit != nil && card.Suit == *view.TrumpSuit
	if !trump && know.Outstanding(card.Suit) == 0 {
		score -= w.ExhaustedLeadPenalty
	}
	if !trump && !card.IsTen() && know.IsVoid(view.Partner(), card.Suit) {
		score += w.PartnerVoidLeadBonus
	}
	return score
}

// tenPenalty grows as tens leave play: each remaining ten decides more.
func tenPenalty(know Knowledge, w PhaseWeights) float64 {
	gone := domain.TensInDeck - know.TensOutstanding()
	return w.TenLossPenalty * (1 + float64(gone)/domain.TensInDeck)
}

func scoreFollow(view domain.RoundView, card domain.Card, outcome Outcome, know Knowledge, w PhaseWeights) float64 {
	onTable := 0
	for _, p := range view.Trick.Cards {
		if p.Card.IsTen() {
			onTable++
		}
	}
	stake := onTable
	if card.IsTen() {
		stake++
	}

	if outcome.WinsNow {
		value := w.WinTrickBonus + w.TenCaptureBonus*float64(stake)
		if !securedWin(view, card, outcome, know) {
			value *= w.UnsecuredWinFactor
		}
		return value
	}

	leader := domain.TrickLeader(view.Trick, view.TrumpSuit, view.TrumpSuit != nil)
	partnerAhead := leader >= 0 && view.Trick.Cards[leader].Seat == view.Partner()
	if partnerAhead && (lastToPlay(view) || know.IsBoss(view.Trick.Cards[leader].Card)) {
		if card.IsTen() {
			return w.FeedPartnerBonus
		}
		return 0
	}
	if card.IsTen() {
		return -tenPenalty(know, w)
	}
	return 0
}

func lastToPlay(view domain.RoundView) bool {
	return len(view.Trick.Cards) == domain.SeatCount-1
}

// securedWin reports whether no later seat can take the trick back.
func securedWin(view domain.RoundView, card domain.Card, outcome Outcome, know Knowledge) bool {
	if lastToPlay(view) {
		return true
	}
	if !know.IsBoss(card) {
		return false
	}
	if outcome.Trump != nil && card.Suit == *outcome.Trump {
		return true
	}
	lead := card.Suit
	if view.Trick.LeadSuit != nil {
		lead = *view.Trick.LeadSuit
	}
	remaining := domain.SeatCount - 1 - len(view.Trick.Cards)
	for i := 1; i <= remaining; i++ {
		seat := (view.Seat + i) % domain.SeatCount
		if seat != view.Partner() && know.IsVoid(seat, lead) {
			return false
		}
	}
	return true
}
