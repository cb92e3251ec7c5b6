package internal

import (
	"testing"

	"mendikot/internal/domain"
)

type fakeKnowledge struct {
	boss        map[domain.Card]bool
	voids       map[int]domain.Suit
	outstanding map[domain.Suit]int
	tens        int
}

func (k fakeKnowledge) IsBoss(c domain.Card) bool { return k.boss[c] }

func (k fakeKnowledge) IsVoid(seat int, suit domain.Suit) bool {
	s, ok := k.voids[seat]
	return ok && s == suit
}

func (k fakeKnowledge) Outstanding(suit domain.Suit) int {
	if n, ok := k.outstanding[suit]; ok {
		return n
	}
	return 5
}

func (k fakeKnowledge) TensOutstanding() int { return k.tens }

var testWeights = PhaseWeights{
	WinTrickBonus:        1.0,
	TenCaptureBonus:      4.0,
	TenLossPenalty:       4.0,
	FeedPartnerBonus:     3.0,
	TrumpCost:            1.0,
	RankCost:             0.1,
	BossLeadBonus:        2.0,
	LongSuitLeadBonus:    0.2,
	ExhaustedLeadPenalty: 1.5,
	PartnerVoidLeadBonus: 1.0,
	UnsecuredWinFactor:   0.5,
}

func mustCard(id string) domain.Card {
	c, err := domain.ParseCardID(id)
	if err != nil {
		panic(err)
	}
	return c
}

func hand(ids ...string) []domain.Card {
	out := make([]domain.Card, len(ids))
	for i, id := range ids {
		out[i] = mustCard(id)
	}
	return out
}

func leadView(seat int, cards []domain.Card, trump *domain.Suit) domain.RoundView {
	return domain.RoundView{Seat: seat, Team: domain.TeamForSeat(seat), Hand: cards, TrumpSuit: trump}
}

func best(scored []ScoredCard) domain.Card {
	top := scored[0]
	for _, s := range scored[1:] {
		if s.Score > top.Score {
			top = s
		}
	}
	return top.Card
}

func scoreOf(t *testing.T, scored []ScoredCard, id string) float64 {
	t.Helper()
	for _, s := range scored {
		if s.Card.ID() == id {
			return s.Score
		}
	}
	t.Fatalf("%s was not scored", id)
	return 0
}

func TestScoreCards_LeadChoices(t *testing.T) {
	tests := []struct {
		name string
		seat int
		hand []domain.Card
		know fakeKnowledge
		want string
	}{
		{
			name: "Avoids a suit nobody else holds",
			hand: hand("9-clubs", "8-clubs", "6-hearts"),
			know: fakeKnowledge{outstanding: map[domain.Suit]int{domain.Clubs: 0}},
			want: "6-hearts",
		},
		{
			name: "Leads into the partner's void",
			hand: hand("7-spades", "7-diamonds"),
			know: fakeKnowledge{voids: map[int]domain.Suit{2: domain.Spades}},
			want: "7-spades",
		},
		{
			name: "Ignores an opponent's void",
			hand: hand("7-spades", "7-diamonds"),
			know: fakeKnowledge{voids: map[int]domain.Suit{1: domain.Spades}},
			want: "7-diamonds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := leadView(tt.seat, tt.hand, nil)
			scored := ScoreCards(view, tt.hand, tt.know, testWeights)
			if got := best(scored); got.ID() != tt.want {
				t.Fatalf("best card = %s, want %s", got.ID(), tt.want)
			}
		})
	}
}

func TestScoreCards_TenPenaltyGrowsAsTensLeavePlay(t *testing.T) {
	first := mustCard("A-diamonds")
	lead := first.Suit
	view := domain.RoundView{
		Seat: 3,
		Team: domain.TeamForSeat(3),
		Hand: hand("10-diamonds", "4-diamonds"),
		Trick: domain.Trick{LeadSuit: &lead, Cards: []domain.PlayedCard{
			{Seat: 0, Card: first},
			{Seat: 1, Card: mustCard("3-diamonds")},
			{Seat: 2, Card: mustCard("5-diamonds")},
		}},
	}

	early := scoreOf(t, ScoreCards(view, view.Hand, fakeKnowledge{tens: 3}, testWeights), "10-diamonds")
	late := scoreOf(t, ScoreCards(view, view.Hand, fakeKnowledge{tens: 0}, testWeights), "10-diamonds")
	if late >= early {
		t.Fatalf("losing a ten late scored %.2f, early %.2f; want late to cost more", late, early)
	}
}

func TestScoreCards_HoldsBackLastTrumps(t *testing.T) {
	trump := domain.Clubs
	short := hand("5-clubs", "9-hearts")
	long := hand("5-clubs", "6-clubs", "7-clubs", "8-clubs", "9-hearts")

	shortScore := scoreOf(t, ScoreCards(leadView(0, short, &trump), short, fakeKnowledge{}, testWeights), "5-clubs")
	longScore := scoreOf(t, ScoreCards(leadView(0, long, &trump), long, fakeKnowledge{}, testWeights), "5-clubs")
	if shortScore >= longScore {
		t.Fatalf("leading one of the last trumps scored %.2f, with trumps to spare %.2f", shortScore, longScore)
	}
}
