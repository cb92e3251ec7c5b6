package bot

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"mendikot/internal/domain"
)

// sortByRankDesc returns a copy of cards ordered from highest to lowest rank.
func sortByRankDesc(cards []domain.Card) []domain.Card {
	out := append([]domain.Card(nil), cards...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank > out[j].Rank })
	return out
}

// StandardBot leads a mid-range card and otherwise plays its lowest legal
// card, spending the lowest trump when it cannot follow.
type StandardBot struct{}

func (b *StandardBot) ChooseCard(_ context.Context, view domain.RoundView, legal []domain.Card) (domain.Card, error) {
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalCards
	}
	sorted := sortByRankDesc(legal)

	if view.Trick.Empty() {
		return sorted[len(sorted)/2], nil
	}

	lead := *view.Trick.LeadSuit
	if follow := filterSuit(sorted, lead); len(follow) > 0 {
		return follow[len(follow)-1], nil
	}
	if view.TrumpSuit != nil {
		if trumps := filterSuit(sorted, *view.TrumpSuit); len(trumps) > 0 {
			return trumps[len(trumps)-1], nil
		}
	}
	return sorted[len(sorted)-1], nil
}

func filterSuit(cards []domain.Card, suit domain.Suit) []domain.Card {
	var out []domain.Card
	for _, c := range cards {
		if c.Suit == suit {
			out = append(out, c)
		}
	}
	return out
}

// easyLowBias is the chance an EasyBot picks from the lower half of its options.
const easyLowBias = 0.7

// EasyBot plays mostly at random with a preference for low cards.
type EasyBot struct {
	rng *rand.Rand
}

// NewEasyBot constructs an EasyBot with provided rng or a time-seeded default.
func NewEasyBot(rng *rand.Rand) *EasyBot {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &EasyBot{rng: rng}
}

func (b *EasyBot) ChooseCard(_ context.Context, _ domain.RoundView, legal []domain.Card) (domain.Card, error) {
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalCards
	}
	if b.rng.Float64() < easyLowBias {
		sorted := sortByRankDesc(legal)
		lowerHalf := sorted[len(sorted)/2:]
		return lowerHalf[b.rng.Intn(len(lowerHalf))], nil
	}
	return legal[b.rng.Intn(len(legal))], nil
}
