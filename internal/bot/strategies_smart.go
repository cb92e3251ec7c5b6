package bot

import (
	"context"
	"sort"

	"mendikot/internal/bot/brain"
	"mendikot/internal/bot/internal"
	"mendikot/internal/domain"
)

// SmartBot scores every legal card against the trick in progress using card
// memory rebuilt from the visible round history.
type SmartBot struct {
	Tuning internal.BotTuning
}

// NewSmartBot returns a SmartBot using DefaultTuning.
func NewSmartBot() *SmartBot {
	return &SmartBot{Tuning: DefaultTuning}
}

func (b *SmartBot) ChooseCard(_ context.Context, view domain.RoundView, legal []domain.Card) (domain.Card, error) {
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalCards
	}
	if len(legal) == 1 {
		return legal[0], nil
	}

	memory := brain.FromView(view)
	weights := b.Tuning.ForPhase(internal.DetectPhase(view))
	scored := internal.ScoreCards(view, legal, memory, weights)

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		// Save higher cards when scores are equal.
		return scored[i].Card.Rank < scored[j].Card.Rank
	})
	return scored[0].Card, nil
}
