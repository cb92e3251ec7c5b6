package bot

import (
	"context"
	"errors"

	"mendikot/internal/domain"
)

// ErrNoLegalCards is returned when a brain is asked to choose from nothing.
var ErrNoLegalCards = errors.New("no legal cards to choose from")

// Brain is the interface that all bot strategies must implement.
// legal is never empty; the chosen card must be one of its elements.
type Brain interface {
	ChooseCard(ctx context.Context, view domain.RoundView, legal []domain.Card) (domain.Card, error)
}
