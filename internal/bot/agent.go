package bot

import (
	"context"
	"fmt"

	"mendikot/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Level    BotLevel
	Strategy Brain
}

// Decision is the card an agent wants to play.
type Decision struct {
	Card domain.Card
	// Fallback holds the strategy error when the standard choice was used instead.
	Fallback error
}

var fallbackBrain = &StandardBot{}

// Play asks the agent for a card for the given seat. A strategy that errors or
// picks an illegal card is replaced by the standard choice; the result still
// goes through the engine like any human play.
func (a *Agent) Play(ctx context.Context, round *domain.RoundState, seat int) (Decision, error) {
	view := round.ViewFor(seat)
	legal := view.LegalCards()
	if len(legal) == 0 {
		return Decision{}, ErrNoLegalCards
	}

	strategy := a.Strategy
	if strategy == nil {
		strategy = fallbackBrain
	}
	card, err := strategy.ChooseCard(ctx, view, legal)
	if err == nil && !domain.ContainsCard(legal, card) {
		err = fmt.Errorf("strategy chose illegal card %s", card.ID())
	}
	if err == nil {
		return Decision{Card: card}, nil
	}

	card, fbErr := fallbackBrain.ChooseCard(ctx, view, legal)
	if fbErr != nil {
		return Decision{}, fbErr
	}
	return Decision{Card: card, Fallback: err}, nil
}
