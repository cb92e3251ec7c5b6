package ports

import (
	"context"
	"errors"

	"mendikot/internal/domain"
)

// ErrRoundNotFound is returned when no finished round is stored under an id.
var ErrRoundNotFound = errors.New("round not found")

// RoundStore persists finished rounds.
type RoundStore interface {
	// SaveRound stores the full state of a finished round, keyed by its ID.
	// matchID records where the round was played.
	SaveRound(ctx context.Context, matchID string, round *domain.RoundState) error

	// LoadRound returns a stored round. The state has been validated.
	LoadRound(ctx context.Context, roundID string) (*domain.RoundState, error)
}
