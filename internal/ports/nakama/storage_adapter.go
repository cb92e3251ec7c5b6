package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mendikot/internal/domain"
	"mendikot/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	roundsCollection = "mendikot_rounds"

	storagePermissionPublicRead = 2
	storagePermissionNoWrite    = 0
)

// storedRound is the value written for each finished round.
type storedRound struct {
	MatchID string          `json:"match_id"`
	SavedAt int64           `json:"saved_at"`
	Round   json.RawMessage `json:"round"`
}

// NakamaRoundStore implements ports.RoundStore on the Nakama storage engine.
// Records are system-owned and publicly readable.
type NakamaRoundStore struct {
	nk  runtime.NakamaModule
	now func() time.Time
}

// NewNakamaRoundStore creates a round store adapter.
func NewNakamaRoundStore(nk runtime.NakamaModule) *NakamaRoundStore {
	return &NakamaRoundStore{nk: nk, now: time.Now}
}

// SaveRound writes the full snapshot of a finished round, keyed by round id.
func (s *NakamaRoundStore) SaveRound(ctx context.Context, matchID string, round *domain.RoundState) error {
	if round == nil || round.ID == "" {
		return fmt.Errorf("round id is required")
	}
	snapshot, err := EncodeSnapshot(round, AllSeats)
	if err != nil {
		return fmt.Errorf("encode round %s: %w", round.ID, err)
	}
	value, err := json.Marshal(storedRound{MatchID: matchID, SavedAt: s.now().Unix(), Round: snapshot})
	if err != nil {
		return fmt.Errorf("marshal round %s: %w", round.ID, err)
	}

	_, err = s.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      roundsCollection,
		Key:             round.ID,
		Value:           string(value),
		PermissionRead:  storagePermissionPublicRead,
		PermissionWrite: storagePermissionNoWrite,
	}})
	if err != nil {
		return fmt.Errorf("write round %s: %w", round.ID, err)
	}
	return nil
}

// LoadRound reads a stored round back and validates it.
func (s *NakamaRoundStore) LoadRound(ctx context.Context, roundID string) (*domain.RoundState, error) {
	objects, err := s.nk.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: roundsCollection,
		Key:        roundID,
	}})
	if err != nil {
		return nil, fmt.Errorf("read round %s: %w", roundID, err)
	}
	if len(objects) == 0 {
		return nil, ports.ErrRoundNotFound
	}

	var stored storedRound
	if err := json.Unmarshal([]byte(objects[0].GetValue()), &stored); err != nil {
		return nil, fmt.Errorf("unmarshal round %s: %w", roundID, err)
	}
	return DecodeSnapshot(stored.Round)
}

var _ ports.RoundStore = (*NakamaRoundStore)(nil)
