package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"mendikot/internal/domain"
	"mendikot/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockNakama implements the parts of runtime.NakamaModule the adapters use.
type mockNakama struct {
	runtime.NakamaModule
	objects   map[string]*runtime.StorageWrite
	users     []*api.User
	updates   []string
	failWrite error
}

func (m *mockNakama) StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error) {
	if m.failWrite != nil {
		return nil, m.failWrite
	}
	if m.objects == nil {
		m.objects = make(map[string]*runtime.StorageWrite)
	}
	acks := make([]*api.StorageObjectAck, 0, len(writes))
	for _, w := range writes {
		m.objects[w.Collection+"/"+w.Key] = w
		acks = append(acks, &api.StorageObjectAck{Collection: w.Collection, Key: w.Key})
	}
	return acks, nil
}

func (m *mockNakama) StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error) {
	var out []*api.StorageObject
	for _, r := range reads {
		if w, ok := m.objects[r.Collection+"/"+r.Key]; ok {
			out = append(out, &api.StorageObject{Collection: w.Collection, Key: w.Key, Value: w.Value})
		}
	}
	return out, nil
}

func (m *mockNakama) UsersGetId(ctx context.Context, userIDs []string, facebookIDs []string) ([]*api.User, error) {
	var out []*api.User
	for _, u := range m.users {
		for _, id := range userIDs {
			if u.Id == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (m *mockNakama) AccountUpdateId(ctx context.Context, userID, username string, metadata map[string]interface{}, displayName, timezone, location, langTag, avatarUrl string) error {
	m.updates = append(m.updates, userID+":"+displayName)
	return nil
}

func TestNakamaRoundStore(t *testing.T) {
	nk := &mockNakama{}
	store := NewNakamaRoundStore(nk)
	store.now = func() time.Time { return time.Unix(1700000000, 0) }
	round := advance(t, newRound(t, 31), domain.DeckSize)
	require.True(t, round.Ended())

	require.NoError(t, store.SaveRound(context.Background(), "match-7", round))

	written := nk.objects[roundsCollection+"/"+round.ID]
	require.NotNil(t, written)
	assert.Empty(t, written.UserID, "rounds are system-owned")
	assert.Equal(t, storagePermissionPublicRead, written.PermissionRead)
	assert.Equal(t, storagePermissionNoWrite, written.PermissionWrite)

	var stored storedRound
	require.NoError(t, json.Unmarshal([]byte(written.Value), &stored))
	assert.Equal(t, "match-7", stored.MatchID)
	assert.Equal(t, int64(1700000000), stored.SavedAt)

	loaded, err := store.LoadRound(context.Background(), round.ID)
	require.NoError(t, err)
	assert.Equal(t, round, loaded)
}

func TestNakamaRoundStoreErrors(t *testing.T) {
	nk := &mockNakama{}
	store := NewNakamaRoundStore(nk)

	_, err := store.LoadRound(context.Background(), "missing")
	assert.ErrorIs(t, err, ports.ErrRoundNotFound)

	assert.Error(t, store.SaveRound(context.Background(), "m", &domain.RoundState{}))

	nk.failWrite = errors.New("db down")
	err = store.SaveRound(context.Background(), "m", newRound(t, 1))
	assert.ErrorIs(t, err, nk.failWrite)

	nk.failWrite = nil
	nk.objects = map[string]*runtime.StorageWrite{
		roundsCollection + "/bad": {Collection: roundsCollection, Key: "bad", Value: `{"round":{"players":[]}}`},
	}
	_, err = store.LoadRound(context.Background(), "bad")
	assert.Error(t, err)
}

func TestAccountAdapterDisplayNames(t *testing.T) {
	nk := &mockNakama{users: []*api.User{
		{Id: "u1", Username: "asha_dev", DisplayName: "Asha"},
		{Id: "u2", Username: "bo_dev"},
	}}
	adapter := NewNakamaAccountAdapter(nk)

	names, err := adapter.DisplayNames(context.Background(), []string{"u1", "u2", "u3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"u1": "Asha", "u2": "bo_dev"}, names)

	names, err = adapter.DisplayNames(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}
