package nakama

import (
	"encoding/json"
	"math/rand"
	"testing"

	"mendikot/internal/app"
	"mendikot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRound(t *testing.T, seed int64) *domain.RoundState {
	t.Helper()
	deck := domain.ShuffleDeck(domain.NewDeck(), rand.New(rand.NewSource(seed)))
	return domain.NewRound(domain.RoundConfig{Seats: [domain.SeatCount]domain.SeatConfig{
		{Name: "Asha", Human: true}, {Name: "Ravi"}, {Name: "Bo", Human: true}, {Name: "Meera"},
	}}, deck)
}

// advance plays n cards, always the first legal one.
func advance(t *testing.T, s *domain.RoundState, n int) *domain.RoundState {
	t.Helper()
	for i := 0; i < n && !s.Ended(); i++ {
		legal := s.ViewFor(s.CurrentSeat).LegalCards()
		next, _, err := domain.ApplyPlay(s, s.CurrentSeat, legal[0])
		require.NoError(t, err)
		s = next
	}
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, plays := range []int{0, 6, 23, domain.DeckSize} {
		round := advance(t, newRound(t, 21), plays)

		data, err := EncodeSnapshot(round, AllSeats)
		require.NoError(t, err)
		decoded, err := DecodeSnapshot(data)
		require.NoError(t, err, "after %d plays", plays)
		assert.Equal(t, round, decoded, "after %d plays", plays)
	}
}

func TestSnapshotHidesOtherHands(t *testing.T) {
	round := newRound(t, 4)
	data, err := EncodeSnapshot(round, 2)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, "null", string(raw["trump_suit"]), "unset values are explicit nulls")
	assert.JSONEq(t, "null", string(raw["pot_tens_team"]))
	assert.JSONEq(t, "null", string(raw["winner"]))

	var snap RoundSnapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	for i, p := range snap.Players {
		assert.Equal(t, domain.HandSize, p.HandSize)
		if i == 2 {
			assert.Len(t, p.Hand, domain.HandSize)
		} else {
			assert.Nil(t, p.Hand, "seat %d hand leaked", i)
		}
	}

	_, err = DecodeSnapshot(data)
	assert.Error(t, err, "a partial view is not a round")
}

func TestSnapshotShowsTrumpOnlyOnceRevealed(t *testing.T) {
	round := newRound(t, 8)
	for !round.TrumpRevealed {
		require.False(t, round.Ended(), "every round has a player who cannot follow")
		round = advance(t, round, 1)
	}

	snap := NewRoundSnapshot(round, 0)
	require.NotNil(t, snap.TrumpSuit)
	assert.Equal(t, round.TrumpSuit.String(), *snap.TrumpSuit)
	require.NotNil(t, snap.TrumpSetter)
	require.NotNil(t, snap.TrumpCard)
	assert.Equal(t, round.TrumpCard.ID(), snap.TrumpCard.ID)
}

func TestDecodeSnapshotRejectsCorruptState(t *testing.T) {
	round := advance(t, newRound(t, 5), 9)
	snap := NewRoundSnapshot(round, AllSeats)

	tests := []struct {
		name   string
		mutate func(*RoundSnapshot)
	}{
		{name: "Duplicated card", mutate: func(s *RoundSnapshot) { s.Players[0].Hand[0] = s.Players[1].Hand[0] }},
		{name: "Unknown card", mutate: func(s *RoundSnapshot) { s.Players[0].Hand[0].ID = "1-hearts" }},
		{name: "Tally drift", mutate: func(s *RoundSnapshot) { s.TeamATricks += 1 }},
		{name: "Unknown team", mutate: func(s *RoundSnapshot) { team := "C"; s.Winner = &team }},
		{name: "Missing seat", mutate: func(s *RoundSnapshot) { s.Players = s.Players[:3] }},
		{name: "Unknown phase", mutate: func(s *RoundSnapshot) { s.Phase = "bidding" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(snap)
			require.NoError(t, err)
			var copySnap RoundSnapshot
			require.NoError(t, json.Unmarshal(data, &copySnap))
			tt.mutate(&copySnap)

			corrupt, err := json.Marshal(copySnap)
			require.NoError(t, err)
			_, err = DecodeSnapshot(corrupt)
			assert.Error(t, err)
		})
	}

	_, err := DecodeSnapshot([]byte(`{"players":`))
	assert.Error(t, err)
}

func TestDecodeSnapshotRejectsTamperedResult(t *testing.T) {
	finished := advance(t, newRound(t, 5), domain.DeckSize)
	require.True(t, finished.Ended())
	snap := NewRoundSnapshot(finished, AllSeats)

	tests := []struct {
		name   string
		mutate func(*RoundSnapshot)
	}{
		{name: "Winner flipped", mutate: func(s *RoundSnapshot) {
			other := string(domain.TeamA)
			if *s.Winner == other {
				other = string(domain.TeamB)
			}
			s.Winner = &other
		}},
		{name: "Mendikot flag", mutate: func(s *RoundSnapshot) { s.Mendikot = !s.Mendikot }},
		{name: "Whitewash flag", mutate: func(s *RoundSnapshot) { s.Whitewash = !s.Whitewash }},
		{name: "Trump setter out of range", mutate: func(s *RoundSnapshot) { nine := 9; s.TrumpSetter = &nine }},
		{name: "Ten moved between teams", mutate: func(s *RoundSnapshot) {
			if s.TeamATens > 0 {
				s.TeamATens--
				s.TeamBTens++
			} else {
				s.TeamATens++
				s.TeamBTens--
			}
		}},
		{name: "Trick winner rewritten", mutate: func(s *RoundSnapshot) {
			s.CompletedTricks[0].Winner = (s.CompletedTricks[0].Winner + 1) % domain.SeatCount
		}},
		{name: "Trick played out of turn", mutate: func(s *RoundSnapshot) {
			cards := s.CompletedTricks[0].Cards
			cards[0], cards[1] = cards[1], cards[0]
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(snap)
			require.NoError(t, err)
			var copySnap RoundSnapshot
			require.NoError(t, json.Unmarshal(data, &copySnap))
			tt.mutate(&copySnap)

			corrupt, err := json.Marshal(copySnap)
			require.NoError(t, err)
			_, err = DecodeSnapshot(corrupt)
			assert.Error(t, err)
		})
	}
}

func TestEventMessage(t *testing.T) {
	card := domain.Card{Suit: domain.Clubs, Rank: domain.Ten}
	tests := []struct {
		name string
		ev   app.Event
		want int64
	}{
		{name: "RoundStarted", ev: app.Event{Kind: app.EventRoundStarted, Payload: app.RoundStartedPayload{RoundID: "r"}}, want: OpRoundStarted},
		{name: "HandDealt", ev: app.Event{Kind: app.EventHandDealt, Payload: app.HandDealtPayload{Hand: []domain.Card{card}}}, want: OpHandDealt},
		{name: "CardPlayed", ev: app.Event{Kind: app.EventCardPlayed, Payload: app.CardPlayedPayload{Card: card}}, want: OpCardPlayed},
		{name: "TrumpRevealed", ev: app.Event{Kind: app.EventTrumpRevealed, Payload: app.TrumpRevealedPayload{Suit: domain.Clubs, Card: card}}, want: OpTrumpRevealed},
		{name: "TrickCompleted", ev: app.Event{Kind: app.EventTrickCompleted, Payload: app.TrickCompletedPayload{PotTeam: domain.TeamB}}, want: OpTrickCompleted},
		{name: "RoundEnded", ev: app.Event{Kind: app.EventRoundEnded, Payload: app.RoundEndedPayload{Winner: domain.TeamA}}, want: OpRoundEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, payload, err := eventMessage(tt.ev)
			require.NoError(t, err)
			assert.Equal(t, tt.want, op)
			_, err = json.Marshal(payload)
			assert.NoError(t, err)
		})
	}

	_, _, err := eventMessage(app.Event{Kind: "bogus", Payload: 42})
	assert.Error(t, err)
}

func TestTrumpRevealedMessageNamesSuit(t *testing.T) {
	_, payload, err := eventMessage(app.Event{
		Kind:    app.EventTrumpRevealed,
		Payload: app.TrumpRevealedPayload{Seat: 3, Suit: domain.Spades, Card: domain.Card{Suit: domain.Spades, Rank: domain.Four}},
	})
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"seat":3,"suit":"spades","card":{"id":"4-spades","suit":"spades","rank":"4"}}`, string(data))
}
