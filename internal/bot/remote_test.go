package bot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mendikot/internal/domain"
)

type fakeTokens struct {
	err   error
	calls int
}

func (f *fakeTokens) GenerateToken(matchID string, seat int) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "token-" + matchID, nil
}

func TestRemoteBrainUsesAdvisorChoice(t *testing.T) {
	var got advisorRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(advisorResponse{CardID: "9-hearts", Reason: "keep the ten"})
	}))
	defer srv.Close()

	tokens := &fakeTokens{}
	b := NewRemoteBrain(srv.URL, "match-1", BotLevelHard, tokens, time.Second, nil)
	view := viewFor(1, cards("10-hearts", "9-hearts", "A-spades"), trickFrom(0, "K-hearts"), nil)

	card, err := b.ChooseCard(context.Background(), view, view.LegalCards())
	if err != nil {
		t.Fatalf("ChooseCard error: %v", err)
	}
	if card.ID() != "9-hearts" {
		t.Fatalf("ChooseCard = %s, want 9-hearts", card.ID())
	}
	if auth != "Bearer token-match-1" {
		t.Fatalf("Authorization = %q", auth)
	}
	if got.Difficulty != "hard" || got.LeadSuit == nil || *got.LeadSuit != "hearts" || got.TrumpSuit != nil {
		t.Fatalf("unexpected request context: %+v", got)
	}
	if len(got.PlayableCards) != 2 || len(got.CurrentTrickCards) != 1 || got.CurrentTrickCards[0].PlayerID != 0 {
		t.Fatalf("unexpected request cards: %+v", got)
	}
}

func TestRemoteBrainFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		tokens  *fakeTokens
	}{
		{
			name: "Server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "overloaded", http.StatusServiceUnavailable)
			},
		},
		{
			name: "Unplayable suggestion",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(advisorResponse{CardID: "A-spades"})
			},
		},
		{
			name: "Malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("Sure! I would play the nine."))
			},
		},
		{
			name: "Slow advisor",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
				_ = json.NewEncoder(w).Encode(advisorResponse{CardID: "10-hearts"})
			},
		},
		{
			name:    "Token failure",
			handler: func(w http.ResponseWriter, r *http.Request) { t.Error("advisor called without token") },
			tokens:  &fakeTokens{err: errors.New("no secret")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			tokens := tt.tokens
			if tokens == nil {
				tokens = &fakeTokens{}
			}
			b := NewRemoteBrain(srv.URL, "match-1", BotLevelMedium, tokens, 50*time.Millisecond, &StandardBot{})
			view := viewFor(1, cards("10-hearts", "9-hearts", "A-spades"), trickFrom(0, "K-hearts"), nil)

			card, err := b.ChooseCard(context.Background(), view, view.LegalCards())
			if err != nil {
				t.Fatalf("ChooseCard error: %v", err)
			}
			// StandardBot follows with the lowest heart.
			if card.ID() != "9-hearts" {
				t.Fatalf("fallback card = %s, want 9-hearts", card.ID())
			}
		})
	}
}

func TestRemoteBrainSkipsAdvisorForForcedPlay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("advisor should not be called with a single option")
	}))
	defer srv.Close()

	b := NewRemoteBrain(srv.URL, "m", BotLevelMedium, nil, time.Second, nil)
	legal := []domain.Card{mustCard("2-clubs")}
	card, err := b.ChooseCard(context.Background(), viewFor(0, legal, domain.Trick{}, nil), legal)
	if err != nil || card != legal[0] {
		t.Fatalf("ChooseCard = %s, %v", card, err)
	}
}
