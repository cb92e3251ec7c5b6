package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mendikot/internal/domain"
)

// TokenSource issues bearer tokens for the card advisor.
type TokenSource interface {
	GenerateToken(matchID string, seat int) (string, error)
}

// advisorRequest is the visible context sent to the card advisor.
type advisorRequest struct {
	Hand                 []advisorCard       `json:"hand"`
	PlayableCards        []advisorCard       `json:"playableCards"`
	LeadSuit             *string             `json:"leadSuit"`
	TrumpSuit            *string             `json:"trumpSuit"`
	TrumpRevealed        bool                `json:"trumpRevealed"`
	CurrentTrickCards    []advisorPlayedCard `json:"currentTrickCards"`
	PlayerTeam           domain.Team         `json:"playerTeam"`
	TeamATricks          int                 `json:"teamATricks"`
	TeamBTricks          int                 `json:"teamBTricks"`
	TeamATens            int                 `json:"teamATens"`
	TeamBTens            int                 `json:"teamBTens"`
	CompletedTricksCount int                 `json:"completedTricksCount"`
	Difficulty           string              `json:"difficulty"`
}

type advisorCard struct {
	ID   string `json:"id"`
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

type advisorPlayedCard struct {
	PlayerID int         `json:"playerId"`
	Card     advisorCard `json:"card"`
}

type advisorResponse struct {
	CardID string `json:"cardId"`
	Reason string `json:"reason"`
}

func toAdvisorCards(cards []domain.Card) []advisorCard {
	out := make([]advisorCard, len(cards))
	for i, c := range cards {
		out[i] = advisorCard{ID: c.ID(), Suit: c.Suit.String(), Rank: c.Rank.String()}
	}
	return out
}

func suitName(s *domain.Suit) *string {
	if s == nil {
		return nil
	}
	name := s.String()
	return &name
}

// RemoteBrain asks an external advisor for the card to play and falls back to
// a local brain when the advisor fails, times out or suggests an illegal card.
type RemoteBrain struct {
	URL        string
	MatchID    string
	Difficulty string
	Tokens     TokenSource
	Client     *http.Client
	Fallback   Brain
}

// NewRemoteBrain builds a RemoteBrain with an HTTP client bounded by timeout.
func NewRemoteBrain(url, matchID string, level BotLevel, tokens TokenSource, timeout time.Duration, fallback Brain) *RemoteBrain {
	if fallback == nil {
		fallback = &StandardBot{}
	}
	return &RemoteBrain{
		URL:        url,
		MatchID:    matchID,
		Difficulty: level.String(),
		Tokens:     tokens,
		Client:     &http.Client{Timeout: timeout},
		Fallback:   fallback,
	}
}

func (b *RemoteBrain) ChooseCard(ctx context.Context, view domain.RoundView, legal []domain.Card) (domain.Card, error) {
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalCards
	}
	if len(legal) == 1 {
		return legal[0], nil
	}

	card, err := b.ask(ctx, view, legal)
	if err == nil {
		return card, nil
	}
	return b.Fallback.ChooseCard(ctx, view, legal)
}

func (b *RemoteBrain) ask(ctx context.Context, view domain.RoundView, legal []domain.Card) (domain.Card, error) {
	body, err := json.Marshal(b.buildRequest(view, legal))
	if err != nil {
		return domain.Card{}, fmt.Errorf("marshal advisor request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.URL, bytes.NewReader(body))
	if err != nil {
		return domain.Card{}, fmt.Errorf("build advisor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.Tokens != nil {
		token, err := b.Tokens.GenerateToken(b.MatchID, view.Seat)
		if err != nil {
			return domain.Card{}, fmt.Errorf("advisor token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return domain.Card{}, fmt.Errorf("advisor request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Card{}, fmt.Errorf("advisor returned status %d", resp.StatusCode)
	}

	var out advisorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&out); err != nil {
		return domain.Card{}, fmt.Errorf("decode advisor response: %w", err)
	}
	card, err := domain.ParseCardID(out.CardID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("advisor card: %w", err)
	}
	if !domain.ContainsCard(legal, card) {
		return domain.Card{}, fmt.Errorf("advisor suggested unplayable card %s", out.CardID)
	}
	return card, nil
}

func (b *RemoteBrain) buildRequest(view domain.RoundView, legal []domain.Card) advisorRequest {
	req := advisorRequest{
		Hand:                 toAdvisorCards(view.Hand),
		PlayableCards:        toAdvisorCards(legal),
		LeadSuit:             suitName(view.Trick.LeadSuit),
		TrumpSuit:            suitName(view.TrumpSuit),
		TrumpRevealed:        view.TrumpRevealed(),
		CurrentTrickCards:    make([]advisorPlayedCard, 0, len(view.Trick.Cards)),
		PlayerTeam:           view.Team,
		TeamATricks:          view.TeamATricks,
		TeamBTricks:          view.TeamBTricks,
		TeamATens:            view.TeamATens,
		TeamBTens:            view.TeamBTens,
		CompletedTricksCount: len(view.CompletedTricks),
		Difficulty:           b.Difficulty,
	}
	for _, p := range view.Trick.Cards {
		req.CurrentTrickCards = append(req.CurrentTrickCards, advisorPlayedCard{
			PlayerID: p.Seat,
			Card:     toAdvisorCards([]domain.Card{p.Card})[0],
		})
	}
	return req
}
