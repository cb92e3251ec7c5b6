package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"mendikot/internal/domain"
)

// Service contains Mendikot use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrTooFewPlayers = errors.New("not enough players to start")
	ErrInvalidDealer = errors.New("dealer seat out of range")
	ErrNoRound       = errors.New("no round in progress")
)

// SeatInfo identifies the occupant of a seat when a round starts.
type SeatInfo struct {
	UserID string
	Name   string
	Bot    bool
}

// StartRound shuffles and deals a fresh round. Every seat must be occupied.
func (s *Service) StartRound(seats [domain.SeatCount]SeatInfo, dealer int) (*domain.RoundState, []Event, error) {
	if dealer < 0 || dealer >= domain.SeatCount {
		return nil, nil, ErrInvalidDealer
	}
	cfg := domain.RoundConfig{Dealer: dealer}
	occupied := 0
	for i, seat := range seats {
		if seat.UserID == "" {
			continue
		}
		occupied++
		cfg.Seats[i] = domain.SeatConfig{Name: seat.Name, Human: !seat.Bot}
	}
	if occupied < RequiredPlayers {
		return nil, nil, ErrTooFewPlayers
	}

	deck := domain.ShuffleDeck(domain.NewDeck(), s.rng)
	round := domain.NewRound(cfg, deck)

	events := make([]Event, 0, domain.SeatCount+1)
	events = append(events, Event{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			RoundID:  round.ID,
			Dealer:   round.Dealer,
			LeadSeat: round.CurrentSeat,
			Message:  round.Message,
		},
	})
	for i, p := range round.Players {
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				Seat: i,
				Hand: domain.SortHand(p.Hand),
			},
			Recipients: []string{seats[i].UserID},
		})
	}
	return round, events, nil
}

// PlayCard applies a play and emits resulting events. On rejection the
// returned state is nil and the caller keeps the previous round.
func (s *Service) PlayCard(round *domain.RoundState, seat int, card domain.Card) (*domain.RoundState, []Event, error) {
	if round == nil {
		return nil, nil, ErrNoRound
	}
	next, res, err := domain.ApplyPlay(round, seat, card)
	if err != nil {
		return nil, nil, fmt.Errorf("play card: %w", err)
	}

	events := make([]Event, 0, 4)
	if res.TrumpRevealed {
		events = append(events, Event{
			Kind:    EventTrumpRevealed,
			Payload: TrumpRevealedPayload{Seat: seat, Suit: card.Suit, Card: card},
		})
	}
	events = append(events, Event{
		Kind:    EventCardPlayed,
		Payload: CardPlayedPayload{Seat: seat, Card: card, NextSeat: next.CurrentSeat},
	})

	if res.Trick != nil {
		events = append(events, Event{
			Kind: EventTrickCompleted,
			Payload: TrickCompletedPayload{
				Number:        round.TrickNumber(),
				Winner:        res.Trick.Winner,
				WinningTeam:   res.WinningTeam,
				Cards:         res.Trick.Cards,
				TensCaptured:  res.TensCaptured,
				TensConfirmed: res.TensConfirmed,
				PotTens:       next.PotTens,
				PotTeam:       next.PotTeam,
				Message:       next.Message,
			},
		})
	}

	if res.RoundEnded {
		events = append(events, Event{
			Kind: EventRoundEnded,
			Payload: RoundEndedPayload{
				RoundID:     next.ID,
				Winner:      next.Winner,
				Mendikot:    next.Mendikot,
				Whitewash:   next.Whitewash,
				TeamATricks: next.TricksWon(domain.TeamA),
				TeamBTricks: next.TricksWon(domain.TeamB),
				TeamATens:   next.Tens(domain.TeamA),
				TeamBTens:   next.Tens(domain.TeamB),
				Message:     next.Message,
			},
		})
	}
	return next, events, nil
}

// NextDealer rotates the deal one seat clockwise for the following round.
func NextDealer(dealer int) int {
	return (dealer + 1) % domain.SeatCount
}
