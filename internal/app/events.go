package app

import "mendikot/internal/domain"

// EventKind identifies emitted round events for Nakama dispatch.
type EventKind string

const (
	EventRoundStarted   EventKind = "round_started"
	EventHandDealt      EventKind = "hand_dealt"
	EventCardPlayed     EventKind = "card_played"
	EventTrumpRevealed  EventKind = "trump_revealed"
	EventTrickCompleted EventKind = "trick_completed"
	EventRoundEnded     EventKind = "round_ended"
)

// Event is a round event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type RoundStartedPayload struct {
	RoundID  string
	Dealer   int
	LeadSeat int
	Message  string
}

type HandDealtPayload struct {
	Seat int
	Hand []domain.Card
}

type CardPlayedPayload struct {
	Seat     int
	Card     domain.Card
	NextSeat int
}

type TrumpRevealedPayload struct {
	Seat int
	Suit domain.Suit
	Card domain.Card
}

type TrickCompletedPayload struct {
	Number        int
	Winner        int
	WinningTeam   domain.Team
	Cards         []domain.PlayedCard
	TensCaptured  int
	TensConfirmed int
	PotTens       int
	PotTeam       domain.Team
	Message       string
}

type RoundEndedPayload struct {
	RoundID     string
	Winner      domain.Team
	Mendikot    bool
	Whitewash   bool
	TeamATricks int
	TeamBTricks int
	TeamATens   int
	TeamBTens   int
	Message     string
}
