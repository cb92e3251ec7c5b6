package nakama

import (
	"encoding/json"
	"fmt"

	"mendikot/internal/app"
	"mendikot/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// AllSeats asks EncodeSnapshot to include every hand.
const AllSeats = -1

// CardMessage is the wire form of a card.
type CardMessage struct {
	ID   string `json:"id"`
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

type PlayedCardMessage struct {
	Seat int         `json:"seat"`
	Card CardMessage `json:"card"`
}

type PlayerSnapshot struct {
	Seat  int    `json:"seat"`
	Name  string `json:"name"`
	Team  string `json:"team"`
	Human bool   `json:"human"`
	// Hand is null for seats hidden from the viewer.
	Hand     []CardMessage `json:"hand"`
	HandSize int           `json:"hand_size"`
}

type TrickSnapshot struct {
	LeadSuit *string             `json:"lead_suit"`
	Cards    []PlayedCardMessage `json:"cards"`
}

type CompletedTrickSnapshot struct {
	Winner int                 `json:"winner"`
	Cards  []PlayedCardMessage `json:"cards"`
}

// RoundSnapshot is the JSON document describing a round. Optional values are
// always present and encoded as null when unset.
type RoundSnapshot struct {
	RoundID string `json:"round_id"`
	Viewer  int    `json:"viewer"`
	Phase   string `json:"phase"`
	Dealer  int    `json:"dealer"`

	Players     []PlayerSnapshot `json:"players"`
	CurrentSeat int              `json:"current_seat"`
	Trick       TrickSnapshot    `json:"trick"`

	TrumpSuit     *string      `json:"trump_suit"`
	TrumpRevealed bool         `json:"trump_revealed"`
	TrumpSetter   *int         `json:"trump_setter"`
	TrumpCard     *CardMessage `json:"trump_card"`

	CompletedTricks []CompletedTrickSnapshot `json:"completed_tricks"`

	TeamATricks int     `json:"team_a_tricks"`
	TeamBTricks int     `json:"team_b_tricks"`
	TeamATens   int     `json:"team_a_tens"`
	TeamBTens   int     `json:"team_b_tens"`
	PotTens     int     `json:"pot_tens"`
	PotTeam     *string `json:"pot_tens_team"`

	LastTrickWinner *string `json:"last_trick_winner"`
	Message         string  `json:"message"`
	Winner          *string `json:"winner"`
	Mendikot        bool    `json:"mendikot"`
	Whitewash       bool    `json:"whitewash"`
}

func cardMessage(c domain.Card) CardMessage {
	return CardMessage{ID: c.ID(), Suit: c.Suit.String(), Rank: c.Rank.String()}
}

func cardMessages(cards []domain.Card) []CardMessage {
	out := make([]CardMessage, len(cards))
	for i, c := range cards {
		out[i] = cardMessage(c)
	}
	return out
}

func playedMessages(plays []domain.PlayedCard) []PlayedCardMessage {
	out := make([]PlayedCardMessage, len(plays))
	for i, p := range plays {
		out[i] = PlayedCardMessage{Seat: p.Seat, Card: cardMessage(p.Card)}
	}
	return out
}

func teamPtr(t domain.Team) *string {
	if t == domain.TeamNone {
		return nil
	}
	s := string(t)
	return &s
}

func suitPtr(s *domain.Suit) *string {
	if s == nil {
		return nil
	}
	name := s.String()
	return &name
}

// NewRoundSnapshot renders a round as seen by viewer. Pass AllSeats to keep
// every hand, which is what persistence needs.
func NewRoundSnapshot(s *domain.RoundState, viewer int) RoundSnapshot {
	snap := RoundSnapshot{
		RoundID:         s.ID,
		Viewer:          viewer,
		Phase:           string(s.Phase),
		Dealer:          s.Dealer,
		Players:         make([]PlayerSnapshot, domain.SeatCount),
		CurrentSeat:     s.CurrentSeat,
		Trick:           TrickSnapshot{LeadSuit: suitPtr(s.Trick.LeadSuit), Cards: playedMessages(s.Trick.Cards)},
		TrumpRevealed:   s.TrumpRevealed,
		CompletedTricks: make([]CompletedTrickSnapshot, len(s.CompletedTricks)),
		TeamATricks:     s.TeamATricks,
		TeamBTricks:     s.TeamBTricks,
		TeamATens:       s.TeamATens,
		TeamBTens:       s.TeamBTens,
		PotTens:         s.PotTens,
		PotTeam:         teamPtr(s.PotTeam),
		LastTrickWinner: teamPtr(s.LastTrickWinner),
		Message:         s.Message,
		Winner:          teamPtr(s.Winner),
		Mendikot:        s.Mendikot,
		Whitewash:       s.Whitewash,
	}

	for i, p := range s.Players {
		ps := PlayerSnapshot{
			Seat:     p.Seat,
			Name:     p.Name,
			Team:     string(p.Team),
			Human:    p.Human,
			HandSize: len(p.Hand),
		}
		if viewer == AllSeats || viewer == i {
			ps.Hand = cardMessages(p.Hand)
		}
		snap.Players[i] = ps
	}
	for i, ct := range s.CompletedTricks {
		snap.CompletedTricks[i] = CompletedTrickSnapshot{Winner: ct.Winner, Cards: playedMessages(ct.Cards)}
	}

	if s.TrumpRevealed || viewer == AllSeats {
		snap.TrumpSuit = suitPtr(s.TrumpSuit)
		if s.TrumpSetter != nil {
			seat := *s.TrumpSetter
			snap.TrumpSetter = &seat
		}
		if s.TrumpCard != nil {
			c := cardMessage(*s.TrumpCard)
			snap.TrumpCard = &c
		}
	}
	return snap
}

// EncodeSnapshot marshals the round as seen by viewer.
func EncodeSnapshot(s *domain.RoundState, viewer int) ([]byte, error) {
	return json.Marshal(NewRoundSnapshot(s, viewer))
}

// DecodeSnapshot parses a full snapshot back into a round and checks it.
// Snapshots with hidden hands cannot be decoded.
func DecodeSnapshot(data []byte) (*domain.RoundState, error) {
	var snap RoundSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	s, err := snap.toRound()
	if err != nil {
		return nil, fmt.Errorf("convert snapshot: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return s, nil
}

func (snap RoundSnapshot) toRound() (*domain.RoundState, error) {
	if len(snap.Players) != domain.SeatCount {
		return nil, fmt.Errorf("snapshot has %d players", len(snap.Players))
	}
	s := &domain.RoundState{
		ID:            snap.RoundID,
		Phase:         domain.Phase(snap.Phase),
		Dealer:        snap.Dealer,
		CurrentSeat:   snap.CurrentSeat,
		TrumpRevealed: snap.TrumpRevealed,
		TeamATricks:   snap.TeamATricks,
		TeamBTricks:   snap.TeamBTricks,
		TeamATens:     snap.TeamATens,
		TeamBTens:     snap.TeamBTens,
		PotTens:       snap.PotTens,
		Message:       snap.Message,
		Mendikot:      snap.Mendikot,
		Whitewash:     snap.Whitewash,
	}

	var err error
	for i, ps := range snap.Players {
		if ps.Hand == nil && ps.HandSize > 0 {
			return nil, fmt.Errorf("hand of seat %d is hidden", i)
		}
		p := domain.Player{Seat: ps.Seat, Name: ps.Name, Team: domain.Team(ps.Team), Human: ps.Human}
		if p.Hand, err = parseCards(ps.Hand); err != nil {
			return nil, err
		}
		s.Players[i] = p
	}

	if s.Trick.LeadSuit, err = parseSuitPtr(snap.Trick.LeadSuit); err != nil {
		return nil, err
	}
	if s.Trick.Cards, err = parsePlays(snap.Trick.Cards); err != nil {
		return nil, err
	}
	if len(snap.CompletedTricks) > 0 {
		s.CompletedTricks = make([]domain.CompletedTrick, len(snap.CompletedTricks))
		for i, ct := range snap.CompletedTricks {
			plays, err := parsePlays(ct.Cards)
			if err != nil {
				return nil, err
			}
			s.CompletedTricks[i] = domain.CompletedTrick{Winner: ct.Winner, Cards: plays}
		}
	}

	if s.TrumpSuit, err = parseSuitPtr(snap.TrumpSuit); err != nil {
		return nil, err
	}
	if snap.TrumpSetter != nil {
		seat := *snap.TrumpSetter
		s.TrumpSetter = &seat
	}
	if snap.TrumpCard != nil {
		c, err := domain.ParseCardID(snap.TrumpCard.ID)
		if err != nil {
			return nil, err
		}
		s.TrumpCard = &c
	}

	if s.PotTeam, err = parseTeam(snap.PotTeam); err != nil {
		return nil, err
	}
	if s.LastTrickWinner, err = parseTeam(snap.LastTrickWinner); err != nil {
		return nil, err
	}
	if s.Winner, err = parseTeam(snap.Winner); err != nil {
		return nil, err
	}
	return s, nil
}

func parseCards(msgs []CardMessage) ([]domain.Card, error) {
	if len(msgs) == 0 {
		return nil, nil
	}
	out := make([]domain.Card, len(msgs))
	for i, m := range msgs {
		c, err := domain.ParseCardID(m.ID)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func parsePlays(msgs []PlayedCardMessage) ([]domain.PlayedCard, error) {
	if len(msgs) == 0 {
		return nil, nil
	}
	out := make([]domain.PlayedCard, len(msgs))
	for i, m := range msgs {
		c, err := domain.ParseCardID(m.Card.ID)
		if err != nil {
			return nil, err
		}
		out[i] = domain.PlayedCard{Seat: m.Seat, Card: c}
	}
	return out, nil
}

func parseSuitPtr(name *string) (*domain.Suit, error) {
	if name == nil {
		return nil, nil
	}
	s, err := domain.ParseSuit(*name)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func parseTeam(name *string) (domain.Team, error) {
	if name == nil {
		return domain.TeamNone, nil
	}
	switch t := domain.Team(*name); t {
	case domain.TeamA, domain.TeamB:
		return t, nil
	}
	return domain.TeamNone, fmt.Errorf("unknown team %q", *name)
}

// PlayCardRequest is sent by a client with OpPlayCard.
type PlayCardRequest struct {
	CardID string `json:"card_id"`
}

type GameErrorMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type SeatMessage struct {
	Seat      int    `json:"seat"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Team      string `json:"team"`
	Bot       bool   `json:"bot"`
	Connected bool   `json:"connected"`
}

// MatchStateMessage describes the table outside of the round itself.
type MatchStateMessage struct {
	Seats       []SeatMessage `json:"seats"`
	OwnerSeat   int           `json:"owner_seat"`
	Dealer      int           `json:"dealer"`
	State       string        `json:"state"`
	LastRoundID string        `json:"last_round_id"`
	Tick        int64         `json:"tick"`
}

type RoundStartedMessage struct {
	RoundID  string `json:"round_id"`
	Dealer   int    `json:"dealer"`
	LeadSeat int    `json:"lead_seat"`
	Message  string `json:"message"`
}

type HandDealtMessage struct {
	Seat int           `json:"seat"`
	Hand []CardMessage `json:"hand"`
}

type CardPlayedMessage struct {
	Seat     int         `json:"seat"`
	Card     CardMessage `json:"card"`
	NextSeat int         `json:"next_seat"`
}

type TrumpRevealedMessage struct {
	Seat int         `json:"seat"`
	Suit string      `json:"suit"`
	Card CardMessage `json:"card"`
}

type TrickCompletedMessage struct {
	Number        int                 `json:"number"`
	Winner        int                 `json:"winner"`
	WinningTeam   string              `json:"winning_team"`
	Cards         []PlayedCardMessage `json:"cards"`
	TensCaptured  int                 `json:"tens_captured"`
	TensConfirmed int                 `json:"tens_confirmed"`
	PotTens       int                 `json:"pot_tens"`
	PotTeam       *string             `json:"pot_tens_team"`
	Message       string              `json:"message"`
}

type RoundEndedMessage struct {
	RoundID     string  `json:"round_id"`
	Winner      *string `json:"winner"`
	Mendikot    bool    `json:"mendikot"`
	Whitewash   bool    `json:"whitewash"`
	TeamATricks int     `json:"team_a_tricks"`
	TeamBTricks int     `json:"team_b_tricks"`
	TeamATens   int     `json:"team_a_tens"`
	TeamBTens   int     `json:"team_b_tens"`
	Message     string  `json:"message"`
}

// eventMessage maps an app event to its op code and wire payload.
func eventMessage(ev app.Event) (int64, any, error) {
	switch p := ev.Payload.(type) {
	case app.RoundStartedPayload:
		return OpRoundStarted, RoundStartedMessage{RoundID: p.RoundID, Dealer: p.Dealer, LeadSeat: p.LeadSeat, Message: p.Message}, nil
	case app.HandDealtPayload:
		return OpHandDealt, HandDealtMessage{Seat: p.Seat, Hand: cardMessages(p.Hand)}, nil
	case app.CardPlayedPayload:
		return OpCardPlayed, CardPlayedMessage{Seat: p.Seat, Card: cardMessage(p.Card), NextSeat: p.NextSeat}, nil
	case app.TrumpRevealedPayload:
		return OpTrumpRevealed, TrumpRevealedMessage{Seat: p.Seat, Suit: p.Suit.String(), Card: cardMessage(p.Card)}, nil
	case app.TrickCompletedPayload:
		return OpTrickCompleted, TrickCompletedMessage{
			Number:        p.Number,
			Winner:        p.Winner,
			WinningTeam:   string(p.WinningTeam),
			Cards:         playedMessages(p.Cards),
			TensCaptured:  p.TensCaptured,
			TensConfirmed: p.TensConfirmed,
			PotTens:       p.PotTens,
			PotTeam:       teamPtr(p.PotTeam),
			Message:       p.Message,
		}, nil
	case app.RoundEndedPayload:
		return OpRoundEnded, RoundEndedMessage{
			RoundID:     p.RoundID,
			Winner:      teamPtr(p.Winner),
			Mendikot:    p.Mendikot,
			Whitewash:   p.Whitewash,
			TeamATricks: p.TeamATricks,
			TeamBTricks: p.TeamBTricks,
			TeamATens:   p.TeamATens,
			TeamBTens:   p.TeamBTens,
			Message:     p.Message,
		}, nil
	}
	return 0, nil, fmt.Errorf("unknown event kind %q", ev.Kind)
}

// matchLabel renders the match listing label.
func matchLabel(open int, state string) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		"game":  GameLabel,
		"open":  open,
		"state": state,
	})
	if err != nil {
		return "", err
	}
	b, err := protojson.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
