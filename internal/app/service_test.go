package app

import (
	"errors"
	"math/rand"
	"testing"

	"mendikot/internal/domain"
)

func fullTable() [domain.SeatCount]SeatInfo {
	return [domain.SeatCount]SeatInfo{
		{UserID: "u1", Name: "Asha"},
		{UserID: "b1", Name: "Bot Ravi", Bot: true},
		{UserID: "u2", Name: "Meera"},
		{UserID: "b2", Name: "Bot Kiran", Bot: true},
	}
}

func TestStartRoundDealsHands(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(42)))

	round, evs, err := svc.StartRound(fullTable(), 0)
	if err != nil {
		t.Fatalf("start round error: %v", err)
	}
	if round.Phase != domain.PhasePlaying {
		t.Fatalf("phase = %s, want playing", round.Phase)
	}
	if round.CurrentSeat != 1 {
		t.Fatalf("lead seat = %d, want 1", round.CurrentSeat)
	}
	if round.Players[1].Human {
		t.Fatalf("bot seat marked human")
	}

	if evs[0].Kind != EventRoundStarted {
		t.Fatalf("first event = %s, want %s", evs[0].Kind, EventRoundStarted)
	}
	handEvents := 0
	for _, ev := range evs {
		if ev.Kind != EventHandDealt {
			continue
		}
		handEvents++
		payload := ev.Payload.(HandDealtPayload)
		if len(payload.Hand) != domain.HandSize {
			t.Fatalf("hand size = %d, want %d", len(payload.Hand), domain.HandSize)
		}
		want := fullTable()[payload.Seat].UserID
		if len(ev.Recipients) != 1 || ev.Recipients[0] != want {
			t.Fatalf("hand for seat %d sent to %v, want %s", payload.Seat, ev.Recipients, want)
		}
	}
	if handEvents != domain.SeatCount {
		t.Fatalf("hand events = %d, want %d", handEvents, domain.SeatCount)
	}
}

func TestStartRoundRequiresFullTable(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	seats := fullTable()
	seats[3] = SeatInfo{}

	if _, _, err := svc.StartRound(seats, 0); !errors.Is(err, ErrTooFewPlayers) {
		t.Fatalf("err = %v, want %v", err, ErrTooFewPlayers)
	}
	if _, _, err := svc.StartRound(fullTable(), 4); !errors.Is(err, ErrInvalidDealer) {
		t.Fatalf("err = %v, want %v", err, ErrInvalidDealer)
	}
}

func TestPlayCardRejectsOutOfTurn(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(7)))
	round, _, err := svc.StartRound(fullTable(), 0)
	if err != nil {
		t.Fatalf("start round error: %v", err)
	}

	card := round.Players[2].Hand[0]
	next, evs, err := svc.PlayCard(round, 2, card)
	if !errors.Is(err, domain.ErrNotYourTurn) {
		t.Fatalf("err = %v, want %v", err, domain.ErrNotYourTurn)
	}
	if next != nil || evs != nil {
		t.Fatalf("rejected play returned state or events")
	}
	if len(round.Players[2].Hand) != domain.HandSize {
		t.Fatalf("rejected play changed the hand")
	}

	if _, _, err := svc.PlayCard(nil, 0, card); !errors.Is(err, ErrNoRound) {
		t.Fatalf("err = %v, want %v", err, ErrNoRound)
	}
}

func TestPlayCardFullRoundEvents(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	svc := NewService(rng)
	round, _, err := svc.StartRound(fullTable(), 3)
	if err != nil {
		t.Fatalf("start round error: %v", err)
	}

	counts := make(map[EventKind]int)
	tricksSeen := 0
	for !round.Ended() {
		legal := round.ViewFor(round.CurrentSeat).LegalCards()
		card := legal[rng.Intn(len(legal))]
		next, evs, err := svc.PlayCard(round, round.CurrentSeat, card)
		if err != nil {
			t.Fatalf("play %s: %v", card, err)
		}
		for _, ev := range evs {
			counts[ev.Kind]++
			if ev.Kind == EventTrickCompleted {
				tricksSeen++
				payload := ev.Payload.(TrickCompletedPayload)
				if payload.Number != tricksSeen {
					t.Fatalf("trick number = %d, want %d", payload.Number, tricksSeen)
				}
				if len(payload.Cards) != domain.SeatCount {
					t.Fatalf("trick holds %d cards", len(payload.Cards))
				}
			}
			if ev.Kind == EventRoundEnded {
				payload := ev.Payload.(RoundEndedPayload)
				if payload.TeamATens+payload.TeamBTens != domain.TensInDeck {
					t.Fatalf("tens at round end = %d, want %d", payload.TeamATens+payload.TeamBTens, domain.TensInDeck)
				}
				if payload.TeamATricks+payload.TeamBTricks != domain.TricksPerRound {
					t.Fatalf("tricks at round end = %d, want %d", payload.TeamATricks+payload.TeamBTricks, domain.TricksPerRound)
				}
				if payload.Winner == domain.TeamNone {
					t.Fatalf("round ended without winner")
				}
			}
		}
		round = next
	}

	if counts[EventCardPlayed] != domain.DeckSize {
		t.Fatalf("card_played events = %d, want %d", counts[EventCardPlayed], domain.DeckSize)
	}
	if counts[EventTrickCompleted] != domain.TricksPerRound {
		t.Fatalf("trick_completed events = %d, want %d", counts[EventTrickCompleted], domain.TricksPerRound)
	}
	if counts[EventRoundEnded] != 1 {
		t.Fatalf("round_ended events = %d, want 1", counts[EventRoundEnded])
	}
	if counts[EventTrumpRevealed] > 1 {
		t.Fatalf("trump revealed %d times", counts[EventTrumpRevealed])
	}
}

func TestNextDealer(t *testing.T) {
	tests := []struct{ in, want int }{{0, 1}, {2, 3}, {3, 0}}
	for _, tt := range tests {
		if got := NextDealer(tt.in); got != tt.want {
			t.Errorf("NextDealer(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
