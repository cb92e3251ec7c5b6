package internal

import (
	"testing"

	"mendikot/internal/domain"
)

func TestProfileHand(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.Spades, Rank: domain.Ace},
		{Suit: domain.Spades, Rank: domain.Ten},
		{Suit: domain.Spades, Rank: domain.Four},
		{Suit: domain.Hearts, Rank: domain.Ten},
		{Suit: domain.Hearts, Rank: domain.Two},
		{Suit: domain.Clubs, Rank: domain.Ace},
	}
	trump := domain.Hearts

	profile := ProfileHand(hand, &trump)

	if profile.SuitCounts != [4]int{domain.Hearts: 2, domain.Clubs: 1, domain.Spades: 3} {
		t.Fatalf("SuitCounts = %v", profile.SuitCounts)
	}
	if profile.Trumps != 2 {
		t.Fatalf("Trumps = %d, want 2", profile.Trumps)
	}
	if profile.LongestSuit != domain.Spades {
		t.Fatalf("LongestSuit = %s, want spades", profile.LongestSuit)
	}
}

func TestProfileHand_NoTrump(t *testing.T) {
	profile := ProfileHand(nil, nil)
	if profile.Trumps != 0 || profile.SuitCounts != [4]int{} {
		t.Fatalf("empty profile = %+v", profile)
	}
}
