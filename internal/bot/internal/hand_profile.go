package internal

import "mendikot/internal/domain"

// HandProfile summarizes a hand's suit structure for card scoring.
type HandProfile struct {
	// SuitCounts is indexed by domain.Suit.
	SuitCounts  [4]int
	Trumps      int
	LongestSuit domain.Suit
}

// ProfileHand counts suits and trumps. trump may be nil before it is revealed.
func ProfileHand(hand []domain.Card, trump *domain.Suit) HandProfile {
	var profile HandProfile
	for _, c := range hand {
		profile.SuitCounts[c.Suit]++
		if trump != nil && c.Suit == *trump {
			profile.Trumps++
		}
	}

	best := -1
	for _, s := range domain.Suits {
		if n := profile.SuitCounts[s]; n > best {
			best = n
			profile.LongestSuit = s
		}
	}
	return profile
}
