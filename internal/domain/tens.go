package domain

type potSettlement struct {
	// confirmed is the number of tens moved from the pot into a team tally.
	confirmed int
}

// settlePot runs the tens confirmation protocol for a trick won by team that
// contained tens tens.
//
// A pending pot is confirmed when its owner wins again; a trick won by the
// other side leaves it untouched. Tens in the trick itself are then added to
// the pot and the pot changes hands to the trick winner, merging any older
// claim of the other team into the new pot. On the last trick whatever is left
// in the pot goes to the last trick's winner.
func (s *RoundState) settlePot(team Team, tens int, final bool) potSettlement {
	var out potSettlement

	if s.PotTens > 0 && s.PotTeam == team {
		s.addTens(team, s.PotTens)
		out.confirmed += s.PotTens
		s.PotTens = 0
		s.PotTeam = TeamNone
	}

	if tens > 0 {
		s.PotTens += tens
		s.PotTeam = team
	}

	if final && s.PotTens > 0 {
		s.addTens(team, s.PotTens)
		out.confirmed += s.PotTens
		s.PotTens = 0
		s.PotTeam = TeamNone
	}
	return out
}
