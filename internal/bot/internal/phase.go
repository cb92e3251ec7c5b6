package internal

import "mendikot/internal/domain"

// GamePhase describes the current strategic stage of a round.
type GamePhase int

const (
	// PhaseOpening covers the first few tricks, before voids show up.
	PhaseOpening GamePhase = iota
	// PhaseMid is the bulk of the round.
	PhaseMid
	// PhaseEnd indicates the viewer holds endgameCards or fewer.
	PhaseEnd
)

const (
	openingTricks = 3
	endgameCards  = 4
)

// DetectPhase infers the phase from completed tricks and the viewer's hand size.
func DetectPhase(view domain.RoundView) GamePhase {
	if len(view.Hand) <= endgameCards {
		return PhaseEnd
	}
	if len(view.CompletedTricks) < openingTricks {
		return PhaseOpening
	}
	return PhaseMid
}
