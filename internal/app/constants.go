package app

import (
	"time"

	"mendikot/internal/domain"
)

// RequiredPlayers is the number of occupied seats a round needs. Mendikot is
// strictly a four-hand partnership game.
const RequiredPlayers = domain.SeatCount

// AdvisorTokenTTL bounds how long a card advisor bearer token stays valid.
const AdvisorTokenTTL = 5 * time.Minute
