package domain

import "errors"

var (
	ErrWrongPhase     = errors.New("round is not accepting plays")
	ErrUnknownSeat    = errors.New("seat out of range")
	ErrNotYourTurn    = errors.New("not this seat's turn")
	ErrCardNotInHand  = errors.New("card not in hand")
	ErrMustFollowSuit = errors.New("must follow the lead suit")
)
