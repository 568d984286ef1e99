package booking

import "errors"

var (
	ErrSlotNotSelectable = errors.New("slot is booked, passed or outside the grid")
	ErrDateOutOfWindow   = errors.New("date outside the bookable window")
	ErrCommitInFlight    = errors.New("booking commit already in flight")
	ErrNoSelection       = errors.New("no slot selected")
	ErrDoctorMismatch    = errors.New("controller belongs to another doctor")
)
