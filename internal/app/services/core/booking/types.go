package booking

import (
	"clinic-booking-service/internal/app/models"
	"time"
)

type SlotState string

const (
	SlotStateOpen     SlotState = "open"
	SlotStateBooked   SlotState = "booked"
	SlotStatePassed   SlotState = "passed"
	SlotStatePending  SlotState = "pending"
	SlotStateSelected SlotState = "selected"
)

type SlotView struct {
	Slot       models.TimeSlot
	State      SlotState
	Selectable bool
}

// View is a snapshot of one day of a controller's grid.
type View struct {
	DoctorID    int
	Date        string
	Days        []string
	Slots       []SlotView
	Selection   *models.BookingAttempt
	Committing  bool
	LastOutcome *models.BookingOutcome
	LoadedAt    time.Time
}

type slotKey struct {
	date      string
	slotIndex int
}
