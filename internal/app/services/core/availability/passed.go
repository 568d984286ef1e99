package availability

import (
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/constvars"
	"time"
)

// IsSlotPassed reports whether a slot on date has already started. Only the
// calendar day of now can contain passed slots.
func IsSlotPassed(slot models.TimeSlot, date string, now time.Time) bool {
	if date != now.Format(constvars.DateLayout) {
		return false
	}
	current := models.ClockTime{Hour: now.Hour(), Minute: now.Minute()}
	return slot.ClockTime().Minutes() <= current.Minutes()
}

// IsSelectable is true when the slot is neither booked nor passed.
func IsSelectable(index Index, slot models.TimeSlot, date string, now time.Time) bool {
	return !index.IsSlotBooked(slot.Index, date) && !IsSlotPassed(slot, date, now)
}
