package availability

import (
	"clinic-booking-service/internal/app/models"
	"sort"
)

// Index maps a calendar date to the slot indices held by Planned appointments.
// It is built in one pass and never mutated afterwards.
type Index struct {
	booked map[string]map[int]struct{}
}

// BuildAvailabilityIndex folds a doctor's appointment list into an Index.
// Completed and Cancelled records do not occupy a slot.
func BuildAvailabilityIndex(appointments []models.AppointmentRecord) Index {
	booked := make(map[string]map[int]struct{})
	for _, appointment := range appointments {
		if !appointment.IsPlanned() {
			continue
		}
		slots, ok := booked[appointment.Date]
		if !ok {
			slots = make(map[int]struct{})
			booked[appointment.Date] = slots
		}
		slots[appointment.SlotIndex] = struct{}{}
	}
	return Index{booked: booked}
}

func (i Index) IsSlotBooked(slotIndex int, date string) bool {
	_, ok := i.booked[date][slotIndex]
	return ok
}

// BookedSlots returns the booked indices of a date in ascending order.
func (i Index) BookedSlots(date string) []int {
	slots := make([]int, 0, len(i.booked[date]))
	for slotIndex := range i.booked[date] {
		slots = append(slots, slotIndex)
	}
	sort.Ints(slots)
	return slots
}

func (i Index) Dates() []string {
	dates := make([]string, 0, len(i.booked))
	for date := range i.booked {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Len counts booked slots across all dates.
func (i Index) Len() int {
	total := 0
	for _, slots := range i.booked {
		total += len(slots)
	}
	return total
}

func (i Index) Equal(other Index) bool {
	if len(i.booked) != len(other.booked) {
		return false
	}
	for date, slots := range i.booked {
		otherSlots, ok := other.booked[date]
		if !ok || len(otherSlots) != len(slots) {
			return false
		}
		for slotIndex := range slots {
			if _, ok := otherSlots[slotIndex]; !ok {
				return false
			}
		}
	}
	return true
}
