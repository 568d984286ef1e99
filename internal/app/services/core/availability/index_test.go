package availability

import (
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/app/services/core/slot"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func record(id int, date string, slotIndex int, status models.AppointmentStatus) models.AppointmentRecord {
	return models.AppointmentRecord{ID: id, DoctorID: 7, Date: date, SlotIndex: slotIndex, Status: status}
}

func TestBuildAvailabilityIndex(t *testing.T) {
	t.Run("Empty Input", func(t *testing.T) {
		index := BuildAvailabilityIndex(nil)

		assert.Equal(t, 0, index.Len())
		assert.False(t, index.IsSlotBooked(0, "2025-02-20"))
	})

	t.Run("Only Planned Records Occupy Slots", func(t *testing.T) {
		index := BuildAvailabilityIndex([]models.AppointmentRecord{
			record(1, "2025-02-20", 0, models.AppointmentStatusPlanned),
			record(2, "2025-02-20", 5, models.AppointmentStatusPlanned),
			record(3, "2025-02-20", 6, models.AppointmentStatusCancelled),
			record(4, "2025-02-21", 10, models.AppointmentStatusPlanned),
			record(5, "2025-02-21", 11, models.AppointmentStatusCompleted),
		})

		assert.Equal(t, []int{0, 5}, index.BookedSlots("2025-02-20"))
		assert.Equal(t, []int{10}, index.BookedSlots("2025-02-21"))
		assert.False(t, index.IsSlotBooked(6, "2025-02-20"), "cancelled record must not block")
		assert.False(t, index.IsSlotBooked(11, "2025-02-21"), "completed record must not block")
		assert.Equal(t, []string{"2025-02-20", "2025-02-21"}, index.Dates())
	})

	t.Run("Missing Date Means Nothing Booked", func(t *testing.T) {
		index := BuildAvailabilityIndex([]models.AppointmentRecord{
			record(1, "2025-02-20", 3, models.AppointmentStatusPlanned),
		})

		assert.False(t, index.IsSlotBooked(3, "2025-02-22"))
		assert.Empty(t, index.BookedSlots("2025-02-22"))
	})

	t.Run("Rebuild Is Idempotent", func(t *testing.T) {
		appointments := []models.AppointmentRecord{
			record(1, "2025-02-20", 0, models.AppointmentStatusPlanned),
			record(2, "2025-02-20", 0, models.AppointmentStatusPlanned),
			record(3, "2025-03-01", 23, models.AppointmentStatusPlanned),
		}

		first := BuildAvailabilityIndex(appointments)
		second := BuildAvailabilityIndex(appointments)

		assert.True(t, first.Equal(second))
		assert.Equal(t, 2, first.Len())
	})

	t.Run("Cancel Then Rebuild Frees Slot", func(t *testing.T) {
		planned := []models.AppointmentRecord{record(1, "2025-02-20", 4, models.AppointmentStatusPlanned)}
		assert.True(t, BuildAvailabilityIndex(planned).IsSlotBooked(4, "2025-02-20"))

		cancelled := []models.AppointmentRecord{record(1, "2025-02-20", 4, models.AppointmentStatusCancelled)}
		assert.False(t, BuildAvailabilityIndex(cancelled).IsSlotBooked(4, "2025-02-20"))
	})

	t.Run("Scenario Fresh Load", func(t *testing.T) {
		index := BuildAvailabilityIndex([]models.AppointmentRecord{
			record(1, "2025-02-20", 0, models.AppointmentStatusPlanned),
			record(2, "2025-02-20", 5, models.AppointmentStatusPlanned),
			record(3, "2025-02-20", 10, models.AppointmentStatusPlanned),
			record(4, "2025-02-20", 12, models.AppointmentStatusCancelled),
		})
		now := time.Date(2025, 2, 19, 9, 0, 0, 0, time.UTC)

		open := 0
		for _, s := range slot.GenerateTimeSlots(10, 18, 20) {
			if IsSelectable(index, s, "2025-02-20", now) {
				open++
			}
		}

		assert.Equal(t, []int{0, 5, 10}, index.BookedSlots("2025-02-20"))
		assert.Equal(t, 21, open)
	})
}

func TestIsSlotPassed(t *testing.T) {
	slots := slot.GenerateTimeSlots(10, 18, 20)

	t.Run("Today Before And After Now", func(t *testing.T) {
		now := time.Date(2025, 2, 20, 14, 5, 0, 0, time.UTC)

		assert.True(t, IsSlotPassed(slots[12], "2025-02-20", now), "14:00 is before 14:05")
		assert.False(t, IsSlotPassed(slots[13], "2025-02-20", now), "14:20 is after 14:05")
	})

	t.Run("Slot Starting Now Has Passed", func(t *testing.T) {
		now := time.Date(2025, 2, 20, 14, 20, 30, 0, time.UTC)
		assert.True(t, IsSlotPassed(slots[13], "2025-02-20", now))
	})

	t.Run("Other Dates Never Pass", func(t *testing.T) {
		now := time.Date(2025, 2, 20, 17, 59, 0, 0, time.UTC)

		assert.False(t, IsSlotPassed(slots[0], "2025-02-21", now))
		assert.False(t, IsSlotPassed(slots[0], "2025-02-19", now))
	})

	t.Run("Scenario Late In Day", func(t *testing.T) {
		now := time.Date(2025, 2, 20, 17, 50, 0, 0, time.UTC)
		for _, s := range slots {
			assert.True(t, IsSlotPassed(s, "2025-02-20", now), "slot %s", s.Label)
		}

		tomorrow := BuildAvailabilityIndex(nil)
		for _, s := range slots {
			assert.True(t, IsSelectable(tomorrow, s, "2025-02-21", now))
		}
	})
}
