package slot

import (
	"clinic-booking-service/internal/app/models"
	"time"
)

// Grid is a validated schedule and the slots it produces. It is immutable
// and safe to share.
type Grid struct {
	config ScheduleConfig
	slots  []models.TimeSlot
}

func NewGrid(config ScheduleConfig) (*Grid, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Grid{
		config: config,
		slots:  GenerateTimeSlots(config.StartHour, config.EndHour, config.StepMinutes),
	}, nil
}

func (g *Grid) Config() ScheduleConfig {
	return g.config
}

// Slots returns a copy of the day's slots.
func (g *Grid) Slots() []models.TimeSlot {
	slots := make([]models.TimeSlot, len(g.slots))
	copy(slots, g.slots)
	return slots
}

func (g *Grid) Len() int {
	return len(g.slots)
}

func (g *Grid) Contains(index int) bool {
	return index >= 0 && index < len(g.slots)
}

func (g *Grid) Slot(index int) (models.TimeSlot, bool) {
	if !g.Contains(index) {
		return models.TimeSlot{}, false
	}
	return g.slots[index], true
}

// Label renders the clock time of a slot index. Indices outside the grid are
// still rendered from the configured start and step.
func (g *Grid) Label(index int) string {
	return SlotIndexToClockTime(index, g.config.StartHour, g.config.StepMinutes).String()
}

func (g *Grid) Days(now time.Time) []string {
	return GenerateAvailableDays(now, g.config.WindowDays)
}

func (g *Grid) IsBookableDate(date string, now time.Time) bool {
	for _, day := range g.Days(now) {
		if day == date {
			return true
		}
	}
	return false
}
