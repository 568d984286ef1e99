package slot

import (
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"time"
)

// ScheduleConfig describes the working day of every doctor.
type ScheduleConfig struct {
	StartHour   int
	EndHour     int
	StepMinutes int
	WindowDays  int
}

func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		StartHour:   10,
		EndHour:     18,
		StepMinutes: 20,
		WindowDays:  30,
	}
}

func (c ScheduleConfig) Validate() error {
	if c.StartHour < 0 || c.EndHour > 24 {
		return fmt.Errorf("schedule hours must be within 0..24, got %d..%d", c.StartHour, c.EndHour)
	}
	if c.StartHour >= c.EndHour {
		return fmt.Errorf("schedule start hour %d must be before end hour %d", c.StartHour, c.EndHour)
	}
	if c.StepMinutes <= 0 {
		return errors.New("schedule step must be positive")
	}
	if ((c.EndHour-c.StartHour)*60)%c.StepMinutes != 0 {
		return fmt.Errorf("schedule step %d does not divide the working window", c.StepMinutes)
	}
	if c.WindowDays <= 0 {
		return errors.New("schedule window must be at least one day")
	}
	return nil
}

// GenerateTimeSlots returns the slots of a working day in chronological order
// with indices 0..n-1. It panics on a configuration that Validate rejects.
func GenerateTimeSlots(startHour, endHour, stepMinutes int) []models.TimeSlot {
	config := ScheduleConfig{StartHour: startHour, EndHour: endHour, StepMinutes: stepMinutes, WindowDays: 1}
	if err := config.Validate(); err != nil {
		panic(err)
	}

	count := (endHour - startHour) * 60 / stepMinutes
	slots := make([]models.TimeSlot, 0, count)
	for index := 0; index < count; index++ {
		clock := SlotIndexToClockTime(index, startHour, stepMinutes)
		slots = append(slots, models.TimeSlot{
			Index:  index,
			Hour:   clock.Hour,
			Minute: clock.Minute,
			Label:  clock.String(),
		})
	}
	return slots
}

func SlotIndexToClockTime(index, startHour, stepMinutes int) models.ClockTime {
	total := startHour*60 + index*stepMinutes
	return models.ClockTime{Hour: total / 60, Minute: total % 60}
}

// GenerateAvailableDays lists windowDays consecutive calendar dates starting
// at today's date. Weekends are included.
func GenerateAvailableDays(today time.Time, windowDays int) []string {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	days := make([]string, 0, windowDays)
	for offset := 0; offset < windowDays; offset++ {
		days = append(days, start.AddDate(0, 0, offset).Format(constvars.DateLayout))
	}
	return days
}
