package models

import "fmt"

// TimeSlot is one cell of a working day grid. Index is the value the clinic
// backend stores as slot_index.
type TimeSlot struct {
	Index  int    `json:"index"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Label  string `json:"label"`
}

type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns the minutes elapsed since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (s TimeSlot) ClockTime() ClockTime {
	return ClockTime{Hour: s.Hour, Minute: s.Minute}
}
