package responses

import "time"

type ScheduleSlot struct {
	Index      int    `json:"index"`
	Label      string `json:"label"`
	State      string `json:"state"`
	Selectable bool   `json:"selectable"`
}

type Selection struct {
	Date      string `json:"date"`
	SlotIndex int    `json:"slot_index"`
	Label     string `json:"label"`
}

type Schedule struct {
	DoctorID    int             `json:"doctor_id"`
	Date        string          `json:"date"`
	Days        []string        `json:"days"`
	Slots       []ScheduleSlot  `json:"slots"`
	Selection   *Selection      `json:"selection,omitempty"`
	Committing  bool            `json:"committing"`
	LastOutcome *BookingOutcome `json:"last_outcome,omitempty"`
	LoadedAt    time.Time       `json:"loaded_at"`
}

type BookingOutcome struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Date      string    `json:"date"`
	SlotIndex int       `json:"slot_index"`
	Label     string    `json:"label"`
	SettledAt time.Time `json:"settled_at"`
}

type BookingResult struct {
	Outcome     BookingOutcome `json:"outcome"`
	Appointment *Appointment   `json:"appointment,omitempty"`
	Schedule    *Schedule      `json:"schedule,omitempty"`
}
