package models

import "time"

type BookingPhase string

const (
	BookingPhaseIdle       BookingPhase = "idle"
	BookingPhaseSelected   BookingPhase = "selected"
	BookingPhaseCommitting BookingPhase = "committing"
	BookingPhaseCommitted  BookingPhase = "committed"
	BookingPhaseFailed     BookingPhase = "failed"
)

// BookingAttempt is the ephemeral intent to book one slot.
type BookingAttempt struct {
	DoctorID  int          `json:"doctor_id"`
	Date      string       `json:"date"`
	SlotIndex int          `json:"slot_index"`
	Phase     BookingPhase `json:"phase"`
}

type BookingOutcomeKind string

const (
	BookingOutcomeBooked   BookingOutcomeKind = "booked"
	BookingOutcomeConflict BookingOutcomeKind = "conflict"
	BookingOutcomeFailed   BookingOutcomeKind = "failed"
)

// BookingOutcome is reported once per attempt when it reaches Committed or Failed.
type BookingOutcome struct {
	SessionKey  string             `json:"session_key"`
	UserID      int                `json:"user_id"`
	Attempt     BookingAttempt     `json:"attempt"`
	Kind        BookingOutcomeKind `json:"kind"`
	Message     string             `json:"message"`
	TimeLabel   string             `json:"time_label"`
	Appointment *AppointmentRecord `json:"appointment,omitempty"`
	SettledAt   time.Time          `json:"settled_at"`
}
