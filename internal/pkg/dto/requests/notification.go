package requests

import "time"

// BookingNotification is the queue message consumed by the Telegram bot.
type BookingNotification struct {
	UserID        int       `json:"user_id"`
	Kind          string    `json:"kind"`
	Message       string    `json:"message"`
	DoctorID      int       `json:"doctor_id"`
	Date          string    `json:"date"`
	SlotIndex     int       `json:"slot_index"`
	Time          string    `json:"time"`
	AppointmentID *int      `json:"appointment_id,omitempty"`
	SettledAt     time.Time `json:"settled_at"`
}
