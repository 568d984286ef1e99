package models

import (
	"clinic-booking-service/internal/pkg/constvars"
	"fmt"
)

type AppointmentStatus string

const (
	AppointmentStatusPlanned   AppointmentStatus = constvars.AppointmentStatusPlanned
	AppointmentStatusCompleted AppointmentStatus = constvars.AppointmentStatusCompleted
	AppointmentStatusCancelled AppointmentStatus = constvars.AppointmentStatusCancelled
)

func ParseAppointmentStatus(value string) (AppointmentStatus, error) {
	switch status := AppointmentStatus(value); status {
	case AppointmentStatusPlanned, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("unknown appointment status %q", value)
	}
}

// AppointmentRecord is a read-only copy of an appointment held by the clinic backend.
type AppointmentRecord struct {
	ID        int               `json:"id"`
	DoctorID  int               `json:"doctor_id"`
	PatientID *int              `json:"user_id,omitempty"`
	Date      string            `json:"date"`
	SlotIndex int               `json:"slot_index"`
	Status    AppointmentStatus `json:"status"`
}

func (a AppointmentRecord) IsPlanned() bool {
	return a.Status == AppointmentStatusPlanned
}
