package contracts

import (
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/dto/requests"
	"clinic-booking-service/internal/pkg/dto/responses"
	"context"
)

type BookingUsecase interface {
	GetSchedule(ctx context.Context, session models.Session, doctorID int, date string) (*responses.Schedule, error)
	RefreshSchedule(ctx context.Context, session models.Session, doctorID int, date string) (*responses.Schedule, error)
	SelectSlot(ctx context.Context, session models.Session, doctorID int, request *requests.SlotSelection) (*responses.Schedule, error)
	ClearSelection(ctx context.Context, session models.Session, doctorID int, date string) (*responses.Schedule, error)
	ConfirmBooking(ctx context.Context, session models.Session, doctorID int, request *requests.SlotSelection) (*responses.BookingResult, error)
	CancelAppointment(ctx context.Context, session models.Session, appointmentID int) (*responses.Appointment, error)
	ListMyAppointments(ctx context.Context, session models.Session) ([]responses.Appointment, error)
	ListDoctorAppointments(ctx context.Context, session models.Session, doctorID int, status string) ([]responses.Appointment, error)
	ListDoctors(ctx context.Context, filter *requests.DoctorFilter) ([]responses.Doctor, error)
}

// BookingNotifier receives every settled booking attempt.
type BookingNotifier interface {
	NotifyBookingOutcome(ctx context.Context, outcome *models.BookingOutcome) error
}
