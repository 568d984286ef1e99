package contracts

import (
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/dto/requests"
	"context"
)

// AppointmentGateway is the clinic backend's appointment API.
type AppointmentGateway interface {
	FindAll(ctx context.Context, doctorID int, status models.AppointmentStatus) ([]models.AppointmentRecord, error)
	Create(ctx context.Context, request *requests.CreateAppointment) (*models.AppointmentRecord, error)
	Cancel(ctx context.Context, appointmentID int) (*models.AppointmentRecord, error)
	FindMine(ctx context.Context) ([]models.AppointmentRecord, error)
}
