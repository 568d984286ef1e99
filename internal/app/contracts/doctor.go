package contracts

import (
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/dto/requests"
	"context"
)

type DoctorGateway interface {
	FindAll(ctx context.Context, filter *requests.DoctorFilter) ([]models.Doctor, error)
}
