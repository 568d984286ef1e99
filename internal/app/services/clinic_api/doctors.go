package clinic_api

import (
	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/dto/requests"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/utils"
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	doctorGatewayInstance contracts.DoctorGateway
	onceDoctorGateway     sync.Once
)

type doctorGateway struct {
	Client *Client
	Log    *zap.Logger
}

func NewDoctorGateway(client *Client, logger *zap.Logger) contracts.DoctorGateway {
	onceDoctorGateway.Do(func() {
		doctorGatewayInstance = &doctorGateway{
			Client: client,
			Log:    logger,
		}
	})
	return doctorGatewayInstance
}

type doctorPayload struct {
	ID             *int    `json:"id" validate:"required"`
	FirstName      string  `json:"first_name"`
	Surname        *string `json:"surname" validate:"required"`
	MiddleName     string  `json:"middle_name"`
	Specialization string  `json:"specialization"`
	Description    string  `json:"description"`
}

func (g *doctorGateway) FindAll(ctx context.Context, filter *requests.DoctorFilter) ([]models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	g.Log.Info("doctorGateway.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter),
	)

	query := url.Values{}
	for key, value := range map[string]string{
		constvars.QueryParamFirstName:      filter.FirstName,
		constvars.QueryParamSurname:        filter.Surname,
		constvars.QueryParamMiddleName:     filter.MiddleName,
		constvars.QueryParamSpecialization: filter.Specialization,
	} {
		if value != "" {
			query.Set(key, value)
		}
	}

	body, err := g.Client.do(ctx, clinicRequest{
		method:   constvars.MethodGet,
		resource: constvars.ResourceDoctor,
		path:     constvars.ResourceDoctor,
		query:    query,
	})
	if err != nil {
		return nil, err
	}

	var payloads []doctorPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		g.Log.Error("doctorGateway.FindAll error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrClinicInvalidPayload(err, constvars.ResourceDoctor)
	}

	doctors := make([]models.Doctor, 0, len(payloads))
	for i, payload := range payloads {
		if err := utils.ValidateStruct(payload); err != nil {
			invalidErr := exceptions.ErrClinicInvalidPayload(fmt.Errorf("element %d: %w", i, err), constvars.ResourceDoctor)
			g.Log.Error("doctorGateway.FindAll invalid doctor",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(invalidErr),
			)
			return nil, invalidErr
		}
		doctors = append(doctors, models.Doctor{
			ID:             *payload.ID,
			FirstName:      payload.FirstName,
			Surname:        *payload.Surname,
			MiddleName:     payload.MiddleName,
			Specialization: payload.Specialization,
			Description:    payload.Description,
		})
	}

	g.Log.Info("doctorGateway.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(doctors)),
	)
	return doctors, nil
}
