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
	"strconv"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	appointmentGatewayInstance contracts.AppointmentGateway
	onceAppointmentGateway     sync.Once
)

type appointmentGateway struct {
	Client *Client
	Log    *zap.Logger
}

func NewAppointmentGateway(client *Client, logger *zap.Logger) contracts.AppointmentGateway {
	onceAppointmentGateway.Do(func() {
		appointmentGatewayInstance = &appointmentGateway{
			Client: client,
			Log:    logger,
		}
	})
	return appointmentGatewayInstance
}

// appointmentPayload mirrors the backend record. Pointers tell a missing
// field apart from a zero value.
type appointmentPayload struct {
	ID        *int    `json:"id" validate:"required"`
	DoctorID  *int    `json:"doctor_id" validate:"required"`
	UserID    *int    `json:"user_id"`
	Date      *string `json:"date" validate:"required,datetime=2006-01-02"`
	SlotIndex *int    `json:"slot_index" validate:"required,min=0"`
	Status    *string `json:"status" validate:"required,oneof=Запланировано Завершено Отменено"`
}

func (p appointmentPayload) toModel() models.AppointmentRecord {
	return models.AppointmentRecord{
		ID:        *p.ID,
		DoctorID:  *p.DoctorID,
		PatientID: p.UserID,
		Date:      *p.Date,
		SlotIndex: *p.SlotIndex,
		Status:    models.AppointmentStatus(*p.Status),
	}
}

func decodeAppointment(body []byte, resource string) (*models.AppointmentRecord, error) {
	var payload appointmentPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, exceptions.ErrClinicInvalidPayload(err, resource)
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return nil, exceptions.ErrClinicInvalidPayload(err, resource)
	}
	record := payload.toModel()
	return &record, nil
}

// decodeAppointments rejects the whole list when any element is malformed.
func decodeAppointments(body []byte, resource string) ([]models.AppointmentRecord, error) {
	var payloads []appointmentPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, exceptions.ErrClinicInvalidPayload(err, resource)
	}

	records := make([]models.AppointmentRecord, 0, len(payloads))
	for i, payload := range payloads {
		if err := utils.ValidateStruct(payload); err != nil {
			return nil, exceptions.ErrClinicInvalidPayload(fmt.Errorf("element %d: %w", i, err), resource)
		}
		records = append(records, payload.toModel())
	}
	return records, nil
}

func (g *appointmentGateway) FindAll(ctx context.Context, doctorID int, status models.AppointmentStatus) ([]models.AppointmentRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	g.Log.Info("appointmentGateway.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.QueryParamStatus, string(status)),
	)

	query := url.Values{}
	query.Set(constvars.QueryParamDoctorID, strconv.Itoa(doctorID))
	if status != "" {
		query.Set(constvars.QueryParamStatus, string(status))
	}

	body, err := g.Client.do(ctx, clinicRequest{
		method:   constvars.MethodGet,
		resource: constvars.ResourceAppointment,
		path:     constvars.ResourceAppointment,
		query:    query,
	})
	if err != nil {
		return nil, err
	}

	records, err := decodeAppointments(body, constvars.ResourceAppointment)
	if err != nil {
		g.Log.Error("appointmentGateway.FindAll error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	g.Log.Info("appointmentGateway.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, len(records)),
	)
	return records, nil
}

func (g *appointmentGateway) Create(ctx context.Context, request *requests.CreateAppointment) (*models.AppointmentRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	g.Log.Info("appointmentGateway.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.Int(constvars.LoggingSlotIndexKey, request.SlotIndex),
	)

	body, err := g.Client.do(ctx, clinicRequest{
		method:   constvars.MethodPost,
		resource: constvars.ResourceAppointment,
		path:     constvars.ResourceAppointment,
		body:     request,
	})
	if err != nil {
		return nil, err
	}

	record, err := decodeAppointment(body, constvars.ResourceAppointment)
	if err != nil {
		g.Log.Error("appointmentGateway.Create error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	g.Log.Info("appointmentGateway.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentIDKey, record.ID),
	)
	return record, nil
}

func (g *appointmentGateway) Cancel(ctx context.Context, appointmentID int) (*models.AppointmentRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	g.Log.Info("appointmentGateway.Cancel called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	body, err := g.Client.do(ctx, clinicRequest{
		method:   constvars.MethodPatch,
		resource: constvars.ResourceProfileAppointment,
		path:     fmt.Sprintf("%s/%d%s", constvars.ResourceProfileAppointment, appointmentID, constvars.ResourceCancelSuffix),
	})
	if err != nil {
		return nil, err
	}

	record, err := decodeAppointment(body, constvars.ResourceProfileAppointment)
	if err != nil {
		g.Log.Error("appointmentGateway.Cancel error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	g.Log.Info("appointmentGateway.Cancel succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentIDKey, record.ID),
	)
	return record, nil
}

func (g *appointmentGateway) FindMine(ctx context.Context) ([]models.AppointmentRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	g.Log.Info("appointmentGateway.FindMine called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	body, err := g.Client.do(ctx, clinicRequest{
		method:   constvars.MethodGet,
		resource: constvars.ResourceProfileAppointment,
		path:     constvars.ResourceProfileAppointment,
	})
	if err != nil {
		return nil, err
	}

	records, err := decodeAppointments(body, constvars.ResourceProfileAppointment)
	if err != nil {
		g.Log.Error("appointmentGateway.FindMine error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	g.Log.Info("appointmentGateway.FindMine succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, len(records)),
	)
	return records, nil
}
