package booking

import (
	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/app/services/core/slot"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/dto/requests"
	"clinic-booking-service/internal/pkg/dto/responses"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

type bookingUsecase struct {
	Log                *zap.Logger
	InternalConfig     *config.InternalConfig
	Grid               *slot.Grid
	Registry           *Registry
	AppointmentGateway contracts.AppointmentGateway
	DoctorGateway      contracts.DoctorGateway
	RedisRepository    contracts.RedisRepository
	LockerService      contracts.LockerService
	Notifier           contracts.BookingNotifier
	Now                func() time.Time
}

func NewBookingUsecase(
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	grid *slot.Grid,
	registry *Registry,
	appointmentGateway contracts.AppointmentGateway,
	doctorGateway contracts.DoctorGateway,
	redisRepository contracts.RedisRepository,
	lockerService contracts.LockerService,
	notifier contracts.BookingNotifier,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		bookingUsecaseInstance = &bookingUsecase{
			Log:                logger,
			InternalConfig:     internalConfig,
			Grid:               grid,
			Registry:           registry,
			AppointmentGateway: appointmentGateway,
			DoctorGateway:      doctorGateway,
			RedisRepository:    redisRepository,
			LockerService:      lockerService,
			Notifier:           notifier,
			Now:                time.Now,
		}
	})
	return bookingUsecaseInstance
}

// NewControllerFactory builds controllers that report settled attempts to
// the notifier and mark other sessions viewing the same doctor as stale.
func NewControllerFactory(
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	grid *slot.Grid,
	appointmentGateway contracts.AppointmentGateway,
	notifier contracts.BookingNotifier,
	registry func() *Registry,
) ControllerFactory {
	commitTimeout := internalConfig.CommitTimeout()

	return func(session models.Session, doctorID int) *Controller {
		return NewController(ControllerConfig{
			Session:       session,
			DoctorID:      doctorID,
			Grid:          grid,
			Gateway:       appointmentGateway,
			Log:           logger,
			CommitTimeout: commitTimeout,
			OnSettled: func(ctx context.Context, outcome models.BookingOutcome) {
				requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
				if outcome.Kind == models.BookingOutcomeBooked {
					registry().InvalidateDoctor(doctorID, outcome.SessionKey)
				}

				err := notifier.NotifyBookingOutcome(ctx, &outcome)
				if err != nil {
					logger.Warn("booking.OnSettled failed to notify outcome",
						zap.String(constvars.LoggingRequestIDKey, requestID),
						zap.String(constvars.LoggingOutcomeKindKey, string(outcome.Kind)),
						zap.Error(err),
					)
				}
			},
		})
	}
}

func (uc *bookingUsecase) GetSchedule(ctx context.Context, session models.Session, doctorID int, date string) (*responses.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.GetSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, date),
	)

	date, err := uc.resolveDate(date)
	if err != nil {
		return nil, err
	}

	controller := uc.controllerFor(ctx, session, doctorID)
	return uc.buildSchedule(controller.View(date)), nil
}

func (uc *bookingUsecase) RefreshSchedule(ctx context.Context, session models.Session, doctorID int, date string) (*responses.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.RefreshSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, doctorID),
	)

	date, err := uc.resolveDate(date)
	if err != nil {
		return nil, err
	}

	uc.Registry.InvalidateSession(session.Key())
	controller := uc.controllerFor(ctx, session, doctorID)

	return uc.buildSchedule(controller.View(date)), nil
}

func (uc *bookingUsecase) SelectSlot(ctx context.Context, session models.Session, doctorID int, request *requests.SlotSelection) (*responses.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.SelectSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.Int(constvars.LoggingSlotIndexKey, *request.SlotIndex),
	)

	controller := uc.controllerFor(ctx, session, doctorID)
	err := controller.Select(request.Date, *request.SlotIndex)
	if err != nil {
		uc.Log.Info("bookingUsecase.SelectSlot rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, mapBookingError(err)
	}

	return uc.buildSchedule(controller.View(request.Date)), nil
}

func (uc *bookingUsecase) ClearSelection(ctx context.Context, session models.Session, doctorID int, date string) (*responses.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.ClearSelection called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, doctorID),
	)

	date, err := uc.resolveDate(date)
	if err != nil {
		return nil, err
	}

	controller := uc.controllerFor(ctx, session, doctorID)
	controller.ClearSelection()
	return uc.buildSchedule(controller.View(date)), nil
}

func (uc *bookingUsecase) ConfirmBooking(ctx context.Context, session models.Session, doctorID int, request *requests.SlotSelection) (*responses.BookingResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.ConfirmBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.Int(constvars.LoggingSlotIndexKey, *request.SlotIndex),
	)

	lockKey := fmt.Sprintf(constvars.RedisKeyBookingCommitLockFormat, session.Key())
	lockTTL := uc.InternalConfig.CommitLockTTL()
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		uc.Log.Warn("bookingUsecase.ConfirmBooking commit lock unavailable, relying on controller debounce",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	} else if !acquired {
		return nil, exceptions.ErrCommitInFlight(nil)
	} else {
		defer func() {
			unlockErr := uc.LockerService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue)
			if unlockErr != nil {
				uc.Log.Warn("bookingUsecase.ConfirmBooking failed to release commit lock",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(unlockErr),
				)
			}
		}()
	}

	controller := uc.controllerFor(ctx, session, doctorID)
	outcome, err := controller.ConfirmBooking(ctx, doctorID, request.Date, *request.SlotIndex)
	if err != nil {
		uc.Log.Error("bookingUsecase.ConfirmBooking failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, mapBookingError(err)
	}

	result := &responses.BookingResult{
		Outcome:  uc.buildOutcome(outcome),
		Schedule: uc.buildSchedule(controller.View(request.Date)),
	}
	if outcome.Appointment != nil {
		appointment := uc.buildAppointment(*outcome.Appointment)
		result.Appointment = &appointment
	}

	uc.Log.Info("bookingUsecase.ConfirmBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOutcomeKindKey, string(outcome.Kind)),
	)
	return result, nil
}

// CancelAppointment cancels one of the caller's appointments. Cancelling an
// appointment that is already cancelled succeeds with the current record.
func (uc *bookingUsecase) CancelAppointment(ctx context.Context, session models.Session, appointmentID int) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	record, err := uc.AppointmentGateway.Cancel(ctx, appointmentID)
	if err != nil {
		if !errors.Is(err, exceptions.ErrNotCancellable) {
			return nil, err
		}

		record, err = uc.findCancelled(ctx, appointmentID, err)
		if err != nil {
			return nil, err
		}
		uc.Log.Info("bookingUsecase.CancelAppointment already cancelled",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingAppointmentIDKey, appointmentID),
		)
	}

	uc.Registry.InvalidateDoctor(record.DoctorID, "")

	response := uc.buildAppointment(*record)
	uc.Log.Info("bookingUsecase.CancelAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return &response, nil
}

func (uc *bookingUsecase) findCancelled(ctx context.Context, appointmentID int, cancelErr error) (*models.AppointmentRecord, error) {
	records, err := uc.AppointmentGateway.FindMine(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.ID == appointmentID && record.Status == models.AppointmentStatusCancelled {
			return &record, nil
		}
	}
	return nil, cancelErr
}

func (uc *bookingUsecase) ListMyAppointments(ctx context.Context, session models.Session) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.ListMyAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("user_id", session.UserID),
	)

	records, err := uc.AppointmentGateway.FindMine(ctx)
	if err != nil {
		return nil, err
	}
	return uc.buildAppointments(records), nil
}

// ListDoctorAppointments lists a doctor's appointments, latest date and slot
// first. An empty status lists every status.
func (uc *bookingUsecase) ListDoctorAppointments(ctx context.Context, session models.Session, doctorID int, status string) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.ListDoctorAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.QueryParamStatus, status),
	)

	records, err := uc.AppointmentGateway.FindAll(ctx, doctorID, models.AppointmentStatus(status))
	if err != nil {
		return nil, err
	}
	return uc.buildAppointments(records), nil
}

// ListDoctors serves the doctor directory from redis when cached.
func (uc *bookingUsecase) ListDoctors(ctx context.Context, filter *requests.DoctorFilter) ([]responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.ListDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter),
	)

	doctors, err := uc.findDoctors(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := make([]responses.Doctor, 0, len(doctors))
	for _, doctor := range doctors {
		response = append(response, responses.Doctor{
			ID:             doctor.ID,
			FirstName:      doctor.FirstName,
			Surname:        doctor.Surname,
			MiddleName:     doctor.MiddleName,
			ShortName:      doctor.ShortName(),
			Specialization: doctor.Specialization,
			Description:    doctor.Description,
		})
	}
	return response, nil
}

func (uc *bookingUsecase) findDoctors(ctx context.Context, filter *requests.DoctorFilter) ([]models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	cacheKey := fmt.Sprintf(constvars.RedisKeyDoctorDirectoryFormat, filter.CacheKey())

	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err != nil {
		uc.Log.Warn("bookingUsecase.findDoctors cache read failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	} else if cached != "" {
		var doctors []models.Doctor
		if err := json.Unmarshal([]byte(cached), &doctors); err == nil {
			return doctors, nil
		}
	}

	doctors, err := uc.DoctorGateway.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(uc.InternalConfig.Clinic.DoctorCacheTTLInSeconds) * time.Second
	if err := uc.RedisRepository.Set(ctx, cacheKey, doctors, ttl); err != nil {
		uc.Log.Warn("bookingUsecase.findDoctors cache write failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	return doctors, nil
}

func (uc *bookingUsecase) controllerFor(ctx context.Context, session models.Session, doctorID int) *Controller {
	controller, created := uc.Registry.Acquire(session, doctorID)
	if created {
		uc.resolveDoctorName(ctx, controller)
	}
	if controller.NeedsLoad() {
		_ = controller.Load(ctx)
	}
	return controller
}

func (uc *bookingUsecase) resolveDoctorName(ctx context.Context, controller *Controller) {
	doctors, err := uc.findDoctors(ctx, &requests.DoctorFilter{})
	if err != nil {
		return
	}
	for _, doctor := range doctors {
		if doctor.ID == controller.DoctorID() {
			controller.SetDoctorName(doctor.ShortName())
			return
		}
	}
}

func (uc *bookingUsecase) resolveDate(date string) (string, error) {
	now := uc.Now()
	if date == "" {
		return now.Format(constvars.DateLayout), nil
	}
	if _, err := utils.ParseDate(date); err != nil {
		return "", exceptions.ErrCannotParseDate(err)
	}
	if !uc.Grid.IsBookableDate(date, now) {
		return "", exceptions.ErrDateOutOfWindow(nil)
	}
	return date, nil
}

func (uc *bookingUsecase) buildSchedule(view View) *responses.Schedule {
	schedule := &responses.Schedule{
		DoctorID:   view.DoctorID,
		Date:       view.Date,
		Days:       view.Days,
		Slots:      make([]responses.ScheduleSlot, 0, len(view.Slots)),
		Committing: view.Committing,
		LoadedAt:   view.LoadedAt,
	}
	for _, slotView := range view.Slots {
		schedule.Slots = append(schedule.Slots, responses.ScheduleSlot{
			Index:      slotView.Slot.Index,
			Label:      slotView.Slot.Label,
			State:      string(slotView.State),
			Selectable: slotView.Selectable,
		})
	}
	if view.Selection != nil {
		schedule.Selection = &responses.Selection{
			Date:      view.Selection.Date,
			SlotIndex: view.Selection.SlotIndex,
			Label:     uc.Grid.Label(view.Selection.SlotIndex),
		}
	}
	if view.LastOutcome != nil {
		outcome := uc.buildOutcome(view.LastOutcome)
		schedule.LastOutcome = &outcome
	}
	return schedule
}

func (uc *bookingUsecase) buildOutcome(outcome *models.BookingOutcome) responses.BookingOutcome {
	return responses.BookingOutcome{
		Kind:      string(outcome.Kind),
		Message:   outcome.Message,
		Date:      outcome.Attempt.Date,
		SlotIndex: outcome.Attempt.SlotIndex,
		Label:     outcome.TimeLabel,
		SettledAt: outcome.SettledAt,
	}
}

func (uc *bookingUsecase) buildAppointment(record models.AppointmentRecord) responses.Appointment {
	return responses.Appointment{
		ID:        record.ID,
		DoctorID:  record.DoctorID,
		UserID:    record.PatientID,
		Date:      record.Date,
		SlotIndex: record.SlotIndex,
		Time:      uc.Grid.Label(record.SlotIndex),
		Status:    string(record.Status),
	}
}

func (uc *bookingUsecase) buildAppointments(records []models.AppointmentRecord) []responses.Appointment {
	sorted := make([]models.AppointmentRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].SlotIndex > sorted[j].SlotIndex
	})

	response := make([]responses.Appointment, 0, len(sorted))
	for _, record := range sorted {
		response = append(response, uc.buildAppointment(record))
	}
	return response
}

func mapBookingError(err error) error {
	var customErr *exceptions.CustomError
	switch {
	case errors.Is(err, ErrSlotNotSelectable):
		return exceptions.ErrSlotNotSelectable(err)
	case errors.Is(err, ErrDateOutOfWindow):
		return exceptions.ErrDateOutOfWindow(err)
	case errors.Is(err, ErrCommitInFlight):
		return exceptions.ErrCommitInFlight(err)
	case errors.Is(err, ErrNoSelection):
		return exceptions.ErrNoSelection(err)
	case errors.Is(err, ErrDoctorMismatch):
		return exceptions.ErrDoctorMismatch(err)
	case errors.Is(err, exceptions.ErrConflict) && errors.As(err, &customErr):
		return customErr
	case errors.Is(err, exceptions.ErrConflict):
		return exceptions.ErrClinicConflict(err, constvars.ResourceAppointment)
	case errors.Is(err, exceptions.ErrOverlap) && errors.As(err, &customErr):
		return customErr
	case errors.Is(err, exceptions.ErrOverlap):
		return exceptions.ErrAppointmentOverlap(err)
	default:
		return exceptions.ErrBookingFailed(err)
	}
}
