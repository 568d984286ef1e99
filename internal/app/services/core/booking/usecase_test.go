package booking

import (
	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/dto/requests"
	"clinic-booking-service/internal/pkg/exceptions"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockLockerService struct {
	mock.Mock
}

func (m *mockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *mockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyBookingOutcome(ctx context.Context, outcome *models.BookingOutcome) error {
	args := m.Called(ctx, outcome)
	return args.Error(0)
}

type fakeDoctorGateway struct {
	mu      sync.Mutex
	doctors []models.Doctor
	calls   int
}

func (g *fakeDoctorGateway) FindAll(ctx context.Context, filter *requests.DoctorFilter) ([]models.Doctor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.doctors, nil
}

type memoryRedisRepository struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryRedisRepository() *memoryRedisRepository {
	return &memoryRedisRepository{values: make(map[string]string)}
}

func (r *memoryRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = string(data)
	return nil
}

func (r *memoryRedisRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[key], nil
}

func (r *memoryRedisRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}

func (r *memoryRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.values[key]; ok {
		return false, nil
	}
	r.values[key] = "locked"
	return true, nil
}

func (r *memoryRedisRepository) DeleteIfEquals(ctx context.Context, key string, value interface{}) (int64, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.values[key]
	if !ok {
		return constvars.RedisDeleteKeyMissing, nil
	}
	if current != string(data) {
		return constvars.RedisDeleteValueChanged, nil
	}
	delete(r.values, key)
	return constvars.RedisDeleteDone, nil
}

type usecaseFixture struct {
	usecase  *bookingUsecase
	gateway  *fakeAppointmentGateway
	doctors  *fakeDoctorGateway
	locker   *mockLockerService
	notifier *mockNotifier
	registry *Registry
}

func newUsecaseFixture(t *testing.T, records ...models.AppointmentRecord) *usecaseFixture {
	internalConfig := &config.InternalConfig{
		Clinic:  config.Clinic{RequestTimeoutInSeconds: 1, DoctorCacheTTLInSeconds: 60},
		Session: config.Session{CommitLockTTLInSeconds: 30},
	}
	grid := testGrid(t)
	gateway := newFakeAppointmentGateway(records...)
	doctors := &fakeDoctorGateway{doctors: []models.Doctor{{ID: 7, FirstName: "Иван", Surname: "Петров", MiddleName: "Сергеевич"}}}
	locker := &mockLockerService{}
	notifier := &mockNotifier{}
	logger := zap.NewNop()

	var registry *Registry
	factory := NewControllerFactory(logger, internalConfig, grid, gateway, notifier, func() *Registry { return registry })
	registry = NewRegistry(func(session models.Session, doctorID int) *Controller {
		controller := factory(session, doctorID)
		controller.now = testNow
		return controller
	}, testNow)

	return &usecaseFixture{
		usecase: &bookingUsecase{
			Log:                logger,
			InternalConfig:     internalConfig,
			Grid:               grid,
			Registry:           registry,
			AppointmentGateway: gateway,
			DoctorGateway:      doctors,
			RedisRepository:    newMemoryRedisRepository(),
			LockerService:      locker,
			Notifier:           notifier,
			Now:                testNow,
		},
		gateway:  gateway,
		doctors:  doctors,
		locker:   locker,
		notifier: notifier,
		registry: registry,
	}
}

func slotIndex(i int) *int {
	return &i
}

func TestBookingUsecaseConfirmBooking(t *testing.T) {
	session := models.Session{UserID: 42}
	lockKey := "booking:commit:user:42"

	t.Run("Books And Notifies", func(t *testing.T) {
		fixture := newUsecaseFixture(t, planned(1, testDate, 0))
		fixture.locker.On("TryLock", mock.Anything, lockKey, 30*time.Second).Return(true, "lock-value", nil)
		fixture.locker.On("Unlock", mock.Anything, lockKey, "lock-value").Return(nil)
		fixture.notifier.On("NotifyBookingOutcome", mock.Anything, mock.MatchedBy(func(outcome *models.BookingOutcome) bool {
			return outcome.Kind == models.BookingOutcomeBooked && outcome.UserID == 42
		})).Return(nil).Once()

		result, err := fixture.usecase.ConfirmBooking(context.Background(), session, 7, &requests.SlotSelection{Date: testDate, SlotIndex: slotIndex(3)})

		require.NoError(t, err)
		assert.Equal(t, string(models.BookingOutcomeBooked), result.Outcome.Kind)
		assert.Equal(t, "Вы записаны к врачу Петров И. С. на 2025-02-20 в 11:00", result.Outcome.Message)
		require.NotNil(t, result.Appointment)
		assert.Equal(t, "11:00", result.Appointment.Time)
		assert.Equal(t, string(SlotStateBooked), result.Schedule.Slots[3].State)
		fixture.locker.AssertExpectations(t)
		fixture.notifier.AssertExpectations(t)
	})

	t.Run("Lock Outlives A Slow Commit", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		fixture.usecase.InternalConfig.Clinic.RequestTimeoutInSeconds = 20
		fixture.locker.On("TryLock", mock.Anything, lockKey, 45*time.Second).Return(true, "lock-value", nil)
		fixture.locker.On("Unlock", mock.Anything, lockKey, "lock-value").Return(nil)
		fixture.notifier.On("NotifyBookingOutcome", mock.Anything, mock.Anything).Return(nil)

		_, err := fixture.usecase.ConfirmBooking(context.Background(), session, 7, &requests.SlotSelection{Date: testDate, SlotIndex: slotIndex(3)})

		require.NoError(t, err)
		fixture.locker.AssertExpectations(t)
	})

	t.Run("Lock Held By Another Request", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		fixture.locker.On("TryLock", mock.Anything, lockKey, 30*time.Second).Return(false, "", nil)

		_, err := fixture.usecase.ConfirmBooking(context.Background(), session, 7, &requests.SlotSelection{Date: testDate, SlotIndex: slotIndex(3)})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrorCodeCommitInFlight, customErr.ErrorCode)
		assert.Zero(t, fixture.gateway.count("create"))
		fixture.locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Lock Failure Falls Back To Controller Debounce", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		fixture.locker.On("TryLock", mock.Anything, lockKey, 30*time.Second).Return(false, "", errors.New("redis down"))
		fixture.notifier.On("NotifyBookingOutcome", mock.Anything, mock.Anything).Return(nil)

		result, err := fixture.usecase.ConfirmBooking(context.Background(), session, 7, &requests.SlotSelection{Date: testDate, SlotIndex: slotIndex(3)})

		require.NoError(t, err)
		assert.Equal(t, string(models.BookingOutcomeBooked), result.Outcome.Kind)
	})

	t.Run("Conflict Maps To Slot Conflict", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		fixture.gateway.createFn = func(ctx context.Context, request *requests.CreateAppointment) (*models.AppointmentRecord, error) {
			return nil, exceptions.ErrClinicConflict(errors.New(constvars.ClinicErrorCodeDoctorSlotBusy), constvars.ResourceAppointment)
		}
		fixture.locker.On("TryLock", mock.Anything, lockKey, 30*time.Second).Return(true, "lock-value", nil)
		fixture.locker.On("Unlock", mock.Anything, lockKey, "lock-value").Return(nil)
		fixture.notifier.On("NotifyBookingOutcome", mock.Anything, mock.MatchedBy(func(outcome *models.BookingOutcome) bool {
			return outcome.Kind == models.BookingOutcomeConflict
		})).Return(nil).Once()

		_, err := fixture.usecase.ConfirmBooking(context.Background(), session, 7, &requests.SlotSelection{Date: testDate, SlotIndex: slotIndex(3)})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		assert.Equal(t, constvars.ErrorCodeSlotConflict, customErr.ErrorCode)
		assert.Equal(t, constvars.ErrClientSlotNoLongerAvailable, customErr.ClientMessage)
		fixture.notifier.AssertExpectations(t)
	})

	t.Run("Own Overlapping Appointment Maps To Overlap", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		fixture.gateway.createFn = func(ctx context.Context, request *requests.CreateAppointment) (*models.AppointmentRecord, error) {
			return nil, exceptions.ErrAppointmentOverlap(errors.New(constvars.ClinicErrorCodeAppointmentAlreadyExists))
		}
		fixture.locker.On("TryLock", mock.Anything, lockKey, 30*time.Second).Return(true, "lock-value", nil)
		fixture.locker.On("Unlock", mock.Anything, lockKey, "lock-value").Return(nil)
		fixture.notifier.On("NotifyBookingOutcome", mock.Anything, mock.MatchedBy(func(outcome *models.BookingOutcome) bool {
			return outcome.Kind == models.BookingOutcomeFailed && outcome.Message == constvars.ErrClientAppointmentOverlap
		})).Return(nil).Once()

		_, err := fixture.usecase.ConfirmBooking(context.Background(), session, 7, &requests.SlotSelection{Date: testDate, SlotIndex: slotIndex(3)})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		assert.Equal(t, constvars.ErrorCodeAppointmentOverlap, customErr.ErrorCode)
		assert.Equal(t, constvars.ErrClientAppointmentOverlap, customErr.ClientMessage)
		assert.Equal(t, 1, fixture.gateway.count("find"), "an overlap does not force a refetch")
		fixture.notifier.AssertExpectations(t)
	})

	t.Run("Generic Failure Maps To Booking Failed", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		fixture.gateway.createFn = func(ctx context.Context, request *requests.CreateAppointment) (*models.AppointmentRecord, error) {
			return nil, exceptions.ErrSendHTTPRequest(errors.New("connection reset"))
		}
		fixture.locker.On("TryLock", mock.Anything, lockKey, 30*time.Second).Return(true, "lock-value", nil)
		fixture.locker.On("Unlock", mock.Anything, lockKey, "lock-value").Return(nil)
		fixture.notifier.On("NotifyBookingOutcome", mock.Anything, mock.Anything).Return(errors.New("queue closed"))

		_, err := fixture.usecase.ConfirmBooking(context.Background(), session, 7, &requests.SlotSelection{Date: testDate, SlotIndex: slotIndex(3)})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrorCodeBookingFailed, customErr.ErrorCode)
		assert.Equal(t, constvars.ErrClientBookingFailed, customErr.ClientMessage)
	})

	t.Run("Booking Marks Other Sessions Stale", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		other := models.Session{UserID: 43}
		otherController := fixture.usecase.controllerFor(context.Background(), other, 7)
		require.False(t, otherController.NeedsLoad())

		fixture.locker.On("TryLock", mock.Anything, lockKey, 30*time.Second).Return(true, "lock-value", nil)
		fixture.locker.On("Unlock", mock.Anything, lockKey, "lock-value").Return(nil)
		fixture.notifier.On("NotifyBookingOutcome", mock.Anything, mock.Anything).Return(nil)

		_, err := fixture.usecase.ConfirmBooking(context.Background(), session, 7, &requests.SlotSelection{Date: testDate, SlotIndex: slotIndex(3)})

		require.NoError(t, err)
		assert.True(t, otherController.NeedsLoad())
	})
}

func TestBookingUsecaseSchedule(t *testing.T) {
	session := models.Session{UserID: 42}

	t.Run("Default Date Is Today", func(t *testing.T) {
		fixture := newUsecaseFixture(t, planned(1, testDate, 5))

		schedule, err := fixture.usecase.GetSchedule(context.Background(), session, 7, "")

		require.NoError(t, err)
		assert.Equal(t, testDate, schedule.Date)
		assert.Len(t, schedule.Days, 30)
		assert.Len(t, schedule.Slots, 24)
		assert.Equal(t, string(SlotStateBooked), schedule.Slots[5].State)
		assert.False(t, schedule.Slots[5].Selectable)
	})

	t.Run("Date Outside Window", func(t *testing.T) {
		fixture := newUsecaseFixture(t)

		_, err := fixture.usecase.GetSchedule(context.Background(), session, 7, "2025-04-01")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("Malformed Date", func(t *testing.T) {
		fixture := newUsecaseFixture(t)

		_, err := fixture.usecase.GetSchedule(context.Background(), session, 7, "10.03.2025")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrorCodeValidation, customErr.ErrorCode)
		assert.Zero(t, fixture.gateway.count("find"))
	})

	t.Run("Loads Once Until Refreshed", func(t *testing.T) {
		fixture := newUsecaseFixture(t)

		_, err := fixture.usecase.GetSchedule(context.Background(), session, 7, testDate)
		require.NoError(t, err)
		_, err = fixture.usecase.GetSchedule(context.Background(), session, 7, testDate)
		require.NoError(t, err)
		assert.Equal(t, 1, fixture.gateway.count("find"))

		_, err = fixture.usecase.RefreshSchedule(context.Background(), session, 7, testDate)
		require.NoError(t, err)
		assert.Equal(t, 2, fixture.gateway.count("find"))
	})

	t.Run("Select Booked Slot Is Validation Error", func(t *testing.T) {
		fixture := newUsecaseFixture(t, planned(1, testDate, 5))

		_, err := fixture.usecase.SelectSlot(context.Background(), session, 7, &requests.SlotSelection{Date: testDate, SlotIndex: slotIndex(5)})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrorCodeSlotNotSelectable, customErr.ErrorCode)
	})

	t.Run("Select And Clear", func(t *testing.T) {
		fixture := newUsecaseFixture(t)

		schedule, err := fixture.usecase.SelectSlot(context.Background(), session, 7, &requests.SlotSelection{Date: testDate, SlotIndex: slotIndex(3)})
		require.NoError(t, err)
		require.NotNil(t, schedule.Selection)
		assert.Equal(t, "11:00", schedule.Selection.Label)

		schedule, err = fixture.usecase.ClearSelection(context.Background(), session, 7, testDate)
		require.NoError(t, err)
		assert.Nil(t, schedule.Selection)
	})
}

func TestBookingUsecaseAppointments(t *testing.T) {
	session := models.Session{UserID: 42}

	t.Run("Cancel Invalidates Doctor Schedules", func(t *testing.T) {
		fixture := newUsecaseFixture(t, planned(1, testDate, 5))
		fixture.gateway.cancelFn = func(ctx context.Context, appointmentID int) (*models.AppointmentRecord, error) {
			record := planned(appointmentID, testDate, 5)
			record.Status = models.AppointmentStatusCancelled
			return &record, nil
		}
		controller := fixture.usecase.controllerFor(context.Background(), session, 7)

		response, err := fixture.usecase.CancelAppointment(context.Background(), session, 1)

		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusCancelled, response.Status)
		assert.Equal(t, "11:40", response.Time)
		assert.True(t, controller.NeedsLoad())
	})

	t.Run("Cancel Of Cancelled Appointment Is Idempotent", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		fixture.gateway.cancelFn = func(ctx context.Context, appointmentID int) (*models.AppointmentRecord, error) {
			return nil, exceptions.ErrAppointmentNotCancellable(errors.New(constvars.ClinicErrorCodeAppointmentCannotBeCanceled))
		}
		cancelled := planned(3, testDate, 2)
		cancelled.Status = models.AppointmentStatusCancelled
		fixture.gateway.mine = []models.AppointmentRecord{cancelled}

		response, err := fixture.usecase.CancelAppointment(context.Background(), session, 3)

		require.NoError(t, err)
		assert.Equal(t, 3, response.ID)
		assert.Equal(t, constvars.AppointmentStatusCancelled, response.Status)
	})

	t.Run("Cancel Of Completed Appointment Fails", func(t *testing.T) {
		fixture := newUsecaseFixture(t)
		fixture.gateway.cancelFn = func(ctx context.Context, appointmentID int) (*models.AppointmentRecord, error) {
			return nil, exceptions.ErrAppointmentNotCancellable(nil)
		}
		completed := planned(4, testDate, 2)
		completed.Status = models.AppointmentStatusCompleted
		fixture.gateway.mine = []models.AppointmentRecord{completed}

		_, err := fixture.usecase.CancelAppointment(context.Background(), session, 4)

		assert.ErrorIs(t, err, exceptions.ErrNotCancellable)
	})

	t.Run("Doctor Appointments Sorted Latest First", func(t *testing.T) {
		fixture := newUsecaseFixture(t,
			planned(1, "2025-02-20", 3),
			planned(2, "2025-02-21", 1),
			planned(3, "2025-02-20", 9),
		)

		appointments, err := fixture.usecase.ListDoctorAppointments(context.Background(), session, 7, "")

		require.NoError(t, err)
		require.Len(t, appointments, 3)
		assert.Equal(t, []int{2, 3, 1}, []int{appointments[0].ID, appointments[1].ID, appointments[2].ID})
		assert.Equal(t, "13:00", appointments[1].Time)
	})

	t.Run("Doctors Are Cached", func(t *testing.T) {
		fixture := newUsecaseFixture(t)

		doctors, err := fixture.usecase.ListDoctors(context.Background(), &requests.DoctorFilter{})
		require.NoError(t, err)
		_, err = fixture.usecase.ListDoctors(context.Background(), &requests.DoctorFilter{})
		require.NoError(t, err)

		require.Len(t, doctors, 1)
		assert.Equal(t, "Петров И. С.", doctors[0].ShortName)
		assert.Equal(t, 1, fixture.doctors.calls)
	})
}
