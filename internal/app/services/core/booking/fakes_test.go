package booking

import (
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/app/services/core/slot"
	"clinic-booking-service/internal/pkg/dto/requests"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testDate = "2025-02-20"

func testNow() time.Time {
	return time.Date(2025, 2, 20, 9, 0, 0, 0, time.UTC)
}

func planned(id int, date string, slotIndex int) models.AppointmentRecord {
	return models.AppointmentRecord{ID: id, DoctorID: 7, Date: date, SlotIndex: slotIndex, Status: models.AppointmentStatusPlanned}
}

type fakeAppointmentGateway struct {
	mu       sync.Mutex
	records  []models.AppointmentRecord
	findErr  error
	findFn   func(ctx context.Context, doctorID int, status models.AppointmentStatus) ([]models.AppointmentRecord, error)
	events   []string
	createFn func(ctx context.Context, request *requests.CreateAppointment) (*models.AppointmentRecord, error)
	cancelFn func(ctx context.Context, appointmentID int) (*models.AppointmentRecord, error)
	mine     []models.AppointmentRecord
}

func newFakeAppointmentGateway(records ...models.AppointmentRecord) *fakeAppointmentGateway {
	return &fakeAppointmentGateway{records: records}
}

func (g *fakeAppointmentGateway) FindAll(ctx context.Context, doctorID int, status models.AppointmentStatus) ([]models.AppointmentRecord, error) {
	g.mu.Lock()
	g.events = append(g.events, "find")
	findFn := g.findFn
	g.mu.Unlock()

	if findFn != nil {
		return findFn(ctx, doctorID, status)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.findErr != nil {
		return nil, g.findErr
	}
	var records []models.AppointmentRecord
	for _, record := range g.records {
		if record.DoctorID != doctorID {
			continue
		}
		if status != "" && record.Status != status {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (g *fakeAppointmentGateway) Create(ctx context.Context, request *requests.CreateAppointment) (*models.AppointmentRecord, error) {
	g.mu.Lock()
	g.events = append(g.events, "create")
	createFn := g.createFn
	g.mu.Unlock()

	if createFn != nil {
		return createFn(ctx, request)
	}
	record := planned(100, request.Date, request.SlotIndex)
	g.add(record)
	return &record, nil
}

func (g *fakeAppointmentGateway) Cancel(ctx context.Context, appointmentID int) (*models.AppointmentRecord, error) {
	g.mu.Lock()
	g.events = append(g.events, "cancel")
	g.mu.Unlock()
	return g.cancelFn(ctx, appointmentID)
}

func (g *fakeAppointmentGateway) FindMine(ctx context.Context) ([]models.AppointmentRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events = append(g.events, "mine")
	return g.mine, nil
}

func (g *fakeAppointmentGateway) add(record models.AppointmentRecord) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.records = append(g.records, record)
}

func (g *fakeAppointmentGateway) setFindErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.findErr = err
}

func (g *fakeAppointmentGateway) Events() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	events := make([]string, len(g.events))
	copy(events, g.events)
	return events
}

func (g *fakeAppointmentGateway) count(event string) int {
	total := 0
	for _, e := range g.Events() {
		if e == event {
			total++
		}
	}
	return total
}

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []models.BookingOutcome
}

func (r *outcomeRecorder) record(ctx context.Context, outcome models.BookingOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *outcomeRecorder) all() []models.BookingOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.BookingOutcome(nil), r.outcomes...)
}

func testGrid(t *testing.T) *slot.Grid {
	grid, err := slot.NewGrid(slot.DefaultScheduleConfig())
	require.NoError(t, err)
	return grid
}

func newTestController(t *testing.T, gateway *fakeAppointmentGateway, recorder *outcomeRecorder, now func() time.Time) *Controller {
	if now == nil {
		now = testNow
	}
	cfg := ControllerConfig{
		Session:       models.Session{UserID: 42, AccessToken: "token"},
		DoctorID:      7,
		DoctorName:    "Петров И. С.",
		Grid:          testGrid(t),
		Gateway:       gateway,
		Log:           zap.NewNop(),
		CommitTimeout: time.Second,
		Now:           now,
	}
	if recorder != nil {
		cfg.OnSettled = recorder.record
	}
	return NewController(cfg)
}

func slotState(view View, slotIndex int) SlotState {
	for _, slotView := range view.Slots {
		if slotView.Slot.Index == slotIndex {
			return slotView.State
		}
	}
	return ""
}
