package booking

import (
	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/app/services/core/availability"
	"clinic-booking-service/internal/app/services/core/slot"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/dto/requests"
	"clinic-booking-service/internal/pkg/exceptions"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type ControllerConfig struct {
	Session       models.Session
	DoctorID      int
	DoctorName    string
	Grid          *slot.Grid
	Gateway       contracts.AppointmentGateway
	Log           *zap.Logger
	CommitTimeout time.Duration
	// Now is injectable for tests. Defaults to time.Now.
	Now func() time.Time
	// OnSettled is called once per attempt in the Committed or Failed phase.
	OnSettled func(ctx context.Context, outcome models.BookingOutcome)
}

// Controller owns the booking flow of one session for one doctor:
// Idle -> Selected -> Committing -> Committed | Failed -> Idle.
// The mutex is never held across a gateway call.
type Controller struct {
	mu sync.Mutex

	session       models.Session
	doctorID      int
	doctorName    string
	grid          *slot.Grid
	gateway       contracts.AppointmentGateway
	log           *zap.Logger
	commitTimeout time.Duration
	now           func() time.Time
	onSettled     func(ctx context.Context, outcome models.BookingOutcome)

	index availability.Index
	// confirmed holds slots this controller booked, stamped with the loadSeq
	// current at confirmation. Only a load issued after that stamp may drop them.
	confirmed map[slotKey]uint64
	selection *models.BookingAttempt
	inflight  *models.BookingAttempt
	phase     models.BookingPhase

	loaded      bool
	stale       bool
	loadSeq     uint64
	appliedSeq  uint64
	loadedAt    time.Time
	lastUsed    time.Time
	lastOutcome *models.BookingOutcome
}

func NewController(cfg ControllerConfig) *Controller {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	commitTimeout := cfg.CommitTimeout
	if commitTimeout <= 0 {
		commitTimeout = 20 * time.Second
	}

	return &Controller{
		session:       cfg.Session,
		doctorID:      cfg.DoctorID,
		doctorName:    cfg.DoctorName,
		grid:          cfg.Grid,
		gateway:       cfg.Gateway,
		log:           log,
		commitTimeout: commitTimeout,
		now:           now,
		onSettled:     cfg.OnSettled,
		index:         availability.BuildAvailabilityIndex(nil),
		confirmed:     make(map[slotKey]uint64),
		phase:         models.BookingPhaseIdle,
		lastUsed:      now(),
	}
}

func (c *Controller) DoctorID() int {
	return c.doctorID
}

func (c *Controller) SetDoctorName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doctorName = name
}

// Load fetches the doctor's planned appointments and rebuilds the index.
// A failed fetch leaves an empty index so the grid stays usable.
func (c *Controller) Load(ctx context.Context) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	records, err := c.gateway.FindAll(ctx, c.doctorID, models.AppointmentStatusPlanned)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.appliedSeq {
		c.log.Info("booking.Controller.Load discarded out of order result",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingDoctorIDKey, c.doctorID),
		)
		return err
	}
	c.appliedSeq = seq
	c.loaded = true
	c.loadedAt = c.now()

	if err != nil {
		c.log.Warn("booking.Controller.Load failed, showing empty availability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingDoctorIDKey, c.doctorID),
			zap.Error(err),
		)
		c.index = availability.BuildAvailabilityIndex(nil)
		c.stale = true
		return err
	}

	c.index = availability.BuildAvailabilityIndex(records)
	for key, confirmedSeq := range c.confirmed {
		if confirmedSeq < seq {
			delete(c.confirmed, key)
		}
	}
	c.stale = false

	c.log.Info("booking.Controller.Load succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, c.doctorID),
		zap.Int(constvars.LoggingAppointmentCountKey, len(records)),
	)
	return nil
}

// NeedsLoad is true before the first load and after the controller was marked stale.
func (c *Controller) NeedsLoad() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.loaded || c.stale
}

func (c *Controller) MarkStale() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale = true
}

func (c *Controller) Select(date string, slotIndex int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastUsed = c.now()

	if c.busyLocked() {
		return ErrCommitInFlight
	}
	if err := c.checkSelectableLocked(date, slotIndex); err != nil {
		return err
	}

	c.selection = &models.BookingAttempt{
		DoctorID:  c.doctorID,
		Date:      date,
		SlotIndex: slotIndex,
		Phase:     models.BookingPhaseSelected,
	}
	c.phase = models.BookingPhaseSelected
	return nil
}

// ClearSelection returns to Idle. It has no effect while a commit is running.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastUsed = c.now()

	if c.busyLocked() {
		return
	}
	c.selection = nil
	c.phase = models.BookingPhaseIdle
}

// ConfirmBooking selects the given slot unless it is already the selection,
// then commits it.
func (c *Controller) ConfirmBooking(ctx context.Context, doctorID int, date string, slotIndex int) (*models.BookingOutcome, error) {
	if doctorID != c.doctorID {
		return nil, ErrDoctorMismatch
	}

	c.mu.Lock()
	alreadySelected := c.selection != nil && c.selection.Date == date && c.selection.SlotIndex == slotIndex
	c.mu.Unlock()

	if !alreadySelected {
		if err := c.Select(date, slotIndex); err != nil {
			return nil, err
		}
	}
	return c.Confirm(ctx)
}

// Confirm commits the current selection. A second call while a commit is in
// flight returns ErrCommitInFlight without reaching the gateway. The commit
// runs detached from ctx cancellation so it always settles.
func (c *Controller) Confirm(ctx context.Context) (*models.BookingOutcome, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	c.mu.Lock()
	c.lastUsed = c.now()
	if c.busyLocked() {
		c.mu.Unlock()
		c.log.Info("booking.Controller.Confirm ignored, commit in flight",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingDoctorIDKey, c.doctorID),
		)
		return nil, ErrCommitInFlight
	}
	if c.selection == nil {
		c.mu.Unlock()
		return nil, ErrNoSelection
	}

	attempt := *c.selection
	if err := c.checkSelectableLocked(attempt.Date, attempt.SlotIndex); err != nil {
		c.selection = nil
		c.phase = models.BookingPhaseIdle
		c.mu.Unlock()
		return nil, err
	}

	attempt.Phase = models.BookingPhaseCommitting
	c.selection = nil
	c.inflight = &attempt
	c.phase = models.BookingPhaseCommitting
	c.mu.Unlock()

	c.log.Info("booking.Controller.Confirm committing",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, attempt.DoctorID),
		zap.String(constvars.LoggingDateKey, attempt.Date),
		zap.Int(constvars.LoggingSlotIndexKey, attempt.SlotIndex),
	)

	commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.commitTimeout)
	defer cancel()

	record, err := c.gateway.Create(commitCtx, &requests.CreateAppointment{
		DoctorID:  attempt.DoctorID,
		Date:      attempt.Date,
		SlotIndex: attempt.SlotIndex,
	})
	if err != nil {
		return c.fail(commitCtx, requestID, attempt, err)
	}
	return c.commit(commitCtx, requestID, attempt, record)
}

func (c *Controller) commit(ctx context.Context, requestID string, attempt models.BookingAttempt, record *models.AppointmentRecord) (*models.BookingOutcome, error) {
	attempt.Phase = models.BookingPhaseCommitted

	c.mu.Lock()
	c.inflight = nil
	c.phase = models.BookingPhaseCommitted
	c.confirmed[slotKey{date: record.Date, slotIndex: record.SlotIndex}] = c.loadSeq
	doctorName := c.doctorName
	c.mu.Unlock()

	if err := c.Load(ctx); err != nil {
		c.log.Warn("booking.Controller.Confirm refetch after commit failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if doctorName == "" {
		doctorName = fmt.Sprintf("#%d", c.doctorID)
	}
	timeLabel := c.grid.Label(record.SlotIndex)
	outcome := c.settle(ctx, attempt, models.BookingOutcomeBooked,
		fmt.Sprintf(constvars.BookingConfirmationMessageFormat, doctorName, record.Date, timeLabel),
		timeLabel, record)

	c.log.Info("booking.Controller.Confirm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentIDKey, record.ID),
	)
	return outcome, nil
}

func (c *Controller) fail(ctx context.Context, requestID string, attempt models.BookingAttempt, cause error) (*models.BookingOutcome, error) {
	attempt.Phase = models.BookingPhaseFailed

	c.mu.Lock()
	c.inflight = nil
	c.phase = models.BookingPhaseFailed
	c.mu.Unlock()

	kind := models.BookingOutcomeFailed
	message := constvars.ErrClientBookingFailed
	switch {
	case errors.Is(cause, exceptions.ErrOverlap):
		message = constvars.ErrClientAppointmentOverlap
	case errors.Is(cause, exceptions.ErrConflict):
		kind = models.BookingOutcomeConflict
		message = constvars.ErrClientSlotNoLongerAvailable
		if err := c.Load(ctx); err != nil {
			c.log.Warn("booking.Controller.Confirm refetch after conflict failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	c.log.Warn("booking.Controller.Confirm failed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOutcomeKindKey, string(kind)),
		zap.Error(cause),
	)

	outcome := c.settle(ctx, attempt, kind, message, c.grid.Label(attempt.SlotIndex), nil)
	return outcome, cause
}

func (c *Controller) settle(ctx context.Context, attempt models.BookingAttempt, kind models.BookingOutcomeKind, message, timeLabel string, record *models.AppointmentRecord) *models.BookingOutcome {
	outcome := models.BookingOutcome{
		SessionKey:  c.session.Key(),
		UserID:      c.session.UserID,
		Attempt:     attempt,
		Kind:        kind,
		Message:     message,
		TimeLabel:   timeLabel,
		Appointment: record,
		SettledAt:   c.now(),
	}

	if c.onSettled != nil {
		c.onSettled(ctx, outcome)
	}

	c.mu.Lock()
	c.lastOutcome = &outcome
	c.phase = models.BookingPhaseIdle
	c.lastUsed = c.now()
	c.mu.Unlock()

	return &outcome
}

// View renders one day of the grid. An empty date means today.
func (c *Controller) View(date string) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if date == "" {
		date = now.Format(constvars.DateLayout)
	}

	view := View{
		DoctorID:   c.doctorID,
		Date:       date,
		Days:       c.grid.Days(now),
		Committing: c.busyLocked(),
		LoadedAt:   c.loadedAt,
	}
	if c.selection != nil {
		selection := *c.selection
		view.Selection = &selection
	}
	if c.lastOutcome != nil {
		outcome := *c.lastOutcome
		view.LastOutcome = &outcome
	}

	for _, timeSlot := range c.grid.Slots() {
		state := SlotStateOpen
		switch {
		case c.isPendingLocked(date, timeSlot.Index):
			state = SlotStatePending
		case c.isBookedLocked(date, timeSlot.Index):
			state = SlotStateBooked
		case availability.IsSlotPassed(timeSlot, date, now):
			state = SlotStatePassed
		case c.selection != nil && c.selection.Date == date && c.selection.SlotIndex == timeSlot.Index:
			state = SlotStateSelected
		}
		view.Slots = append(view.Slots, SlotView{
			Slot:       timeSlot,
			State:      state,
			Selectable: state == SlotStateOpen || state == SlotStateSelected,
		})
	}
	return view
}

// Phase reports the current state machine phase.
func (c *Controller) Phase() models.BookingPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// IdleSince returns when the controller was last used, and false while a
// commit is running.
func (c *Controller) IdleSince() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUsed, !c.busyLocked()
}

func (c *Controller) busyLocked() bool {
	return c.phase == models.BookingPhaseCommitting ||
		c.phase == models.BookingPhaseCommitted ||
		c.phase == models.BookingPhaseFailed
}

func (c *Controller) isPendingLocked(date string, slotIndex int) bool {
	return c.inflight != nil && c.inflight.Date == date && c.inflight.SlotIndex == slotIndex
}

func (c *Controller) isBookedLocked(date string, slotIndex int) bool {
	if c.index.IsSlotBooked(slotIndex, date) {
		return true
	}
	_, ok := c.confirmed[slotKey{date: date, slotIndex: slotIndex}]
	return ok
}

func (c *Controller) checkSelectableLocked(date string, slotIndex int) error {
	now := c.now()
	if !c.grid.IsBookableDate(date, now) {
		return ErrDateOutOfWindow
	}
	timeSlot, ok := c.grid.Slot(slotIndex)
	if !ok {
		return ErrSlotNotSelectable
	}
	if c.isPendingLocked(date, slotIndex) || c.isBookedLocked(date, slotIndex) {
		return ErrSlotNotSelectable
	}
	if availability.IsSlotPassed(timeSlot, date, now) {
		return ErrSlotNotSelectable
	}
	return nil
}
