package booking

import (
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/dto/requests"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestRegistry(t *testing.T) {
	newRegistry := func(gateway *fakeAppointmentGateway, clock *manualClock) *Registry {
		factory := func(session models.Session, doctorID int) *Controller {
			controller := newTestController(t, gateway, nil, clock.Now)
			controller.session = session
			controller.doctorID = doctorID
			return controller
		}
		return NewRegistry(factory, clock.Now)
	}
	alice := models.Session{UserID: 1}
	bob := models.Session{UserID: 2}

	t.Run("Acquire Reuses Controller For Same Doctor", func(t *testing.T) {
		registry := newRegistry(newFakeAppointmentGateway(), &manualClock{now: testNow()})

		first, created := registry.Acquire(alice, 7)
		assert.True(t, created)
		second, created := registry.Acquire(alice, 7)
		assert.False(t, created)
		assert.Same(t, first, second)
	})

	t.Run("Other Doctor Replaces Controller", func(t *testing.T) {
		registry := newRegistry(newFakeAppointmentGateway(), &manualClock{now: testNow()})

		first, _ := registry.Acquire(alice, 7)
		second, created := registry.Acquire(alice, 8)

		assert.True(t, created)
		assert.NotSame(t, first, second)
		assert.Equal(t, 1, registry.Len())
	})

	t.Run("Sessions Are Isolated", func(t *testing.T) {
		registry := newRegistry(newFakeAppointmentGateway(), &manualClock{now: testNow()})

		aliceController, _ := registry.Acquire(alice, 7)
		bobController, _ := registry.Acquire(bob, 7)
		require.NoError(t, aliceController.Select(testDate, 3))

		assert.Nil(t, bobController.View(testDate).Selection)
		assert.Equal(t, 2, registry.Len())
	})

	t.Run("Invalidate Doctor Skips Owner", func(t *testing.T) {
		gateway := newFakeAppointmentGateway()
		registry := newRegistry(gateway, &manualClock{now: testNow()})

		aliceController, _ := registry.Acquire(alice, 7)
		bobController, _ := registry.Acquire(bob, 7)
		require.NoError(t, aliceController.Load(context.Background()))
		require.NoError(t, bobController.Load(context.Background()))

		invalidated := registry.InvalidateDoctor(7, alice.Key())

		assert.Equal(t, 1, invalidated)
		assert.False(t, aliceController.NeedsLoad())
		assert.True(t, bobController.NeedsLoad())
	})

	t.Run("Invalidate Session Marks Only That Session", func(t *testing.T) {
		registry := newRegistry(newFakeAppointmentGateway(), &manualClock{now: testNow()})

		aliceController, _ := registry.Acquire(alice, 7)
		bobController, _ := registry.Acquire(bob, 7)
		require.NoError(t, aliceController.Load(context.Background()))
		require.NoError(t, bobController.Load(context.Background()))

		registry.InvalidateSession(bob.Key())
		registry.InvalidateSession("user:404")

		assert.False(t, aliceController.NeedsLoad())
		assert.True(t, bobController.NeedsLoad())
	})

	t.Run("Sweep Evicts Idle And Keeps Committing", func(t *testing.T) {
		clock := &manualClock{now: testNow()}
		gateway := newFakeAppointmentGateway()
		started := make(chan struct{})
		release := make(chan struct{})
		gateway.createFn = func(ctx context.Context, request *requests.CreateAppointment) (*models.AppointmentRecord, error) {
			close(started)
			<-release
			record := planned(70, request.Date, request.SlotIndex)
			return &record, nil
		}
		registry := newRegistry(gateway, clock)

		registry.Acquire(alice, 7)
		bobController, _ := registry.Acquire(bob, 7)
		require.NoError(t, bobController.Select(testDate, 3))

		done := make(chan struct{})
		go func() {
			defer close(done)
			bobController.Confirm(context.Background())
		}()
		<-started

		clock.Advance(time.Hour)
		evicted := registry.Sweep(30 * time.Minute)

		assert.Equal(t, 1, evicted)
		_, ok := registry.Get(bob.Key())
		assert.True(t, ok, "controller with a commit in flight is kept")
		_, ok = registry.Get(alice.Key())
		assert.False(t, ok)

		close(release)
		<-done
	})
}
