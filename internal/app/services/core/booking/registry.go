package booking

import (
	"clinic-booking-service/internal/app/models"
	"sync"
	"time"
)

type ControllerFactory func(session models.Session, doctorID int) *Controller

// Registry keeps one controller per session. Opening another doctor's
// schedule replaces the session's controller.
type Registry struct {
	mu          sync.Mutex
	controllers map[string]*Controller
	factory     ControllerFactory
	now         func() time.Time
}

func NewRegistry(factory ControllerFactory, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		controllers: make(map[string]*Controller),
		factory:     factory,
		now:         now,
	}
}

// Acquire returns the session's controller for doctorID and reports whether
// it was created by this call.
func (r *Registry) Acquire(session models.Session, doctorID int) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := session.Key()
	if controller, ok := r.controllers[key]; ok && controller.DoctorID() == doctorID {
		return controller, false
	}

	controller := r.factory(session, doctorID)
	r.controllers[key] = controller
	return controller, true
}

func (r *Registry) Get(sessionKey string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	controller, ok := r.controllers[sessionKey]
	return controller, ok
}

// InvalidateDoctor marks every controller showing doctorID as stale, except
// the one owned by exceptSessionKey.
func (r *Registry) InvalidateDoctor(doctorID int, exceptSessionKey string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	invalidated := 0
	for key, controller := range r.controllers {
		if key == exceptSessionKey || controller.DoctorID() != doctorID {
			continue
		}
		controller.MarkStale()
		invalidated++
	}
	return invalidated
}

func (r *Registry) InvalidateSession(sessionKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if controller, ok := r.controllers[sessionKey]; ok {
		controller.MarkStale()
	}
}

// Sweep drops controllers unused for longer than idleFor. Controllers with a
// commit in flight are kept.
func (r *Registry) Sweep(idleFor time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idleFor)
	evicted := 0
	for key, controller := range r.controllers {
		lastUsed, idle := controller.IdleSince()
		if !idle || lastUsed.After(cutoff) {
			continue
		}
		delete(r.controllers, key)
		evicted++
	}
	return evicted
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}
