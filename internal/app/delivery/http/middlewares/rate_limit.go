package middlewares

import (
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitByIP limits every request by client IP.
func (m *Middlewares) RateLimitByIP() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(m.tooManyRequests),
	)
}

// RateLimitBySession limits booking writes per authenticated user. It must
// run after Authenticate.
func (m *Middlewares) RateLimitBySession() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxTimeRequestsPerSeconds,
		time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			if session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(models.Session); ok {
				return session.Key(), nil
			}
			return httprate.KeyByIP(r)
		}),
		httprate.WithLimitHandler(m.tooManyRequests),
	)
}

func (m *Middlewares) tooManyRequests(w http.ResponseWriter, r *http.Request) {
	utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
}
