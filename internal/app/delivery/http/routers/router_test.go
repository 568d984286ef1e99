package routers

import (
	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/delivery/http/controllers"
	"clinic-booking-service/internal/app/delivery/http/middlewares"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/dto/requests"
	"clinic-booking-service/internal/pkg/dto/responses"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "router-secret"

type MockBookingUsecase struct {
	mock.Mock
	contracts.BookingUsecase
}

func (m *MockBookingUsecase) GetSchedule(ctx context.Context, session models.Session, doctorID int, date string) (*responses.Schedule, error) {
	args := m.Called(ctx, session, doctorID, date)
	schedule, _ := args.Get(0).(*responses.Schedule)
	return schedule, args.Error(1)
}

func (m *MockBookingUsecase) ConfirmBooking(ctx context.Context, session models.Session, doctorID int, request *requests.SlotSelection) (*responses.BookingResult, error) {
	args := m.Called(ctx, session, doctorID, request)
	result, _ := args.Get(0).(*responses.BookingResult)
	return result, args.Error(1)
}

func newTestRouter(usecase contracts.BookingUsecase) *chi.Mux {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:            "api",
			Version:                   "v1",
			CorsAllowedOrigins:        []string{"https://web.telegram.org"},
			MaxRequests:               100,
			MaxTimeRequestsPerSeconds: 1,
			RequestTimeoutInSeconds:   5,
		},
		JWT: config.AppJWT{Secret: testSecret},
	}

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		controllers.NewScheduleController(logger, internalConfig, usecase),
		controllers.NewBookingController(logger, internalConfig, usecase),
		controllers.NewAppointmentController(logger, internalConfig, usecase),
	)
	return router
}

func signedToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "42",
		"name": "access",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestSetupRoutes(t *testing.T) {
	t.Run("authenticated schedule request reaches the usecase", func(t *testing.T) {
		usecase := new(MockBookingUsecase)
		usecase.On("GetSchedule", mock.Anything, mock.MatchedBy(func(s models.Session) bool { return s.UserID == 42 }), 7, "").
			Return(&responses.Schedule{DoctorID: 7}, nil)
		router := newTestRouter(usecase)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors/7/schedule", nil)
		req.AddCookie(&http.Cookie{Name: constvars.CookieUserAccessToken, Value: signedToken(t)})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(constvars.HeaderXRequestID))
		usecase.AssertExpectations(t)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		router := newTestRouter(new(MockBookingUsecase))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/mine", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown route answers json not found", func(t *testing.T) {
		router := newTestRouter(new(MockBookingUsecase))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, constvars.MIMEApplicationJSON, rec.Header().Get(constvars.HeaderContentType))
	})

	t.Run("preflight allows cancel from the mini app origin", func(t *testing.T) {
		router := newTestRouter(new(MockBookingUsecase))

		req := httptest.NewRequest(http.MethodOptions, "/api/v1/appointments/1/cancel", nil)
		req.Header.Set("Origin", "https://web.telegram.org")
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "https://web.telegram.org", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
	})

	t.Run("booking writes are limited per session", func(t *testing.T) {
		usecase := new(MockBookingUsecase)
		usecase.On("ConfirmBooking", mock.Anything, mock.Anything, 7, mock.Anything).
			Return(&responses.BookingResult{Outcome: responses.BookingOutcome{Kind: "success"}}, nil)
		router := newTestRouter(usecase)
		token := signedToken(t)

		codes := make([]int, 0, 2)
		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors/7/bookings", strings.NewReader(`{"date":"2026-10-20","slot_index":1}`))
			req.AddCookie(&http.Cookie{Name: constvars.CookieUserAccessToken, Value: token})
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			codes = append(codes, rec.Code)
		}

		assert.Equal(t, []int{http.StatusCreated, http.StatusTooManyRequests}, codes)
		usecase.AssertNumberOfCalls(t, "ConfirmBooking", 1)
	})
}
