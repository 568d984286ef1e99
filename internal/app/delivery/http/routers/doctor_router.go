package routers

import (
	"clinic-booking-service/internal/app/delivery/http/controllers"
	"clinic-booking-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	scheduleController *controllers.ScheduleController,
	bookingController *controllers.BookingController,
	appointmentController *controllers.AppointmentController,
) {
	router.With(middlewares.Authenticate).Get("/", scheduleController.ListDoctors)
	router.With(middlewares.Authenticate).Get("/{doctorID}/schedule", scheduleController.GetSchedule)
	router.With(middlewares.Authenticate).Post("/{doctorID}/schedule/refresh", scheduleController.RefreshSchedule)
	router.With(middlewares.Authenticate).Put("/{doctorID}/selection", scheduleController.SelectSlot)
	router.With(middlewares.Authenticate).Delete("/{doctorID}/selection", scheduleController.ClearSelection)
	router.With(middlewares.Authenticate, middlewares.RateLimitBySession()).Post("/{doctorID}/bookings", bookingController.ConfirmBooking)
	router.With(middlewares.Authenticate).Get("/{doctorID}/appointments", appointmentController.ListByDoctor)
}
