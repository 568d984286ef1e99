package routers

import (
	"clinic-booking-service/internal/app/delivery/http/controllers"
	"clinic-booking-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.With(middlewares.Authenticate).Get("/mine", appointmentController.ListMine)
	router.With(middlewares.Authenticate, middlewares.RateLimitBySession()).Patch("/{appointmentID}/cancel", appointmentController.Cancel)
}
