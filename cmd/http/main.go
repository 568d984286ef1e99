package main

import (
	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/delivery/http/controllers"
	"clinic-booking-service/internal/app/delivery/http/middlewares"
	"clinic-booking-service/internal/app/delivery/http/routers"
	"clinic-booking-service/internal/app/drivers/database"
	"clinic-booking-service/internal/app/drivers/logger"
	"clinic-booking-service/internal/app/drivers/messaging"
	"clinic-booking-service/internal/app/services/clinic_api"
	"clinic-booking-service/internal/app/services/core/booking"
	"clinic-booking-service/internal/app/services/core/slot"
	"clinic-booking-service/internal/app/services/shared/locker"
	"clinic-booking-service/internal/app/services/shared/redis"
	"clinic-booking-service/internal/app/services/shared/telegram"
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.String("timezone", internalConfig.App.Timezone), zap.Error(err))
	}
	time.Local = location

	if internalConfig.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	redisClient := database.NewRedisClient(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if internalConfig.RabbitMQ.Enabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}

	err = bootstrapingTheApp(&bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    net.JoinHostPort(internalConfig.App.Address, internalConfig.App.Port),
		Handler: chiRouter,
	}

	go func() {
		log.Info("Server started", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	grid, err := slot.NewGrid(slot.ScheduleConfig{
		StartHour:   bootstrap.InternalConfig.Schedule.StartHour,
		EndHour:     bootstrap.InternalConfig.Schedule.EndHour,
		StepMinutes: bootstrap.InternalConfig.Schedule.StepMinutes,
		WindowDays:  bootstrap.InternalConfig.Schedule.WindowDays,
	})
	if err != nil {
		return err
	}

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockerService(redisRepository, bootstrap.Logger)

	// Notifications
	notifier := telegram.NewNopNotifier(bootstrap.Logger)
	if bootstrap.RabbitMQ != nil {
		notifier, err = telegram.NewBookingNotifier(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.RabbitMQ.BookingQueue)
		if err != nil {
			return err
		}
	}

	// Clinic backend
	clinicClient := clinic_api.NewClient(bootstrap.Logger, bootstrap.InternalConfig)
	appointmentGateway := clinic_api.NewAppointmentGateway(clinicClient, bootstrap.Logger)
	doctorGateway := clinic_api.NewDoctorGateway(clinicClient, bootstrap.Logger)

	// Booking
	registry := newRegistry(bootstrap, grid, appointmentGateway, notifier)
	bookingUsecase := booking.NewBookingUsecase(
		bootstrap.Logger,
		bootstrap.InternalConfig,
		grid,
		registry,
		appointmentGateway,
		doctorGateway,
		redisRepository,
		lockerService,
		notifier,
	)

	sweepWorker := booking.NewSweepWorker(
		bootstrap.Logger,
		registry,
		bootstrap.InternalConfig.Session.SweepCronSpec,
		time.Duration(bootstrap.InternalConfig.Session.IdleTimeoutInMinutes)*time.Minute,
	)
	sweepWorker.Start(context.Background())
	bootstrap.SweepWorkerStop = sweepWorker.Stop

	// Delivery
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)
	scheduleController := controllers.NewScheduleController(bootstrap.Logger, bootstrap.InternalConfig, bookingUsecase)
	bookingController := controllers.NewBookingController(bootstrap.Logger, bootstrap.InternalConfig, bookingUsecase)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, bootstrap.InternalConfig, bookingUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		scheduleController,
		bookingController,
		appointmentController,
	)
	return nil
}

func newRegistry(bootstrap *config.Bootstrap, grid *slot.Grid, appointmentGateway contracts.AppointmentGateway, notifier contracts.BookingNotifier) *booking.Registry {
	var registry *booking.Registry
	factory := booking.NewControllerFactory(
		bootstrap.Logger,
		bootstrap.InternalConfig,
		grid,
		appointmentGateway,
		notifier,
		func() *booking.Registry { return registry },
	)
	registry = booking.NewRegistry(factory, time.Now)
	return registry
}
