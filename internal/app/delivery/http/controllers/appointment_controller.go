package controllers

import (
	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/dto/requests"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/utils"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type AppointmentController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	BookingUsecase contracts.BookingUsecase
}

func NewAppointmentController(logger *zap.Logger, internalConfig *config.InternalConfig, bookingUsecase contracts.BookingUsecase) *AppointmentController {
	return &AppointmentController{
		Log:            logger,
		InternalConfig: internalConfig,
		BookingUsecase: bookingUsecase,
	}
}

func (ctrl *AppointmentController) ListMine(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestMetadata(ctrl.Log, w, r, "AppointmentController.ListMine")
	if !ok {
		return
	}

	ctrl.Log.Info("AppointmentController.ListMine called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	response, err := ctrl.BookingUsecase.ListMyAppointments(ctx, session)
	if err != nil {
		ctrl.Log.Error("AppointmentController.ListMine BookingUsecase.ListMyAppointments error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.ListMine succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentsSuccessMessage, response)
}

func (ctrl *AppointmentController) ListByDoctor(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestMetadata(ctrl.Log, w, r, "AppointmentController.ListByDoctor")
	if !ok {
		return
	}

	doctorID, err := utils.ParseIntURLParam(r, constvars.URLParamDoctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamDoctorID))
		return
	}

	query := requests.AppointmentStatusQuery{Status: r.URL.Query().Get(constvars.QueryParamStatus)}
	if err := utils.ValidateStruct(query); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.Log.Info("AppointmentController.ListByDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.QueryParamStatus, query.Status),
	)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	response, err := ctrl.BookingUsecase.ListDoctorAppointments(ctx, session, doctorID, query.Status)
	if err != nil {
		ctrl.Log.Error("AppointmentController.ListByDoctor BookingUsecase.ListDoctorAppointments error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorAppointmentsSuccessMessage, response)
}

func (ctrl *AppointmentController) Cancel(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestMetadata(ctrl.Log, w, r, "AppointmentController.Cancel")
	if !ok {
		return
	}

	appointmentID, err := utils.ParseIntURLParam(r, constvars.URLParamAppointmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamAppointmentID))
		return
	}

	ctrl.Log.Info("AppointmentController.Cancel called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	response, err := ctrl.BookingUsecase.CancelAppointment(ctx, session, appointmentID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.Cancel BookingUsecase.CancelAppointment error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.Cancel succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelAppointmentSuccessMessage, response)
}
