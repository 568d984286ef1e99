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

type ScheduleController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	BookingUsecase contracts.BookingUsecase
}

func NewScheduleController(logger *zap.Logger, internalConfig *config.InternalConfig, bookingUsecase contracts.BookingUsecase) *ScheduleController {
	return &ScheduleController{
		Log:            logger,
		InternalConfig: internalConfig,
		BookingUsecase: bookingUsecase,
	}
}

func (ctrl *ScheduleController) requestTimeout() time.Duration {
	return time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
}

func (ctrl *ScheduleController) ListDoctors(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := requestMetadata(ctrl.Log, w, r, "ScheduleController.ListDoctors")
	if !ok {
		return
	}

	filter := utils.BuildDoctorFilterRequest(r)
	ctrl.Log.Info("ScheduleController.ListDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	response, err := ctrl.BookingUsecase.ListDoctors(ctx, filter)
	if err != nil {
		ctrl.Log.Error("ScheduleController.ListDoctors BookingUsecase.ListDoctors error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ScheduleController.ListDoctors succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorsSuccessMessage, response)
}

func (ctrl *ScheduleController) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctrl.renderSchedule(w, r, "ScheduleController.GetSchedule", false)
}

func (ctrl *ScheduleController) RefreshSchedule(w http.ResponseWriter, r *http.Request) {
	ctrl.renderSchedule(w, r, "ScheduleController.RefreshSchedule", true)
}

func (ctrl *ScheduleController) renderSchedule(w http.ResponseWriter, r *http.Request, caller string, refresh bool) {
	requestID, session, ok := requestMetadata(ctrl.Log, w, r, caller)
	if !ok {
		return
	}

	doctorID, err := utils.ParseIntURLParam(r, constvars.URLParamDoctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamDoctorID))
		return
	}

	query := requests.ScheduleQuery{Date: r.URL.Query().Get(constvars.QueryParamDate)}
	if err := utils.ValidateStruct(query); err != nil {
		ctrl.Log.Info(caller+" invalid query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.Log.Info(caller+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, query.Date),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	message := constvars.GetScheduleSuccessMessage
	getSchedule := ctrl.BookingUsecase.GetSchedule
	if refresh {
		message = constvars.RefreshScheduleSuccessMessage
		getSchedule = ctrl.BookingUsecase.RefreshSchedule
	}

	response, err := getSchedule(ctx, session, doctorID, query.Date)
	if err != nil {
		ctrl.Log.Error(caller+" BookingUsecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, message, response)
}

func (ctrl *ScheduleController) SelectSlot(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestMetadata(ctrl.Log, w, r, "ScheduleController.SelectSlot")
	if !ok {
		return
	}

	doctorID, err := utils.ParseIntURLParam(r, constvars.URLParamDoctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamDoctorID))
		return
	}

	request := new(requests.SlotSelection)
	if err := utils.DecodeJSONBody(r.Body, request); err != nil {
		ctrl.Log.Error("ScheduleController.SelectSlot Failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.Log.Info("ScheduleController.SelectSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, doctorID),
		zap.Any(constvars.LoggingRequestKey, request),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	response, err := ctrl.BookingUsecase.SelectSlot(ctx, session, doctorID, request)
	if err != nil {
		ctrl.Log.Info("ScheduleController.SelectSlot BookingUsecase.SelectSlot rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SelectSlotSuccessMessage, response)
}

func (ctrl *ScheduleController) ClearSelection(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestMetadata(ctrl.Log, w, r, "ScheduleController.ClearSelection")
	if !ok {
		return
	}

	doctorID, err := utils.ParseIntURLParam(r, constvars.URLParamDoctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamDoctorID))
		return
	}

	query := requests.ScheduleQuery{Date: r.URL.Query().Get(constvars.QueryParamDate)}
	if err := utils.ValidateStruct(query); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.Log.Info("ScheduleController.ClearSelection called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, doctorID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	response, err := ctrl.BookingUsecase.ClearSelection(ctx, session, doctorID, query.Date)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ClearSelectionSuccessMessage, response)
}
