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

type BookingController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	BookingUsecase contracts.BookingUsecase
}

func NewBookingController(logger *zap.Logger, internalConfig *config.InternalConfig, bookingUsecase contracts.BookingUsecase) *BookingController {
	return &BookingController{
		Log:            logger,
		InternalConfig: internalConfig,
		BookingUsecase: bookingUsecase,
	}
}

// ConfirmBooking commits the selected slot. Rejections come back as error
// codes (slot_conflict, booking_failed, commit_in_flight) and the Mini-App
// refetches the schedule after any of them.
func (ctrl *BookingController) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestMetadata(ctrl.Log, w, r, "BookingController.ConfirmBooking")
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
		ctrl.Log.Error("BookingController.ConfirmBooking Failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("BookingController.ConfirmBooking Failed to validate request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.Log.Info("BookingController.ConfirmBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.Int(constvars.LoggingSlotIndexKey, *request.SlotIndex),
	)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	response, err := ctrl.BookingUsecase.ConfirmBooking(ctx, session, doctorID, request)
	if err != nil {
		ctrl.Log.Error("BookingController.ConfirmBooking BookingUsecase.ConfirmBooking error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("BookingController.ConfirmBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOutcomeKindKey, response.Outcome.Kind),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ConfirmBookingSuccessMessage, response)
}
