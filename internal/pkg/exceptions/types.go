package exceptions

import (
	"clinic-booking-service/internal/pkg/constvars"
	"fmt"
)

var (
	ErrURLParamIDValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamIDValidation, paramName)).WithCode(constvars.ErrorCodeValidation)
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed).WithCode(constvars.ErrorCodeValidation)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON).WithCode(constvars.ErrorCodeValidation)
	}
	ErrCannotParseDate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseDate).WithCode(constvars.ErrorCodeValidation)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}
	ErrMissingSessionData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevMissingSessionData).WithCode(constvars.ErrorCodeUnauthorized)
	}
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenMissing).WithCode(constvars.ErrorCodeUnauthorized)
	}
	ErrTooManyRequests = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrDevTooManyRequests).WithCode(constvars.ErrorCodeTooManyRequests)
	}
	ErrPanicRecovered = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevPanicRecovered)
	}
	ErrRouteNotFound = func(method, path string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientRouteNotFound, fmt.Sprintf(constvars.ErrDevRouteNotFound, method, path))
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalidOrExpired).WithCode(constvars.ErrorCodeUnauthorized)
	}
)

// Clinic backend
var (
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(wrapSentinel(ErrBackendUnavailable, err), constvars.StatusBadGateway, constvars.ErrClientClinicUnavailable, constvars.ErrDevSendHTTPRequest).WithCode(constvars.ErrorCodeBackendUnavailable)
	}
	ErrReadHTTPResponse = func(err error) *CustomError {
		return BuildNewCustomError(wrapSentinel(ErrBackendUnavailable, err), constvars.StatusBadGateway, constvars.ErrClientClinicUnavailable, constvars.ErrDevReadHTTPResponse).WithCode(constvars.ErrorCodeBackendUnavailable)
	}
	ErrClinicTimeout = func(err error, resource string) *CustomError {
		return BuildNewCustomError(wrapSentinel(ErrBackendUnavailable, err), constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, fmt.Sprintf(constvars.ErrDevClinicTimeout, resource)).WithCode(constvars.ErrorCodeBackendUnavailable)
	}
	ErrClinicRequestFailed = func(err error, resource string, statusCode int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientClinicUnavailable, fmt.Sprintf(constvars.ErrDevClinicRequestFailed, resource, statusCode)).WithCode(constvars.ErrorCodeBackendUnavailable)
	}
	ErrClinicBadRequest = func(err error, resource string, statusCode int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevClinicRequestFailed, resource, statusCode))
	}
	ErrClinicUnauthorized = func(err error, resource string, statusCode int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, fmt.Sprintf(constvars.ErrDevClinicRequestFailed, resource, statusCode)).WithCode(constvars.ErrorCodeUnauthorized)
	}
	ErrClinicNotFound = func(err error, resource string, clientMessage string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, clientMessage, fmt.Sprintf(constvars.ErrDevClinicRequestFailed, resource, constvars.StatusNotFound))
	}
	ErrClinicConflict = func(err error, resource string) *CustomError {
		return BuildNewCustomError(wrapSentinel(ErrConflict, err), constvars.StatusConflict, constvars.ErrClientSlotNoLongerAvailable, fmt.Sprintf(constvars.ErrDevClinicConflict, resource)).WithCode(constvars.ErrorCodeSlotConflict)
	}
	ErrAppointmentOverlap = func(err error) *CustomError {
		return BuildNewCustomError(wrapSentinel(ErrOverlap, err), constvars.StatusConflict, constvars.ErrClientAppointmentOverlap, constvars.ErrDevAppointmentOverlap).WithCode(constvars.ErrorCodeAppointmentOverlap)
	}
	ErrClinicInvalidPayload = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientClinicUnavailable, fmt.Sprintf(constvars.ErrDevClinicInvalidPayload, resource)).WithCode(constvars.ErrorCodeBackendUnavailable)
	}
)

// Booking
var (
	ErrSlotNotSelectable = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientSlotNotSelectable, constvars.ErrDevSlotNotSelectable).WithCode(constvars.ErrorCodeSlotNotSelectable)
	}
	ErrDateOutOfWindow = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientDateOutOfWindow, constvars.ErrDevDateOutOfWindow).WithCode(constvars.ErrorCodeSlotNotSelectable)
	}
	ErrCommitInFlight = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientBookingInProgress, constvars.ErrDevCommitInFlight).WithCode(constvars.ErrorCodeCommitInFlight)
	}
	ErrNoSelection = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientNoSlotSelected, constvars.ErrDevNoSelection).WithCode(constvars.ErrorCodeNoSelection)
	}
	ErrDoctorMismatch = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevDoctorMismatch).WithCode(constvars.ErrorCodeValidation)
	}
	ErrBookingFailed = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientBookingFailed, constvars.ErrDevBookingFailed).WithCode(constvars.ErrorCodeBookingFailed)
	}
	ErrAppointmentNotCancellable = func(err error) *CustomError {
		return BuildNewCustomError(wrapSentinel(ErrNotCancellable, err), constvars.StatusBadRequest, constvars.ErrClientAppointmentCannotBeCancelled, constvars.ErrDevAppointmentNotCancellable)
	}
)

// Redis and messaging
var (
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSet)
	}
	ErrRedisGet = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGet, key))
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDelete)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}
	ErrPublishMessage = func(err error, queue string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevPublishMessage, queue))
	}
)
