package constvars

// Validation messages for users, map it with respective tag field
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"oneof":    "must be one of %s",
	"datetime": "must match the format %s",
}

var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"oneof":    true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientSlotNoLongerAvailable         = "this time slot is no longer available, please pick another one"
	ErrClientAppointmentOverlap            = "you already have an appointment at this time"
	ErrClientBookingFailed                 = "failed to book the appointment, please try again"
	ErrClientSlotNotSelectable             = "this time slot cannot be selected"
	ErrClientBookingInProgress             = "your booking is already being processed"
	ErrClientNoSlotSelected                = "please select a time slot first"
	ErrClientClinicUnavailable             = "the clinic service is unavailable, please try again later"
	ErrClientAppointmentNotFound           = "appointment not found"
	ErrClientAppointmentCannotBeCancelled  = "this appointment can no longer be cancelled"
	ErrClientDoctorNotFound                = "doctor not found"
	ErrClientDateOutOfWindow               = "this date is not open for booking"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientRouteNotFound                 = "the requested resource does not exist"
)

// Error messages for developers
const (
	ErrDevInvalidInput              = "invalid input"
	ErrDevValidationFailed          = "validation failed"
	ErrDevCannotParseJSON           = "cannot parse JSON"
	ErrDevCannotMarshalJSON         = "cannot marshal JSON"
	ErrDevURLParamIDValidation      = "invalid URL parameter %s"
	ErrDevCannotParseDate           = "cannot parse date"
	ErrDevServerDeadlineExceeded    = "server deadline exceeded"
	ErrDevMissingRequestID          = "request ID missing from context"
	ErrDevMissingSessionData        = "session data missing from context"
	ErrDevAuthTokenMissing          = "auth token missing"
	ErrDevAuthTokenInvalidOrExpired = "auth token invalid or expired"
	ErrDevCreateHTTPRequest         = "failed to create HTTP request"
	ErrDevSendHTTPRequest           = "failed to send HTTP request"
	ErrDevReadHTTPResponse          = "failed to read HTTP response"
	ErrDevClinicRequestFailed       = "clinic backend rejected %s request with status %d"
	ErrDevClinicConflict            = "clinic backend reported a conflict on %s"
	ErrDevAppointmentOverlap        = "user already has a planned appointment at this date and slot"
	ErrDevClinicInvalidPayload      = "clinic backend returned an invalid %s payload"
	ErrDevClinicTimeout             = "clinic backend did not answer %s in time"
	ErrDevBookingFailed             = "booking commit failed"
	ErrDevSlotNotSelectable         = "slot is booked, passed or outside the grid"
	ErrDevCommitInFlight            = "a booking commit is already in flight"
	ErrDevNoSelection               = "confirm called without a selected slot"
	ErrDevDoctorMismatch            = "request doctor does not match the active booking"
	ErrDevDateOutOfWindow           = "date outside the bookable window"
	ErrDevAppointmentNotCancellable = "appointment is not planned and not cancelled"
	ErrDevRedisSet                  = "failed to set redis key"
	ErrDevRedisGet                  = "failed to get redis key %s"
	ErrDevRedisDelete               = "failed to delete redis key"
	ErrDevRedisUnlock               = "failed to release redis lock"
	ErrDevPublishMessage            = "failed to publish message to queue %s"
	ErrDevTooManyRequests           = "rate limit exceeded"
	ErrDevPanicRecovered            = "recovered from panic"
	ErrDevRouteNotFound             = "no route for %s %s"
)

// Error codes sent to the Mini-App so it can pick the right message.
const (
	ErrorCodeSlotConflict       = "slot_conflict"
	ErrorCodeAppointmentOverlap = "appointment_overlap"
	ErrorCodeBookingFailed      = "booking_failed"
	ErrorCodeSlotNotSelectable  = "slot_not_selectable"
	ErrorCodeCommitInFlight     = "commit_in_flight"
	ErrorCodeNoSelection        = "no_selection"
	ErrorCodeBackendUnavailable = "backend_unavailable"
	ErrorCodeValidation         = "validation_failed"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeTooManyRequests    = "too_many_requests"
)
