package exceptions

import (
	"clinic-booking-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"runtime"
)

var (
	// ErrConflict marks a booking rejected because the slot is already taken.
	ErrConflict = errors.New("slot conflict")
	// ErrOverlap marks a booking rejected because the user already holds another
	// planned appointment at the same date and slot.
	ErrOverlap = errors.New("appointment overlap")
	// ErrBackendUnavailable marks transport failures and timeouts towards the clinic backend.
	ErrBackendUnavailable = errors.New("clinic backend unavailable")
	// ErrNotCancellable marks a cancel rejected because the appointment is no longer planned.
	ErrNotCancellable = errors.New("appointment not cancellable")
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	ErrorCode     string     `json:"error_code,omitempty"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	Err           error      `json:"-"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithCode sets the machine readable error code sent to the client.
func (e *CustomError) WithCode(code string) *CustomError {
	e.ErrorCode = code
	return e
}

// BuildNewCustomError records the caller location. When err is itself a
// CustomError its locations are kept behind the new one.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	locations := []Location{getLocation(3)}
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())

		var previous *CustomError
		if errors.As(err, &previous) {
			locations = append(locations, previous.Locations...)
		}
	}

	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     locations,
		Err:           err,
	}
}

func wrapSentinel(sentinel, err error) error {
	if err == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
