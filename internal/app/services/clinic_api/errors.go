package clinic_api

import (
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// backendError is what the clinic backend says went wrong. It comes either
// as {"error": {"code", "message"}} or as a bare {"detail": ...}.
type backendError struct {
	Code    string
	Message string
}

func (e backendError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Code != "":
		return e.Code
	default:
		return e.Message
	}
}

func parseBackendError(body []byte) backendError {
	var envelope struct {
		Error *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return backendError{Message: strings.TrimSpace(string(body))}
	}
	if envelope.Error != nil {
		return backendError{Code: envelope.Error.Code, Message: envelope.Error.Message}
	}
	return backendError{Message: parseDetail(envelope.Detail)}
}

func parseDetail(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		messages := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				messages = append(messages, item.Msg)
			}
		}
		return strings.Join(messages, "; ")
	}

	var object struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &object); err == nil && (object.Code != "" || object.Message != "") {
		return backendError{Code: object.Code, Message: object.Message}.Error()
	}
	return string(raw)
}

// isConflict reports a slot conflict: HTTP 409, a known conflict code, or a
// conflict marker in the code or message. The user's own overlapping
// appointment is classified before this and never reaches it.
func isConflict(statusCode int, backendErr backendError) bool {
	if statusCode == constvars.StatusConflict {
		return true
	}
	switch backendErr.Code {
	case constvars.ClinicErrorCodeDoctorSlotBusy,
		constvars.ClinicErrorCodeConflict:
		return true
	}
	text := strings.ToLower(backendErr.Code + " " + backendErr.Message)
	for _, marker := range constvars.ClinicConflictMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

func classifyResponse(resource string, statusCode int, body []byte) error {
	backendErr := parseBackendError(body)
	cause := errors.New(backendErr.Error())
	if backendErr.Error() == "" {
		cause = fmt.Errorf("status %d", statusCode)
	}

	switch {
	case backendErr.Code == constvars.ClinicErrorCodeAppointmentCannotBeCanceled:
		return exceptions.ErrAppointmentNotCancellable(cause)
	case backendErr.Code == constvars.ClinicErrorCodeAppointmentAlreadyExists:
		return exceptions.ErrAppointmentOverlap(cause)
	case statusCode >= constvars.StatusBadRequest && statusCode < constvars.StatusInternalServerError && isConflict(statusCode, backendErr):
		return exceptions.ErrClinicConflict(cause, resource)
	case statusCode == constvars.StatusUnauthorized || statusCode == constvars.StatusForbidden:
		return exceptions.ErrClinicUnauthorized(cause, resource, statusCode)
	case statusCode == constvars.StatusNotFound:
		clientMessage := constvars.ErrClientAppointmentNotFound
		if resource == constvars.ResourceDoctor {
			clientMessage = constvars.ErrClientDoctorNotFound
		}
		return exceptions.ErrClinicNotFound(cause, resource, clientMessage)
	case statusCode == constvars.StatusBadRequest || statusCode == constvars.StatusUnprocessableEntity:
		return exceptions.ErrClinicBadRequest(cause, resource, statusCode)
	default:
		return exceptions.ErrClinicRequestFailed(cause, resource, statusCode)
	}
}
