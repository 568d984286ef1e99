package controllers

import (
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// requestMetadata reads the request ID and the authenticated session. It
// writes the error response itself and returns false when either is missing.
func requestMetadata(log *zap.Logger, w http.ResponseWriter, r *http.Request, caller string) (string, models.Session, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		log.Error(caller + " requestID not found in context")
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingRequestID(nil))
		return "", models.Session{}, false
	}

	session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(models.Session)
	if !ok {
		log.Error(caller+" session not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingSessionData(nil))
		return requestID, models.Session{}, false
	}
	return requestID, session, true
}

func buildUsecaseErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	var customErr *exceptions.CustomError
	if errors.Is(err, context.DeadlineExceeded) && !errors.As(err, &customErr) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
