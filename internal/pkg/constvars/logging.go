package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingSessionDataKey    = "session_data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingResponseLengthKey = "response_length"
	LoggingErrorTypeKey      = "error_type"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingClinicUrlKey         = "clinic_url"
	LoggingDoctorIDKey          = "doctor_id"
	LoggingAppointmentIDKey     = "appointment_id"
	LoggingDateKey              = "date"
	LoggingSlotIndexKey         = "slot_index"
	LoggingBookingPhaseKey      = "booking_phase"
	LoggingOutcomeKindKey       = "outcome_kind"
	LoggingAppointmentCountKey  = "appointment_count"
	LoggingEvictedCountKey      = "evicted_count"
	LoggingActiveControllersKey = "active_controllers"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingQueueNameKey          = "queue_name"
	LoggingCronSpecKey           = "cron_spec"
)
