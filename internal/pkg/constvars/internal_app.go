package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_ACCESS_TOKEN_KEY         ContextKey = "access_token"
)

const (
	REQUEST_ID_PREFIX = "CLNC_BKG_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	// Cookie issued by the clinic backend on login.
	CookieUserAccessToken = "user_access_token"

	JWTClaimSubject    = "sub"
	JWTClaimName       = "name"
	JWTTokenTypeAccess = "access"
)

const (
	URLParamDoctorID      = "doctorID"
	URLParamAppointmentID = "appointmentID"

	QueryParamDate           = "date"
	QueryParamStatus         = "status"
	QueryParamDoctorID       = "doctor_id"
	QueryParamFirstName      = "first_name"
	QueryParamSurname        = "surname"
	QueryParamMiddleName     = "middle_name"
	QueryParamSpecialization = "specialization"
)

const (
	RedisKeyBookingCommitLockFormat = "booking:commit:%s"
	RedisKeyDoctorDirectoryFormat   = "doctors:directory:%s"
)

const (
	DateLayout = "2006-01-02"
)

// Results of RedisRepository.DeleteIfEquals.
const (
	RedisDeleteKeyMissing   = -1
	RedisDeleteValueChanged = 0
	RedisDeleteDone         = 1
)
