package config

import (
	"clinic-booking-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                       utils.GetEnvString("APP_ENV", "development"),
			Port:                      utils.GetEnvString("APP_PORT", "8080"),
			Version:                   utils.GetEnvString("APP_VERSION", "v1"),
			Address:                   utils.GetEnvString("APP_ADDRESS", "0.0.0.0"),
			Timezone:                  utils.GetEnvString("APP_TIMEZONE", "Europe/Moscow"),
			EndpointPrefix:            utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			CorsAllowedOrigins:        utils.GetEnvStringSlice("APP_CORS_ALLOWED_ORIGINS", []string{"https://*", "http://*"}),
			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUESTS", 100),
			ShutdownTimeoutInSeconds:  utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds: utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestTimeoutInSeconds:   utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 30),
		},
		Clinic: Clinic{
			BaseUrl:                 utils.GetEnvString("CLINIC_BASE_URL", "http://localhost:8000"),
			RequestTimeoutInSeconds: utils.GetEnvInt("CLINIC_REQUEST_TIMEOUT_IN_SECONDS", 10),
			MaxRequestsPerSecond:    utils.GetEnvInt("CLINIC_MAX_REQUESTS_PER_SECOND", 20),
			DoctorCacheTTLInSeconds: utils.GetEnvInt("CLINIC_DOCTOR_CACHE_TTL_IN_SECONDS", 300),
		},
		Schedule: Schedule{
			StartHour:   utils.GetEnvInt("SCHEDULE_START_HOUR", 10),
			EndHour:     utils.GetEnvInt("SCHEDULE_END_HOUR", 18),
			StepMinutes: utils.GetEnvInt("SCHEDULE_STEP_MINUTES", 20),
			WindowDays:  utils.GetEnvInt("SCHEDULE_WINDOW_DAYS", 30),
		},
		Session: Session{
			IdleTimeoutInMinutes:   utils.GetEnvInt("SESSION_IDLE_TIMEOUT_IN_MINUTES", 30),
			SweepCronSpec:          utils.GetEnvString("SESSION_SWEEP_CRON_SPEC", "@every 1m"),
			CommitLockTTLInSeconds: utils.GetEnvInt("SESSION_COMMIT_LOCK_TTL_IN_SECONDS", 30),
		},
		JWT: AppJWT{
			Secret: utils.GetEnvString("JWT_SECRET", ""),
		},
		RabbitMQ: AppRabbitMQ{
			Enabled:      utils.GetEnvBool("RABBITMQ_ENABLED", false),
			BookingQueue: utils.GetEnvString("RABBITMQ_BOOKING_QUEUE", "booking_outcomes"),
		},
	}
}
