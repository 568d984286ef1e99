package config

import "time"

// commitLockMargin covers the outcome notification and lock release that
// follow the commit itself.
const commitLockMargin = 5 * time.Second

type InternalConfig struct {
	App      App
	Clinic   Clinic
	Schedule Schedule
	Session  Session
	JWT      AppJWT
	RabbitMQ AppRabbitMQ
}

type App struct {
	Env                       string
	Port                      string
	Version                   string
	Address                   string
	Timezone                  string
	EndpointPrefix            string
	CorsAllowedOrigins        []string
	MaxRequests               int
	ShutdownTimeoutInSeconds  int
	MaxTimeRequestsPerSeconds int
	RequestTimeoutInSeconds   int
}

// Clinic describes the clinic REST backend that owns appointments and doctors.
type Clinic struct {
	BaseUrl                 string
	RequestTimeoutInSeconds int
	MaxRequestsPerSecond    int
	DoctorCacheTTLInSeconds int
}

// Schedule is the working day grid and how far ahead it can be booked.
type Schedule struct {
	StartHour   int
	EndHour     int
	StepMinutes int
	WindowDays  int
}

type Session struct {
	IdleTimeoutInMinutes   int
	SweepCronSpec          string
	CommitLockTTLInSeconds int
}

type AppJWT struct {
	Secret string
}

type AppRabbitMQ struct {
	Enabled      bool
	BookingQueue string
}

// CommitTimeout bounds one booking commit: the create call plus the refetch
// that follows it.
func (c *InternalConfig) CommitTimeout() time.Duration {
	return 2 * time.Duration(c.Clinic.RequestTimeoutInSeconds) * time.Second
}

// CommitLockTTL is the configured commit lock TTL, raised when needed so the
// lock never expires while its commit can still be running.
func (c *InternalConfig) CommitLockTTL() time.Duration {
	ttl := time.Duration(c.Session.CommitLockTTLInSeconds) * time.Second
	floor := c.CommitTimeout() + commitLockMargin
	if ttl < floor {
		return floor
	}
	return ttl
}
