package constvars

// Clinic backend resources.
const (
	ResourceAppointment        = "/appointment/"
	ResourceDoctor             = "/doctor/"
	ResourceProfileAppointment = "/profile/appointments"
	ResourceCancelSuffix       = "/cancel"
)

// Appointment status values as the clinic backend stores them.
const (
	AppointmentStatusPlanned   = "Запланировано"
	AppointmentStatusCompleted = "Завершено"
	AppointmentStatusCancelled = "Отменено"
)

// Error codes returned by the clinic backend inside {"error": {"code", "message"}}.
const (
	ClinicErrorCodeDoctorSlotBusy              = "doctor_slot_busy"
	ClinicErrorCodeAppointmentAlreadyExists    = "appointment_already_exists"
	ClinicErrorCodeConflict                    = "conflict"
	ClinicErrorCodeAppointmentCannotBeCanceled = "appointment_cannot_be_cancelled"
	ClinicErrorCodeAppointmentNotFound         = "appointment_not_found"
	ClinicErrorCodeDoctorNotFound              = "doctor_not_found"
)

// Substrings that mark a conflict when no code is present.
var ClinicConflictMarkers = []string{
	"busy",
	"already exists",
	"already booked",
	"conflict",
	"занят",
}
