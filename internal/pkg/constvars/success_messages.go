package constvars

const (
	GetScheduleSuccessMessage           = "successfully fetched schedule"
	RefreshScheduleSuccessMessage       = "successfully refreshed schedule"
	SelectSlotSuccessMessage            = "successfully selected slot"
	ClearSelectionSuccessMessage        = "successfully cleared selection"
	ConfirmBookingSuccessMessage        = "successfully booked appointment"
	CancelAppointmentSuccessMessage     = "successfully cancelled appointment"
	GetAppointmentsSuccessMessage       = "successfully fetched appointments"
	GetDoctorsSuccessMessage            = "successfully fetched doctors"
	GetDoctorAppointmentsSuccessMessage = "successfully fetched doctor appointments"
)

// Telegram-facing booking confirmation, filled with doctor name, date and time.
const BookingConfirmationMessageFormat = "Вы записаны к врачу %s на %s в %s"
const ResponseUnknown = "unknown"
