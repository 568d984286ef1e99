package requests

// SlotSelection is the Mini-App's choice of a date and slot.
type SlotSelection struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	SlotIndex *int   `json:"slot_index" validate:"required,min=0"`
}

type ScheduleQuery struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}

type AppointmentStatusQuery struct {
	Status string `validate:"omitempty,oneof=Запланировано Завершено Отменено"`
}

// CreateAppointment is the body of POST /appointment/ on the clinic backend.
type CreateAppointment struct {
	DoctorID  int    `json:"doctor_id"`
	Date      string `json:"date"`
	SlotIndex int    `json:"slot_index"`
}
