package responses

type Appointment struct {
	ID        int    `json:"id"`
	DoctorID  int    `json:"doctor_id"`
	UserID    *int   `json:"user_id,omitempty"`
	Date      string `json:"date"`
	SlotIndex int    `json:"slot_index"`
	Time      string `json:"time"`
	Status    string `json:"status"`
}

type Doctor struct {
	ID             int    `json:"id"`
	FirstName      string `json:"first_name"`
	Surname        string `json:"surname"`
	MiddleName     string `json:"middle_name"`
	ShortName      string `json:"short_name"`
	Specialization string `json:"specialization"`
	Description    string `json:"description"`
}
