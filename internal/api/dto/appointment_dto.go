package dto

import "time"

// AppointmentCreateRequest payload for booking an appointment.
type AppointmentCreateRequest struct {
	Professional string `json:"professional"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Reason       string `json:"reason"`
}

// AppointmentStatusUpdateRequest payload for confirming or declining.
type AppointmentStatusUpdateRequest struct {
	Status string `json:"status"`
}

// AppointmentResponse is a single appointment record.
type AppointmentResponse struct {
	ID                string    `json:"id"`
	StudentUsername   string    `json:"student_username"`
	CounselorUsername string    `json:"professional_username"`
	Date              string    `json:"date"`
	Time              string    `json:"time"`
	Reason            string    `json:"reason"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}
