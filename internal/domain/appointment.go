package domain

import "time"

// AppointmentStatus enumerates appointment lifecycle states.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusDeclined  AppointmentStatus = "DECLINED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment links a student with a counselor at a requested slot.
type Appointment struct {
	ID                string
	StudentUsername   string
	CounselorUsername string
	Date              string
	Time              string
	Reason            string
	Status            AppointmentStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
