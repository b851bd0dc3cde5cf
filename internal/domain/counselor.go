package domain

import "time"

// Counselor is the domain model for mental-health professionals.
type Counselor struct {
	ID               string
	Username         string
	Email            string
	Bio              string
	Specialty        string
	Availability     string
	PasswordHash     string
	Status           AccountStatus
	HasGivenFeedback bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
