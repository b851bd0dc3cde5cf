package domain

import "time"

// AccountStatus represents lifecycle states for an account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
)

// Student is the domain model for students who book appointments and
// use the support classifier.
type Student struct {
	ID               string
	Username         string
	Email            string
	Bio              string
	Tags             []string
	PasswordHash     string
	Status           AccountStatus
	HasGivenFeedback bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
