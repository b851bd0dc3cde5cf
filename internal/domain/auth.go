package domain

import "time"

// SubjectType differentiates student vs counselor tokens.
type SubjectType string

const (
	SubjectTypeStudent   SubjectType = "student"
	SubjectTypeCounselor SubjectType = "counselor"
)

// Token represents issued authentication token metadata.
type Token struct {
	ID        string
	SubjectID string
	Username  string
	Subject   SubjectType
	ExpiresAt time.Time
	IssuedAt  time.Time
}
