package domain

import "time"

// SupportDepartment identifies the route a classified message is sent to.
type SupportDepartment string

const (
	// DepartmentIDC handles identity-based harm, discrimination and bullying.
	DepartmentIDC SupportDepartment = "IDC"
	// DepartmentOpen handles academic and course concerns.
	DepartmentOpen SupportDepartment = "OPEN"
	// DepartmentCounsel handles emotional distress and crisis cases.
	DepartmentCounsel SupportDepartment = "COUNSEL"
)

// Classification is the scored result of routing a student message.
type Classification struct {
	Department SupportDepartment `json:"department"`
	Confidence float64           `json:"confidence"`
	Reasons    []string          `json:"reasons"`
	Crisis     bool              `json:"crisis"`
}

// SupportTicket records a classified message for follow-up.
type SupportTicket struct {
	ID         string
	Username   string
	Message    string
	Department SupportDepartment
	Confidence float64
	Crisis     bool
	CreatedAt  time.Time
}
