package client

import "time"

// StudentRegistration is the payload for creating a student account.
type StudentRegistration struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Tags     []string `json:"tags,omitempty"`
}

// CounselorRegistration is the payload for creating a counselor account.
type CounselorRegistration struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Specialty string `json:"specialty,omitempty"`
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserProfile is the profile block returned by login and profile endpoints.
type UserProfile struct {
	Username string   `json:"username"`
	Role     string   `json:"role"`
	Tags     []string `json:"tags"`
	Email    string   `json:"email"`
	Bio      string   `json:"bio"`
}

// LoginResult is the response of the login endpoints.
type LoginResult struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserProfile `json:"user"`
}

// ProfileUpdate carries optional profile fields; nil means unchanged.
type ProfileUpdate struct {
	Email        *string  `json:"email,omitempty"`
	Bio          *string  `json:"bio,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Specialty    *string  `json:"specialty,omitempty"`
	Availability *string  `json:"availability,omitempty"`
}

// PasswordChange carries the current and new password.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// FeedbackStatus reports whether the feedback prompt should be offered.
type FeedbackStatus struct {
	HasGivenFeedback   bool `json:"has_given_feedback"`
	ActivityCount      int  `json:"activity_count"`
	ShouldShowFeedback bool `json:"should_show_feedback"`
}

// FeedbackSubmission is the payload for submitting feedback.
type FeedbackSubmission struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// FeedbackEntry is a single stored feedback record.
type FeedbackEntry struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Classification is the scored result of the support classifier.
type Classification struct {
	Department string   `json:"department"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
	Crisis     bool     `json:"crisis"`
}

// AppointmentRequest is the payload for booking an appointment.
type AppointmentRequest struct {
	Professional string `json:"professional"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Reason       string `json:"reason"`
}

// Appointment is a single appointment record.
type Appointment struct {
	ID                string    `json:"id"`
	StudentUsername   string    `json:"student_username"`
	CounselorUsername string    `json:"professional_username"`
	Date              string    `json:"date"`
	Time              string    `json:"time"`
	Reason            string    `json:"reason"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

// Notification is a single notification record.
type Notification struct {
	ID        string    `json:"id"`
	Username  string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
