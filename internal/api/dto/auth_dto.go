package dto

import "time"

// StudentRegisterRequest payload for new students.
type StudentRegisterRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Tags     []string `json:"tags"`
}

// CounselorRegisterRequest payload for new counselors.
type CounselorRegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Specialty string `json:"specialty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileUpdateRequest carries optional profile fields.
type ProfileUpdateRequest struct {
	Email        *string  `json:"email"`
	Bio          *string  `json:"bio"`
	Tags         []string `json:"tags"`
	Specialty    *string  `json:"specialty"`
	Availability *string  `json:"availability"`
}

// ChangePasswordRequest payload for password changes.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PasswordResetRequest starts the reset flow.
type PasswordResetRequest struct {
	Username string `json:"username"`
}

// PasswordResetConfirmRequest completes the reset flow.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}
