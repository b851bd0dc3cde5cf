package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wellbeing-service/internal/api/dto"
	"github.com/spec-kit/wellbeing-service/internal/auth"
	"github.com/spec-kit/wellbeing-service/internal/domain"
	"github.com/spec-kit/wellbeing-service/internal/service"
)

// CounselorsHandler exposes auth and account endpoints for counselors.
type CounselorsHandler struct {
	auth *service.AuthService
}

// NewCounselorsHandler constructs handler.
func NewCounselorsHandler(authService *service.AuthService) *CounselorsHandler {
	return &CounselorsHandler{auth: authService}
}

// Register handles POST /api/counselors/register.
func (h *CounselorsHandler) Register(c *fiber.Ctx) error {
	var req dto.CounselorRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "Username and password are required")
	}

	if _, err := h.auth.RegisterCounselor(c.Context(), req.Username, req.Password, req.Specialty); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Professional registered successfully!",
	})
}

// Login handles POST /api/login/counselor.
func (h *CounselorsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "Username and password are required")
	}

	counselor, token, exp, err := h.auth.LoginCounselor(c.Context(), req.Username, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		"user": fiber.Map{
			"username":     counselor.Username,
			"role":         string(domain.SubjectTypeCounselor),
			"specialty":    counselor.Specialty,
			"email":        counselor.Email,
			"bio":          counselor.Bio,
			"availability": counselor.Availability,
		},
	})
}

// UpdateProfile handles PUT /api/counselors/profile.
func (h *CounselorsHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Counselor == nil {
		return fiber.NewError(http.StatusForbidden, "Access denied")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	counselor, err := h.auth.UpdateCounselorProfile(c.Context(), principal.Username, service.ProfileUpdate{
		Email:        req.Email,
		Bio:          req.Bio,
		Specialty:    req.Specialty,
		Availability: req.Availability,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user": fiber.Map{
			"username":     counselor.Username,
			"specialty":    counselor.Specialty,
			"email":        counselor.Email,
			"bio":          counselor.Bio,
			"availability": counselor.Availability,
		},
	})
}

// ChangePassword handles PUT /api/counselors/password.
func (h *CounselorsHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Counselor == nil {
		return fiber.NewError(http.StatusForbidden, "Access denied")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "current and new password required")
	}

	if err := h.auth.ChangePassword(c.Context(), domain.SubjectTypeCounselor, principal.Username, req.CurrentPassword, req.NewPassword); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Password changed"})
}

// DeleteAccount handles DELETE /api/counselors/account.
func (h *CounselorsHandler) DeleteAccount(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Counselor == nil {
		return fiber.NewError(http.StatusForbidden, "Access denied")
	}

	if err := h.auth.DeleteAccount(c.Context(), domain.SubjectTypeCounselor, principal.Username); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Account deleted"})
}

// RequestPasswordReset handles POST /api/password/reset/request.
func (h *CounselorsHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" {
		return fiber.NewError(http.StatusBadRequest, "username required")
	}

	token, err := h.auth.RequestPasswordReset(c.Context(), req.Username)
	if err != nil {
		// do not reveal whether the account exists
		return c.JSON(fiber.Map{"message": "If the account exists, a reset token was issued"})
	}

	return c.JSON(fiber.Map{
		"message": "If the account exists, a reset token was issued",
		"token":   token.Token,
	})
}

// ConfirmPasswordReset handles POST /api/password/reset/confirm.
func (h *CounselorsHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "token and new password required")
	}

	if err := h.auth.ConfirmPasswordReset(c.Context(), req.Token, req.NewPassword); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Password reset"})
}
