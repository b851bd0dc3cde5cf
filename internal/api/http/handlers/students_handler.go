package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wellbeing-service/internal/api/dto"
	"github.com/spec-kit/wellbeing-service/internal/auth"
	"github.com/spec-kit/wellbeing-service/internal/domain"
	"github.com/spec-kit/wellbeing-service/internal/service"
)

// StudentsHandler exposes auth and account endpoints for students.
type StudentsHandler struct {
	auth *service.AuthService
}

// NewStudentsHandler constructs handler.
func NewStudentsHandler(authService *service.AuthService) *StudentsHandler {
	return &StudentsHandler{auth: authService}
}

// Register handles POST /register.
func (h *StudentsHandler) Register(c *fiber.Ctx) error {
	var req dto.StudentRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "Username and password are required")
	}

	if _, err := h.auth.RegisterStudent(c.Context(), req.Username, req.Password, req.Tags); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Student registered successfully!",
	})
}

// Login handles POST /api/login/student.
func (h *StudentsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "Username and password are required")
	}

	student, token, exp, err := h.auth.LoginStudent(c.Context(), req.Username, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		"user": fiber.Map{
			"username": student.Username,
			"role":     string(domain.SubjectTypeStudent),
			"tags":     student.Tags,
			"email":    student.Email,
			"bio":      student.Bio,
		},
	})
}

// UpdateProfile handles PUT /api/students/profile.
func (h *StudentsHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Student == nil {
		return fiber.NewError(http.StatusForbidden, "Access denied")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	student, err := h.auth.UpdateStudentProfile(c.Context(), principal.Username, service.ProfileUpdate{
		Email: req.Email,
		Bio:   req.Bio,
		Tags:  req.Tags,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user": fiber.Map{
			"username": student.Username,
			"tags":     student.Tags,
			"email":    student.Email,
			"bio":      student.Bio,
		},
	})
}

// ChangePassword handles PUT /api/students/password.
func (h *StudentsHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Student == nil {
		return fiber.NewError(http.StatusForbidden, "Access denied")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "current and new password required")
	}

	if err := h.auth.ChangePassword(c.Context(), domain.SubjectTypeStudent, principal.Username, req.CurrentPassword, req.NewPassword); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Password changed"})
}

// DeleteAccount handles DELETE /api/students/account.
func (h *StudentsHandler) DeleteAccount(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Student == nil {
		return fiber.NewError(http.StatusForbidden, "Access denied")
	}

	if err := h.auth.DeleteAccount(c.Context(), domain.SubjectTypeStudent, principal.Username); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Account deleted"})
}

// VerifyToken handles GET /api/verify-token.
func (h *StudentsHandler) VerifyToken(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Invalid token")
	}
	return c.JSON(fiber.Map{
		"valid":    true,
		"username": principal.Username,
		"role":     string(principal.SubjectType),
	})
}
