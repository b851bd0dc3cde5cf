package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wellbeing-service/internal/domain"
)

// RequireStudent ensures a student is authenticated.
func RequireStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeStudent || principal.Student == nil {
			return fiber.NewError(http.StatusForbidden, "Access denied")
		}
		return c.Next()
	}
}

// RequireCounselor ensures a counselor is authenticated.
func RequireCounselor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeCounselor || principal.Counselor == nil {
			return fiber.NewError(http.StatusForbidden, "Access denied")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures the caller is authenticated (student or counselor).
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
