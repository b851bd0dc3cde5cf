package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wellbeing-service/internal/api/http/handlers"
	"github.com/spec-kit/wellbeing-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Students       *handlers.StudentsHandler
	Counselors     *handlers.CounselorsHandler
	Feedback       *handlers.FeedbackHandler
	Appointments   *handlers.AppointmentsHandler
	Notifications  *handlers.NotificationsHandler
	Classifier     *handlers.ClassifierHandler
	Resources      *handlers.ResourcesHandler
	Events         *handlers.EventsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// public auth endpoints
	app.Post("/register", cfg.Students.Register)
	app.Post("/api/login/student", cfg.Students.Login)
	app.Post("/api/login/counselor", cfg.Counselors.Login)
	app.Post("/api/counselors/register", cfg.Counselors.Register)
	app.Post("/api/password/reset/request", cfg.Counselors.RequestPasswordReset)
	app.Post("/api/password/reset/confirm", cfg.Counselors.ConfirmPasswordReset)

	// public read endpoints
	app.Get("/api/resources", cfg.Resources.List)
	app.Get("/api/resources/pdfs", cfg.Resources.ListPDFs)
	app.Get("/api/resources/videos", cfg.Resources.ListVideos)
	app.Get("/api/events/images", cfg.Events.ListImages)

	api := app.Group("/api", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())

	api.Get("/verify-token", cfg.Students.VerifyToken)

	api.Put("/students/profile", auth.RequireStudent(), cfg.Students.UpdateProfile)
	api.Put("/students/password", auth.RequireStudent(), cfg.Students.ChangePassword)
	api.Delete("/students/account", auth.RequireStudent(), cfg.Students.DeleteAccount)

	api.Put("/counselors/profile", auth.RequireCounselor(), cfg.Counselors.UpdateProfile)
	api.Put("/counselors/password", auth.RequireCounselor(), cfg.Counselors.ChangePassword)
	api.Delete("/counselors/account", auth.RequireCounselor(), cfg.Counselors.DeleteAccount)

	api.Get("/feedback/status", cfg.Feedback.Status)
	api.Post("/feedback/track-activity", cfg.Feedback.TrackActivity)
	api.Post("/feedback/submit", cfg.Feedback.Submit)
	api.Post("/feedback/dismiss", cfg.Feedback.Dismiss)
	api.Get("/feedback/all", auth.RequireCounselor(), cfg.Feedback.ListAll)

	api.Post("/appointments", auth.RequireStudent(), cfg.Appointments.Create)
	api.Get("/appointments", cfg.Appointments.List)
	api.Put("/appointments/:id/status", auth.RequireCounselor(), cfg.Appointments.UpdateStatus)

	api.Get("/notifications", cfg.Notifications.List)
	api.Put("/notifications/:id/read", cfg.Notifications.MarkRead)

	api.Post("/classify", auth.RequireStudent(), cfg.Classifier.Classify)

	api.Post("/resources", auth.RequireCounselor(), cfg.Resources.Create)
	api.Post("/resources/upload-pdf", auth.RequireCounselor(), cfg.Resources.UploadPDF)
	api.Post("/resources/add-video", auth.RequireCounselor(), cfg.Resources.AddVideo)
	api.Put("/resources/:id", auth.RequireCounselor(), cfg.Resources.Update)
	api.Delete("/resources/:id", auth.RequireCounselor(), cfg.Resources.Delete)

	api.Post("/events/upload-image", auth.RequireCounselor(), cfg.Events.UploadImage)
	api.Put("/events/images/:id/order", auth.RequireCounselor(), cfg.Events.UpdateImageOrder)
	api.Delete("/events/images/:id", auth.RequireCounselor(), cfg.Events.DeleteImage)
}
