package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wellbeing-service/internal/api/dto"
	"github.com/spec-kit/wellbeing-service/internal/auth"
	"github.com/spec-kit/wellbeing-service/internal/service"
)

// EventsHandler exposes the homepage slider gallery endpoints.
type EventsHandler struct {
	images *service.EventImageService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(imageService *service.EventImageService) *EventsHandler {
	return &EventsHandler{images: imageService}
}

// ListImages handles GET /api/events/images.
func (h *EventsHandler) ListImages(c *fiber.Ctx) error {
	images, err := h.images.List(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.EventImageResponse, 0, len(images))
	for _, image := range images {
		out = append(out, dto.EventImageResponse{
			ID:          image.ID,
			Title:       image.Title,
			Description: image.Description,
			FilePath:    image.FilePath,
			UploadedBy:  image.UploadedBy,
			Order:       image.Position,
			CreatedAt:   image.CreatedAt,
		})
	}
	return c.JSON(out)
}

// UploadImage handles POST /api/events/upload-image. Multipart form with
// a "file" part and optional title and description fields.
func (h *EventsHandler) UploadImage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Counselor == nil {
		return fiber.NewError(http.StatusForbidden, "Only professionals can upload event images")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "No file provided")
	}
	if header.Filename == "" {
		return fiber.NewError(http.StatusBadRequest, "No file selected")
	}

	file, err := header.Open()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "No file provided")
	}
	defer file.Close() //nolint:errcheck
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	image, err := h.images.Upload(c.Context(), principal.Username, service.ImageUploadInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		FileName:    header.Filename,
		Data:        data,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":  "Event image uploaded successfully!",
		"image_id": image.ID,
		"filepath": image.FilePath,
	})
}

// DeleteImage handles DELETE /api/events/images/:id.
func (h *EventsHandler) DeleteImage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Counselor == nil {
		return fiber.NewError(http.StatusForbidden, "Only professionals can delete event images")
	}

	if err := h.images.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Event image deleted successfully!"})
}

// UpdateImageOrder handles PUT /api/events/images/:id/order.
func (h *EventsHandler) UpdateImageOrder(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Counselor == nil {
		return fiber.NewError(http.StatusForbidden, "Only professionals can reorder images")
	}

	var req dto.ImageOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Order == nil {
		return fiber.NewError(http.StatusBadRequest, "Order value is required")
	}

	if err := h.images.Reorder(c.Context(), c.Params("id"), *req.Order); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Order updated successfully!"})
}
