package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wellbeing-service/internal/api/dto"
	"github.com/spec-kit/wellbeing-service/internal/auth"
	"github.com/spec-kit/wellbeing-service/internal/domain"
	"github.com/spec-kit/wellbeing-service/internal/service"
)

// ResourcesHandler exposes the wellbeing resource library endpoints.
type ResourcesHandler struct {
	resources *service.ResourceService
}

// NewResourcesHandler constructs handler.
func NewResourcesHandler(resourceService *service.ResourceService) *ResourcesHandler {
	return &ResourcesHandler{resources: resourceService}
}

// List handles GET /api/resources.
func (h *ResourcesHandler) List(c *fiber.Ctx) error {
	resources, err := h.resources.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resourceResponses(resources))
}

// ListPDFs handles GET /api/resources/pdfs.
func (h *ResourcesHandler) ListPDFs(c *fiber.Ctx) error {
	resources, err := h.resources.ListByType(c.Context(), domain.ResourceTypePDF)
	if err != nil {
		return err
	}
	return c.JSON(resourceResponses(resources))
}

// ListVideos handles GET /api/resources/videos.
func (h *ResourcesHandler) ListVideos(c *fiber.Ctx) error {
	resources, err := h.resources.ListByType(c.Context(), domain.ResourceTypeVideo)
	if err != nil {
		return err
	}
	return c.JSON(resourceResponses(resources))
}

// Create handles POST /api/resources.
func (h *ResourcesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Counselor == nil {
		return fiber.NewError(http.StatusForbidden, "Only professionals can add resources")
	}

	var req dto.ResourceCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if _, err := h.resources.AddArticle(c.Context(), principal.Username, req.Title, req.Content, req.Category); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Resource added successfully!"})
}

// UploadPDF handles POST /api/resources/upload-pdf. Multipart form with
// a "file" part and optional title, description and category fields.
func (h *ResourcesHandler) UploadPDF(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Counselor == nil {
		return fiber.NewError(http.StatusForbidden, "Only professionals can upload resources")
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

	resource, err := h.resources.UploadPDF(c.Context(), principal.Username, service.PDFUploadInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		FileName:    header.Filename,
		Data:        data,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":     "PDF uploaded successfully!",
		"resource_id": resource.ID,
		"filepath":    resource.FilePath,
	})
}

// AddVideo handles POST /api/resources/add-video.
func (h *ResourcesHandler) AddVideo(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Counselor == nil {
		return fiber.NewError(http.StatusForbidden, "Only professionals can add resources")
	}

	var req dto.VideoCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	resource, err := h.resources.AddVideo(c.Context(), principal.Username, service.VideoInput{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":     "Video added successfully!",
		"resource_id": resource.ID,
	})
}

// Update handles PUT /api/resources/:id.
func (h *ResourcesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Counselor == nil {
		return fiber.NewError(http.StatusForbidden, "Only professionals can edit resources")
	}

	var req dto.ResourceUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if _, err := h.resources.Update(c.Context(), c.Params("id"), service.ResourceUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
	}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Resource updated successfully!"})
}

// Delete handles DELETE /api/resources/:id.
func (h *ResourcesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Counselor == nil {
		return fiber.NewError(http.StatusForbidden, "Only professionals can delete resources")
	}

	if err := h.resources.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Resource deleted successfully!"})
}

func resourceResponses(resources []domain.Resource) []dto.ResourceResponse {
	out := make([]dto.ResourceResponse, 0, len(resources))
	for _, resource := range resources {
		out = append(out, dto.ResourceResponse{
			ID:               resource.ID,
			Title:            resource.Title,
			Description:      resource.Description,
			Content:          resource.Content,
			Category:         resource.Category,
			Type:             string(resource.Type),
			VideoURL:         resource.VideoURL,
			FilePath:         resource.FilePath,
			OriginalFileName: resource.OriginalFileName,
			UploadedBy:       resource.UploadedBy,
			CreatedAt:        resource.CreatedAt,
		})
	}
	return out
}
