package handlers

import (
	"fmt"

	"kiosk/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ImageHandler serves menu and category images.
type ImageHandler struct {
	service *services.ImageService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(service *services.ImageService) *ImageHandler {
	return &ImageHandler{
		service: service,
	}
}

// RegisterRoutes registers the image route with the Fiber app.
func (h *ImageHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/image/:filename", h.HandleGetImage)
}

// HandleGetImage streams the requested image.
func (h *ImageHandler) HandleGetImage(c *fiber.Ctx) error {
	filename, err := pathParam(c, "filename")
	if err != nil {
		return err
	}
	img, err := h.service.Open(c.UserContext(), filename)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, img.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", img.Name))
	// fasthttp closes the stream once the response is written.
	return c.SendStream(img, int(img.Size))
}
