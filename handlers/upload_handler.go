package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GenerateUploadSignature creates a signature so the frontend can upload
// material images straight to the media store.
func (h *Handler) GenerateUploadSignature(c *fiber.Ctx) error {
	if h.media == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "image uploads are not configured")
	}

	sig, err := h.media.Signature(time.Now())
	if err != nil {
		h.log.Error("Failed to sign upload params", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sign upload params")
	}
	return c.JSON(sig)
}
