package handlers

import (
	"errors"

	"github.com/anjiri1684/thinksync/payments"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type paymentIntentRequest struct {
	Fee float64 `json:"fee" validate:"gt=0"`
}

// CreatePaymentIntent asks the configured provider for a payment intent for
// the session fee and hands its client secret back to the browser.
func (h *Handler) CreatePaymentIntent(c *fiber.Ctx) error {
	if h.payments == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "payments are not configured")
	}

	var req paymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, payments.ErrInvalidAmount.Error())
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	intent, err := h.payments.CreateIntent(ctx, req.Fee, h.currency)
	if errors.Is(err, payments.ErrInvalidAmount) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		h.log.Error("Failed to create payment intent",
			zap.Float64("fee", req.Fee),
			zap.Any("request_id", c.Locals("requestid")),
			zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "Failed to create payment intent")
	}

	return c.JSON(intent)
}
