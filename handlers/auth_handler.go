package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// IssueToken signs whatever user payload the client posts after a successful
// login and binds it to the auth cookie.
func (h *Handler) IssueToken(c *fiber.Ctx) error {
	claims := map[string]interface{}{}
	if err := c.BodyParser(&claims); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}

	token, expires, err := h.tokens.Issue(claims)
	if err != nil {
		h.log.Error("Failed to issue token", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create token")
	}

	c.Cookie(h.tokens.Cookie(token, expires))
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(h.tokens.ClearCookie())
	h.log.Debug("Logout successful")
	return c.JSON(fiber.Map{"success": true})
}
