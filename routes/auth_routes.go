package routes

import (
	"github.com/anjiri1684/thinksync/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, h *handlers.Handler) {
	app.Post("/jwt", h.IssueToken)
	app.Get("/logout", h.Logout)
}
