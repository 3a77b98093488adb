package routes

import (
	"github.com/anjiri1684/thinksync/handlers"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App, h *handlers.Handler, g Guards) {
	uploads := app.Group("/uploads", g.Auth, g.Staff)
	uploads.Get("/signature", h.GenerateUploadSignature)
}
