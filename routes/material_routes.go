package routes

import (
	"github.com/anjiri1684/thinksync/handlers"
	"github.com/gofiber/fiber/v2"
)

func MaterialRoutes(app *fiber.App, h *handlers.Handler, g Guards) {
	app.Get("/materials", h.ListMaterials)
	app.Get("/materials/:id", h.GetMaterial)

	app.Post("/materials", g.Auth, g.Staff, h.CreateMaterial)
	app.Patch("/materials/:id", g.Auth, g.Staff, h.UpdateMaterial)
	app.Delete("/materials/:id", g.Auth, g.Staff, h.DeleteMaterial)
}
