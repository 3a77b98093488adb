package routes

import (
	"github.com/anjiri1684/thinksync/handlers"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App, h *handlers.Handler, g Guards) {
	app.Get("/review", h.ListReviews)
	app.Post("/review", g.Auth, h.CreateReview)
}
