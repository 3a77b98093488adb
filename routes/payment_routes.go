package routes

import (
	"github.com/anjiri1684/thinksync/handlers"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App, h *handlers.Handler, g Guards) {
	app.Post("/create-payment-intent", g.Auth, h.CreatePaymentIntent)
}
