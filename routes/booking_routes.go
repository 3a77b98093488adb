package routes

import (
	"github.com/anjiri1684/thinksync/handlers"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App, h *handlers.Handler, g Guards) {
	app.Post("/booked", g.Auth, h.CreateBooking)
	app.Get("/booked-sessions", g.Auth, h.ListBookings)
	app.Get("/booked/:id", g.Auth, h.GetBooking)
}
