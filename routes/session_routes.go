package routes

import (
	"github.com/anjiri1684/thinksync/handlers"
	"github.com/gofiber/fiber/v2"
)

func SessionRoutes(app *fiber.App, h *handlers.Handler, g Guards) {
	app.Get("/sessions", h.ListSessions)
	app.Get("/sessions/:id", h.GetSession)
	app.Get("/session", h.SessionsByTutor)
	app.Get("/session/approved", h.SessionsByStatus)

	app.Post("/sessions", g.Auth, g.Staff, h.CreateSession)
	app.Patch("/sessions/approve/:id", g.Auth, g.Admin, h.ApproveSession)
	app.Patch("/sessions/reject/:id", g.Auth, g.Admin, h.RejectSession)
	app.Patch("/sessions/pending/:id", g.Auth, g.Staff, h.ResubmitSession)
	app.Patch("/sessions/edited/:id", g.Auth, g.Staff, h.EditSession)
	app.Patch("/sessions/:id", g.Auth, g.Staff, h.EditSession)
	app.Delete("/sessions/:id", g.Auth, g.Admin, h.DeleteSession)
}
