package routes

import (
	"github.com/anjiri1684/thinksync/handlers"
	"github.com/gofiber/fiber/v2"
)

func NoteRoutes(app *fiber.App, h *handlers.Handler, g Guards) {
	notes := app.Group("/note", g.Auth)
	notes.Post("", h.CreateNote)
	notes.Get("", h.ListNotes)
	notes.Get("/:id", h.GetNote)
	notes.Patch("/:id", h.UpdateNote)
	notes.Delete("/:id", h.DeleteNote)
}
