package routes

import (
	"github.com/anjiri1684/thinksync/handlers"
	"github.com/anjiri1684/thinksync/models"
	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App, h *handlers.Handler, g Guards) {
	app.Post("/users", h.CreateUser)
	app.Get("/users", g.Auth, g.Admin, h.ListUsers)
	app.Get("/user", g.Auth, h.FindUsers)

	app.Patch("/users/admin/:id", g.Auth, g.Admin, h.SetRole(models.RoleAdmin))
	app.Patch("/users/tutor/:id", g.Auth, g.Admin, h.SetRole(models.RoleTutor))
	app.Patch("/users/student/:id", g.Auth, g.Admin, h.SetRole(models.RoleStudent))
	app.Delete("/users/:id", g.Auth, g.Admin, h.DeleteUser)
}
