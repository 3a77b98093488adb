package routes

import (
	"github.com/anjiri1684/thinksync/database"
	"github.com/anjiri1684/thinksync/handlers"
	"github.com/anjiri1684/thinksync/middleware"
	"github.com/anjiri1684/thinksync/models"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Guards are the per-route checks. Admin and Staff must follow Auth.
type Guards struct {
	Auth  fiber.Handler
	Admin fiber.Handler
	Staff fiber.Handler
}

func NewGuards(secret []byte, users database.Collection[models.User], log *zap.Logger) Guards {
	return Guards{
		Auth:  middleware.Protected(secret),
		Admin: middleware.RequireRole(users, log, models.RoleAdmin),
		Staff: middleware.RequireRole(users, log, models.RoleTutor, models.RoleAdmin),
	}
}

// Setup registers every route on app.
func Setup(app *fiber.App, h *handlers.Handler, g Guards) {
	PublicRoutes(app, h)
	AuthRoutes(app, h)
	UserRoutes(app, h, g)
	SessionRoutes(app, h, g)
	BookingRoutes(app, h, g)
	MaterialRoutes(app, h, g)
	UploadRoutes(app, h, g)
	NoteRoutes(app, h, g)
	ReviewRoutes(app, h, g)
	PaymentRoutes(app, h, g)
}
