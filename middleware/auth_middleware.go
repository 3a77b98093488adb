package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/anjiri1684/thinksync/database"
	"github.com/anjiri1684/thinksync/models"
	"github.com/anjiri1684/thinksync/utils"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const userKey = "user"

// Protected rejects the request unless it carries a valid auth cookie (or a
// Bearer header). Missing, tampered and expired tokens look the same to the
// caller.
func Protected(secret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   secret,
		ContextKey:   userKey,
		TokenLookup:  "cookie:" + utils.TokenCookie + ",header:Authorization",
		AuthScheme:   "Bearer",
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "code": fiber.StatusUnauthorized, "message": "unauthorized access"})
}

// Claims returns the verified claims stored by Protected.
func Claims(c *fiber.Ctx) jwt.MapClaims {
	token, ok := c.Locals(userKey).(*jwt.Token)
	if !ok {
		return nil
	}
	claims, _ := token.Claims.(jwt.MapClaims)
	return claims
}

// ClaimEmail is the identity the client logged in with.
func ClaimEmail(c *fiber.Ctx) string {
	email, _ := Claims(c)["email"].(string)
	return email
}

// RequireRole must run after Protected. The role is read from the users
// collection, not the token, because roles change after login.
func RequireRole(users database.Collection[models.User], log *zap.Logger, roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		email := ClaimEmail(c)
		if email == "" {
			return forbidden(c)
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		found, err := users.Find(ctx, bson.M{"email": email})
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.Warn("Role lookup timed out", zap.String("email", email))
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to resolve user role")
		}
		if len(found) == 0 || !allowed[found[0].Role] {
			return forbidden(c)
		}

		return c.Next()
	}
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).
		JSON(fiber.Map{"status": "error", "code": fiber.StatusForbidden, "message": "forbidden access"})
}
