package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/thinksync/database"
	"github.com/anjiri1684/thinksync/models"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CreateUser is called on every client sign-in, so an existing email is a
// normal outcome and not an error status.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var user models.User
	if err := parseBody(c, &user); err != nil {
		return err
	}
	user.ID = primitive.NilObjectID
	switch user.Role {
	case "":
		user.Role = models.RoleStudent
	case models.RoleAdmin:
		// Admins are only seeded or promoted by another admin.
		return fiber.NewError(fiber.StatusBadRequest, "role must be Student or Tutor")
	}
	user.CreatedAt = time.Now().UTC()

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	res, err := h.store.Users.InsertOne(ctx, &user)
	if errors.Is(err, database.ErrDuplicate) {
		return c.JSON(fiber.Map{"message": "user already exists", "insertedId": nil})
	}
	if err != nil {
		return h.storeError(c, err, "create user", "user")
	}

	h.log.Info("New user registered", zap.String("email", user.Email), zap.String("user_id", res.InsertedID))
	return c.JSON(res)
}

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	users, err := h.store.Users.Find(ctx, nil)
	if err != nil {
		return h.storeError(c, err, "list users", "user")
	}
	return c.JSON(users)
}

func (h *Handler) FindUsers(c *fiber.Ctx) error {
	filter := bson.M{}
	if email := c.Query("email"); email != "" {
		filter["email"] = email
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	users, err := h.store.Users.Find(ctx, filter)
	if err != nil {
		return h.storeError(c, err, "find users", "user")
	}
	return c.JSON(users)
}

// SetRole builds the PATCH /users/<role>/:id handler for one target role.
func (h *Handler) SetRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		ctx, cancel := h.storeCtx(c)
		defer cancel()

		res, err := h.store.Users.UpdateByID(ctx, id, bson.M{"role": role})
		if err != nil {
			return h.storeError(c, err, "update user role", "user")
		}
		if res.MatchedCount == 0 {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}

		h.log.Info("User role changed", zap.String("user_id", id.Hex()), zap.String("role", role))
		return c.JSON(res)
	}
}

func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	res, err := h.store.Users.DeleteByID(ctx, id)
	if err != nil {
		return h.storeError(c, err, "delete user", "user")
	}
	if res.DeletedCount == 0 {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	return c.JSON(res)
}
