package handlers

import (
	"time"

	"github.com/anjiri1684/thinksync/models"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (h *Handler) CreateReview(c *fiber.Ctx) error {
	var review models.Review
	if err := parseBody(c, &review); err != nil {
		return err
	}
	review.ID = primitive.NilObjectID
	review.CreatedAt = time.Now().UTC()

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	res, err := h.store.Reviews.InsertOne(ctx, &review)
	if err != nil {
		return h.storeError(c, err, "create review", "review")
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *Handler) ListReviews(c *fiber.Ctx) error {
	filter := bson.M{}
	if sessionID := c.Query("sessionId"); sessionID != "" {
		filter["sessionId"] = sessionID
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	reviews, err := h.store.Reviews.Find(ctx, filter)
	if err != nil {
		return h.storeError(c, err, "list reviews", "review")
	}
	return c.JSON(reviews)
}
