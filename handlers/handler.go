package handlers

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/anjiri1684/thinksync/database"
	"github.com/anjiri1684/thinksync/notifications"
	"github.com/anjiri1684/thinksync/payments"
	"github.com/anjiri1684/thinksync/services"
	"github.com/anjiri1684/thinksync/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const storeTimeout = 10 * time.Second

var validate = validator.New()

// MediaUploader stores material images. A nil uploader disables uploads.
type MediaUploader interface {
	Upload(ctx context.Context, file io.Reader, publicID string) (string, error)
	Signature(now time.Time) (*services.UploadSignature, error)
}

type Deps struct {
	Store           *database.Store
	Tokens          *utils.TokenIssuer
	Payments        payments.IntentProvider
	PaymentCurrency string
	Media           MediaUploader
	Notifier        notifications.Notifier
	Log             *zap.Logger
}

// Handler carries every dependency a route needs; nothing is global.
type Handler struct {
	store    *database.Store
	tokens   *utils.TokenIssuer
	payments payments.IntentProvider
	currency string
	media    MediaUploader
	notifier notifications.Notifier
	log      *zap.Logger
}

func New(d Deps) *Handler {
	if d.Notifier == nil {
		d.Notifier = notifications.Disabled{}
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.PaymentCurrency == "" {
		d.PaymentCurrency = "usd"
	}
	return &Handler{
		store:    d.Store,
		tokens:   d.Tokens,
		payments: d.Payments,
		currency: d.PaymentCurrency,
		media:    d.Media,
		notifier: d.Notifier,
		log:      d.Log,
	}
}

func (h *Handler) Home(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "ThinkSync server is running",
	})
}

func (h *Handler) Health(c *fiber.Ctx) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Error("Health check failed", zap.Error(err))
		return fiber.NewError(fiber.StatusServiceUnavailable, "database unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) storeCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), storeTimeout)
}

func parseID(c *fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// storeError turns a store failure into the HTTP error the client sees.
func (h *Handler) storeError(c *fiber.Ctx, err error, action, entity string) error {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, entity+" not found")
	case errors.Is(err, database.ErrDuplicate):
		return fiber.NewError(fiber.StatusConflict, entity+" already exists")
	}
	h.log.Error("Store operation failed",
		zap.String("action", action),
		zap.String("path", c.Path()),
		zap.Any("request_id", c.Locals("requestid")),
		zap.Error(err))
	return fiber.NewError(fiber.StatusInternalServerError, "Failed to "+action)
}
