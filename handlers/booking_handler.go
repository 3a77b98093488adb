package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/thinksync/database"
	"github.com/anjiri1684/thinksync/models"
	"github.com/anjiri1684/thinksync/notifications"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CreateBooking stores the booking as sent by the client. The unique
// (sessionId, studentEmail) index rejects a second booking of the same pair.
func (h *Handler) CreateBooking(c *fiber.Ctx) error {
	var booking models.Booking
	if err := parseBody(c, &booking); err != nil {
		return err
	}
	booking.ID = primitive.NilObjectID
	booking.BookedAt = time.Now().UTC()

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	res, err := h.store.Bookings.InsertOne(ctx, &booking)
	if errors.Is(err, database.ErrDuplicate) {
		return fiber.NewError(fiber.StatusConflict, "session already booked")
	}
	if err != nil {
		return h.storeError(c, err, "book session", "booking")
	}

	h.log.Info("Session booked",
		zap.String("booking_id", res.InsertedID),
		zap.String("session_id", booking.SessionID),
		zap.String("student", booking.StudentEmail))

	body, err := notifications.RenderBookingConfirmation(notifications.BookingConfirmation{
		StudentName:    booking.StudentName,
		Title:          booking.Title,
		TutorName:      booking.TutorName,
		ClassStartTime: booking.ClassStartTime,
	})
	if err != nil {
		h.log.Error("Failed to render booking confirmation", zap.String("booking_id", res.InsertedID), zap.Error(err))
	} else {
		subject := fmt.Sprintf("Booking confirmed: %s", booking.Title)
		notifications.SendAsync(h.notifier, h.log, booking.StudentName, booking.StudentEmail, subject, body)
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *Handler) ListBookings(c *fiber.Ctx) error {
	filter := bson.M{}
	if email := c.Query("email"); email != "" {
		filter["studentEmail"] = email
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	bookings, err := h.store.Bookings.Find(ctx, filter)
	if err != nil {
		return h.storeError(c, err, "list bookings", "booking")
	}
	return c.JSON(bookings)
}

func (h *Handler) GetBooking(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	booking, err := h.store.Bookings.FindByID(ctx, id)
	if err != nil {
		return h.storeError(c, err, "get booking", "booking")
	}
	return c.JSON(booking)
}
