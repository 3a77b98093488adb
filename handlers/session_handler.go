package handlers

import (
	"fmt"

	"github.com/anjiri1684/thinksync/models"
	"github.com/anjiri1684/thinksync/notifications"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type approveSessionRequest struct {
	Fee *float64 `json:"fee" validate:"required,gte=0"`
}

func (h *Handler) ListSessions(c *fiber.Ctx) error {
	return h.findSessions(c, nil)
}

// SessionsByTutor serves GET /session?email=.
func (h *Handler) SessionsByTutor(c *fiber.Ctx) error {
	filter := bson.M{}
	if email := c.Query("email"); email != "" {
		filter["email"] = email
	}
	return h.findSessions(c, filter)
}

// SessionsByStatus serves GET /session/approved?status=.
func (h *Handler) SessionsByStatus(c *fiber.Ctx) error {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["Status"] = status
	}
	return h.findSessions(c, filter)
}

func (h *Handler) findSessions(c *fiber.Ctx, filter bson.M) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	sessions, err := h.store.Sessions.Find(ctx, filter)
	if err != nil {
		return h.storeError(c, err, "list sessions", "session")
	}
	return c.JSON(sessions)
}

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	var session models.StudySession
	if err := parseBody(c, &session); err != nil {
		return err
	}
	if session.Fee < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Fee must not be negative")
	}
	session.ID = primitive.NilObjectID
	// Only an admin moves a session out of Pending.
	session.Status = models.StatusPending

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	res, err := h.store.Sessions.InsertOne(ctx, &session)
	if err != nil {
		return h.storeError(c, err, "create session", "session")
	}

	h.log.Info("Study session created", zap.String("session_id", res.InsertedID), zap.String("tutor", session.TutorEmail))
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	session, err := h.store.Sessions.FindByID(ctx, id)
	if err != nil {
		return h.storeError(c, err, "get session", "session")
	}
	return c.JSON(session)
}

// EditSession merges the supplied fields into the session. Status and the
// owning tutor's email cannot be changed here.
func (h *Handler) EditSession(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var edit models.SessionEdit
	if err := parseBody(c, &edit); err != nil {
		return err
	}

	set := bson.M{}
	setString(set, "title", edit.Title)
	setString(set, "tutorName", edit.TutorName)
	setString(set, "description", edit.Description)
	setString(set, "registrationStartDate", edit.RegistrationStartDate)
	setString(set, "registrationEndDate", edit.RegistrationEndDate)
	setString(set, "classStartTime", edit.ClassStartTime)
	setString(set, "classEndDate", edit.ClassEndDate)
	setString(set, "sessionDuration", edit.SessionDuration)
	if edit.Fee != nil {
		set["Fee"] = *edit.Fee
	}

	return h.updateSession(c, id, set, "update session")
}

func (h *Handler) ApproveSession(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req approveSessionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.updateSession(c, id, bson.M{"Status": models.StatusApproved, "Fee": *req.Fee}, "approve session"); err != nil {
		return err
	}
	h.notifyTutor(c, id, models.StatusApproved)
	return nil
}

func (h *Handler) RejectSession(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.updateSession(c, id, bson.M{"Status": models.StatusRejected}, "reject session"); err != nil {
		return err
	}
	h.notifyTutor(c, id, models.StatusRejected)
	return nil
}

func (h *Handler) ResubmitSession(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return h.updateSession(c, id, bson.M{"Status": models.StatusPending}, "reset session status")
}

func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	res, err := h.store.Sessions.DeleteByID(ctx, id)
	if err != nil {
		return h.storeError(c, err, "delete session", "session")
	}
	if res.DeletedCount == 0 {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	return c.JSON(res)
}

func (h *Handler) updateSession(c *fiber.Ctx, id primitive.ObjectID, set bson.M, action string) error {
	if len(set) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	res, err := h.store.Sessions.UpdateByID(ctx, id, set)
	if err != nil {
		return h.storeError(c, err, action, "session")
	}
	if res.MatchedCount == 0 {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	return c.JSON(res)
}

// notifyTutor is best effort: the status change has already been stored.
func (h *Handler) notifyTutor(c *fiber.Ctx, id primitive.ObjectID, status string) {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	session, err := h.store.Sessions.FindByID(ctx, id)
	if err != nil {
		h.log.Warn("Could not load session for tutor notice", zap.String("session_id", id.Hex()), zap.Error(err))
		return
	}
	if session.TutorEmail == "" {
		return
	}

	body, err := notifications.RenderSessionStatus(notifications.SessionStatus{
		TutorName: session.TutorName,
		Title:     session.Title,
		Status:    status,
	})
	if err != nil {
		h.log.Error("Failed to render tutor notice", zap.String("session_id", id.Hex()), zap.Error(err))
		return
	}
	subject := fmt.Sprintf("Your session \"%s\" was %s", session.Title, status)
	notifications.SendAsync(h.notifier, h.log, session.TutorName, session.TutorEmail, subject, body)
}

func setString(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}
