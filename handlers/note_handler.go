package handlers

import (
	"time"

	"github.com/anjiri1684/thinksync/models"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (h *Handler) CreateNote(c *fiber.Ctx) error {
	var note models.Note
	if err := parseBody(c, &note); err != nil {
		return err
	}
	note.ID = primitive.NilObjectID
	note.UpdatedAt = time.Now().UTC()

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	res, err := h.store.Notes.InsertOne(ctx, &note)
	if err != nil {
		return h.storeError(c, err, "create note", "note")
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *Handler) ListNotes(c *fiber.Ctx) error {
	filter := bson.M{}
	if email := c.Query("email"); email != "" {
		filter["email"] = email
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	notes, err := h.store.Notes.Find(ctx, filter)
	if err != nil {
		return h.storeError(c, err, "list notes", "note")
	}
	return c.JSON(notes)
}

func (h *Handler) GetNote(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	note, err := h.store.Notes.FindByID(ctx, id)
	if err != nil {
		return h.storeError(c, err, "get note", "note")
	}
	return c.JSON(note)
}

func (h *Handler) UpdateNote(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var edit models.NoteEdit
	if err := parseBody(c, &edit); err != nil {
		return err
	}

	set := bson.M{}
	setString(set, "title", edit.Title)
	setString(set, "description", edit.Description)
	if len(set) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	set["updatedAt"] = time.Now().UTC()

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	res, err := h.store.Notes.UpdateByID(ctx, id, set)
	if err != nil {
		return h.storeError(c, err, "update note", "note")
	}
	if res.MatchedCount == 0 {
		return fiber.NewError(fiber.StatusNotFound, "note not found")
	}
	return c.JSON(res)
}

func (h *Handler) DeleteNote(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	res, err := h.store.Notes.DeleteByID(ctx, id)
	if err != nil {
		return h.storeError(c, err, "delete note", "note")
	}
	if res.DeletedCount == 0 {
		return fiber.NewError(fiber.StatusNotFound, "note not found")
	}
	return c.JSON(res)
}
