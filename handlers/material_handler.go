package handlers

import (
	"strings"

	"github.com/anjiri1684/thinksync/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CreateMaterial accepts JSON or a multipart form. A multipart "image" file is
// pushed to the media store and its URL saved on the material.
func (h *Handler) CreateMaterial(c *fiber.Ctx) error {
	var material models.Material
	if err := parseBody(c, &material); err != nil {
		return err
	}
	material.ID = primitive.NilObjectID

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if fileHeader, err := c.FormFile("image"); err == nil {
			if h.media == nil {
				return fiber.NewError(fiber.StatusServiceUnavailable, "image uploads are not configured")
			}
			file, err := fileHeader.Open()
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Cannot read uploaded image")
			}
			defer file.Close()

			ctx, cancel := h.storeCtx(c)
			defer cancel()

			url, err := h.media.Upload(ctx, file, "material_"+uuid.NewString())
			if err != nil {
				h.log.Error("Material image upload failed", zap.Error(err))
				return fiber.NewError(fiber.StatusBadGateway, "Failed to upload image")
			}
			material.Image = url
		}
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	res, err := h.store.Materials.InsertOne(ctx, &material)
	if err != nil {
		return h.storeError(c, err, "create material", "material")
	}

	h.log.Info("Material uploaded", zap.String("material_id", res.InsertedID), zap.String("session_id", material.SessionID))
	return c.Status(fiber.StatusCreated).JSON(res)
}

// ListMaterials filters by owner email and/or session when given.
func (h *Handler) ListMaterials(c *fiber.Ctx) error {
	filter := bson.M{}
	if email := c.Query("email"); email != "" {
		filter["email"] = email
	}
	if sessionID := c.Query("sessionId"); sessionID != "" {
		filter["sessionId"] = sessionID
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	materials, err := h.store.Materials.Find(ctx, filter)
	if err != nil {
		return h.storeError(c, err, "list materials", "material")
	}
	return c.JSON(materials)
}

func (h *Handler) GetMaterial(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	material, err := h.store.Materials.FindByID(ctx, id)
	if err != nil {
		return h.storeError(c, err, "get material", "material")
	}
	return c.JSON(material)
}

func (h *Handler) UpdateMaterial(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var edit models.MaterialEdit
	if err := parseBody(c, &edit); err != nil {
		return err
	}

	set := bson.M{}
	setString(set, "title", edit.Title)
	setString(set, "link", edit.Link)
	setString(set, "image", edit.Image)
	if len(set) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	res, err := h.store.Materials.UpdateByID(ctx, id, set)
	if err != nil {
		return h.storeError(c, err, "update material", "material")
	}
	if res.MatchedCount == 0 {
		return fiber.NewError(fiber.StatusNotFound, "material not found")
	}
	return c.JSON(res)
}

func (h *Handler) DeleteMaterial(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	res, err := h.store.Materials.DeleteByID(ctx, id)
	if err != nil {
		return h.storeError(c, err, "delete material", "material")
	}
	if res.DeletedCount == 0 {
		return fiber.NewError(fiber.StatusNotFound, "material not found")
	}
	return c.JSON(res)
}
