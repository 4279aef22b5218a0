package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"filmfest/dto"
	"filmfest/models"
)

// RefStore is the persistence surface of one reference collection.
type RefStore interface {
	List(ctx context.Context) ([]models.RefEntity, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.RefEntity, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.RefEntity, error)
	FindByName(ctx context.Context, name string) (*models.RefEntity, error)
	Insert(ctx context.Context, e *models.RefEntity) (primitive.ObjectID, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.RefEntity, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ReferenceHandler serves uniform CRUD for one reference entity.
// uniqueName enables the application-level duplicate-name check used
// by genres, countries, languages, crew roles and award categories.
type ReferenceHandler struct {
	store      RefStore
	singular   string
	plural     string
	uniqueName bool
}

func NewReferenceHandler(store RefStore, singular, plural string, uniqueName bool) *ReferenceHandler {
	return &ReferenceHandler{store: store, singular: singular, plural: plural, uniqueName: uniqueName}
}

func (h *ReferenceHandler) List(c *fiber.Ctx) error {
	items, err := h.store.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, h.plural+" fetched successfully", items)
}

func (h *ReferenceHandler) Get(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	item, err := h.store.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, h.singular+" not found")
		}
		return internalError(c, err)
	}
	return ok(c, h.singular+" fetched successfully", item)
}

func (h *ReferenceHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRefEntityRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fail(c, fiber.StatusBadRequest, "Name is required")
	}

	if h.uniqueName {
		if _, err := h.store.FindByName(c.Context(), name); err == nil {
			return fail(c, fiber.StatusConflict, h.singular+" already exists")
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return internalError(c, err)
		}
	}

	entity := &models.RefEntity{Name: name, Description: strings.TrimSpace(req.Description)}
	if _, err := h.store.Insert(c.Context(), entity); err != nil {
		return internalError(c, err)
	}
	return created(c, h.singular+" created successfully", entity)
}

func (h *ReferenceHandler) Update(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req dto.UpdateRefEntityRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	set := bson.M{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return fail(c, fiber.StatusBadRequest, "Name is required")
		}
		set["name"] = name
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if len(set) == 0 {
		return fail(c, fiber.StatusBadRequest, "No fields to update")
	}

	updated, err := h.store.UpdateByID(c.Context(), id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, h.singular+" not found")
		}
		return internalError(c, err)
	}
	return ok(c, h.singular+" updated successfully", updated)
}

// Delete removes the entity without any cascade: join rows referencing
// it are left in place.
func (h *ReferenceHandler) Delete(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.store.Delete(c.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, h.singular+" not found")
		}
		return internalError(c, err)
	}
	return ok(c, h.singular+" deleted successfully", nil)
}
