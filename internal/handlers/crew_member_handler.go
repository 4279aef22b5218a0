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

type CrewMemberStore interface {
	List(ctx context.Context) ([]models.CrewMember, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.CrewMember, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.CrewMember, error)
	Insert(ctx context.Context, m *models.CrewMember) (primitive.ObjectID, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.CrewMember, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CrewMemberHandler struct {
	members CrewMemberStore
}

func NewCrewMemberHandler(members CrewMemberStore) *CrewMemberHandler {
	return &CrewMemberHandler{members: members}
}

func (h *CrewMemberHandler) List(c *fiber.Ctx) error {
	items, err := h.members.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, "Crew members fetched successfully", items)
}

func (h *CrewMemberHandler) Get(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	item, err := h.members.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Crew member not found")
		}
		return internalError(c, err)
	}
	return ok(c, "Crew member fetched successfully", item)
}

func (h *CrewMemberHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCrewMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fail(c, fiber.StatusBadRequest, "Name is required")
	}

	member := &models.CrewMember{
		Name:           name,
		Biography:      strings.TrimSpace(req.Biography),
		ProfilePicture: strings.TrimSpace(req.ProfilePicture),
		Description:    strings.TrimSpace(req.Description),
	}
	if _, err := h.members.Insert(c.Context(), member); err != nil {
		return internalError(c, err)
	}
	return created(c, "Crew member created successfully", member)
}

func (h *CrewMemberHandler) Update(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req dto.UpdateCrewMemberRequest
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
	if req.Biography != nil {
		set["biography"] = strings.TrimSpace(*req.Biography)
	}
	if req.ProfilePicture != nil {
		set["profilePicture"] = strings.TrimSpace(*req.ProfilePicture)
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if len(set) == 0 {
		return fail(c, fiber.StatusBadRequest, "No fields to update")
	}

	updated, err := h.members.UpdateByID(c.Context(), id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Crew member not found")
		}
		return internalError(c, err)
	}
	return ok(c, "Crew member updated successfully", updated)
}

func (h *CrewMemberHandler) Delete(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.members.Delete(c.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Crew member not found")
		}
		return internalError(c, err)
	}
	return ok(c, "Crew member deleted successfully", nil)
}
