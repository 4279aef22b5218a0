package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"filmfest/dto"
	"filmfest/internal/repository"
	"filmfest/models"
)

type NominationStore interface {
	List(ctx context.Context, f repository.NominationFilter, page, limit int) ([]repository.NominationListItem, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Nomination, error)
	Insert(ctx context.Context, n *models.Nomination) (primitive.ObjectID, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Nomination, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type NominationHandler struct {
	noms NominationStore
	subs SubmissionLookup
}

func NewNominationHandler(noms NominationStore, subs SubmissionLookup) *NominationHandler {
	return &NominationHandler{noms: noms, subs: subs}
}

// List pages nominations newest-year first with joined submission,
// category and crew member names.
func (h *NominationHandler) List(c *fiber.Ctx) error {
	var f repository.NominationFilter
	var okQ bool
	if f.SubmissionID, okQ = parseIDQuery(c.Query("submissionId")); !okQ {
		return fail(c, fiber.StatusBadRequest, "Invalid submissionId")
	}
	if f.AwardCategoryID, okQ = parseIDQuery(c.Query("awardCategoryId")); !okQ {
		return fail(c, fiber.StatusBadRequest, "Invalid awardCategoryId")
	}
	if f.ContentTypeID, okQ = parseIDQuery(c.Query("contentTypeId")); !okQ {
		return fail(c, fiber.StatusBadRequest, "Invalid contentTypeId")
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid year")
		}
		f.Year = &year
	}
	if winnerStr := c.Query("isWinner"); winnerStr != "" {
		val := winnerStr == "true"
		f.IsWinner = &val
	}

	page, limit := pagination(c, 20, 100)
	items, total, err := h.noms.List(c.Context(), f, page, limit)
	if err != nil {
		return internalError(c, err)
	}
	return paged(c, "Nominations fetched successfully", items, dto.Meta{Page: page, Limit: limit, Total: total})
}

func (h *NominationHandler) Get(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "Nomination not found")
	}
	item, err := h.noms.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Nomination not found")
		}
		return internalError(c, err)
	}
	return ok(c, "Nomination fetched successfully", item)
}

// Create records a nomination. The submission must exist; duplicate
// nominations are allowed.
func (h *NominationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateNominationRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.SubmissionID == "" || req.AwardCategoryID == "" || req.Year == 0 {
		return fail(c, fiber.StatusBadRequest, "submissionId, awardCategoryId and year are required")
	}
	submissionID, okSub := parseID(req.SubmissionID)
	categoryID, okCat := parseID(req.AwardCategoryID)
	if !okSub || !okCat {
		return fail(c, fiber.StatusBadRequest, "Invalid submissionId or awardCategoryId")
	}
	var crewMemberID *primitive.ObjectID
	if req.CrewMemberID != "" {
		parsed, okRef := parseID(req.CrewMemberID)
		if !okRef {
			return fail(c, fiber.StatusBadRequest, "Invalid crewMemberId")
		}
		crewMemberID = &parsed
	}

	if _, err := h.subs.FindByID(c.Context(), submissionID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Submission not found")
		}
		return internalError(c, err)
	}

	nomination := &models.Nomination{
		SubmissionID:    submissionID,
		AwardCategoryID: categoryID,
		Year:            req.Year,
		IsWinner:        req.IsWinner,
		CrewMemberID:    crewMemberID,
	}
	if _, err := h.noms.Insert(c.Context(), nomination); err != nil {
		return internalError(c, err)
	}
	return created(c, "Nomination created successfully", nomination)
}

func (h *NominationHandler) Update(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "Nomination not found")
	}

	var req dto.UpdateNominationRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	set := bson.M{}
	if req.SubmissionID != nil {
		submissionID, okRef := parseID(*req.SubmissionID)
		if !okRef {
			return fail(c, fiber.StatusBadRequest, "Invalid submissionId")
		}
		if _, err := h.subs.FindByID(c.Context(), submissionID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return fail(c, fiber.StatusNotFound, "Submission not found")
			}
			return internalError(c, err)
		}
		set["submissionId"] = submissionID
	}
	if req.AwardCategoryID != nil {
		categoryID, okRef := parseID(*req.AwardCategoryID)
		if !okRef {
			return fail(c, fiber.StatusBadRequest, "Invalid awardCategoryId")
		}
		set["awardCategoryId"] = categoryID
	}
	if req.Year != nil {
		set["year"] = *req.Year
	}
	if req.IsWinner != nil {
		set["isWinner"] = *req.IsWinner
	}
	if req.CrewMemberID != nil {
		if *req.CrewMemberID == "" {
			set["crewMemberId"] = nil
		} else {
			crewMemberID, okRef := parseID(*req.CrewMemberID)
			if !okRef {
				return fail(c, fiber.StatusBadRequest, "Invalid crewMemberId")
			}
			set["crewMemberId"] = crewMemberID
		}
	}
	if len(set) == 0 {
		return fail(c, fiber.StatusBadRequest, "No fields to update")
	}

	updated, err := h.noms.UpdateByID(c.Context(), id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Nomination not found")
		}
		return internalError(c, err)
	}
	return ok(c, "Nomination updated successfully", updated)
}

func (h *NominationHandler) Delete(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "Nomination not found")
	}
	if err := h.noms.Delete(c.Context(), id); err != nil {
		return internalError(c, err)
	}
	return ok(c, "Nomination deleted successfully", nil)
}
