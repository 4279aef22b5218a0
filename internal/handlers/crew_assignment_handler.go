package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"filmfest/dto"
	"filmfest/internal/authz"
	"filmfest/internal/middleware"
	"filmfest/internal/repository"
	"filmfest/models"
)

type CrewAssignmentStore interface {
	List(ctx context.Context, f repository.CrewAssignmentFilter, page, limit int) ([]models.CrewAssignment, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.CrewAssignment, error)
	ExistsTriple(ctx context.Context, submissionID, memberID, roleID primitive.ObjectID, excludeID *primitive.ObjectID) (bool, error)
	Insert(ctx context.Context, a *models.CrewAssignment) (primitive.ObjectID, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.CrewAssignment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SubmissionLookup is the slice of the submission store the assignment
// handler needs to authorize writes.
type SubmissionLookup interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error)
}

type CrewAssignmentHandler struct {
	assigns CrewAssignmentStore
	subs    SubmissionLookup
}

func NewCrewAssignmentHandler(assigns CrewAssignmentStore, subs SubmissionLookup) *CrewAssignmentHandler {
	return &CrewAssignmentHandler{assigns: assigns, subs: subs}
}

// authorize loads the submission behind an assignment and checks the
// caller may mutate it. A zero status means the write may proceed.
func (h *CrewAssignmentHandler) authorize(c *fiber.Ctx, submissionID primitive.ObjectID) (status int, msg string, err error) {
	sub, err := h.subs.FindByID(c.Context(), submissionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.StatusNotFound, "Submission not found", nil
		}
		return 0, "", err
	}
	if !authz.CanMutateSubmission(middleware.Claims(c), sub) {
		return fiber.StatusForbidden, "Forbidden", nil
	}
	return 0, "", nil
}

func (h *CrewAssignmentHandler) List(c *fiber.Ctx) error {
	var f repository.CrewAssignmentFilter
	var okQ bool
	if f.SubmissionID, okQ = parseIDQuery(c.Query("submissionId")); !okQ {
		return fail(c, fiber.StatusBadRequest, "Invalid submissionId")
	}
	if f.CrewMemberID, okQ = parseIDQuery(c.Query("crewMemberId")); !okQ {
		return fail(c, fiber.StatusBadRequest, "Invalid crewMemberId")
	}
	if f.CrewRoleID, okQ = parseIDQuery(c.Query("crewRoleId")); !okQ {
		return fail(c, fiber.StatusBadRequest, "Invalid crewRoleId")
	}

	page, limit := pagination(c, 50, 200)
	items, total, err := h.assigns.List(c.Context(), f, page, limit)
	if err != nil {
		return internalError(c, err)
	}
	return paged(c, "Crew assignments fetched successfully", items, dto.Meta{Page: page, Limit: limit, Total: total})
}

func (h *CrewAssignmentHandler) Get(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "Crew assignment not found")
	}
	item, err := h.assigns.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Crew assignment not found")
		}
		return internalError(c, err)
	}
	return ok(c, "Crew assignment fetched successfully", item)
}

// Create links a crew member to a submission in a role. The caller must
// be an admin or the submission's creator; the triple is unique.
func (h *CrewAssignmentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCrewAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.SubmissionID == "" || req.CrewMemberID == "" || req.CrewRoleID == "" {
		return fail(c, fiber.StatusBadRequest, "submissionId, crewMemberId and crewRoleId are required")
	}
	submissionID, okSub := parseID(req.SubmissionID)
	memberID, okMember := parseID(req.CrewMemberID)
	roleID, okRole := parseID(req.CrewRoleID)
	if !okSub || !okMember || !okRole {
		return fail(c, fiber.StatusBadRequest, "Invalid submissionId, crewMemberId or crewRoleId")
	}

	if status, msg, err := h.authorize(c, submissionID); err != nil {
		return internalError(c, err)
	} else if status != 0 {
		return fail(c, status, msg)
	}

	exists, err := h.assigns.ExistsTriple(c.Context(), submissionID, memberID, roleID, nil)
	if err != nil {
		return internalError(c, err)
	}
	if exists {
		return fail(c, fiber.StatusConflict, "Crew assignment already exists")
	}

	assignment := &models.CrewAssignment{
		SubmissionID: submissionID,
		CrewMemberID: memberID,
		CrewRoleID:   roleID,
	}
	if _, err := h.assigns.Insert(c.Context(), assignment); err != nil {
		// the unique index backstops the pre-check under races
		if mongo.IsDuplicateKeyError(err) {
			return fail(c, fiber.StatusConflict, "Crew assignment already exists")
		}
		return internalError(c, err)
	}
	return created(c, "Crew assignment created successfully", assignment)
}

// Update changes the member and/or role of an assignment. The target
// submission is immutable, so authorization re-runs against the row's
// existing submission.
func (h *CrewAssignmentHandler) Update(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "Crew assignment not found")
	}
	existing, err := h.assigns.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Crew assignment not found")
		}
		return internalError(c, err)
	}

	if status, msg, err := h.authorize(c, existing.SubmissionID); err != nil {
		return internalError(c, err)
	} else if status != 0 {
		return fail(c, status, msg)
	}

	var req dto.UpdateCrewAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	memberID := existing.CrewMemberID
	roleID := existing.CrewRoleID
	set := bson.M{}
	if req.CrewMemberID != nil {
		parsed, okRef := parseID(*req.CrewMemberID)
		if !okRef {
			return fail(c, fiber.StatusBadRequest, "Invalid crewMemberId")
		}
		memberID = parsed
		set["crewMemberId"] = parsed
	}
	if req.CrewRoleID != nil {
		parsed, okRef := parseID(*req.CrewRoleID)
		if !okRef {
			return fail(c, fiber.StatusBadRequest, "Invalid crewRoleId")
		}
		roleID = parsed
		set["crewRoleId"] = parsed
	}
	if len(set) == 0 {
		return ok(c, "Crew assignment updated successfully", existing)
	}

	exists, err := h.assigns.ExistsTriple(c.Context(), existing.SubmissionID, memberID, roleID, &id)
	if err != nil {
		return internalError(c, err)
	}
	if exists {
		return fail(c, fiber.StatusConflict, "Crew assignment already exists")
	}

	updated, err := h.assigns.UpdateByID(c.Context(), id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Crew assignment not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return fail(c, fiber.StatusConflict, "Crew assignment already exists")
		}
		return internalError(c, err)
	}
	return ok(c, "Crew assignment updated successfully", updated)
}

func (h *CrewAssignmentHandler) Delete(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "Crew assignment not found")
	}
	existing, err := h.assigns.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Crew assignment not found")
		}
		return internalError(c, err)
	}

	if status, msg, err := h.authorize(c, existing.SubmissionID); err != nil {
		return internalError(c, err)
	} else if status != 0 {
		return fail(c, status, msg)
	}

	if err := h.assigns.Delete(c.Context(), id); err != nil {
		return internalError(c, err)
	}
	return ok(c, "Crew assignment deleted successfully", nil)
}
