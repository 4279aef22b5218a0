package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

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

type SubmissionStore interface {
	Insert(ctx context.Context, s *models.Submission) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Submission, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Submission, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.Submission, error)
	AdminList(ctx context.Context, f repository.AdminListFilter, page, limit int) ([]repository.SubmissionListItem, int64, error)
	Overview(ctx context.Context, id primitive.ObjectID) (*repository.SubmissionOverview, error)
}

// GenreLinkStore manages the submission_genres join rows.
type GenreLinkStore interface {
	InsertMany(ctx context.Context, submissionID primitive.ObjectID, genreIDs []primitive.ObjectID) error
	Replace(ctx context.Context, submissionID primitive.ObjectID, genreIDs []primitive.ObjectID) error
	DeleteBySubmission(ctx context.Context, submissionID primitive.ObjectID) error
}

type AssignmentLinkStore interface {
	ListBySubmission(ctx context.Context, submissionID primitive.ObjectID) ([]models.CrewAssignment, error)
	DeleteBySubmission(ctx context.Context, submissionID primitive.ObjectID) error
}

type NominationLinkStore interface {
	DeleteBySubmission(ctx context.Context, submissionID primitive.ObjectID) error
}

// Mailer sends the public-submission receipt. Calls happen off the
// request path.
type Mailer interface {
	SendSubmissionReceipt(to, title, submissionID string, submittedAt time.Time) error
}

// RefData groups the reference stores the overview endpoint joins.
type RefData struct {
	Genres       RefStore
	Countries    RefStore
	Languages    RefStore
	ContentTypes RefStore
	CrewRoles    RefStore
}

type SubmissionHandler struct {
	subs    SubmissionStore
	links   GenreLinkStore
	assigns AssignmentLinkStore
	noms    NominationLinkStore
	members CrewMemberStore
	refs    RefData
	mail    Mailer
}

func NewSubmissionHandler(subs SubmissionStore, links GenreLinkStore, assigns AssignmentLinkStore, noms NominationLinkStore, members CrewMemberStore, refs RefData, mail Mailer) *SubmissionHandler {
	return &SubmissionHandler{
		subs:    subs,
		links:   links,
		assigns: assigns,
		noms:    noms,
		members: members,
		refs:    refs,
		mail:    mail,
	}
}

const missingFieldsMsg = "Missing required fields: title, releaseDate, languageId, countryId, contentTypeId"
const genreRequiredMsg = "At least one genre (genreIds[]) is required"

// buildSubmission validates the create payload into a Submission,
// returning a client-facing message on rejection.
func buildSubmission(req *dto.CreateSubmissionRequest, creatorID primitive.ObjectID) (*models.Submission, string) {
	if strings.TrimSpace(req.Title) == "" || req.ReleaseDate == "" ||
		req.LanguageID == "" || req.CountryID == "" || req.ContentTypeID == "" {
		return nil, missingFieldsMsg
	}
	genreIDs, okIDs := parseIDList(req.GenreIDs)
	if !okIDs {
		return nil, "Invalid genre id"
	}
	if len(genreIDs) == 0 {
		return nil, genreRequiredMsg
	}
	releaseDate, okDate := dto.ParseDate(req.ReleaseDate)
	if !okDate {
		return nil, "Invalid releaseDate"
	}
	languageID, okLang := parseID(req.LanguageID)
	countryID, okCountry := parseID(req.CountryID)
	contentTypeID, okType := parseID(req.ContentTypeID)
	if !okLang || !okCountry || !okType {
		return nil, "Invalid languageId, countryId or contentTypeId"
	}

	return &models.Submission{
		CreatorID:         creatorID,
		Title:             strings.TrimSpace(req.Title),
		Synopsis:          req.Synopsis,
		ReleaseDate:       releaseDate,
		PotraitImageURL:   req.PotraitImageURL,
		LandscapeImageURL: req.LandscapeImageURL,
		ImdbURL:           req.ImdbURL,
		TrailerURL:        req.TrailerURL,
		ProductionHouse:   strings.TrimSpace(req.ProductionHouse),
		Distributor:       strings.TrimSpace(req.Distributor),
		Status:            models.StatusSubmitted,
		ContentTypeID:     contentTypeID,
		LanguageID:        languageID,
		CountryID:         countryID,
		GenreIDs:          genreIDs,
	}, ""
}

// linkGenres inserts the join rows best-effort: a failure is logged,
// not surfaced, and does not roll back the submission.
func (h *SubmissionHandler) linkGenres(ctx context.Context, submissionID primitive.ObjectID, genreIDs []primitive.ObjectID) {
	if err := h.links.InsertMany(ctx, submissionID, genreIDs); err != nil {
		slog.Error("failed to create submission genre links",
			slog.String("submissionId", submissionID.Hex()),
			slog.String("error", err.Error()),
		)
	}
}

// Create handles the authenticated CMS create form.
func (h *SubmissionHandler) Create(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	creatorID, okID := parseID(claims.Subject)
	if !okID {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	sub, msg := buildSubmission(&req, creatorID)
	if msg != "" {
		return fail(c, fiber.StatusBadRequest, msg)
	}

	if _, err := h.subs.Insert(c.Context(), sub); err != nil {
		return internalError(c, err)
	}
	h.linkGenres(c.Context(), sub.ID, sub.GenreIDs)

	return created(c, "Submission created successfully", sub)
}

// CreatePublic handles the unauthenticated submission form: a
// synthetic creator id, an optional proposed-crew payload and an
// optional receipt email.
func (h *SubmissionHandler) CreatePublic(c *fiber.Ctx) error {
	var req dto.CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	sub, msg := buildSubmission(&req, primitive.NewObjectID())
	if msg != "" {
		return fail(c, fiber.StatusBadRequest, msg)
	}
	crew := req.Crew.Normalize()
	sub.Crew = &crew

	if _, err := h.subs.Insert(c.Context(), sub); err != nil {
		return internalError(c, err)
	}
	h.linkGenres(c.Context(), sub.ID, sub.GenreIDs)

	if contact := strings.TrimSpace(strings.ToLower(req.ContactEmail)); contact != "" && h.mail != nil {
		id := sub.ID.Hex()
		title := sub.Title
		submittedAt := sub.CreatedAt
		go func() {
			if err := h.mail.SendSubmissionReceipt(contact, title, id, submittedAt); err != nil {
				slog.Error("mail send failed",
					slog.String("submissionId", id),
					slog.String("error", err.Error()),
				)
			}
		}()
	}

	return created(c, "Submission created successfully", sub)
}

// Update applies a partial update. Admins may edit any submission;
// the owner only while it is still SUBMITTED.
func (h *SubmissionHandler) Update(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "Submission not found")
	}
	claims := middleware.Claims(c)

	existing, err := h.subs.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Submission not found")
		}
		return internalError(c, err)
	}
	if !authz.CanMutateSubmission(claims, existing) {
		return fail(c, fiber.StatusForbidden, "Forbidden")
	}
	if !authz.OwnerCanEdit(claims, existing) {
		return fail(c, fiber.StatusBadRequest, "Cannot modify a reviewed submission")
	}

	var req dto.UpdateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Synopsis != nil {
		set["synopsis"] = *req.Synopsis
	}
	if req.ReleaseDate != nil {
		releaseDate, okDate := dto.ParseDate(*req.ReleaseDate)
		if !okDate {
			return fail(c, fiber.StatusBadRequest, "Invalid releaseDate")
		}
		set["releaseDate"] = releaseDate
	}
	if req.PotraitImageURL != nil {
		set["potraitImageUrl"] = *req.PotraitImageURL
	}
	if req.LandscapeImageURL != nil {
		set["landscapeImageUrl"] = *req.LandscapeImageURL
	}
	if req.ImdbURL != nil {
		set["imdbUrl"] = *req.ImdbURL
	}
	if req.TrailerURL != nil {
		set["trailerUrl"] = *req.TrailerURL
	}
	if req.LanguageID != nil {
		languageID, okRef := parseID(*req.LanguageID)
		if !okRef {
			return fail(c, fiber.StatusBadRequest, "Invalid languageId")
		}
		set["languageId"] = languageID
	}
	if req.CountryID != nil {
		countryID, okRef := parseID(*req.CountryID)
		if !okRef {
			return fail(c, fiber.StatusBadRequest, "Invalid countryId")
		}
		set["countryId"] = countryID
	}
	if req.ContentTypeID != nil {
		contentTypeID, okRef := parseID(*req.ContentTypeID)
		if !okRef {
			return fail(c, fiber.StatusBadRequest, "Invalid contentTypeId")
		}
		set["contentTypeId"] = contentTypeID
	}
	if req.IsFeatured != nil && claims.Role == models.RoleAdmin {
		set["isFeatured"] = *req.IsFeatured
	}
	if req.ProductionHouse != nil {
		set["productionHouse"] = strings.TrimSpace(*req.ProductionHouse)
	}
	if req.Distributor != nil {
		set["distributor"] = strings.TrimSpace(*req.Distributor)
	}

	var genreIDs []primitive.ObjectID
	updatingGenres := req.GenreIDs != nil
	if updatingGenres {
		ids, okIDs := parseIDList(req.GenreIDs)
		if !okIDs {
			return fail(c, fiber.StatusBadRequest, "Invalid genre id")
		}
		if len(ids) == 0 {
			return fail(c, fiber.StatusBadRequest, genreRequiredMsg)
		}
		genreIDs = ids
		set["genreIds"] = ids
	}

	updated, err := h.subs.UpdateByID(c.Context(), id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Submission not found")
		}
		return internalError(c, err)
	}

	if updatingGenres {
		if err := h.links.Replace(c.Context(), id, genreIDs); err != nil {
			slog.Error("failed to replace submission genre links",
				slog.String("submissionId", id.Hex()),
				slog.String("error", err.Error()),
			)
		}
	}

	return ok(c, "Submission updated successfully", updated)
}

// MyList returns the caller's own submissions, newest first.
func (h *SubmissionHandler) MyList(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	creatorID, okID := parseID(claims.Subject)
	if !okID {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	items, err := h.subs.FindByCreator(c.Context(), creatorID)
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, "My submissions fetched successfully", items)
}

func (h *SubmissionHandler) Get(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "Submission not found")
	}
	item, err := h.subs.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Submission not found")
		}
		return internalError(c, err)
	}
	return ok(c, "Submission fetched successfully", item)
}

// expandCrew resolves crew assignments to member and role names.
// Expansion failures degrade to the bare overview rather than failing
// the request.
func (h *SubmissionHandler) expandCrew(ctx context.Context, ov *repository.SubmissionOverview) {
	assigns, err := h.assigns.ListBySubmission(ctx, ov.ID)
	if err != nil {
		slog.Error("crew expansion failed", slog.String("error", err.Error()))
		return
	}
	memberIDs := make([]primitive.ObjectID, 0, len(assigns))
	roleIDs := make([]primitive.ObjectID, 0, len(assigns))
	for _, a := range assigns {
		memberIDs = append(memberIDs, a.CrewMemberID)
		roleIDs = append(roleIDs, a.CrewRoleID)
	}
	memberDocs, err := h.members.FindByIDs(ctx, memberIDs)
	if err != nil {
		slog.Error("crew expansion failed", slog.String("error", err.Error()))
		return
	}
	roleDocs, err := h.refs.CrewRoles.FindByIDs(ctx, roleIDs)
	if err != nil {
		slog.Error("crew expansion failed", slog.String("error", err.Error()))
		return
	}
	memberByID := make(map[primitive.ObjectID]models.CrewMember, len(memberDocs))
	for _, m := range memberDocs {
		memberByID[m.ID] = m
	}
	roleByID := make(map[primitive.ObjectID]models.RefEntity, len(roleDocs))
	for _, r := range roleDocs {
		roleByID[r.ID] = r
	}

	views := make([]repository.AssignmentView, 0, len(assigns))
	for _, a := range assigns {
		view := repository.AssignmentView{
			ID:           a.ID,
			CrewMemberID: a.CrewMemberID,
			CrewRoleID:   a.CrewRoleID,
		}
		if m, found := memberByID[a.CrewMemberID]; found {
			view.Member = &repository.NamedRef{ID: m.ID, Name: m.Name}
		}
		if r, found := roleByID[a.CrewRoleID]; found {
			view.Role = &repository.NamedRef{ID: r.ID, Name: r.Name}
		}
		views = append(views, view)
	}
	ov.CrewAssignments = views
}

func (h *SubmissionHandler) expandMeta(ctx context.Context, ov *repository.SubmissionOverview) {
	meta := &repository.OverviewMeta{}
	var err error
	if meta.Genres, err = h.refs.Genres.List(ctx); err != nil {
		slog.Error("meta expansion failed", slog.String("error", err.Error()))
		return
	}
	if meta.Countries, err = h.refs.Countries.List(ctx); err != nil {
		slog.Error("meta expansion failed", slog.String("error", err.Error()))
		return
	}
	if meta.Languages, err = h.refs.Languages.List(ctx); err != nil {
		slog.Error("meta expansion failed", slog.String("error", err.Error()))
		return
	}
	if meta.ContentTypes, err = h.refs.ContentTypes.List(ctx); err != nil {
		slog.Error("meta expansion failed", slog.String("error", err.Error()))
		return
	}
	ov.Meta = meta
}

// Overview returns one submission with its reference data joined.
// ?expand=crew,meta adds resolved crew assignments and the editor
// dropdown lists.
// @Summary      Submission overview
// @Tags         submissions
// @Produce      json
// @Param        id      path      string  true   "Submission id"
// @Param        expand  query     string  false  "Comma-separated: crew, meta"
// @Success      200     {object}  dto.Response
// @Router       /api/v1/submissions/{id}/overview [get]
func (h *SubmissionHandler) Overview(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "Submission not found")
	}

	expand := strings.Split(strings.ToLower(c.Query("expand")), ",")
	includeCrew := false
	includeMeta := false
	for _, e := range expand {
		switch strings.TrimSpace(e) {
		case "crew":
			includeCrew = true
		case "meta":
			includeMeta = true
		}
	}

	overview, err := h.subs.Overview(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Submission not found")
		}
		return internalError(c, err)
	}
	if includeCrew {
		h.expandCrew(c.Context(), overview)
	}
	if includeMeta {
		h.expandMeta(c.Context(), overview)
	}
	return ok(c, "Submission overview fetched successfully", overview)
}

// AdminList pages submissions for the review dashboard.
func (h *SubmissionHandler) AdminList(c *fiber.Ctx) error {
	var f repository.AdminListFilter
	f.Status = c.Query("status")
	f.TitleQuery = strings.TrimSpace(c.Query("title"))

	var okQ bool
	if f.LanguageID, okQ = parseIDQuery(c.Query("languageId")); !okQ {
		return fail(c, fiber.StatusBadRequest, "Invalid languageId")
	}
	if f.CountryID, okQ = parseIDQuery(c.Query("countryId")); !okQ {
		return fail(c, fiber.StatusBadRequest, "Invalid countryId")
	}
	if f.ContentTypeID, okQ = parseIDQuery(c.Query("contentTypeId")); !okQ {
		return fail(c, fiber.StatusBadRequest, "Invalid contentTypeId")
	}
	if featured := c.Query("featured"); featured != "" {
		val := featured == "true"
		f.Featured = &val
	}

	page, limit := pagination(c, 20, 100)
	items, total, err := h.subs.AdminList(c.Context(), f, page, limit)
	if err != nil {
		return internalError(c, err)
	}
	return paged(c, "Submissions fetched successfully", items, dto.Meta{Page: page, Limit: limit, Total: total})
}

func (h *SubmissionHandler) setStatus(c *fiber.Ctx, status, message string) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "Submission not found")
	}
	updated, err := h.subs.SetStatus(c.Context(), id, status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Submission not found")
		}
		return internalError(c, err)
	}
	return ok(c, message, updated)
}

// Approve sets status APPROVED unconditionally; re-approving is a
// no-op that still returns 200.
func (h *SubmissionHandler) Approve(c *fiber.Ctx) error {
	return h.setStatus(c, models.StatusApproved, "Submission approved")
}

func (h *SubmissionHandler) Reject(c *fiber.Ctx) error {
	return h.setStatus(c, models.StatusRejected, "Submission rejected")
}

// Delete removes a submission with best-effort cascades over its genre
// links, crew assignments and nominations. A failed cascade step is
// logged and the delete proceeds; orphaned rows are accepted.
func (h *SubmissionHandler) Delete(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "Submission not found")
	}
	if _, err := h.subs.FindByID(c.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Submission not found")
		}
		return internalError(c, err)
	}

	if err := h.links.DeleteBySubmission(c.Context(), id); err != nil {
		slog.Error("cascade delete of genre links failed",
			slog.String("submissionId", id.Hex()), slog.String("error", err.Error()))
	}
	if err := h.assigns.DeleteBySubmission(c.Context(), id); err != nil {
		slog.Error("cascade delete of crew assignments failed",
			slog.String("submissionId", id.Hex()), slog.String("error", err.Error()))
	}
	if err := h.noms.DeleteBySubmission(c.Context(), id); err != nil {
		slog.Error("cascade delete of nominations failed",
			slog.String("submissionId", id.Hex()), slog.String("error", err.Error()))
	}

	if err := h.subs.Delete(c.Context(), id); err != nil {
		return internalError(c, err)
	}
	return ok(c, "Submission deleted successfully", nil)
}
