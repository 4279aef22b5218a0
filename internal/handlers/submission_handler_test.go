package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"filmfest/internal/middleware"
	"filmfest/models"
	"filmfest/pkg/auth"
)

type submissionFixture struct {
	app     *fiber.App
	tokens  auth.TokenManager
	subs    *fakeSubmissionStore
	links   *fakeGenreLinkStore
	assigns *fakeAssignmentStore
	noms    *fakeNominationLinks
	genres  *fakeRefStore
	genreID primitive.ObjectID
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()
	f := &submissionFixture{
		tokens:  newTestTokens(t),
		subs:    newFakeSubmissionStore(),
		links:   newFakeGenreLinkStore(),
		assigns: newFakeAssignmentStore(),
		noms:    &fakeNominationLinks{},
		genres:  newFakeRefStore(),
	}
	f.genreID = f.genres.seed("Drama")

	refs := RefData{
		Genres:       f.genres,
		Countries:    newFakeRefStore(),
		Languages:    newFakeRefStore(),
		ContentTypes: newFakeRefStore(),
		CrewRoles:    newFakeRefStore(),
	}
	h := NewSubmissionHandler(f.subs, f.links, f.assigns, f.noms, newFakeCrewMemberStore(), refs, nil)

	requireAuth := middleware.RequireAuth(f.tokens)
	requireStaff := middleware.RequireRole(models.RoleAdmin, models.RoleStaff)

	f.app = fiber.New()
	grp := f.app.Group("/api/v1/submissions")
	grp.Post("/public", h.CreatePublic)
	grp.Post("/", requireAuth, requireStaff, h.Create)
	grp.Get("/", requireAuth, requireStaff, h.AdminList)
	grp.Get("/my/list", requireAuth, h.MyList)
	grp.Get("/:id/overview", h.Overview)
	grp.Patch("/:id/approve", requireAuth, requireStaff, h.Approve)
	grp.Patch("/:id/reject", requireAuth, requireStaff, h.Reject)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", requireAuth, h.Update)
	grp.Delete("/:id", requireAuth, requireStaff, h.Delete)
	return f
}

func (f *submissionFixture) validBody() fiber.Map {
	return fiber.Map{
		"title":         "The Long Night",
		"synopsis":      "A film.",
		"releaseDate":   "2024-03-01",
		"languageId":    primitive.NewObjectID().Hex(),
		"countryId":     primitive.NewObjectID().Hex(),
		"contentTypeId": primitive.NewObjectID().Hex(),
		"genreIds":      []string{f.genreID.Hex()},
	}
}

// seed inserts a submission owned by creator directly into the store.
func (f *submissionFixture) seed(t *testing.T, creator primitive.ObjectID, status string) primitive.ObjectID {
	t.Helper()
	sub := &models.Submission{
		CreatorID:     creator,
		Title:         "Seeded",
		Status:        status,
		LanguageID:    primitive.NewObjectID(),
		CountryID:     primitive.NewObjectID(),
		ContentTypeID: primitive.NewObjectID(),
		GenreIDs:      []primitive.ObjectID{f.genreID},
	}
	_, err := f.subs.Insert(context.Background(), sub)
	require.NoError(t, err)
	return sub.ID
}

func TestPublicCreateValidation(t *testing.T) {
	f := newSubmissionFixture(t)

	body := f.validBody()
	delete(body, "title")
	resp, err := f.app.Test(jsonRequest(t, http.MethodPost, "/api/v1/submissions/public", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeEnvelope(t, resp).Message, "Missing required fields")

	body = f.validBody()
	body["genreIds"] = []string{}
	resp, err = f.app.Test(jsonRequest(t, http.MethodPost, "/api/v1/submissions/public", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "At least one genre (genreIds[]) is required", decodeEnvelope(t, resp).Message)

	body = f.validBody()
	body["releaseDate"] = "03/01/2024"
	resp, err = f.app.Test(jsonRequest(t, http.MethodPost, "/api/v1/submissions/public", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestPublicCreateSucceeds(t *testing.T) {
	f := newSubmissionFixture(t)

	body := f.validBody()
	body["crew"] = fiber.Map{
		"directors": []fiber.Map{{"fullName": " Ada Lovelace "}, {"fullName": ""}},
	}
	resp, err := f.app.Test(jsonRequest(t, http.MethodPost, "/api/v1/submissions/public", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var data models.Submission
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, models.StatusSubmitted, data.Status)
	assert.False(t, data.CreatorID.IsZero(), "public submissions get a synthetic creator")
	require.NotNil(t, data.Crew)
	require.Len(t, data.Crew.Directors, 1)
	assert.Equal(t, "Ada Lovelace", data.Crew.Directors[0].FullName)

	// genre join rows were written
	assert.Len(t, f.links.links[data.ID], 1)
}

func TestStaffCreateRequiresRole(t *testing.T) {
	f := newSubmissionFixture(t)

	resp, err := f.app.Test(jsonRequest(t, http.MethodPost, "/api/v1/submissions/", f.validBody()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	req := jsonRequest(t, http.MethodPost, "/api/v1/submissions/", f.validBody())
	req.Header.Set("Authorization", bearerFor(t, f.tokens, primitive.NewObjectID(), models.RoleUser))
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	req = jsonRequest(t, http.MethodPost, "/api/v1/submissions/", f.validBody())
	req.Header.Set("Authorization", bearerFor(t, f.tokens, primitive.NewObjectID(), models.RoleStaff))
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateOwnership(t *testing.T) {
	f := newSubmissionFixture(t)
	owner := primitive.NewObjectID()
	id := f.seed(t, owner, models.StatusSubmitted)

	// a stranger may not touch it
	req := jsonRequest(t, http.MethodPut, "/api/v1/submissions/"+id.Hex(), fiber.Map{"title": "Hacked"})
	req.Header.Set("Authorization", bearerFor(t, f.tokens, primitive.NewObjectID(), models.RoleUser))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// the owner may, while still pending
	req = jsonRequest(t, http.MethodPut, "/api/v1/submissions/"+id.Hex(), fiber.Map{"title": "New Title"})
	req.Header.Set("Authorization", bearerFor(t, f.tokens, owner, models.RoleUser))
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	stored, err := f.subs.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "New Title", stored.Title)
}

func TestOwnerCannotEditReviewedSubmission(t *testing.T) {
	f := newSubmissionFixture(t)
	owner := primitive.NewObjectID()
	id := f.seed(t, owner, models.StatusApproved)

	req := jsonRequest(t, http.MethodPut, "/api/v1/submissions/"+id.Hex(), fiber.Map{"title": "Late Edit"})
	req.Header.Set("Authorization", bearerFor(t, f.tokens, owner, models.RoleUser))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cannot modify a reviewed submission", decodeEnvelope(t, resp).Message)

	// admins are not frozen out
	req = jsonRequest(t, http.MethodPut, "/api/v1/submissions/"+id.Hex(), fiber.Map{"title": "Admin Edit"})
	req.Header.Set("Authorization", bearerFor(t, f.tokens, primitive.NewObjectID(), models.RoleAdmin))
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestIsFeaturedIsAdminOnly(t *testing.T) {
	f := newSubmissionFixture(t)
	owner := primitive.NewObjectID()
	id := f.seed(t, owner, models.StatusSubmitted)

	req := jsonRequest(t, http.MethodPut, "/api/v1/submissions/"+id.Hex(), fiber.Map{"isFeatured": true, "title": "T"})
	req.Header.Set("Authorization", bearerFor(t, f.tokens, owner, models.RoleUser))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	stored, err := f.subs.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, stored.IsFeatured, "owner cannot feature their own film")

	req = jsonRequest(t, http.MethodPut, "/api/v1/submissions/"+id.Hex(), fiber.Map{"isFeatured": true})
	req.Header.Set("Authorization", bearerFor(t, f.tokens, primitive.NewObjectID(), models.RoleAdmin))
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	stored, err = f.subs.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, stored.IsFeatured)
}

func TestUpdateReplacesGenreLinks(t *testing.T) {
	f := newSubmissionFixture(t)
	owner := primitive.NewObjectID()
	id := f.seed(t, owner, models.StatusSubmitted)
	other := f.genres.seed("Comedy")

	req := jsonRequest(t, http.MethodPut, "/api/v1/submissions/"+id.Hex(), fiber.Map{
		"genreIds": []string{other.Hex()},
	})
	req.Header.Set("Authorization", bearerFor(t, f.tokens, owner, models.RoleUser))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, 1, f.links.replaced)
	assert.Equal(t, []primitive.ObjectID{other}, f.links.links[id])
}

func TestApproveAndRejectAreIdempotent(t *testing.T) {
	f := newSubmissionFixture(t)
	id := f.seed(t, primitive.NewObjectID(), models.StatusSubmitted)
	admin := bearerFor(t, f.tokens, primitive.NewObjectID(), models.RoleAdmin)

	for i := 0; i < 2; i++ {
		req := jsonRequest(t, http.MethodPatch, "/api/v1/submissions/"+id.Hex()+"/approve", nil)
		req.Header.Set("Authorization", admin)
		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
	stored, err := f.subs.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, stored.Status)

	req := jsonRequest(t, http.MethodPatch, "/api/v1/submissions/"+id.Hex()+"/reject", nil)
	req.Header.Set("Authorization", admin)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	stored, err = f.subs.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, stored.Status)
}

func TestDeleteCascades(t *testing.T) {
	f := newSubmissionFixture(t)
	id := f.seed(t, primitive.NewObjectID(), models.StatusSubmitted)
	f.links.links[id] = []primitive.ObjectID{f.genreID}
	_, err := f.assigns.Insert(context.Background(), &models.CrewAssignment{
		SubmissionID: id,
		CrewMemberID: primitive.NewObjectID(),
		CrewRoleID:   primitive.NewObjectID(),
	})
	require.NoError(t, err)

	req := jsonRequest(t, http.MethodDelete, "/api/v1/submissions/"+id.Hex(), nil)
	req.Header.Set("Authorization", bearerFor(t, f.tokens, primitive.NewObjectID(), models.RoleAdmin))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	_, err = f.subs.FindByID(context.Background(), id)
	assert.Error(t, err)
	assert.Empty(t, f.links.links[id])
	remaining, err := f.assigns.ListBySubmission(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.Contains(t, f.noms.deleted, id)
}

func TestDeleteSurvivesFailingCascade(t *testing.T) {
	f := newSubmissionFixture(t)
	id := f.seed(t, primitive.NewObjectID(), models.StatusSubmitted)
	f.noms.failErr = errors.New("nominations collection unavailable")

	req := jsonRequest(t, http.MethodDelete, "/api/v1/submissions/"+id.Hex(), nil)
	req.Header.Set("Authorization", bearerFor(t, f.tokens, primitive.NewObjectID(), models.RoleAdmin))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "delete proceeds even when a cascade step fails")
	resp.Body.Close()

	_, err = f.subs.FindByID(context.Background(), id)
	assert.Error(t, err)
}

func TestOverviewExpandCrew(t *testing.T) {
	f := newSubmissionFixture(t)
	id := f.seed(t, primitive.NewObjectID(), models.StatusApproved)

	members := newFakeCrewMemberStore()
	// rebuild the fixture app with a member store we control
	refs := RefData{
		Genres:       f.genres,
		Countries:    newFakeRefStore(),
		Languages:    newFakeRefStore(),
		ContentTypes: newFakeRefStore(),
		CrewRoles:    newFakeRefStore(),
	}
	member := &models.CrewMember{Name: "Greta"}
	_, err := members.Insert(context.Background(), member)
	require.NoError(t, err)
	roleID := refs.CrewRoles.(*fakeRefStore).seed("Director")
	_, err = f.assigns.Insert(context.Background(), &models.CrewAssignment{
		SubmissionID: id,
		CrewMemberID: member.ID,
		CrewRoleID:   roleID,
	})
	require.NoError(t, err)

	h := NewSubmissionHandler(f.subs, f.links, f.assigns, f.noms, members, refs, nil)
	app := fiber.New()
	app.Get("/api/v1/submissions/:id/overview", h.Overview)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/v1/submissions/"+id.Hex()+"/overview?expand=crew,meta", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var data struct {
		CrewAssignments []struct {
			Member *struct {
				Name string `json:"name"`
			} `json:"member"`
			Role *struct {
				Name string `json:"name"`
			} `json:"role"`
		} `json:"crewAssignments"`
		Meta *struct {
			Genres []any `json:"genres"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.CrewAssignments, 1)
	require.NotNil(t, data.CrewAssignments[0].Member)
	assert.Equal(t, "Greta", data.CrewAssignments[0].Member.Name)
	require.NotNil(t, data.CrewAssignments[0].Role)
	assert.Equal(t, "Director", data.CrewAssignments[0].Role.Name)
	require.NotNil(t, data.Meta)
	assert.Len(t, data.Meta.Genres, 1)
}

func TestOverviewNotFound(t *testing.T) {
	f := newSubmissionFixture(t)

	resp, err := f.app.Test(jsonRequest(t, http.MethodGet, "/api/v1/submissions/"+primitive.NewObjectID().Hex()+"/overview", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestMyList(t *testing.T) {
	f := newSubmissionFixture(t)
	owner := primitive.NewObjectID()
	f.seed(t, owner, models.StatusSubmitted)
	f.seed(t, owner, models.StatusApproved)
	f.seed(t, primitive.NewObjectID(), models.StatusSubmitted)

	req := jsonRequest(t, http.MethodGet, "/api/v1/submissions/my/list", nil)
	req.Header.Set("Authorization", bearerFor(t, f.tokens, owner, models.RoleUser))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var items []models.Submission
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)
}

func TestAdminListPaginationMeta(t *testing.T) {
	f := newSubmissionFixture(t)
	f.seed(t, primitive.NewObjectID(), models.StatusSubmitted)
	f.seed(t, primitive.NewObjectID(), models.StatusApproved)

	req := jsonRequest(t, http.MethodGet, "/api/v1/submissions/?status=SUBMITTED&page=1&limit=10", nil)
	req.Header.Set("Authorization", bearerFor(t, f.tokens, primitive.NewObjectID(), models.RoleStaff))
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Page)
	assert.Equal(t, 10, env.Meta.Limit)
	assert.Equal(t, int64(1), env.Meta.Total)
}
