package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"filmfest/internal/repository"
	"filmfest/models"
	"filmfest/pkg/auth"
)

func newTestTokens(t *testing.T) auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager("test-access", "test-refresh", 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	return tm
}

func bearerFor(t *testing.T, tm auth.TokenManager, userID primitive.ObjectID, role string) string {
	t.Helper()
	pair, err := tm.GeneratePair(userID.Hex(), role)
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// fakeUserStore holds users in memory keyed by id.
type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]*models.User{}}
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, found := s.users[id]
	if !found {
		return nil, mongo.ErrNoDocuments
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) Insert(_ context.Context, u *models.User) (primitive.ObjectID, error) {
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	copied := *u
	s.users[u.ID] = &copied
	return u.ID, nil
}

func (s *fakeUserStore) UpdateByID(_ context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	u, found := s.users[id]
	if !found {
		return nil, mongo.ErrNoDocuments
	}
	if v, present := set["fullName"]; present {
		u.FullName = v.(string)
	}
	if v, present := set["bio"]; present {
		u.Bio = v.(string)
	}
	if v, present := set["profilePicture"]; present {
		u.ProfilePicture = v.(string)
	}
	if v, present := set["phoneNumber"]; present {
		u.PhoneNumber = v.(string)
	}
	copied := *u
	return &copied, nil
}

// fakeSubmissionStore covers the handler-facing surface with a map.
type fakeSubmissionStore struct {
	subs map[primitive.ObjectID]*models.Submission
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{subs: map[primitive.ObjectID]*models.Submission{}}
}

func (s *fakeSubmissionStore) Insert(_ context.Context, sub *models.Submission) (primitive.ObjectID, error) {
	sub.ID = primitive.NewObjectID()
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	copied := *sub
	s.subs[sub.ID] = &copied
	return sub.ID, nil
}

func (s *fakeSubmissionStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Submission, error) {
	sub, found := s.subs[id]
	if !found {
		return nil, mongo.ErrNoDocuments
	}
	copied := *sub
	return &copied, nil
}

func (s *fakeSubmissionStore) UpdateByID(_ context.Context, id primitive.ObjectID, set bson.M) (*models.Submission, error) {
	sub, found := s.subs[id]
	if !found {
		return nil, mongo.ErrNoDocuments
	}
	if v, present := set["title"]; present {
		sub.Title = v.(string)
	}
	if v, present := set["synopsis"]; present {
		sub.Synopsis = v.(string)
	}
	if v, present := set["isFeatured"]; present {
		sub.IsFeatured = v.(bool)
	}
	if v, present := set["genreIds"]; present {
		sub.GenreIDs = v.([]primitive.ObjectID)
	}
	sub.UpdatedAt = time.Now()
	copied := *sub
	return &copied, nil
}

func (s *fakeSubmissionStore) SetStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Submission, error) {
	sub, found := s.subs[id]
	if !found {
		return nil, mongo.ErrNoDocuments
	}
	sub.Status = status
	sub.UpdatedAt = time.Now()
	copied := *sub
	return &copied, nil
}

func (s *fakeSubmissionStore) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(s.subs, id)
	return nil
}

func (s *fakeSubmissionStore) FindByCreator(_ context.Context, creatorID primitive.ObjectID) ([]models.Submission, error) {
	out := []models.Submission{}
	for _, sub := range s.subs {
		if sub.CreatorID == creatorID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (s *fakeSubmissionStore) AdminList(_ context.Context, f repository.AdminListFilter, page, limit int) ([]repository.SubmissionListItem, int64, error) {
	out := []repository.SubmissionListItem{}
	for _, sub := range s.subs {
		if f.Status != "" && sub.Status != f.Status {
			continue
		}
		out = append(out, repository.SubmissionListItem{Submission: *sub})
	}
	return out, int64(len(out)), nil
}

func (s *fakeSubmissionStore) Overview(_ context.Context, id primitive.ObjectID) (*repository.SubmissionOverview, error) {
	sub, found := s.subs[id]
	if !found {
		return nil, mongo.ErrNoDocuments
	}
	return &repository.SubmissionOverview{Submission: *sub, Genres: []repository.NamedRef{}}, nil
}

// fakeGenreLinkStore records calls; failErr makes every write fail.
type fakeGenreLinkStore struct {
	links    map[primitive.ObjectID][]primitive.ObjectID
	failErr  error
	replaced int
}

func newFakeGenreLinkStore() *fakeGenreLinkStore {
	return &fakeGenreLinkStore{links: map[primitive.ObjectID][]primitive.ObjectID{}}
}

func (s *fakeGenreLinkStore) InsertMany(_ context.Context, submissionID primitive.ObjectID, genreIDs []primitive.ObjectID) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.links[submissionID] = append(s.links[submissionID], genreIDs...)
	return nil
}

func (s *fakeGenreLinkStore) Replace(_ context.Context, submissionID primitive.ObjectID, genreIDs []primitive.ObjectID) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.replaced++
	s.links[submissionID] = append([]primitive.ObjectID{}, genreIDs...)
	return nil
}

func (s *fakeGenreLinkStore) DeleteBySubmission(_ context.Context, submissionID primitive.ObjectID) error {
	if s.failErr != nil {
		return s.failErr
	}
	delete(s.links, submissionID)
	return nil
}

type fakeAssignmentStore struct {
	assigns map[primitive.ObjectID]*models.CrewAssignment
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{assigns: map[primitive.ObjectID]*models.CrewAssignment{}}
}

func (s *fakeAssignmentStore) List(_ context.Context, f repository.CrewAssignmentFilter, page, limit int) ([]models.CrewAssignment, int64, error) {
	out := []models.CrewAssignment{}
	for _, a := range s.assigns {
		if f.SubmissionID != nil && a.SubmissionID != *f.SubmissionID {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (s *fakeAssignmentStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.CrewAssignment, error) {
	a, found := s.assigns[id]
	if !found {
		return nil, mongo.ErrNoDocuments
	}
	copied := *a
	return &copied, nil
}

func (s *fakeAssignmentStore) ExistsTriple(_ context.Context, submissionID, memberID, roleID primitive.ObjectID, excludeID *primitive.ObjectID) (bool, error) {
	for _, a := range s.assigns {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.SubmissionID == submissionID && a.CrewMemberID == memberID && a.CrewRoleID == roleID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeAssignmentStore) Insert(_ context.Context, a *models.CrewAssignment) (primitive.ObjectID, error) {
	a.ID = primitive.NewObjectID()
	copied := *a
	s.assigns[a.ID] = &copied
	return a.ID, nil
}

func (s *fakeAssignmentStore) UpdateByID(_ context.Context, id primitive.ObjectID, set bson.M) (*models.CrewAssignment, error) {
	a, found := s.assigns[id]
	if !found {
		return nil, mongo.ErrNoDocuments
	}
	if v, present := set["crewMemberId"]; present {
		a.CrewMemberID = v.(primitive.ObjectID)
	}
	if v, present := set["crewRoleId"]; present {
		a.CrewRoleID = v.(primitive.ObjectID)
	}
	copied := *a
	return &copied, nil
}

func (s *fakeAssignmentStore) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(s.assigns, id)
	return nil
}

func (s *fakeAssignmentStore) DeleteBySubmission(_ context.Context, submissionID primitive.ObjectID) error {
	for id, a := range s.assigns {
		if a.SubmissionID == submissionID {
			delete(s.assigns, id)
		}
	}
	return nil
}

func (s *fakeAssignmentStore) ListBySubmission(_ context.Context, submissionID primitive.ObjectID) ([]models.CrewAssignment, error) {
	out := []models.CrewAssignment{}
	for _, a := range s.assigns {
		if a.SubmissionID == submissionID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeNominationLinks struct {
	deleted []primitive.ObjectID
	failErr error
}

func (s *fakeNominationLinks) DeleteBySubmission(_ context.Context, submissionID primitive.ObjectID) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.deleted = append(s.deleted, submissionID)
	return nil
}

// fakeRefStore backs one reference collection.
type fakeRefStore struct {
	items map[primitive.ObjectID]*models.RefEntity
}

func newFakeRefStore() *fakeRefStore {
	return &fakeRefStore{items: map[primitive.ObjectID]*models.RefEntity{}}
}

func (s *fakeRefStore) seed(name string) primitive.ObjectID {
	id := primitive.NewObjectID()
	s.items[id] = &models.RefEntity{ID: id, Name: name}
	return id
}

func (s *fakeRefStore) List(_ context.Context) ([]models.RefEntity, error) {
	out := []models.RefEntity{}
	for _, e := range s.items {
		out = append(out, *e)
	}
	return out, nil
}

func (s *fakeRefStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.RefEntity, error) {
	e, found := s.items[id]
	if !found {
		return nil, mongo.ErrNoDocuments
	}
	copied := *e
	return &copied, nil
}

func (s *fakeRefStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.RefEntity, error) {
	out := []models.RefEntity{}
	for _, id := range ids {
		if e, found := s.items[id]; found {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeRefStore) FindByName(_ context.Context, name string) (*models.RefEntity, error) {
	for _, e := range s.items {
		if e.Name == name {
			copied := *e
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakeRefStore) Insert(_ context.Context, e *models.RefEntity) (primitive.ObjectID, error) {
	e.ID = primitive.NewObjectID()
	copied := *e
	s.items[e.ID] = &copied
	return e.ID, nil
}

func (s *fakeRefStore) UpdateByID(_ context.Context, id primitive.ObjectID, set bson.M) (*models.RefEntity, error) {
	e, found := s.items[id]
	if !found {
		return nil, mongo.ErrNoDocuments
	}
	if v, present := set["name"]; present {
		e.Name = v.(string)
	}
	if v, present := set["description"]; present {
		e.Description = v.(string)
	}
	copied := *e
	return &copied, nil
}

func (s *fakeRefStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, found := s.items[id]; !found {
		return mongo.ErrNoDocuments
	}
	delete(s.items, id)
	return nil
}

type fakeCrewMemberStore struct {
	members map[primitive.ObjectID]*models.CrewMember
}

func newFakeCrewMemberStore() *fakeCrewMemberStore {
	return &fakeCrewMemberStore{members: map[primitive.ObjectID]*models.CrewMember{}}
}

func (s *fakeCrewMemberStore) List(_ context.Context) ([]models.CrewMember, error) {
	out := []models.CrewMember{}
	for _, m := range s.members {
		out = append(out, *m)
	}
	return out, nil
}

func (s *fakeCrewMemberStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.CrewMember, error) {
	m, found := s.members[id]
	if !found {
		return nil, mongo.ErrNoDocuments
	}
	copied := *m
	return &copied, nil
}

func (s *fakeCrewMemberStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.CrewMember, error) {
	out := []models.CrewMember{}
	for _, id := range ids {
		if m, found := s.members[id]; found {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *fakeCrewMemberStore) Insert(_ context.Context, m *models.CrewMember) (primitive.ObjectID, error) {
	m.ID = primitive.NewObjectID()
	copied := *m
	s.members[m.ID] = &copied
	return m.ID, nil
}

func (s *fakeCrewMemberStore) UpdateByID(_ context.Context, id primitive.ObjectID, set bson.M) (*models.CrewMember, error) {
	m, found := s.members[id]
	if !found {
		return nil, mongo.ErrNoDocuments
	}
	if v, present := set["name"]; present {
		m.Name = v.(string)
	}
	copied := *m
	return &copied, nil
}

func (s *fakeCrewMemberStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, found := s.members[id]; !found {
		return mongo.ErrNoDocuments
	}
	delete(s.members, id)
	return nil
}
