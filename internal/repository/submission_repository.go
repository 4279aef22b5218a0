package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"filmfest/models"
)

// NamedRef is the {id, name} projection of a joined reference document.
type NamedRef struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// AssignmentView is one crew assignment expanded with member and role
// names for the overview endpoint.
type AssignmentView struct {
	ID           primitive.ObjectID `json:"id"`
	CrewMemberID primitive.ObjectID `json:"crewMemberId"`
	CrewRoleID   primitive.ObjectID `json:"crewRoleId"`
	Member       *NamedRef          `json:"member"`
	Role         *NamedRef          `json:"role"`
}

// OverviewMeta carries the reference lists editors need for dropdowns.
type OverviewMeta struct {
	Genres       []models.RefEntity `json:"genres"`
	Countries    []models.RefEntity `json:"countries"`
	Languages    []models.RefEntity `json:"languages"`
	ContentTypes []models.RefEntity `json:"contentTypes"`
}

// SubmissionOverview is the aggregation result joining content type,
// language, country and genres. CrewAssignments and Meta are filled by
// the handler when the matching expand flags are set.
type SubmissionOverview struct {
	models.Submission `bson:",inline"`
	ContentType       *NamedRef        `bson:"contentType" json:"contentType"`
	Language          *NamedRef        `bson:"language" json:"language"`
	Country           *NamedRef        `bson:"country" json:"country"`
	Genres            []NamedRef       `bson:"genres" json:"genres"`
	CrewAssignments   []AssignmentView `bson:"-" json:"crewAssignments,omitempty"`
	Meta              *OverviewMeta    `bson:"-" json:"meta,omitempty"`
}

// SubmissionListItem is one admin-list row with joined display names.
type SubmissionListItem struct {
	models.Submission `bson:",inline"`
	ContentTypeName   *string  `bson:"contentTypeName" json:"contentTypeName"`
	GenreNames        []string `bson:"genreNames" json:"genreNames"`
}

// AdminListFilter is the admin listing filter set.
type AdminListFilter struct {
	Status        string
	LanguageID    *primitive.ObjectID
	CountryID     *primitive.ObjectID
	ContentTypeID *primitive.ObjectID
	Featured      *bool
	TitleQuery    string
}

type SubmissionRepository struct {
	col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{col: db.Collection("submissions")}
}

func lookupStage(from, localField, foreignField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         from,
		"localField":   localField,
		"foreignField": foreignField,
		"as":           as,
	}}}
}

func (r *SubmissionRepository) Insert(ctx context.Context, s *models.Submission) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	s.ID = id
	return id, nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	var s models.Submission
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateByID applies a partial $set and returns the updated document.
func (r *SubmissionRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Submission, error) {
	set["updatedAt"] = time.Now().UTC()
	after := options.After
	var s models.Submission
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Submission, error) {
	return r.UpdateByID(ctx, id, bson.M{"status": status})
}

func (r *SubmissionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *SubmissionRepository) FindByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"creatorId": creatorID}, opts)
	if err != nil {
		return nil, err
	}
	items := []models.Submission{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// buildAdminMatch translates the filter set into a $match document.
// The title search is a case-insensitive substring match with regex
// metacharacters escaped.
func buildAdminMatch(f AdminListFilter) bson.M {
	match := bson.M{}
	if f.Status != "" {
		match["status"] = f.Status
	}
	if f.LanguageID != nil {
		match["languageId"] = *f.LanguageID
	}
	if f.CountryID != nil {
		match["countryId"] = *f.CountryID
	}
	if f.ContentTypeID != nil {
		match["contentTypeId"] = *f.ContentTypeID
	}
	if f.Featured != nil {
		match["isFeatured"] = *f.Featured
	}
	if f.TitleQuery != "" {
		match["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.TitleQuery), Options: "i"}
	}
	return match
}

// AdminList pages over submissions with display names joined per row.
func (r *SubmissionRepository) AdminList(ctx context.Context, f AdminListFilter, page, limit int) ([]SubmissionListItem, int64, error) {
	match := buildAdminMatch(f)
	skip := (page - 1) * limit

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		bson.D{{Key: "$skip", Value: int64(skip)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
		lookupStage("submission_genres", "_id", "submissionId", "genreLinks"),
		lookupStage("genres", "genreLinks.genreId", "_id", "genreDocs"),
		lookupStage("content_types", "contentTypeId", "_id", "contentTypeDocs"),
		bson.D{{Key: "$addFields", Value: bson.M{
			"contentTypeName": bson.M{"$ifNull": bson.A{
				bson.M{"$arrayElemAt": bson.A{"$contentTypeDocs.name", 0}}, nil,
			}},
			"genreNames": bson.M{"$map": bson.M{
				"input": "$genreDocs", "as": "g", "in": "$$g.name",
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"genreLinks": 0, "genreDocs": 0, "contentTypeDocs": 0, "crew": 0,
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	items := []SubmissionListItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Overview loads one submission with its reference documents joined in
// a single aggregation round-trip.
func (r *SubmissionRepository) Overview(ctx context.Context, id primitive.ObjectID) (*SubmissionOverview, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
		lookupStage("content_types", "contentTypeId", "_id", "contentTypeDocs"),
		lookupStage("languages", "languageId", "_id", "languageDocs"),
		lookupStage("countries", "countryId", "_id", "countryDocs"),
		lookupStage("submission_genres", "_id", "submissionId", "genreLinks"),
		lookupStage("genres", "genreLinks.genreId", "_id", "genres"),
		bson.D{{Key: "$addFields", Value: bson.M{
			"contentType": bson.M{"$arrayElemAt": bson.A{"$contentTypeDocs", 0}},
			"language":    bson.M{"$arrayElemAt": bson.A{"$languageDocs", 0}},
			"country":     bson.M{"$arrayElemAt": bson.A{"$countryDocs", 0}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"contentTypeDocs": 0, "languageDocs": 0, "countryDocs": 0, "genreLinks": 0,
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	rows := []SubmissionOverview{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &rows[0], nil
}
