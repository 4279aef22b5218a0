package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"filmfest/models"
)

// NominationFilter narrows the nomination listing. ContentTypeID is
// resolved through the submission join, not the nomination itself.
type NominationFilter struct {
	SubmissionID    *primitive.ObjectID
	AwardCategoryID *primitive.ObjectID
	Year            *int
	IsWinner        *bool
	ContentTypeID   *primitive.ObjectID
}

// NominationListItem is one listing row with joined display fields.
type NominationListItem struct {
	models.Nomination  `bson:",inline"`
	SubmissionTitle    *string `bson:"submissionTitle" json:"submissionTitle"`
	SubmissionSynopsis *string `bson:"submissionSynopsis" json:"submissionSynopsis"`
	AwardCategoryName  *string `bson:"awardCategoryName" json:"awardCategoryName"`
	CrewMemberName     *string `bson:"crewMemberName" json:"crewMemberName"`
}

type NominationRepository struct {
	col *mongo.Collection
}

func NewNominationRepository(db *mongo.Database) *NominationRepository {
	return &NominationRepository{col: db.Collection("nominations")}
}

func buildNominationMatch(f NominationFilter) bson.M {
	match := bson.M{}
	if f.SubmissionID != nil {
		match["submissionId"] = *f.SubmissionID
	}
	if f.AwardCategoryID != nil {
		match["awardCategoryId"] = *f.AwardCategoryID
	}
	if f.Year != nil {
		match["year"] = *f.Year
	}
	if f.IsWinner != nil {
		match["isWinner"] = *f.IsWinner
	}
	return match
}

// List pages nominations newest-year first, joining submission,
// award-category and crew-member display fields.
func (r *NominationRepository) List(ctx context.Context, f NominationFilter, page, limit int) ([]NominationListItem, int64, error) {
	match := buildNominationMatch(f)
	skip := (page - 1) * limit

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "year", Value: -1}, {Key: "_id", Value: -1}}}},
		bson.D{{Key: "$skip", Value: int64(skip)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
		lookupStage("submissions", "submissionId", "_id", "submissionDocs"),
	}
	if f.ContentTypeID != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"submissionDocs.contentTypeId": *f.ContentTypeID,
		}}})
	}
	pipeline = append(pipeline,
		lookupStage("award_categories", "awardCategoryId", "_id", "categoryDocs"),
		lookupStage("crew_members", "crewMemberId", "_id", "memberDocs"),
		bson.D{{Key: "$addFields", Value: bson.M{
			"submissionTitle":    bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$submissionDocs.title", 0}}, nil}},
			"submissionSynopsis": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$submissionDocs.synopsis", 0}}, nil}},
			"awardCategoryName":  bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$categoryDocs.name", 0}}, nil}},
			"crewMemberName":     bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$memberDocs.name", 0}}, nil}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"submissionDocs": 0, "categoryDocs": 0, "memberDocs": 0,
		}}},
	)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	items := []NominationListItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *NominationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Nomination, error) {
	var n models.Nomination
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NominationRepository) Insert(ctx context.Context, n *models.Nomination) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, n)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	n.ID = id
	return id, nil
}

func (r *NominationRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Nomination, error) {
	after := options.After
	var n models.Nomination
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&n)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NominationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *NominationRepository) DeleteBySubmission(ctx context.Context, submissionID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"submissionId": submissionID})
	return err
}
