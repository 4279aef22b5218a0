package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"filmfest/models"
)

// FilmEnquiryView is an enquiry with its reference documents joined.
type FilmEnquiryView struct {
	models.FilmEnquiry `bson:",inline"`
	ContentType        *models.RefEntity  `bson:"contentType" json:"contentType"`
	Country            *models.RefEntity  `bson:"country" json:"country"`
	Language           *models.RefEntity  `bson:"language" json:"language"`
	Genres             []models.RefEntity `bson:"genres" json:"genres"`
}

type FilmEnquiryRepository struct {
	col *mongo.Collection
}

func NewFilmEnquiryRepository(db *mongo.Database) *FilmEnquiryRepository {
	return &FilmEnquiryRepository{col: db.Collection("film_enquiries")}
}

func enquiryJoinStages() []bson.D {
	return []bson.D{
		lookupStage("content_types", "contentTypeId", "_id", "contentTypeDocs"),
		lookupStage("countries", "countryId", "_id", "countryDocs"),
		lookupStage("languages", "languageId", "_id", "languageDocs"),
		lookupStage("genres", "genreIds", "_id", "genres"),
		{{Key: "$addFields", Value: bson.M{
			"contentType": bson.M{"$arrayElemAt": bson.A{"$contentTypeDocs", 0}},
			"country":     bson.M{"$arrayElemAt": bson.A{"$countryDocs", 0}},
			"language":    bson.M{"$arrayElemAt": bson.A{"$languageDocs", 0}},
		}}},
		{{Key: "$project", Value: bson.M{
			"contentTypeDocs": 0, "countryDocs": 0, "languageDocs": 0,
		}}},
	}
}

func (r *FilmEnquiryRepository) List(ctx context.Context) ([]FilmEnquiryView, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
	pipeline = append(pipeline, enquiryJoinStages()...)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	items := []FilmEnquiryView{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *FilmEnquiryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*FilmEnquiryView, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	pipeline = append(pipeline, enquiryJoinStages()...)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	rows := []FilmEnquiryView{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &rows[0], nil
}

func (r *FilmEnquiryRepository) Insert(ctx context.Context, e *models.FilmEnquiry) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, e)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	e.ID = id
	return id, nil
}

func (r *FilmEnquiryRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.FilmEnquiry, error) {
	set["updatedAt"] = time.Now().UTC()
	after := options.After
	var e models.FilmEnquiry
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *FilmEnquiryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
