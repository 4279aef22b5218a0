package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"filmfest/models"
)

// nameCollation makes name sorting case-insensitive.
var nameCollation = &options.Collation{Locale: "en", Strength: 2}

// RefRepository serves one flat reference collection (genres,
// countries, languages, content_types, crew_roles, award_categories).
type RefRepository struct {
	col *mongo.Collection
}

func NewRefRepository(db *mongo.Database, collection string) *RefRepository {
	return &RefRepository{col: db.Collection(collection)}
}

func (r *RefRepository) List(ctx context.Context) ([]models.RefEntity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetCollation(nameCollation)
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	items := []models.RefEntity{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RefRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RefEntity, error) {
	var e models.RefEntity
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *RefRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.RefEntity, error) {
	if len(ids) == 0 {
		return []models.RefEntity{}, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	items := []models.RefEntity{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RefRepository) FindByName(ctx context.Context, name string) (*models.RefEntity, error) {
	var e models.RefEntity
	if err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *RefRepository) Insert(ctx context.Context, e *models.RefEntity) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, e)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	e.ID = id
	return id, nil
}

func (r *RefRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.RefEntity, error) {
	after := options.After
	var e models.RefEntity
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

func (r *RefRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
