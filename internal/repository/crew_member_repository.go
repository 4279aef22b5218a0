package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"filmfest/models"
)

type CrewMemberRepository struct {
	col *mongo.Collection
}

func NewCrewMemberRepository(db *mongo.Database) *CrewMemberRepository {
	return &CrewMemberRepository{col: db.Collection("crew_members")}
}

func (r *CrewMemberRepository) List(ctx context.Context) ([]models.CrewMember, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetCollation(nameCollation)
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	items := []models.CrewMember{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CrewMemberRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CrewMember, error) {
	var m models.CrewMember
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *CrewMemberRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.CrewMember, error) {
	if len(ids) == 0 {
		return []models.CrewMember{}, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	items := []models.CrewMember{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CrewMemberRepository) Insert(ctx context.Context, m *models.CrewMember) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	m.ID = id
	return id, nil
}

func (r *CrewMemberRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.CrewMember, error) {
	after := options.After
	var m models.CrewMember
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *CrewMemberRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
