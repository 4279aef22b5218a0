package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"filmfest/models"
)

// CrewAssignmentFilter narrows the assignment listing.
type CrewAssignmentFilter struct {
	SubmissionID *primitive.ObjectID
	CrewMemberID *primitive.ObjectID
	CrewRoleID   *primitive.ObjectID
}

type CrewAssignmentRepository struct {
	col *mongo.Collection
}

func NewCrewAssignmentRepository(db *mongo.Database) *CrewAssignmentRepository {
	return &CrewAssignmentRepository{col: db.Collection("crew_assignments")}
}

func buildAssignmentFilter(f CrewAssignmentFilter) bson.M {
	filter := bson.M{}
	if f.SubmissionID != nil {
		filter["submissionId"] = *f.SubmissionID
	}
	if f.CrewMemberID != nil {
		filter["crewMemberId"] = *f.CrewMemberID
	}
	if f.CrewRoleID != nil {
		filter["crewRoleId"] = *f.CrewRoleID
	}
	return filter
}

func (r *CrewAssignmentRepository) List(ctx context.Context, f CrewAssignmentFilter, page, limit int) ([]models.CrewAssignment, int64, error) {
	filter := buildAssignmentFilter(f)
	skip := int64((page - 1) * limit)

	opts := options.Find().SetSkip(skip).SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	items := []models.CrewAssignment{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *CrewAssignmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CrewAssignment, error) {
	var a models.CrewAssignment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ExistsTriple reports whether another row already holds the same
// (submission, member, role) triple. excludeID skips the row being
// updated.
func (r *CrewAssignmentRepository) ExistsTriple(ctx context.Context, submissionID, memberID, roleID primitive.ObjectID, excludeID *primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"submissionId": submissionID,
		"crewMemberId": memberID,
		"crewRoleId":   roleID,
	}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}
	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CrewAssignmentRepository) Insert(ctx context.Context, a *models.CrewAssignment) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	a.ID = id
	return id, nil
}

func (r *CrewAssignmentRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.CrewAssignment, error) {
	after := options.After
	var a models.CrewAssignment
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&a)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *CrewAssignmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *CrewAssignmentRepository) DeleteBySubmission(ctx context.Context, submissionID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"submissionId": submissionID})
	return err
}

func (r *CrewAssignmentRepository) ListBySubmission(ctx context.Context, submissionID primitive.ObjectID) ([]models.CrewAssignment, error) {
	cur, err := r.col.Find(ctx, bson.M{"submissionId": submissionID})
	if err != nil {
		return nil, err
	}
	items := []models.CrewAssignment{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
