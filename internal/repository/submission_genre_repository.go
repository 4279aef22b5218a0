package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"filmfest/models"
)

// SubmissionGenreRepository manages the submission<->genre join rows.
// Rows are never diffed: genre updates delete and re-insert the whole
// set for the submission.
type SubmissionGenreRepository struct {
	col *mongo.Collection
}

func NewSubmissionGenreRepository(db *mongo.Database) *SubmissionGenreRepository {
	return &SubmissionGenreRepository{col: db.Collection("submission_genres")}
}

func (r *SubmissionGenreRepository) InsertMany(ctx context.Context, submissionID primitive.ObjectID, genreIDs []primitive.ObjectID) error {
	if len(genreIDs) == 0 {
		return nil
	}
	docs := make([]any, 0, len(genreIDs))
	for _, gid := range genreIDs {
		docs = append(docs, models.SubmissionGenre{SubmissionID: submissionID, GenreID: gid})
	}
	_, err := r.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Replace rewrites the genre set wholesale.
func (r *SubmissionGenreRepository) Replace(ctx context.Context, submissionID primitive.ObjectID, genreIDs []primitive.ObjectID) error {
	if err := r.DeleteBySubmission(ctx, submissionID); err != nil {
		return err
	}
	return r.InsertMany(ctx, submissionID, genreIDs)
}

func (r *SubmissionGenreRepository) DeleteBySubmission(ctx context.Context, submissionID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"submissionId": submissionID})
	return err
}

func (r *SubmissionGenreRepository) ListBySubmission(ctx context.Context, submissionID primitive.ObjectID) ([]models.SubmissionGenre, error) {
	cur, err := r.col.Find(ctx, bson.M{"submissionId": submissionID})
	if err != nil {
		return nil, err
	}
	rows := []models.SubmissionGenre{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
