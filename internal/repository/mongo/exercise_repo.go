package mongo

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
		counters:   db.Collection(counterCollectionName),
	}
}

// Create appends an exercise to the log.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	seq, err := nextSeq(ctx, r.counters, exerciseCollectionName)
	if err != nil {
		return fmt.Errorf("next exercise sequence: %w", err)
	}
	exercise.Seq = seq

	_, err = r.collection.InsertOne(ctx, exercise)
	return err
}

// GetByUserID retrieves all exercises of a user in insertion order.
// Date filtering happens in the service since dates are stored as text.
func (r *mongoExerciseRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Exercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *mongoExerciseRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Log lookups: owner first, then insertion order
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "seq", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
