// internal/repository/mongo/workout_repo.go
package mongo

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// ownedBy is the filter every owner-scoped operation uses. A record under a
// different owner simply does not match.
func ownedBy(id, ownerID primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "userId": ownerID}
}

// Create inserts a new workout. DateAdded is kept if the caller set it.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID || workout.Name == "" || workout.Duration == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: workout requires userId, name and duration", repository.ErrInvalidRecord)
	}
	workout.ID = primitive.NewObjectID() // Generate new ObjectID
	now := time.Now().UTC()
	if workout.DateAdded.IsZero() {
		workout.DateAdded = now
	}
	workout.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// GetByOwner retrieves a single workout if it belongs to ownerID.
func (r *mongoWorkoutRepository) GetByOwner(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, ownedBy(id, ownerID)).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// ListByOwner retrieves all workouts of one owner, newest first.
func (r *mongoWorkoutRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error) {
	workouts := []domain.Workout{} // Empty, not nil, so it encodes as []
	filter := bson.M{"userId": ownerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "dateAdded", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx) // Ensure cursor is closed

	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Update overwrites only the supplied fields and returns the post-image.
// The match and the write happen in one findAndModify, so two racing updates
// on the same record are serialized by the server.
func (r *mongoWorkoutRepository) Update(ctx context.Context, id, ownerID primitive.ObjectID, update domain.WorkoutUpdate) (*domain.Workout, error) {
	// dateAdded, userId and _id are never part of $set
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Duration != nil {
		set["duration"] = *update.Duration
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var workout domain.Workout
	err := r.collection.FindOneAndUpdate(ctx, ownedBy(id, ownerID), bson.M{"$set": set}, opts).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// Delete removes a workout only if it belongs to ownerID.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, ownedBy(id, ownerID))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		// Not found OR owned by someone else; callers must not tell them apart.
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Listing is always by owner, newest first
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "dateAdded", Value: -1}},
			Options: options.Index().SetName("workouts_owner_date"),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
