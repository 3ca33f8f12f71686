package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrWorkoutNotFound covers both "no such id" and "id owned by someone else".
	ErrWorkoutNotFound  = errors.New("workout not found or not authorized")
	ErrInvalidWorkoutID = errors.New("invalid workout ID format")
	ErrValidationFailed = errors.New("workout validation failed: name and duration are required")
)

// CreateWorkoutInput holds the caller supplied fields for a new workout.
// Status and DateAdded are optional.
type CreateWorkoutInput struct {
	Name      string
	Duration  string
	Status    string
	DateAdded *time.Time
}

type WorkoutService interface {
	CreateWorkout(ctx context.Context, ownerID primitive.ObjectID, in CreateWorkoutInput) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error)
	UpdateWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID, update domain.WorkoutUpdate) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) error
	CompleteWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) (*domain.Workout, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

// ParseWorkoutID converts a path parameter into an ObjectID.
func ParseWorkoutID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidWorkoutID
	}
	return id, nil
}

func (s *workoutService) CreateWorkout(ctx context.Context, ownerID primitive.ObjectID, in CreateWorkoutInput) (*domain.Workout, error) {
	name, duration := strings.TrimSpace(in.Name), strings.TrimSpace(in.Duration)
	if name == "" || duration == "" {
		return nil, ErrValidationFailed
	}
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required to create a workout")
	}

	status := domain.DefaultWorkoutStatus
	if strings.TrimSpace(in.Status) != "" {
		status = domain.ParseWorkoutStatus(in.Status)
	}
	workout := &domain.Workout{
		UserID:   ownerID,
		Name:     name,
		Duration: duration,
		Status:   status,
	}
	if in.DateAdded != nil {
		workout.DateAdded = in.DateAdded.UTC()
	}

	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// ListWorkouts never returns nil on success.
func (s *workoutService) ListWorkouts(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error) {
	workouts, err := s.workoutRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	return workouts, nil
}

func (s *workoutService) UpdateWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID, update domain.WorkoutUpdate) (*domain.Workout, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, ErrValidationFailed
		}
		update.Name = &name
	}
	if update.Duration != nil {
		duration := strings.TrimSpace(*update.Duration)
		if duration == "" {
			return nil, ErrValidationFailed
		}
		update.Duration = &duration
	}
	if update.Status != nil {
		status := domain.ParseWorkoutStatus(string(*update.Status))
		if status == "" {
			return nil, ErrValidationFailed
		}
		update.Status = &status
	}

	var (
		workout *domain.Workout
		err     error
	)
	if update.IsEmpty() {
		workout, err = s.workoutRepo.GetByOwner(ctx, workoutID, ownerID)
	} else {
		workout, err = s.workoutRepo.Update(ctx, workoutID, ownerID, update)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) DeleteWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) error {
	if err := s.workoutRepo.Delete(ctx, workoutID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

// CompleteWorkout is a status-only update to Completed; completing twice is fine.
func (s *workoutService) CompleteWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	completed := domain.WorkoutCompleted
	return s.UpdateWorkout(ctx, ownerID, workoutID, domain.WorkoutUpdate{Status: &completed})
}
