package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockWorkoutRepo struct {
	mock.Mock
}

func (m *mockWorkoutRepo) Create(ctx context.Context, w *domain.Workout) (primitive.ObjectID, error) {
	args := m.Called(ctx, w)
	id := args.Get(0).(primitive.ObjectID)
	if args.Error(1) == nil {
		w.ID = id
	}
	return id, args.Error(1)
}

func (m *mockWorkoutRepo) GetByOwner(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Workout, error) {
	args := m.Called(ctx, id, ownerID)
	w, _ := args.Get(0).(*domain.Workout)
	return w, args.Error(1)
}

func (m *mockWorkoutRepo) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error) {
	args := m.Called(ctx, ownerID)
	ws, _ := args.Get(0).([]domain.Workout)
	return ws, args.Error(1)
}

func (m *mockWorkoutRepo) Update(ctx context.Context, id, ownerID primitive.ObjectID, update domain.WorkoutUpdate) (*domain.Workout, error) {
	args := m.Called(ctx, id, ownerID, update)
	w, _ := args.Get(0).(*domain.Workout)
	return w, args.Error(1)
}

func (m *mockWorkoutRepo) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}
