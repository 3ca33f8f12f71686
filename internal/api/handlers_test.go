package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const goodToken = "good-token"

type mockAuthService struct {
	mock.Mock
	owner primitive.ObjectID
}

func (m *mockAuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(1).(*domain.User)
	return args.String(0), u, args.Error(2)
}

func (m *mockAuthService) Details(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockAuthService) ParseToken(token string) (primitive.ObjectID, error) {
	switch token {
	case goodToken:
		return m.owner, nil
	case "expired":
		return primitive.NilObjectID, fmt.Errorf("%w: %w", service.ErrInvalidToken, jwt.ErrTokenExpired)
	default:
		return primitive.NilObjectID, service.ErrInvalidToken
	}
}

type mockWorkoutService struct {
	mock.Mock
}

func (m *mockWorkoutService) CreateWorkout(ctx context.Context, owner primitive.ObjectID, in service.CreateWorkoutInput) (*domain.Workout, error) {
	args := m.Called(ctx, owner, in)
	w, _ := args.Get(0).(*domain.Workout)
	return w, args.Error(1)
}

func (m *mockWorkoutService) ListWorkouts(ctx context.Context, owner primitive.ObjectID) ([]domain.Workout, error) {
	args := m.Called(ctx, owner)
	ws, _ := args.Get(0).([]domain.Workout)
	return ws, args.Error(1)
}

func (m *mockWorkoutService) UpdateWorkout(ctx context.Context, owner, id primitive.ObjectID, update domain.WorkoutUpdate) (*domain.Workout, error) {
	args := m.Called(ctx, owner, id, update)
	w, _ := args.Get(0).(*domain.Workout)
	return w, args.Error(1)
}

func (m *mockWorkoutService) DeleteWorkout(ctx context.Context, owner, id primitive.ObjectID) error {
	return m.Called(ctx, owner, id).Error(0)
}

func (m *mockWorkoutService) CompleteWorkout(ctx context.Context, owner, id primitive.ObjectID) (*domain.Workout, error) {
	args := m.Called(ctx, owner, id)
	w, _ := args.Get(0).(*domain.Workout)
	return w, args.Error(1)
}

func setupTestRouter(t *testing.T) (*gin.Engine, *mockAuthService, *mockWorkoutService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth := &mockAuthService{owner: primitive.NewObjectID()}
	workouts := new(mockWorkoutService)
	router := gin.New()
	SetupRoutes(router, zap.NewNop(), auth, workouts)
	return router, auth, workouts
}

func doRequest(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthMiddleware(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Authorization header is missing"},
		{"wrong scheme", "Basic abc", "Authorization header format must be Bearer {token}"},
		{"invalid token", "Bearer nope", "Invalid token"},
		{"expired token", "Bearer expired", "Token has expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/workouts/getMyWorkouts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.message, errorMessage(t, rec))
		})
	}
}

func TestGetMyWorkouts(t *testing.T) {
	router, auth, workouts := setupTestRouter(t)
	added := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	workouts.On("ListWorkouts", mock.Anything, auth.owner).Return([]domain.Workout{
		{ID: primitive.NewObjectID(), UserID: auth.owner, Name: "Run", Duration: "30 mins", Status: domain.WorkoutPending, DateAdded: added},
	}, nil).Once()
	workouts.On("ListWorkouts", mock.Anything, auth.owner).Return([]domain.Workout{}, nil).Once()

	rec := doRequest(router, http.MethodGet, "/workouts/getMyWorkouts", goodToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got []WorkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Run", got[0].Name)
	assert.Equal(t, auth.owner.Hex(), got[0].UserID)
	assert.True(t, added.Equal(got[0].DateAdded))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	rec = doRequest(router, http.MethodGet, "/workouts/getMyWorkouts", goodToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestAddWorkout(t *testing.T) {
	router, auth, workouts := setupTestRouter(t)
	created := &domain.Workout{ID: primitive.NewObjectID(), UserID: auth.owner, Name: "Morning Run", Duration: "30 mins", Status: domain.WorkoutPending, DateAdded: time.Now().UTC()}
	workouts.On("CreateWorkout", mock.Anything, auth.owner, service.CreateWorkoutInput{Name: "Morning Run", Duration: "30 mins"}).Return(created, nil)

	rec := doRequest(router, http.MethodPost, "/workouts/addWorkout", goodToken, map[string]string{"name": "Morning Run", "duration": "30 mins"})

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Message string          `json:"message"`
		Workout WorkoutResponse `json:"workout"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, created.ID.Hex(), body.Workout.ID)
	assert.Equal(t, domain.WorkoutPending, body.Workout.Status)

	rec = doRequest(router, http.MethodPost, "/workouts/addWorkout", goodToken, map[string]string{"duration": "30 mins"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	workouts.AssertNumberOfCalls(t, "CreateWorkout", 1)
}

func TestUpdateWorkout(t *testing.T) {
	router, auth, workouts := setupTestRouter(t)
	id := primitive.NewObjectID()

	t.Run("malformed id", func(t *testing.T) {
		rec := doRequest(router, http.MethodPatch, "/workouts/updateWorkout/xyz", goodToken, map[string]string{"name": "x"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid Workout ID format.", errorMessage(t, rec))
	})

	t.Run("foreign or missing record", func(t *testing.T) {
		other := primitive.NewObjectID()
		workouts.On("UpdateWorkout", mock.Anything, auth.owner, other, mock.Anything).Return(nil, service.ErrWorkoutNotFound)

		rec := doRequest(router, http.MethodPatch, "/workouts/updateWorkout/"+other.Hex(), goodToken, map[string]string{"status": "Cancelled"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("partial update", func(t *testing.T) {
		workouts.On("UpdateWorkout", mock.Anything, auth.owner, id, mock.MatchedBy(func(u domain.WorkoutUpdate) bool {
			return u.Name == nil && u.Duration == nil && u.Status != nil && *u.Status == domain.WorkoutCancelled
		})).Return(&domain.Workout{ID: id, UserID: auth.owner, Name: "Run", Status: domain.WorkoutCancelled}, nil)

		rec := doRequest(router, http.MethodPatch, "/workouts/updateWorkout/"+id.Hex(), goodToken, map[string]string{"status": "Cancelled"})
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			UpdatedWorkout WorkoutResponse `json:"updatedWorkout"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, domain.WorkoutCancelled, body.UpdatedWorkout.Status)
	})

	t.Run("blank status", func(t *testing.T) {
		blank := primitive.NewObjectID()
		workouts.On("UpdateWorkout", mock.Anything, auth.owner, blank, mock.Anything).Return(nil, service.ErrValidationFailed)

		rec := doRequest(router, http.MethodPatch, "/workouts/updateWorkout/"+blank.Hex(), goodToken, map[string]string{"status": ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, service.ErrValidationFailed.Error(), errorMessage(t, rec))
	})

	t.Run("empty body", func(t *testing.T) {
		empty := primitive.NewObjectID()
		workouts.On("UpdateWorkout", mock.Anything, auth.owner, empty, domain.WorkoutUpdate{}).Return(&domain.Workout{ID: empty}, nil)

		rec := doRequest(router, http.MethodPatch, "/workouts/updateWorkout/"+empty.Hex(), goodToken, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestDeleteAndComplete(t *testing.T) {
	router, auth, workouts := setupTestRouter(t)
	id := primitive.NewObjectID()
	workouts.On("DeleteWorkout", mock.Anything, auth.owner, id).Return(nil).Once()
	workouts.On("DeleteWorkout", mock.Anything, auth.owner, id).Return(service.ErrWorkoutNotFound).Once()
	workouts.On("CompleteWorkout", mock.Anything, auth.owner, id).Return(&domain.Workout{ID: id, Status: domain.WorkoutCompleted}, nil)

	rec := doRequest(router, http.MethodDelete, "/workouts/deleteWorkout/"+id.Hex(), goodToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(router, http.MethodDelete, "/workouts/deleteWorkout/"+id.Hex(), goodToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(router, http.MethodPatch, "/workouts/completeWorkoutStatus/"+id.Hex(), goodToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"Completed"`)
}

func TestInternalErrorIsGeneric(t *testing.T) {
	router, auth, workouts := setupTestRouter(t)
	workouts.On("ListWorkouts", mock.Anything, auth.owner).Return(nil, errors.New("socket closed"))

	rec := doRequest(router, http.MethodGet, "/workouts/getMyWorkouts", goodToken, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error finding workouts.", errorMessage(t, rec))
}

func TestUserRoutes(t *testing.T) {
	router, auth, _ := setupTestRouter(t)
	auth.On("Login", mock.Anything, "runner@example.com", "password123").Return("signed", &domain.User{}, nil)
	auth.On("Login", mock.Anything, "runner@example.com", "wrong").Return("", nil, service.ErrAuthenticationFailed)
	auth.On("Register", mock.Anything, "taken@example.com", "password123").Return(nil, service.ErrUserAlreadyExists)
	auth.On("Details", mock.Anything, auth.owner).Return(&domain.User{ID: auth.owner, Email: "runner@example.com"}, nil)

	rec := doRequest(router, http.MethodPost, "/users/login", "", map[string]string{"email": "runner@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"access":"signed"}`, rec.Body.String())

	rec = doRequest(router, http.MethodPost, "/users/login", "", map[string]string{"email": "runner@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodPost, "/users/register", "", map[string]string{"email": "taken@example.com", "password": "password123"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(router, http.MethodGet, "/users/details", goodToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), auth.owner.Hex())
}
