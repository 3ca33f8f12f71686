package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// WorkoutHandler serves the /workouts routes. Every route is owner scoped.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	logger         *zap.Logger
}

func NewWorkoutHandler(workoutService service.WorkoutService, logger *zap.Logger) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, logger: logger}
}

// --- DTOs ---

type CreateWorkoutRequest struct {
	Name      string     `json:"name" binding:"required"`
	Duration  string     `json:"duration" binding:"required"`
	Status    string     `json:"status"`
	DateAdded *time.Time `json:"dateAdded"`
}

// UpdateWorkoutRequest fields are all optional; absent means unchanged.
type UpdateWorkoutRequest struct {
	Name     *string `json:"name"`
	Duration *string `json:"duration"`
	Status   *string `json:"status"`
}

type WorkoutResponse struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	Name      string               `json:"name"`
	Duration  string               `json:"duration"`
	Status    domain.WorkoutStatus `json:"status"`
	DateAdded time.Time            `json:"dateAdded"`
}

func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	return WorkoutResponse{
		ID:        w.ID.Hex(),
		UserID:    w.UserID.Hex(),
		Name:      w.Name,
		Duration:  w.Duration,
		Status:    w.Status,
		DateAdded: w.DateAdded,
	}
}

func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	return responses
}

// --- Handler Methods ---

// AddWorkout godoc
// @Summary Create a workout for the authenticated user
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body CreateWorkoutRequest true "Workout details"
// @Success 201 {object} gin.H "message and workout"
// @Failure 400 {object} gin.H "Validation error"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/addWorkout [post]
func (h *WorkoutHandler) AddWorkout(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), ownerID, service.CreateWorkoutInput{
		Name:      req.Name,
		Duration:  req.Duration,
		Status:    req.Status,
		DateAdded: req.DateAdded,
	})
	if err != nil {
		h.respondError(c, err, "Failed to save the workout")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Workout successfully added",
		"workout": MapWorkoutToResponse(workout),
	})
}

// GetMyWorkouts godoc
// @Summary List the authenticated user's workouts
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WorkoutResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/getMyWorkouts [get]
func (h *WorkoutHandler) GetMyWorkouts(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}

	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), ownerID)
	if err != nil {
		h.respondError(c, err, "Error finding workouts.")
		return
	}

	// Bare array, never wrapped.
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}

// UpdateWorkout godoc
// @Summary Partially update one of my workouts
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ObjectID hex"
// @Param workout body UpdateWorkoutRequest false "Fields to overwrite"
// @Success 200 {object} gin.H "message and updatedWorkout"
// @Failure 400 {object} gin.H "Invalid ID or validation error"
// @Failure 404 {object} gin.H "Not found or not authorized"
// @Router /workouts/updateWorkout/{id} [patch]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	workoutID, ok := h.workoutID(c)
	if !ok {
		return
	}

	var req UpdateWorkoutRequest
	// An empty body is allowed and simply returns the current record
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	update := domain.WorkoutUpdate{Name: req.Name, Duration: req.Duration}
	if req.Status != nil {
		status := domain.WorkoutStatus(*req.Status)
		update.Status = &status
	}

	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), ownerID, workoutID, update)
	if err != nil {
		h.respondError(c, err, "Error in updating a workout.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Workout updated successfully",
		"updatedWorkout": MapWorkoutToResponse(workout),
	})
}

// DeleteWorkout godoc
// @Summary Delete one of my workouts
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ObjectID hex"
// @Success 200 {object} gin.H
// @Failure 400 {object} gin.H "Invalid ID"
// @Failure 404 {object} gin.H "Not found or not authorized"
// @Router /workouts/deleteWorkout/{id} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	workoutID, ok := h.workoutID(c)
	if !ok {
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), ownerID, workoutID); err != nil {
		h.respondError(c, err, "Error in deleting a workout.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workout deleted successfully"})
}

// CompleteWorkoutStatus godoc
// @Summary Mark one of my workouts as Completed
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ObjectID hex"
// @Success 200 {object} gin.H "message and updatedWorkout"
// @Failure 400 {object} gin.H "Invalid ID"
// @Failure 404 {object} gin.H "Not found or not authorized"
// @Router /workouts/completeWorkoutStatus/{id} [patch]
func (h *WorkoutHandler) CompleteWorkoutStatus(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	workoutID, ok := h.workoutID(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.CompleteWorkout(c.Request.Context(), ownerID, workoutID)
	if err != nil {
		h.respondError(c, err, "Failed to complete workout.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Workout marked as completed",
		"updatedWorkout": MapWorkoutToResponse(workout),
	})
}

func (h *WorkoutHandler) owner(c *gin.Context) (primitive.ObjectID, bool) {
	ownerID, err := ownerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	return ownerID, true
}

func (h *WorkoutHandler) workoutID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := service.ParseWorkoutID(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid Workout ID format.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondError maps service errors to status codes; anything unknown is a 500
// with a generic message and the cause logged.
func (h *WorkoutHandler) respondError(c *gin.Context, err error, internalMessage string) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidWorkoutID):
		abortWithError(c, http.StatusBadRequest, "Invalid Workout ID format.")
	case errors.Is(err, service.ErrWorkoutNotFound):
		// Same 404 whether the id is unknown or owned by someone else
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		_ = c.Error(err)
		h.logger.Error(internalMessage, zap.Error(err), zap.String("request_id", c.GetString(ContextRequestIDKey)))
		abortWithError(c, http.StatusInternalServerError, internalMessage)
	}
}
