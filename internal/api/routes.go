package api

import (
	"alcyxob/workout-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes wires every handler onto router. Paths match what the web and
// CLI clients call, relative to the API base URL.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	authService service.AuthService,
	workoutService service.WorkoutService,
) {
	authHandler := NewAuthHandler(authService, logger)
	workoutHandler := NewWorkoutHandler(workoutService, logger)
	authMiddleware := AuthMiddleware(authService)

	router.Use(RequestID(), RequestLogger(logger), gin.Recovery())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	users := router.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
		users.GET("/details", authMiddleware, authHandler.Details)
	}

	workouts := router.Group("/workouts")
	workouts.Use(authMiddleware)
	{
		workouts.POST("/addWorkout", workoutHandler.AddWorkout)
		workouts.GET("/getMyWorkouts", workoutHandler.GetMyWorkouts)
		workouts.PATCH("/updateWorkout/:id", workoutHandler.UpdateWorkout)
		workouts.DELETE("/deleteWorkout/:id", workoutHandler.DeleteWorkout)
		workouts.PATCH("/completeWorkoutStatus/:id", workoutHandler.CompleteWorkoutStatus)
	}
}
