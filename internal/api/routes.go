package api

import (
	"alcyxob/exercise-tracker/internal/logger"
	"alcyxob/exercise-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	userService service.UserService,
	exerciseService service.ExerciseService,
	tokenService service.TokenService,
	exportService service.ExportService,
) {
	userHandler := NewUserHandler(userService, tokenService)
	exerciseHandler := NewExerciseHandler(exerciseService, exportService)

	// Writes to a user's log need that user's token once token issuing is on.
	writeGuard := []gin.HandlerFunc{}
	if tokenService.Enabled() {
		writeGuard = append(writeGuard, AuthMiddleware(jwtSecret), SameUserMiddleware("_id"))
	} else {
		logger.Infof("token issuing disabled: exercise writes are unauthenticated")
	}

	guarded := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writeGuard...), h)
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()
		users, err := userService.CountUsers(ctx)
		if err != nil {
			respondServiceError(c, err, "Store unavailable.")
			return
		}
		exercises, err := exerciseService.CountExercises(ctx)
		if err != nil {
			respondServiceError(c, err, "Store unavailable.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "users": users, "exercises": exercises})
	})

	apiGroup := router.Group("/api")
	{
		usersGroup := apiGroup.Group("/users")
		{
			// POST /api/users
			usersGroup.POST("", userHandler.CreateUser)
			// GET /api/users
			usersGroup.GET("", userHandler.ListUsers)

			// POST /api/users/{_id}/exercises
			usersGroup.POST("/:_id/exercises", guarded(exerciseHandler.LogExercise)...)
			// GET /api/users/{_id}/logs
			usersGroup.GET("/:_id/logs", exerciseHandler.GetLog)
			// POST /api/users/{_id}/logs/export
			usersGroup.POST("/:_id/logs/export", guarded(exerciseHandler.ExportLog)...)
		}
	}
}
