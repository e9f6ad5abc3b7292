package api

import (
	"alcyxob/exercise-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise and export service dependencies.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	exportService   service.ExportService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, exportService service.ExportService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, exportService: exportService}
}

// --- DTOs for API (Data Transfer Objects) ---

// LogExerciseRequest is the body of POST /api/users/:_id/exercises.
// Duration may be sent as a string or a number, Date as a string or as
// epoch milliseconds.
type LogExerciseRequest struct {
	Description string     `json:"description" form:"description"`
	Duration    flexString `json:"duration" form:"duration"`
	Date        flexDate   `json:"date" form:"date"`
}

// ExerciseResponse echoes a logged exercise. ID is the owning user's id.
type ExerciseResponse struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    *int   `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"_id"`
}

// LogQueryParams are the query parameters of the log and export routes.
type LogQueryParams struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Limit string `form:"limit"`
}

func (p LogQueryParams) toQuery() service.LogQuery {
	return service.LogQuery{From: p.From, To: p.To, Limit: p.Limit}
}

// --- Handler Methods ---

// LogExercise godoc
// @Summary Log an exercise for a user
// @Tags Exercises
// @Accept json
// @Produce json
// @Param _id path string true "User ID"
// @Param exercise body LogExerciseRequest true "Exercise"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid input (strict mode)"
// @Failure 404 {object} gin.H "User not found"
// @Router /users/{_id}/exercises [post]
func (h *ExerciseHandler) LogExercise(c *gin.Context) {
	var req LogExerciseRequest
	if err := bindBody(c, &req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, exercise, err := h.exerciseService.LogExercise(c.Request.Context(), c.Param("_id"), service.LogExerciseInput{
		Description: req.Description,
		Duration:    string(req.Duration),
		Date:        string(req.Date),
	})
	if err != nil {
		respondServiceError(c, err, "Failed to log exercise.")
		return
	}

	c.JSON(http.StatusOK, ExerciseResponse{
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
		ID:          user.ID,
	})
}

// GetLog godoc
// @Summary Get a user's exercise log
// @Tags Exercises
// @Produce json
// @Param _id path string true "User ID"
// @Param from query string false "Earliest date, inclusive"
// @Param to query string false "Latest date, inclusive"
// @Param limit query string false "Maximum number of entries"
// @Success 200 {object} domain.Log
// @Failure 404 {object} gin.H "User not found"
// @Router /users/{_id}/logs [get]
func (h *ExerciseHandler) GetLog(c *gin.Context) {
	var params LogQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	log, err := h.exerciseService.GetLog(c.Request.Context(), c.Param("_id"), params.toQuery())
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve exercise log.")
		return
	}
	c.JSON(http.StatusOK, log)
}

// ExportLog godoc
// @Summary Export a user's exercise log to object storage
// @Tags Exercises
// @Produce json
// @Param _id path string true "User ID"
// @Success 200 {object} service.ExportResult
// @Failure 404 {object} gin.H "User not found or export disabled"
// @Router /users/{_id}/logs/export [post]
func (h *ExerciseHandler) ExportLog(c *gin.Context) {
	var params LogQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	res, err := h.exportService.ExportLog(c.Request.Context(), c.Param("_id"), params.toQuery())
	if err != nil {
		respondServiceError(c, err, "Failed to export exercise log.")
		return
	}
	c.JSON(http.StatusOK, res)
}
