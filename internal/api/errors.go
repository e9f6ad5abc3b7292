package api

import (
	"alcyxob/exercise-tracker/internal/logger"
	"alcyxob/exercise-tracker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors to status codes. Anything
// unexpected is logged and answered with fallback.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExportDisabled):
		abortWithError(c, http.StatusNotFound, "Log export is disabled")
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
