package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ajharbinger/golfleague-skins/internal/errors"
)

// requestTimeout bounds the service call behind a single request
const requestTimeout = 30 * time.Second

// statusFor maps an application error code to an HTTP status
func statusFor(code string) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeValidationError:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON envelope. Internal failures hide their cause.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	appErr, ok := apperrors.As(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"code":      apperrors.ErrCodeInternalError,
			"timestamp": time.Now(),
		})
		return
	}

	status := statusFor(appErr.Code)
	message := appErr.Message
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	body := gin.H{
		"error":     message,
		"code":      appErr.Code,
		"timestamp": time.Now(),
	}
	if appErr.Details != "" && status != http.StatusInternalServerError {
		body["details"] = appErr.Details
	}
	c.JSON(status, body)
}

// intParam reads a positive integer path parameter
func intParam(c *gin.Context, name string) (int, error) {
	return parsePositive(name, c.Param(name))
}

// yearQuery reads the required year query parameter
func yearQuery(c *gin.Context) (int, error) {
	return parsePositive("year", c.Query("year"))
}

func parsePositive(name, raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, apperrors.InvalidInput(fmt.Sprintf("%s must be a positive integer, got %q", name, raw), err)
	}
	return value, nil
}
