package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrPartialFailure):
		return http.StatusInternalServerError
	case errors.Is(err, apperrors.ErrInsufficientFunds), errors.Is(err, apperrors.ErrCreditLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrStoreRejected):
		return http.StatusBadGateway
	case errors.As(err, &appErr) && appErr.Code >= 400:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes {"error", "code"} for err. Server-side failures are logged at
// error level and their details are not sent to the client.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	status := statusFor(err)
	code := apperrors.Code(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()), slog.String("code", code))
		c.JSON(status, gin.H{"error": msg, "code": code})
		return
	}
	logger.Warn(msg, slog.String("error", err.Error()), slog.String("code", code))
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

// respondWithBindingError answers a request that could not be bound or failed its tags.
func respondWithBindingError(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{
		"error": "Invalid " + what + ": " + describeBindingError(err),
		"code":  apperrors.Code(apperrors.ErrValidation),
	})
}

func describeBindingError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed '%s=%s'", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed '%s'", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

func abortUnauthorized(c *gin.Context, logger *slog.Logger) {
	logger.Error("User ID not found in context")
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "code": apperrors.Code(apperrors.ErrUnauthorized)})
}
