package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error taxonomy for the booking core. Controllers translate these to
// HTTP statuses in one place (RespondError); services never touch gin.

// ValidationError covers missing or malformed input, bad dates, and
// unmet password policy. Details optionally carries per-field messages.
type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// NotFoundError: room, reservation, or guest absent.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{Message: msg}
}

// ConflictError: date overlap or duplicate room number.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(msg string) *ConflictError {
	return &ConflictError{Message: msg}
}

// AuthorizationError: ownership or role mismatch.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

func NewAuthorizationError(msg string) *AuthorizationError {
	return &AuthorizationError{Message: msg}
}

// InvalidTransitionError: illegal reservation lifecycle move.
type InvalidTransitionError struct {
	Message string
}

func (e *InvalidTransitionError) Error() string { return e.Message }

func NewInvalidTransitionError(msg string) *InvalidTransitionError {
	return &InvalidTransitionError{Message: msg}
}

// MalformedTokenError: unparseable or shape-mismatched scan payload.
type MalformedTokenError struct {
	Message string
}

func (e *MalformedTokenError) Error() string { return e.Message }

func NewMalformedTokenError(msg string) *MalformedTokenError {
	return &MalformedTokenError{Message: msg}
}

// RespondError maps a service error to the wire. Validation errors may
// carry a structured details map; everything unrecognized is a 500.
func RespondError(c *gin.Context, err error) {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		conflict   *ConflictError
		authz      *AuthorizationError
		transition *InvalidTransitionError
		malformed  *MalformedTokenError
	)

	switch {
	case errors.As(err, &validation):
		body := gin.H{"message": validation.Message}
		if len(validation.Details) > 0 {
			body["details"] = validation.Details
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFound.Message})
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, gin.H{"message": conflict.Message})
	case errors.As(err, &authz):
		c.JSON(http.StatusForbidden, gin.H{"message": authz.Message})
	case errors.As(err, &transition):
		c.JSON(http.StatusBadRequest, gin.H{"message": transition.Message})
	case errors.As(err, &malformed):
		c.JSON(http.StatusBadRequest, gin.H{"message": malformed.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
