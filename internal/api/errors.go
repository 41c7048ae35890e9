package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/wordsplit/internal/api/middleware"
	"github.com/phrazzld/wordsplit/internal/api/shared"
	"github.com/phrazzld/wordsplit/internal/domain"
	"github.com/phrazzld/wordsplit/internal/domain/segment"
	"github.com/phrazzld/wordsplit/internal/service"
	"github.com/phrazzld/wordsplit/internal/service/auth"
	"github.com/phrazzld/wordsplit/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	var domainValidation *domain.ValidationError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, auth.ErrInsufficientScope):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrDictionaryNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrDictionaryExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Request limits
	case errors.Is(err, middleware.ErrRateLimited):
		return http.StatusTooManyRequests

	// Bad request errors
	case errors.As(err, &validationErrs),
		errors.As(err, &domainValidation),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrEmptyDictionaryName),
		errors.Is(err, domain.ErrDictionaryNameTooLong),
		errors.Is(err, domain.ErrEmptyDictionaryWords),
		errors.Is(err, segment.ErrTextTooLong),
		errors.Is(err, segment.ErrTooManyWords),
		errors.Is(err, segment.ErrWordTooLong),
		errors.Is(err, segment.ErrEmptyWord),
		errors.Is(err, service.ErrBatchTooLarge),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors
	var domainValidation *domain.ValidationError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInsufficientScope):
		return "Insufficient scope"

	// Not found errors
	case errors.Is(err, service.ErrDictionaryNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Dictionary not found"

	// Conflict errors
	case errors.Is(err, service.ErrDictionaryExists),
		errors.Is(err, store.ErrDuplicate):
		return "Dictionary name already exists"

	case errors.Is(err, middleware.ErrRateLimited):
		return "Too many requests"

	// Validation errors
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)

	case errors.As(err, &domainValidation):
		return fmt.Sprintf("Invalid %s: %s", domainValidation.Field, domainValidation.Message)

	// Limits
	case errors.Is(err, segment.ErrTextTooLong):
		return "Text exceeds maximum length"

	case errors.Is(err, segment.ErrTooManyWords):
		return "Dictionary exceeds maximum word count"

	case errors.Is(err, segment.ErrWordTooLong):
		return "Dictionary word exceeds maximum length"

	case errors.Is(err, segment.ErrEmptyWord):
		return "Dictionary words cannot be empty"

	case errors.Is(err, service.ErrBatchTooLarge):
		return "Batch exceeds maximum size"

	// Dictionary entity errors
	case errors.Is(err, domain.ErrEmptyDictionaryName):
		return "Dictionary name is required"

	case errors.Is(err, domain.ErrDictionaryNameTooLong):
		return "Dictionary name is too long"

	case errors.Is(err, domain.ErrEmptyDictionaryWords):
		return "Dictionary must contain at least one word"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a short message naming
// the first failing field, without struct or package names.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fieldErr := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fieldErr.Field(), getValidationTagMessage(fieldErr.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "dive":
		return "invalid element"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the sanitized error response for err. defaultMsg,
// when set, replaces the generic message for unmapped (500) errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
