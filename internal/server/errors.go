package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/renovation-quoter/internal/catalog"
	"github.com/jonathan/renovation-quoter/internal/ingestion"
	"github.com/jonathan/renovation-quoter/internal/labor"
)

// ErrQuoteNotFound indicates no archived quote has the requested id
type ErrQuoteNotFound struct {
	QuoteID string
}

func (e *ErrQuoteNotFound) Error() string {
	return fmt.Sprintf("quote not found: %s", e.QuoteID)
}

// ErrInvalidCredentials indicates a failed operator login
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid username or password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a feature whose backing collaborator is not configured
type ErrUnavailable struct {
	Feature string
	Reason  string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s unavailable: %s", e.Feature, e.Reason)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound        *ErrQuoteNotFound
		badCredentials  *ErrInvalidCredentials
		invalid         *ErrValidation
		unavailable     *ErrUnavailable
		unknownTask     *labor.UnknownTaskError
		unknownMaterial *catalog.UnknownMaterialError
		missingPrice    *catalog.MissingCityPriceError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &badCredentials):
		return http.StatusUnauthorized
	case errors.As(err, &invalid), errors.Is(err, ingestion.ErrEmptyTranscript):
		return http.StatusBadRequest
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &unknownTask), errors.As(err, &unknownMaterial), errors.As(err, &missingPrice):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts validator output into an ErrValidation for the first failing field
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fe.Tag()}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}
