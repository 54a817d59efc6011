package types

import (
	"github.com/go-playground/validator/v10"
)

// QuoteRequest is the API request to quote a transcript
type QuoteRequest struct {
	Transcript string   `json:"transcript" validate:"required,min=3"`
	BaseMargin *float64 `json:"base_margin,omitempty" validate:"omitempty,gte=0,lte=100"`
	Remember   bool     `json:"remember,omitempty"`
}

// FeedbackRequest is the API request to record a quote outcome
type FeedbackRequest struct {
	Accepted *bool `json:"accepted" validate:"required"`
}

// SearchRequest is the API request for similar quotes
type SearchRequest struct {
	Query string `json:"query" validate:"required"`
	TopK  int    `json:"top_k" validate:"gte=1,lte=50"`
}

// Validate validates the QuoteRequest using the validator.
func (r *QuoteRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the FeedbackRequest using the validator.
func (r *FeedbackRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SearchRequest using the validator.
func (r *SearchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// TokenRequest is the operator login request for an API token
type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries an issued API token
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// Validate validates the TokenRequest using the validator.
func (r *TokenRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
