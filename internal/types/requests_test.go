//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrBool(b bool) *bool { return &b }
func ptrFloat(f float64) *float64 { return &f }

func TestQuoteRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request QuoteRequest
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid request",
			request: QuoteRequest{Transcript: "Renovate a 5m2 bathroom in Paris"},
		},
		{
			name:    "valid request with margin",
			request: QuoteRequest{Transcript: "tiling please", BaseMargin: ptrFloat(12)},
		},
		{
			name:    "missing transcript",
			request: QuoteRequest{},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "transcript too short",
			request: QuoteRequest{Transcript: "ok"},
			wantErr: true,
			errMsg:  "min",
		},
		{
			name:    "negative margin",
			request: QuoteRequest{Transcript: "tiling please", BaseMargin: ptrFloat(-1)},
			wantErr: true,
			errMsg:  "gte",
		},
		{
			name:    "margin above 100",
			request: QuoteRequest{Transcript: "tiling please", BaseMargin: ptrFloat(120)},
			wantErr: true,
			errMsg:  "lte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFeedbackRequest_Validate(t *testing.T) {
	assert.NoError(t, (&FeedbackRequest{Accepted: ptrBool(false)}).Validate())
	assert.NoError(t, (&FeedbackRequest{Accepted: ptrBool(true)}).Validate())

	err := (&FeedbackRequest{}).Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestSearchRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SearchRequest{Query: "tiling in Paris", TopK: 3}).Validate())
	assert.Error(t, (&SearchRequest{Query: "", TopK: 3}).Validate())
	assert.Error(t, (&SearchRequest{Query: "tiling", TopK: 0}).Validate())
	assert.Error(t, (&SearchRequest{Query: "tiling", TopK: 51}).Validate())
}

func TestTokenRequest_Validate(t *testing.T) {
	assert.NoError(t, (&TokenRequest{Username: "estimator", Password: "secret"}).Validate())
	assert.Error(t, (&TokenRequest{Username: "estimator"}).Validate())
	assert.Error(t, (&TokenRequest{Password: "secret"}).Validate())
}
