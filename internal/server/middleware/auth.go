// Package middleware provides HTTP middleware for API token authentication.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values
type ContextKey string

const estimatorIDKey ContextKey = "estimatorID"

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (EstimatorIDGetter, error)
}

// EstimatorIDGetter extracts the estimator id from validated token claims
type EstimatorIDGetter interface {
	GetEstimatorID() uuid.UUID
}

// RequireToken rejects requests without a valid bearer token and stores
// the estimator id in the request context
func RequireToken(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			ctx := WithEstimatorID(r.Context(), claims.GetEstimatorID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken parses "Bearer <token>" with a case-insensitive scheme
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// WithEstimatorID returns a context carrying the estimator id
func WithEstimatorID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, estimatorIDKey, id)
}

// GetEstimatorID extracts the authenticated estimator id from the request context
func GetEstimatorID(r *http.Request) (uuid.UUID, error) {
	id, ok := r.Context().Value(estimatorIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("estimator ID not found in request context")
	}
	return id, nil
}
