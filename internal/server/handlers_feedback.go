package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/renovation-quoter/internal/server/middleware"
	"github.com/jonathan/renovation-quoter/internal/types"
)

// feedbackStats is returned by the feedback endpoints
type feedbackStats struct {
	Summary       types.FeedbackSummary `json:"summary"`
	BaseMargin    float64               `json:"base_margin"`
	CurrentMargin float64               `json:"current_margin"`
}

func (s *Server) handleRecordFeedback(w http.ResponseWriter, r *http.Request) {
	quoteID := r.PathValue("id")

	var req types.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, validationError(err))
		return
	}

	if err := s.services.Feedback.Record(r.Context(), quoteID, *req.Accepted); err != nil {
		s.errorResponse(w, err)
		return
	}
	if estimator, err := middleware.GetEstimatorID(r); err == nil {
		s.logger.Info("feedback recorded by estimator", "estimator_id", estimator, "quote_id", quoteID)
	}

	stats, err := s.feedbackStats(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, stats)
}

func (s *Server) handleFeedbackStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.feedbackStats(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

func (s *Server) feedbackStats(r *http.Request) (feedbackStats, error) {
	summary, err := s.services.Feedback.Summary(r.Context())
	if err != nil {
		return feedbackStats{}, err
	}
	return feedbackStats{
		Summary:       summary,
		BaseMargin:    s.services.BaseMargin,
		CurrentMargin: s.services.Feedback.Margin(r.Context(), s.services.BaseMargin),
	}, nil
}
