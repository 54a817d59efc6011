package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/renovation-quoter/internal/db"
	"github.com/jonathan/renovation-quoter/internal/ingestion"
	"github.com/jonathan/renovation-quoter/internal/pipeline"
	"github.com/jonathan/renovation-quoter/internal/types"
)

// quoteResponse is returned by POST /quotes
type quoteResponse struct {
	Quote         *types.Quote           `json:"quote"`
	City          string                 `json:"city"`
	MarginPercent float64                `json:"margin_percent"`
	Handoff       pipeline.HandoffReport `json:"handoff"`
	Warnings      []string               `json:"warnings,omitempty"`
}

func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	var req types.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, validationError(err))
		return
	}

	transcript, _, err := ingestion.IngestText(req.Transcript, ingestion.SourceAPI)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	base := s.services.BaseMargin
	if req.BaseMargin != nil {
		base = *req.BaseMargin
	}

	result, err := s.services.Quote(r.Context(), transcript, base)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	report := s.services.Handoff(r.Context(), transcript, result.Quote, pipeline.HandoffOptions{
		Archive:  true,
		Remember: req.Remember,
	})
	warnings := make([]string, 0, len(report.Errors))
	for _, e := range report.Errors {
		warnings = append(warnings, e.Error())
	}

	s.jsonResponse(w, http.StatusCreated, quoteResponse{
		Quote:         result.Quote,
		City:          result.Parsed.City,
		MarginPercent: result.Margin,
		Handoff:       report,
		Warnings:      warnings,
	})
}

func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	if s.services.Archive == nil {
		s.errorResponse(w, &ErrUnavailable{Feature: "quote archive", Reason: "no database configured"})
		return
	}

	filters := db.QuoteFilters{City: r.URL.Query().Get("city")}
	if v := r.URL.Query().Get("min_confidence"); v != "" {
		conf, err := strconv.ParseFloat(v, 64)
		if err != nil || conf < 0 || conf > 1 {
			s.errorResponse(w, &ErrValidation{Field: "min_confidence", Message: "must be a number between 0 and 1"})
			return
		}
		filters.MinConfidence = conf
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			s.errorResponse(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		filters.Limit = limit
	}

	quotes, err := s.services.Archive.List(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"quotes": quotes,
		"count":  len(quotes),
	})
}

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	if s.services.Archive == nil {
		s.errorResponse(w, &ErrUnavailable{Feature: "quote archive", Reason: "no database configured"})
		return
	}

	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	record, err := s.services.Archive.Get(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if record == nil {
		s.errorResponse(w, &ErrQuoteNotFound{QuoteID: idStr})
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

func (s *Server) handleSearchQuotes(w http.ResponseWriter, r *http.Request) {
	req := types.SearchRequest{
		Query: r.URL.Query().Get("q"),
		TopK:  s.services.TopK,
	}
	if v := r.URL.Query().Get("top_k"); v != "" {
		topK, err := strconv.Atoi(v)
		if err != nil {
			s.errorResponse(w, &ErrValidation{Field: "top_k", Message: "must be an integer"})
			return
		}
		req.TopK = topK
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, validationError(err))
		return
	}

	matches, err := s.services.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"query":   req.Query,
		"matches": matches,
	})
}
