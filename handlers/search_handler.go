package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/utils"
	"github.com/hireflow/talent-gateway/viewmodel"
)

// SearchService defines the search operations the handler needs.
type SearchService interface {
	Candidates(ctx context.Context, query string, limit int) viewmodel.SearchResults
	Similar(ctx context.Context, candidateID string, limit int) viewmodel.SearchResults
}

// SearchHandler serves candidate search endpoints.
type SearchHandler struct {
	service SearchService
	logger  *zap.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(service SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{service: service, logger: logger}
}

// HandleCandidates handles GET /api/v1/search/candidates?q=...&limit=N.
func (h *SearchHandler) HandleCandidates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		_ = utils.WriteBadRequest(w, "q is required", nil)
		return
	}
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	_ = utils.WriteJSON(w, http.StatusOK, h.service.Candidates(r.Context(), query, limit))
}

// HandleSimilar handles GET /api/v1/candidates/{id}/similar.
func (h *SearchHandler) HandleSimilar(w http.ResponseWriter, r *http.Request) {
	candidateID := chi.URLParam(r, "id")
	if candidateID == "" {
		_ = utils.WriteBadRequest(w, "candidate id is required", nil)
		return
	}
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	_ = utils.WriteJSON(w, http.StatusOK, h.service.Similar(r.Context(), candidateID, limit))
}

// parseLimit reads the optional limit query parameter; writes a 400
// and returns false when it is not a positive integer.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		_ = utils.WriteBadRequest(w, "limit must be a positive integer", nil)
		return 0, false
	}
	return limit, true
}
