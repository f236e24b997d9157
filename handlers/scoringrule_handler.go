package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/services/scoringrules"
	"github.com/hireflow/talent-gateway/utils"
)

// ScoringRuleService defines the scoring rule operations the handler
// needs.
type ScoringRuleService interface {
	List(ctx context.Context) ([]scoringrules.Rule, error)
	Get(ctx context.Context, ruleID string) (scoringrules.Rule, error)
	Create(ctx context.Context, rule scoringrules.Rule) (scoringrules.Rule, error)
	Update(ctx context.Context, ruleID string, rule scoringrules.Rule) (scoringrules.Rule, error)
	Delete(ctx context.Context, ruleID string) error
	SetEnabled(ctx context.Context, ruleID string, enabled bool) error
}

// ScoringRuleHandler serves the scoring rule CRUD endpoints.
type ScoringRuleHandler struct {
	service ScoringRuleService
	logger  *zap.Logger
}

// NewScoringRuleHandler creates a ScoringRuleHandler.
func NewScoringRuleHandler(service ScoringRuleService, logger *zap.Logger) *ScoringRuleHandler {
	return &ScoringRuleHandler{service: service, logger: logger}
}

// HandleList handles GET /api/v1/scoring-rules.
func (h *ScoringRuleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, rules)
}

// HandleGet handles GET /api/v1/scoring-rules/{id}.
func (h *ScoringRuleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rule, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, rule)
}

// HandleCreate handles POST /api/v1/scoring-rules.
func (h *ScoringRuleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var rule scoringrules.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.service.Create(r.Context(), rule)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, created)
}

// HandleUpdate handles PUT /api/v1/scoring-rules/{id}.
func (h *ScoringRuleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var rule scoringrules.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), rule)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, updated)
}

// HandleDelete handles DELETE /api/v1/scoring-rules/{id}.
func (h *ScoringRuleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	utils.WriteNoContent(w)
}

// ToggleRequest is the body of an enable/disable toggle.
type ToggleRequest struct {
	Enabled bool `json:"enabled"`
}

// HandleToggle handles PATCH /api/v1/scoring-rules/{id}/enabled.
func (h *ScoringRuleHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SetEnabled(r.Context(), chi.URLParam(r, "id"), req.Enabled); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	utils.WriteNoContent(w)
}
