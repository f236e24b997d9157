package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/services/candidates"
	"github.com/hireflow/talent-gateway/utils"
)

// CandidateService defines the mutating operations the handler needs.
type CandidateService interface {
	UpdateStatus(ctx context.Context, candidateID, status string) error
	ScheduleInterview(ctx context.Context, req candidates.ScheduleInterviewRequest) (string, error)
	SubmitMatchFeedback(ctx context.Context, matchID string, useful bool, comment string) error
	PublishJob(ctx context.Context, jobID string) error
	StartMatchingRun(ctx context.Context, jobID string) (string, error)
	GetMatchingProgress(ctx context.Context, runID string) (candidates.MatchingProgress, error)
}

// CandidateHandler serves the candidate and matching mutation
// endpoints.
type CandidateHandler struct {
	service CandidateService
	logger  *zap.Logger
}

// NewCandidateHandler creates a CandidateHandler.
func NewCandidateHandler(service CandidateService, logger *zap.Logger) *CandidateHandler {
	return &CandidateHandler{service: service, logger: logger}
}

// UpdateStatusRequest is the body of a status update.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateStatus handles PATCH /api/v1/candidates/{id}/status.
func (h *CandidateHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	candidateID := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), candidateID, req.Status); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	utils.WriteNoContent(w)
}

// HandleScheduleInterview handles POST /api/v1/interviews.
func (h *CandidateHandler) HandleScheduleInterview(w http.ResponseWriter, r *http.Request) {
	var req candidates.ScheduleInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	interviewID, err := h.service.ScheduleInterview(r.Context(), req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, map[string]string{"interviewId": interviewID})
}

// MatchFeedbackRequest is the body of a match feedback submission.
type MatchFeedbackRequest struct {
	MatchID string `json:"matchId" validate:"required"`
	Useful  bool   `json:"useful"`
	Comment string `json:"comment,omitempty" validate:"max=1000"`
}

// HandleMatchFeedback handles POST /api/v1/matching/feedback.
func (h *CandidateHandler) HandleMatchFeedback(w http.ResponseWriter, r *http.Request) {
	var req MatchFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := h.service.SubmitMatchFeedback(r.Context(), req.MatchID, req.Useful, req.Comment); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	utils.WriteNoContent(w)
}

// HandlePublishJob handles POST /api/v1/jobs/{id}/publish.
func (h *CandidateHandler) HandlePublishJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	if err := h.service.PublishJob(r.Context(), jobID); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	utils.WriteNoContent(w)
}

// StartMatchingRequest is the body of a matching run start.
type StartMatchingRequest struct {
	JobID string `json:"jobId" validate:"required"`
}

// HandleStartMatching handles POST /api/v1/matching/runs.
func (h *CandidateHandler) HandleStartMatching(w http.ResponseWriter, r *http.Request) {
	var req StartMatchingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	runID, err := h.service.StartMatchingRun(r.Context(), req.JobID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, map[string]string{"runId": runID})
}

// HandleMatchingProgress handles GET /api/v1/matching/runs/{id}/progress.
// The UI polls this endpoint; each call is one probe.
func (h *CandidateHandler) HandleMatchingProgress(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	progress, err := h.service.GetMatchingProgress(r.Context(), runID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteJSON(w, http.StatusOK, progress)
}
