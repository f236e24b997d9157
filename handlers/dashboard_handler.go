package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/utils"
	"github.com/hireflow/talent-gateway/viewmodel"
)

// defaultDashboardWindow is the date range used when the caller does
// not pass one.
const defaultDashboardWindow = 90 * 24 * time.Hour

// defaultTopSkills bounds the skill lists when topN is absent.
const defaultTopSkills = 10

// DashboardService defines the dashboard operations the handler needs.
// Dashboard fetches cannot fail: the terminal default always answers.
type DashboardService interface {
	Pipeline(ctx context.Context, from, to time.Time) viewmodel.PipelineOverview
	Skills(ctx context.Context, topN int) viewmodel.SkillAnalytics
	Interviews(ctx context.Context, from, to time.Time) viewmodel.InterviewAnalytics
	Jobs(ctx context.Context) viewmodel.JobKPIs
	Insights(ctx context.Context) viewmodel.MatchInsights
}

// DashboardHandler serves the dashboard section endpoints.
type DashboardHandler struct {
	service DashboardService
	logger  *zap.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(service DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, logger: logger}
}

// HandlePipeline handles GET /api/v1/dashboard/pipeline.
func (h *DashboardHandler) HandlePipeline(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), nil)
		return
	}
	_ = utils.WriteJSON(w, http.StatusOK, h.service.Pipeline(r.Context(), from, to))
}

// HandleSkills handles GET /api/v1/dashboard/skills.
func (h *DashboardHandler) HandleSkills(w http.ResponseWriter, r *http.Request) {
	topN := defaultTopSkills
	if raw := r.URL.Query().Get("topN"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			_ = utils.WriteBadRequest(w, "topN must be a positive integer", nil)
			return
		}
		topN = parsed
	}
	_ = utils.WriteJSON(w, http.StatusOK, h.service.Skills(r.Context(), topN))
}

// HandleInterviews handles GET /api/v1/dashboard/interviews.
func (h *DashboardHandler) HandleInterviews(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), nil)
		return
	}
	_ = utils.WriteJSON(w, http.StatusOK, h.service.Interviews(r.Context(), from, to))
}

// HandleJobs handles GET /api/v1/dashboard/jobs.
func (h *DashboardHandler) HandleJobs(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteJSON(w, http.StatusOK, h.service.Jobs(r.Context()))
}

// HandleInsights handles GET /api/v1/dashboard/insights.
func (h *DashboardHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteJSON(w, http.StatusOK, h.service.Insights(r.Context()))
}

// dateRange parses the from/to query parameters (2006-01-02), applying
// the default window when absent.
func dateRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.Add(-defaultDashboardWindow)
	to := now

	query := r.URL.Query()
	if raw := query.Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidDate("from")
		}
		from = parsed
	}
	if raw := query.Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidDate("to")
		}
		to = parsed
	}
	return from, to, nil
}

type invalidDateError string

func errInvalidDate(field string) error {
	return invalidDateError(field)
}

func (e invalidDateError) Error() string {
	return string(e) + " must be a date in YYYY-MM-DD format"
}
