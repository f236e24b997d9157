// Package candidates performs the mutating recruitment operations:
// status updates, interview scheduling, match feedback, and matching
// runs. These are single-tier calls with no fallback — a failed
// mutation surfaces to the caller instead of being silently retried
// against another tier.
package candidates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/odata"
	"github.com/hireflow/talent-gateway/polling"
	"github.com/hireflow/talent-gateway/utils"
	"github.com/hireflow/talent-gateway/viewmodel"
)

// ErrUnknownStatus is returned when a status update names a status
// outside the known enumeration. Caught before any network call.
var ErrUnknownStatus = errors.New("unknown candidate status")

// validStatuses is the candidate status enumeration the backend
// accepts.
var validStatuses = map[string]struct{}{
	"new":         {},
	"screening":   {},
	"shortlisted": {},
	"interviewed": {},
	"offered":     {},
	"hired":       {},
	"rejected":    {},
	"withdrawn":   {},
}

// ODataClient is the slice of the OData client this service needs.
type ODataClient interface {
	CallFunction(ctx context.Context, req *odata.Request) (gjson.Result, error)
	CallAction(ctx context.Context, req *odata.Request) (gjson.Result, error)
}

// Service performs candidate and matching mutations.
type Service struct {
	odata  ODataClient
	logger *zap.Logger
}

// NewService creates a candidates service.
func NewService(odataClient ODataClient, logger *zap.Logger) *Service {
	return &Service{odata: odataClient, logger: logger}
}

// UpdateStatus moves a candidate to a new pipeline status via the
// bound updateStatus action.
func (s *Service) UpdateStatus(ctx context.Context, candidateID, status string) error {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if _, ok := validStatuses[normalized]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	req := odata.BoundAction("Candidates", candidateID, "updateStatus").
		Body("status", normalized)
	if _, err := s.odata.CallAction(ctx, req); err != nil {
		return err
	}
	s.logger.Info("candidate status updated",
		zap.String("candidate_id", candidateID),
		zap.String("status", normalized))
	return nil
}

// ScheduleInterviewRequest carries the fields of a new interview.
type ScheduleInterviewRequest struct {
	CandidateID string    `json:"candidateId" validate:"required"`
	JobID       string    `json:"jobId" validate:"required"`
	Interviewer string    `json:"interviewer" validate:"required,email"`
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
	Mode        string    `json:"mode" validate:"omitempty,oneof=onsite remote phone"`
	Notes       string    `json:"notes,omitempty"`
}

// ScheduleInterview books an interview via the bound scheduleInterview
// action and returns the created interview ID.
func (s *Service) ScheduleInterview(ctx context.Context, req ScheduleInterviewRequest) (string, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		return "", err
	}

	action := odata.BoundAction("Candidates", req.CandidateID, "scheduleInterview").
		Body("jobId", req.JobID).
		Body("interviewer", req.Interviewer).
		Body("scheduledAt", req.ScheduledAt.UTC().Format(time.RFC3339)).
		Body("mode", req.Mode).
		Body("notes", req.Notes)
	payload, err := s.odata.CallAction(ctx, action)
	if err != nil {
		return "", err
	}

	interviewID := payload.Get("interviewId").String()
	s.logger.Info("interview scheduled",
		zap.String("candidate_id", req.CandidateID),
		zap.String("interview_id", interviewID))
	return interviewID, nil
}

// SubmitMatchFeedback records whether a match result was useful.
func (s *Service) SubmitMatchFeedback(ctx context.Context, matchID string, useful bool, comment string) error {
	req := odata.BoundAction("MatchResults", matchID, "submitMatchFeedback").
		Body("useful", useful)
	if comment != "" {
		req.Body("comment", comment)
	}
	_, err := s.odata.CallAction(ctx, req)
	return err
}

// PublishJob publishes a job posting via its bound action.
func (s *Service) PublishJob(ctx context.Context, jobID string) error {
	_, err := s.odata.CallAction(ctx, odata.BoundAction("JobPostings", jobID, "publish"))
	return err
}

// MatchingProgress is one snapshot of a running matching job.
type MatchingProgress struct {
	RunID     string `json:"runId"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
	Status    string `json:"status"`
}

// finished statuses for a matching run.
func (p MatchingProgress) finished() bool {
	switch strings.ToLower(p.Status) {
	case "completed", "failed", "cancelled":
		return true
	}
	return p.Total > 0 && p.Processed >= p.Total
}

// StartMatchingRun kicks off a matching run for a job and returns the
// run identifier.
func (s *Service) StartMatchingRun(ctx context.Context, jobID string) (string, error) {
	if jobID == "" {
		return "", utils.NewRequiredFieldError("jobId")
	}

	payload, err := s.odata.CallAction(ctx, odata.UnboundAction("runMatching").Body("jobId", jobID))
	if err != nil {
		return "", err
	}

	runID := payload.Get("runId").String()
	s.logger.Info("matching run started",
		zap.String("job_id", jobID),
		zap.String("run_id", runID))
	return runID, nil
}

// GetMatchingProgress reads one progress snapshot for a run.
func (s *Service) GetMatchingProgress(ctx context.Context, runID string) (MatchingProgress, error) {
	payload, err := s.odata.CallFunction(ctx, odata.Function("getMatchingProgress").Param("runId", runID))
	if err != nil {
		return MatchingProgress{}, err
	}
	return projectProgress(runID, payload), nil
}

// TrackMatchingRun polls the run's progress at the given interval until
// it finishes or the returned task is stopped.
func (s *Service) TrackMatchingRun(ctx context.Context, runID string, interval time.Duration, callbacks polling.Callbacks[MatchingProgress]) *polling.Task {
	probe := func(ctx context.Context) (MatchingProgress, bool, error) {
		progress, err := s.GetMatchingProgress(ctx, runID)
		if err != nil {
			return MatchingProgress{}, false, err
		}
		return progress, progress.finished(), nil
	}
	return polling.Start(ctx, interval, probe, callbacks)
}

func projectProgress(runID string, payload gjson.Result) MatchingProgress {
	progress := MatchingProgress{
		RunID:     runID,
		Processed: int(payload.Get("processed").Int()),
		Total:     int(payload.Get("total").Int()),
		Status:    payload.Get("status").String(),
	}
	if percent := payload.Get("percent"); percent.Exists() {
		progress.Percent = int(percent.Int())
	} else {
		progress.Percent = viewmodel.Percentage(progress.Processed, progress.Total)
	}
	return progress
}
