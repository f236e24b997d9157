// Package dashboard serves the recruitment dashboard sections. Every
// section is fetched through a fallback chain: the richest remote tier
// first, then a cheaper reconstruction, then the static default, so the
// UI always binds to a fully-populated shape.
package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/fallback"
	"github.com/hireflow/talent-gateway/matcher"
	"github.com/hireflow/talent-gateway/odata"
	"github.com/hireflow/talent-gateway/viewmodel"
)

// ODataClient is the slice of the OData client this service needs.
type ODataClient interface {
	CallFunction(ctx context.Context, req *odata.Request) (gjson.Result, error)
	List(ctx context.Context, entitySet string, query odata.Query) (gjson.Result, error)
}

// MatcherClient is the slice of the matching client this service needs.
type MatcherClient interface {
	MatchScore(ctx context.Context, candidateID, jobID string) (*matcher.MatchScoreResponse, error)
}

// Service fetches dashboard view models.
type Service struct {
	odata   ODataClient
	matcher MatcherClient
	logger  *zap.Logger
}

// NewService creates a dashboard service.
func NewService(odataClient ODataClient, matcherClient MatcherClient, logger *zap.Logger) *Service {
	return &Service{
		odata:   odataClient,
		matcher: matcherClient,
		logger:  logger,
	}
}

// Pipeline fetches the candidate pipeline overview for a date range.
func (s *Service) Pipeline(ctx context.Context, from, to time.Time) viewmodel.PipelineOverview {
	chain := fallback.NewChain("pipeline-overview", s.logger, viewmodel.DefaultPipeline)
	chain.Then("odata-pipeline-overview", func(ctx context.Context) (viewmodel.PipelineOverview, error) {
		req := odata.Function("getPipelineOverview").
			Param("fromDate", from).
			Param("toDate", to)
		payload, err := s.odata.CallFunction(ctx, req)
		if err != nil {
			return viewmodel.PipelineOverview{}, err
		}
		return viewmodel.ProjectPipeline(payload), nil
	})
	chain.Then("odata-candidate-aggregate", func(ctx context.Context) (viewmodel.PipelineOverview, error) {
		return s.aggregatePipeline(ctx)
	})
	return chain.Run(ctx).Value
}

// aggregatePipeline rebuilds the pipeline breakdown from the raw
// Candidates entity set when the analytics function is unavailable.
// Time-to-hire needs backend history, so it stays zero here.
func (s *Service) aggregatePipeline(ctx context.Context) (viewmodel.PipelineOverview, error) {
	rows, err := s.odata.List(ctx, "Candidates", odata.Query{Select: "candidateId,status"})
	if err != nil {
		return viewmodel.PipelineOverview{}, err
	}

	counts := map[string]int{}
	order := []string{}
	total := 0
	active := 0
	rows.ForEach(func(_, row gjson.Result) bool {
		status := row.Get("status").String()
		if _, seen := counts[status]; !seen {
			order = append(order, status)
		}
		counts[status]++
		total++
		switch strings.ToLower(status) {
		case "hired", "rejected", "withdrawn":
		default:
			active++
		}
		return true
	})

	out := viewmodel.PipelineOverview{
		TotalCandidates:  total,
		ActiveCandidates: active,
		ByStatus:         []viewmodel.StatusSlice{},
	}
	for _, status := range order {
		out.ByStatus = append(out.ByStatus, viewmodel.StatusSlice{
			Status:     status,
			Count:      counts[status],
			Percentage: viewmodel.Percentage(counts[status], total),
			State:      viewmodel.StatusState(status),
		})
	}
	return out, nil
}

// Skills fetches the skill analytics with at most topN entries per
// list.
func (s *Service) Skills(ctx context.Context, topN int) viewmodel.SkillAnalytics {
	chain := fallback.NewChain("skill-analytics", s.logger, viewmodel.DefaultSkills)
	chain.Then("odata-skill-analytics", func(ctx context.Context) (viewmodel.SkillAnalytics, error) {
		payload, err := s.odata.CallFunction(ctx, odata.Function("getSkillAnalytics").Param("topN", topN))
		if err != nil {
			return viewmodel.SkillAnalytics{}, err
		}
		return viewmodel.ProjectSkills(payload), nil
	})
	chain.Then("odata-skill-aggregate", func(ctx context.Context) (viewmodel.SkillAnalytics, error) {
		return s.aggregateSkills(ctx, topN)
	})
	return chain.Run(ctx).Value
}

// aggregateSkills counts skill occurrences across candidates. Emerging
// skills and gaps need the analytics backend, so they stay empty here.
func (s *Service) aggregateSkills(ctx context.Context, topN int) (viewmodel.SkillAnalytics, error) {
	rows, err := s.odata.List(ctx, "Candidates", odata.Query{Select: "candidateId,skills"})
	if err != nil {
		return viewmodel.SkillAnalytics{}, err
	}

	counts := map[string]int{}
	rows.ForEach(func(_, row gjson.Result) bool {
		row.Get("skills").ForEach(func(_, skill gjson.Result) bool {
			name := strings.TrimSpace(skill.String())
			if name != "" {
				counts[name]++
			}
			return true
		})
		return true
	})

	top := make([]viewmodel.SkillCount, 0, len(counts))
	for skill, count := range counts {
		top = append(top, viewmodel.SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Skill < top[j].Skill
	})
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}

	return viewmodel.SkillAnalytics{
		TopSkills:      top,
		EmergingSkills: []viewmodel.SkillCount{},
		SkillGaps:      []viewmodel.SkillCount{},
	}, nil
}

// Interviews fetches the interview analytics for a date range.
func (s *Service) Interviews(ctx context.Context, from, to time.Time) viewmodel.InterviewAnalytics {
	chain := fallback.NewChain("interview-analytics", s.logger, viewmodel.DefaultInterviews)
	chain.Then("odata-interview-analytics", func(ctx context.Context) (viewmodel.InterviewAnalytics, error) {
		req := odata.Function("getInterviewAnalytics").
			Param("fromDate", from).
			Param("toDate", to)
		payload, err := s.odata.CallFunction(ctx, req)
		if err != nil {
			return viewmodel.InterviewAnalytics{}, err
		}
		return viewmodel.ProjectInterviews(payload), nil
	})
	return chain.Run(ctx).Value
}

// Jobs fetches the job posting KPIs.
func (s *Service) Jobs(ctx context.Context) viewmodel.JobKPIs {
	chain := fallback.NewChain("job-kpis", s.logger, viewmodel.DefaultJobs)
	chain.Then("odata-job-kpis", func(ctx context.Context) (viewmodel.JobKPIs, error) {
		payload, err := s.odata.CallFunction(ctx, odata.Function("getJobKPIs"))
		if err != nil {
			return viewmodel.JobKPIs{}, err
		}
		return viewmodel.ProjectJobs(payload), nil
	})
	chain.Then("odata-job-aggregate", func(ctx context.Context) (viewmodel.JobKPIs, error) {
		return s.aggregateJobs(ctx)
	})
	return chain.Run(ctx).Value
}

// aggregateJobs rebuilds the job KPIs from the JobPostings entity set.
func (s *Service) aggregateJobs(ctx context.Context) (viewmodel.JobKPIs, error) {
	rows, err := s.odata.List(ctx, "JobPostings", odata.Query{
		Select:  "jobId,title,status,applications",
		OrderBy: "applications desc",
	})
	if err != nil {
		return viewmodel.JobKPIs{}, err
	}

	out := viewmodel.JobKPIs{TopJobs: []viewmodel.JobSummary{}}
	rows.ForEach(func(_, job gjson.Result) bool {
		status := job.Get("status").String()
		applications := int(job.Get("applications").Int())
		if strings.EqualFold(status, "published") || strings.EqualFold(status, "open") {
			out.OpenPositions++
		}
		out.TotalApplications += applications
		if len(out.TopJobs) < 5 {
			out.TopJobs = append(out.TopJobs, viewmodel.JobSummary{
				JobID:        job.Get("jobId").String(),
				Title:        job.Get("title").String(),
				Applications: applications,
				Status:       status,
				State:        viewmodel.StatusState(status),
			})
		}
		return true
	})
	if out.OpenPositions > 0 {
		out.AvgApplicationsPerJob = out.TotalApplications / out.OpenPositions
	}
	return out, nil
}

// Insights fetches the AI match insights. The primary tier re-scores
// the backend's top matches through the semantic matcher; the secondary
// tier serves the backend statistics as-is.
func (s *Service) Insights(ctx context.Context) viewmodel.MatchInsights {
	chain := fallback.NewChain("match-insights", s.logger, viewmodel.DefaultMatchInsights)
	chain.Then("ml-enriched-insights", func(ctx context.Context) (viewmodel.MatchInsights, error) {
		return s.enrichedInsights(ctx)
	})
	chain.Then("odata-match-statistics", func(ctx context.Context) (viewmodel.MatchInsights, error) {
		payload, err := s.odata.CallFunction(ctx, odata.Function("getMatchStatistics"))
		if err != nil {
			return viewmodel.MatchInsights{}, err
		}
		return viewmodel.ProjectMatchStatistics(payload), nil
	})
	return chain.Run(ctx).Value
}

// enrichedInsights fetches the backend statistics and replaces each top
// match score with a fresh semantic score from the matcher. Any matcher
// failure fails the tier as a whole so the chain falls through to the
// plain statistics.
func (s *Service) enrichedInsights(ctx context.Context) (viewmodel.MatchInsights, error) {
	payload, err := s.odata.CallFunction(ctx, odata.Function("getMatchStatistics"))
	if err != nil {
		return viewmodel.MatchInsights{}, err
	}
	insights := viewmodel.ProjectMatchStatistics(payload)

	scoreSum := 0
	for i, match := range insights.TopMatches {
		scored, err := s.matcher.MatchScore(ctx, match.CandidateID, match.JobID)
		if err != nil {
			return viewmodel.MatchInsights{}, err
		}
		insights.TopMatches[i].Score = viewmodel.RoundScore(scored.Score)
		if scored.Explanation != "" {
			insights.TopMatches[i].Explanation = scored.Explanation
		}
		scoreSum += insights.TopMatches[i].Score
	}
	if len(insights.TopMatches) > 0 {
		insights.AverageScore = scoreSum / len(insights.TopMatches)
	}
	insights.MLUsed = true
	return insights, nil
}
