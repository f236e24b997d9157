package viewmodel

import (
	"math"

	"github.com/tidwall/gjson"

	"github.com/hireflow/talent-gateway/matcher"
)

// ProjectPipeline maps the raw pipeline payload into the dashboard
// shape, deriving the percentage and badge state per status segment.
func ProjectPipeline(payload gjson.Result) PipelineOverview {
	total := int(payload.Get("totalCandidates").Int())
	out := PipelineOverview{
		TotalCandidates:   total,
		ActiveCandidates:  int(payload.Get("activeCandidates").Int()),
		HiredThisMonth:    int(payload.Get("hiredThisMonth").Int()),
		AvgTimeToHireDays: int(payload.Get("avgTimeToHireDays").Int()),
		ByStatus:          []StatusSlice{},
	}
	payload.Get("byStatus").ForEach(func(_, slice gjson.Result) bool {
		status := slice.Get("status").String()
		count := int(slice.Get("count").Int())
		out.ByStatus = append(out.ByStatus, StatusSlice{
			Status:     status,
			Count:      count,
			Percentage: Percentage(count, total),
			State:      StatusState(status),
		})
		return true
	})
	return out
}

// ProjectSkills maps the raw skill analytics payload into the skills
// dashboard shape.
func ProjectSkills(payload gjson.Result) SkillAnalytics {
	return SkillAnalytics{
		TopSkills:      projectSkillList(payload.Get("topSkills")),
		EmergingSkills: projectSkillList(payload.Get("emergingSkills")),
		SkillGaps:      projectSkillList(payload.Get("skillGaps")),
	}
}

func projectSkillList(list gjson.Result) []SkillCount {
	out := []SkillCount{}
	list.ForEach(func(_, item gjson.Result) bool {
		out = append(out, SkillCount{
			Skill: item.Get("skill").String(),
			Count: int(item.Get("count").Int()),
		})
		return true
	})
	return out
}

// ProjectInterviews maps the raw interview analytics payload into the
// interview dashboard shape.
func ProjectInterviews(payload gjson.Result) InterviewAnalytics {
	total := int(payload.Get("totalInterviews").Int())
	completed := int(payload.Get("completedInterviews").Int())
	out := InterviewAnalytics{
		TotalInterviews:     total,
		CompletedInterviews: completed,
		UpcomingInterviews:  int(payload.Get("upcomingInterviews").Int()),
		CompletionRate:      Percentage(completed, total),
		AvgRating:           payload.Get("avgRating").Float(),
		ByOutcome:           []OutcomeSlice{},
	}
	payload.Get("byOutcome").ForEach(func(_, slice gjson.Result) bool {
		count := int(slice.Get("count").Int())
		out.ByOutcome = append(out.ByOutcome, OutcomeSlice{
			Outcome:    slice.Get("outcome").String(),
			Count:      count,
			Percentage: Percentage(count, completed),
		})
		return true
	})
	return out
}

// ProjectJobs maps the raw job KPI payload into the jobs dashboard
// shape.
func ProjectJobs(payload gjson.Result) JobKPIs {
	open := int(payload.Get("openPositions").Int())
	applications := int(payload.Get("totalApplications").Int())
	avg := 0
	if open > 0 {
		avg = int(math.Round(float64(applications) / float64(open)))
	}
	out := JobKPIs{
		OpenPositions:         open,
		TotalApplications:     applications,
		AvgApplicationsPerJob: avg,
		ConversionRate:        Percentage(int(payload.Get("hires").Int()), applications),
		TopJobs:               []JobSummary{},
	}
	payload.Get("topJobs").ForEach(func(_, job gjson.Result) bool {
		status := job.Get("status").String()
		out.TopJobs = append(out.TopJobs, JobSummary{
			JobID:        job.Get("jobId").String(),
			Title:        job.Get("title").String(),
			Applications: int(job.Get("applications").Int()),
			Status:       status,
			State:        StatusState(status),
		})
		return true
	})
	return out
}

// ProjectMatchStatistics maps the raw match statistics payload into the
// insights shape. The OData tier never runs the semantic model, so
// MLUsed reflects only what the payload claims.
func ProjectMatchStatistics(payload gjson.Result) MatchInsights {
	out := MatchInsights{
		AverageScore:  RoundScore(payload.Get("averageScore").Float()),
		StrongMatches: int(payload.Get("strongMatches").Int()),
		MLUsed:        payload.Get("mlUsed").Bool(),
		TopMatches:    []MatchRow{},
	}
	payload.Get("topMatches").ForEach(func(_, match gjson.Result) bool {
		out.TopMatches = append(out.TopMatches, MatchRow{
			CandidateID:   match.Get("candidateId").String(),
			CandidateName: match.Get("candidateName").String(),
			JobID:         match.Get("jobId").String(),
			JobTitle:      match.Get("jobTitle").String(),
			Score:         RoundScore(match.Get("score").Float()),
			Explanation:   match.Get("explanation").String(),
		})
		return true
	})
	return out
}

// ProjectSemanticSearch maps a matcher search response into the search
// results shape.
func ProjectSemanticSearch(query string, resp *matcher.SearchResponse) SearchResults {
	out := SearchResults{
		Query:   query,
		MLUsed:  resp.MLUsed,
		Results: []SearchHit{},
	}
	for _, hit := range resp.Results {
		out.Results = append(out.Results, projectHit(hit))
	}
	return out
}

// ProjectCandidateSearch maps the OData searchCandidates payload into
// the search results shape. The OData path is always non-semantic, so
// MLUsed is false.
func ProjectCandidateSearch(query string, payload gjson.Result) SearchResults {
	out := SearchResults{
		Query:   query,
		MLUsed:  false,
		Results: []SearchHit{},
	}
	payload.ForEach(func(_, hit gjson.Result) bool {
		skills := []string{}
		hit.Get("skills").ForEach(func(_, skill gjson.Result) bool {
			skills = append(skills, skill.String())
			return true
		})
		out.Results = append(out.Results, SearchHit{
			CandidateID: hit.Get("candidateId").String(),
			Name:        hit.Get("name").String(),
			Score:       RoundScore(hit.Get("score").Float()),
			Skills:      skills,
			Summary:     hit.Get("summary").String(),
		})
		return true
	})
	return out
}

func projectHit(hit matcher.SearchHit) SearchHit {
	skills := hit.Skills
	if skills == nil {
		skills = []string{}
	}
	return SearchHit{
		CandidateID: hit.CandidateID,
		Name:        hit.Name,
		Score:       RoundScore(hit.Score),
		Skills:      skills,
		Summary:     hit.Summary,
	}
}
