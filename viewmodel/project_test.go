package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/hireflow/talent-gateway/matcher"
)

func TestProjectPipeline(t *testing.T) {
	payload := gjson.Parse(`{
		"totalCandidates": 10,
		"activeCandidates": 8,
		"hiredThisMonth": 3,
		"avgTimeToHireDays": 21,
		"byStatus": [
			{"status": "New", "count": 7},
			{"status": "Hired", "count": 3}
		]
	}`)

	out := ProjectPipeline(payload)

	assert.Equal(t, 10, out.TotalCandidates)
	assert.Equal(t, 8, out.ActiveCandidates)
	assert.Equal(t, 3, out.HiredThisMonth)
	assert.Equal(t, 21, out.AvgTimeToHireDays)
	assert.Equal(t, []StatusSlice{
		{Status: "New", Count: 7, Percentage: 70, State: StateInformation},
		{Status: "Hired", Count: 3, Percentage: 30, State: StateSuccess},
	}, out.ByStatus)
}

func TestProjectPipeline_MissingFieldsAreFullyPopulated(t *testing.T) {
	out := ProjectPipeline(gjson.Parse(`{"totalCandidates": 5}`))

	assert.Equal(t, 5, out.TotalCandidates)
	assert.Zero(t, out.ActiveCandidates)
	assert.Zero(t, out.HiredThisMonth)
	assert.NotNil(t, out.ByStatus)
	assert.Empty(t, out.ByStatus)
}

func TestProjectSkills(t *testing.T) {
	payload := gjson.Parse(`{
		"topSkills": [{"skill": "Go", "count": 12}, {"skill": "SQL", "count": 9}],
		"emergingSkills": [{"skill": "Rust", "count": 2}]
	}`)

	out := ProjectSkills(payload)

	assert.Equal(t, []SkillCount{{Skill: "Go", Count: 12}, {Skill: "SQL", Count: 9}}, out.TopSkills)
	assert.Equal(t, []SkillCount{{Skill: "Rust", Count: 2}}, out.EmergingSkills)
	assert.NotNil(t, out.SkillGaps, "absent list projects to empty, not nil")
	assert.Empty(t, out.SkillGaps)
}

func TestProjectInterviews(t *testing.T) {
	payload := gjson.Parse(`{
		"totalInterviews": 20,
		"completedInterviews": 15,
		"upcomingInterviews": 5,
		"avgRating": 4.2,
		"byOutcome": [
			{"outcome": "passed", "count": 9},
			{"outcome": "failed", "count": 6}
		]
	}`)

	out := ProjectInterviews(payload)

	assert.Equal(t, 20, out.TotalInterviews)
	assert.Equal(t, 75, out.CompletionRate)
	assert.InDelta(t, 4.2, out.AvgRating, 0.001)
	assert.Equal(t, []OutcomeSlice{
		{Outcome: "passed", Count: 9, Percentage: 60},
		{Outcome: "failed", Count: 6, Percentage: 40},
	}, out.ByOutcome)
}

func TestProjectJobs(t *testing.T) {
	payload := gjson.Parse(`{
		"openPositions": 4,
		"totalApplications": 90,
		"hires": 9,
		"topJobs": [
			{"jobId": "j-1", "title": "Backend Engineer", "applications": 40, "status": "new"}
		]
	}`)

	out := ProjectJobs(payload)

	assert.Equal(t, 4, out.OpenPositions)
	assert.Equal(t, 90, out.TotalApplications)
	assert.Equal(t, 23, out.AvgApplicationsPerJob)
	assert.Equal(t, 10, out.ConversionRate)
	assert.Equal(t, []JobSummary{
		{JobID: "j-1", Title: "Backend Engineer", Applications: 40, Status: "new", State: StateInformation},
	}, out.TopJobs)
}

func TestProjectMatchStatistics(t *testing.T) {
	payload := gjson.Parse(`{
		"averageScore": 0.72,
		"strongMatches": 5,
		"topMatches": [
			{"candidateId": "c-1", "candidateName": "Ada", "jobId": "j-1",
			 "jobTitle": "Backend Engineer", "score": 0.914, "explanation": "strong skills overlap"}
		]
	}`)

	out := ProjectMatchStatistics(payload)

	assert.Equal(t, 72, out.AverageScore)
	assert.Equal(t, 5, out.StrongMatches)
	assert.False(t, out.MLUsed)
	assert.Equal(t, []MatchRow{
		{CandidateID: "c-1", CandidateName: "Ada", JobID: "j-1",
			JobTitle: "Backend Engineer", Score: 91, Explanation: "strong skills overlap"},
	}, out.TopMatches)
}

func TestProjectSemanticSearch(t *testing.T) {
	resp := &matcher.SearchResponse{
		MLUsed: true,
		Results: []matcher.SearchHit{
			{CandidateID: "c-1", Name: "Ada", Score: 0.88, Skills: []string{"Go"}, Summary: "backend"},
			{CandidateID: "c-2", Name: "Linus", Score: 0.61},
		},
	}

	out := ProjectSemanticSearch("golang", resp)

	assert.Equal(t, "golang", out.Query)
	assert.True(t, out.MLUsed)
	assert.Equal(t, 88, out.Results[0].Score)
	assert.NotNil(t, out.Results[1].Skills, "nil skills project to empty slice")
	assert.Empty(t, out.Results[1].Skills)
}

func TestProjectCandidateSearch_MLUsedIsAlwaysFalse(t *testing.T) {
	payload := gjson.Parse(`[
		{"candidateId": "c-1", "name": "Ada", "score": 0.75, "skills": ["Go", "SQL"], "summary": "backend"}
	]`)

	out := ProjectCandidateSearch("golang", payload)

	assert.False(t, out.MLUsed)
	assert.Equal(t, "golang", out.Query)
	assert.Equal(t, []SearchHit{
		{CandidateID: "c-1", Name: "Ada", Score: 75, Skills: []string{"Go", "SQL"}, Summary: "backend"},
	}, out.Results)
}
