package odata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequest_FunctionPath(t *testing.T) {
	tests := []struct {
		name     string
		request  *Request
		expected string
	}{
		{
			name:     "no parameters",
			request:  Function("getJobKPIs"),
			expected: "/getJobKPIs()",
		},
		{
			name: "string and int parameters in order",
			request: Function("searchCandidates").
				Param("query", "golang developer").
				Param("limit", 20),
			expected: "/searchCandidates(query='golang developer',limit=20)",
		},
		{
			name: "single quotes are doubled",
			request: Function("searchCandidates").
				Param("query", "O'Brien"),
			expected: "/searchCandidates(query='O''Brien')",
		},
		{
			name: "nil parameters are omitted",
			request: Function("getSkillAnalytics").
				Param("topN", 5).
				Param("category", nil),
			expected: "/getSkillAnalytics(topN=5)",
		},
		{
			name: "bool and float literals are bare",
			request: Function("getMatches").
				Param("includeStale", false).
				Param("minScore", 0.75),
			expected: "/getMatches(includeStale=false,minScore=0.75)",
		},
		{
			name: "time renders as quoted ISO literal",
			request: Function("getPipelineOverview").
				Param("fromDate", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
			expected: "/getPipelineOverview(fromDate='2024-01-15T00:00:00Z')",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.request.Path("RecruitmentService"))
		})
	}
}

func TestRequest_BoundActionPath(t *testing.T) {
	req := BoundAction("Candidates", "c-42", "updateStatus")
	assert.Equal(t, "/Candidates('c-42')/RecruitmentService.updateStatus", req.Path("RecruitmentService"))

	// Numeric keys are not quoted.
	req = BoundAction("ScoringRules", 7, "reset")
	assert.Equal(t, "/ScoringRules(7)/RecruitmentService.reset", req.Path("RecruitmentService"))

	// Keys containing quotes are escaped like parameter values.
	req = BoundAction("Candidates", "o'brien", "updateStatus")
	assert.Equal(t, "/Candidates('o''brien')/RecruitmentService.updateStatus", req.Path("RecruitmentService"))
}

func TestRequest_UnboundActionPath(t *testing.T) {
	req := UnboundAction("runMatching")
	assert.Equal(t, "/RecruitmentService.runMatching", req.Path("RecruitmentService"))
}

func TestRequest_BodyOmitsNil(t *testing.T) {
	req := UnboundAction("runMatching").
		Body("jobId", "j-1").
		Body("priority", nil)
	assert.Equal(t, map[string]any{"jobId": "j-1"}, req.BodyMap())
}

func TestQuery_Encode(t *testing.T) {
	assert.Empty(t, Query{}.Encode())

	encoded := Query{
		Filter:  "status eq 'new'",
		OrderBy: "appliedAt desc",
		Top:     50,
	}.Encode()
	assert.Contains(t, encoded, "%24filter=status+eq+%27new%27")
	assert.Contains(t, encoded, "%24orderby=appliedAt+desc")
	assert.Contains(t, encoded, "%24top=50")
}
