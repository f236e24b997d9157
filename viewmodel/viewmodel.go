// Package viewmodel defines the flat, fully-populated shapes the UI
// binds to, the pure projectors that map raw backend payloads into
// them, and the static defaults used when every remote tier fails.
// Projector output never has missing keys: absent optional fields in
// the raw payload become zeros and empty collections, because the
// binding layer does not null-check nested paths.
package viewmodel

import (
	"math"
	"strings"
)

// State is the UI badge color semantic for a candidate status.
type State string

const (
	StateInformation State = "Information"
	StateWarning     State = "Warning"
	StateSuccess     State = "Success"
	StateError       State = "Error"
	StateNone        State = "None"
)

// StatusState maps a candidate status to its badge state. The mapping
// is total and case-insensitive: every input lands on exactly one
// state, with None as the catch-all.
func StatusState(status string) State {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "new":
		return StateInformation
	case "screening":
		return StateWarning
	case "hired", "shortlisted", "offered":
		return StateSuccess
	case "rejected", "withdrawn":
		return StateError
	default:
		return StateNone
	}
}

// Percentage computes round(part / total * 100). A zero or negative
// total yields 0, never a division by zero or NaN.
func Percentage(part, total int) int {
	if total < 1 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// RoundScore rounds a 0..1 score to a whole percentage for display.
func RoundScore(score float64) int {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	return int(math.Round(score * 100))
}

// StatusSlice is one segment of the pipeline breakdown.
type StatusSlice struct {
	Status     string `json:"status"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
	State      State  `json:"state"`
}

// PipelineOverview is the candidate pipeline dashboard shape.
type PipelineOverview struct {
	TotalCandidates   int           `json:"totalCandidates"`
	ActiveCandidates  int           `json:"activeCandidates"`
	HiredThisMonth    int           `json:"hiredThisMonth"`
	AvgTimeToHireDays int           `json:"avgTimeToHireDays"`
	ByStatus          []StatusSlice `json:"byStatus"`
}

// SkillCount is one skill with its occurrence count.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// SkillAnalytics is the skills dashboard shape.
type SkillAnalytics struct {
	TopSkills      []SkillCount `json:"topSkills"`
	EmergingSkills []SkillCount `json:"emergingSkills"`
	SkillGaps      []SkillCount `json:"skillGaps"`
}

// OutcomeSlice is one interview outcome with its share.
type OutcomeSlice struct {
	Outcome    string `json:"outcome"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// InterviewAnalytics is the interview dashboard shape.
type InterviewAnalytics struct {
	TotalInterviews     int            `json:"totalInterviews"`
	CompletedInterviews int            `json:"completedInterviews"`
	UpcomingInterviews  int            `json:"upcomingInterviews"`
	CompletionRate      int            `json:"completionRate"`
	AvgRating           float64        `json:"avgRating"`
	ByOutcome           []OutcomeSlice `json:"byOutcome"`
}

// JobSummary is one job posting row on the jobs dashboard.
type JobSummary struct {
	JobID        string `json:"jobId"`
	Title        string `json:"title"`
	Applications int    `json:"applications"`
	Status       string `json:"status"`
	State        State  `json:"state"`
}

// JobKPIs is the job postings dashboard shape.
type JobKPIs struct {
	OpenPositions         int          `json:"openPositions"`
	TotalApplications     int          `json:"totalApplications"`
	AvgApplicationsPerJob int          `json:"avgApplicationsPerJob"`
	ConversionRate        int          `json:"conversionRate"`
	TopJobs               []JobSummary `json:"topJobs"`
}

// MatchRow is one candidate/job match on the insights dashboard.
type MatchRow struct {
	CandidateID   string `json:"candidateId"`
	CandidateName string `json:"candidateName"`
	JobID         string `json:"jobId"`
	JobTitle      string `json:"jobTitle"`
	Score         int    `json:"score"`
	Explanation   string `json:"explanation"`
}

// MatchInsights is the AI insights dashboard shape.
type MatchInsights struct {
	AverageScore  int        `json:"averageScore"`
	StrongMatches int        `json:"strongMatches"`
	MLUsed        bool       `json:"mlUsed"`
	TopMatches    []MatchRow `json:"topMatches"`
}

// SearchHit is one candidate search result row.
type SearchHit struct {
	CandidateID string   `json:"candidateId"`
	Name        string   `json:"name"`
	Score       int      `json:"score"`
	Skills      []string `json:"skills"`
	Summary     string   `json:"summary"`
}

// SearchResults is the candidate search shape.
type SearchResults struct {
	Query   string      `json:"query"`
	MLUsed  bool        `json:"mlUsed"`
	Results []SearchHit `json:"results"`
}
