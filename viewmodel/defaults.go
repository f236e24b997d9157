package viewmodel

// Static defaults: the canonical empty shape per dashboard category,
// structurally identical to the corresponding projector output so the
// view never observes a shape mismatch between real data and the
// no-data state. All counts are zero and all collections are empty but
// non-nil.

// DefaultPipeline returns the empty pipeline shape.
func DefaultPipeline() PipelineOverview {
	return PipelineOverview{ByStatus: []StatusSlice{}}
}

// DefaultSkills returns the empty skills shape.
func DefaultSkills() SkillAnalytics {
	return SkillAnalytics{
		TopSkills:      []SkillCount{},
		EmergingSkills: []SkillCount{},
		SkillGaps:      []SkillCount{},
	}
}

// DefaultInterviews returns the empty interview shape.
func DefaultInterviews() InterviewAnalytics {
	return InterviewAnalytics{ByOutcome: []OutcomeSlice{}}
}

// DefaultJobs returns the empty job KPI shape.
func DefaultJobs() JobKPIs {
	return JobKPIs{TopJobs: []JobSummary{}}
}

// DefaultMatchInsights returns the empty insights shape. MLUsed is
// false: no tier answered, so no semantic path ran.
func DefaultMatchInsights() MatchInsights {
	return MatchInsights{TopMatches: []MatchRow{}}
}

// DefaultSearchResults returns the empty search shape for a query.
func DefaultSearchResults(query string) SearchResults {
	return SearchResults{Query: query, Results: []SearchHit{}}
}
