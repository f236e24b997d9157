package viewmodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// The defaults must be indistinguishable from projecting an empty
// payload: same keys, same zero values, empty non-nil collections.
func TestDefaults_MatchProjectorOutputForEmptyPayload(t *testing.T) {
	empty := gjson.Parse(`{}`)

	assert.Equal(t, ProjectPipeline(empty), DefaultPipeline())
	assert.Equal(t, ProjectSkills(empty), DefaultSkills())
	assert.Equal(t, ProjectInterviews(empty), DefaultInterviews())
	assert.Equal(t, ProjectJobs(empty), DefaultJobs())
	assert.Equal(t, ProjectMatchStatistics(empty), DefaultMatchInsights())
	assert.Equal(t, ProjectCandidateSearch("golang", gjson.Parse(`[]`)), DefaultSearchResults("golang"))
}

func TestDefaults_CollectionsSerializeAsEmptyArrays(t *testing.T) {
	encoded, err := json.Marshal(DefaultSkills())
	require.NoError(t, err)
	assert.JSONEq(t, `{"topSkills":[],"emergingSkills":[],"skillGaps":[]}`, string(encoded))

	encoded, err = json.Marshal(DefaultPipeline())
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"byStatus":[]`)

	encoded, err = json.Marshal(DefaultSearchResults("go"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"go","mlUsed":false,"results":[]}`, string(encoded))
}
