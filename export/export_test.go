package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/odata"
	"github.com/hireflow/talent-gateway/remote"
)

type mockODataClient struct {
	mock.Mock
}

func (m *mockODataClient) List(ctx context.Context, entitySet string, query odata.Query) (gjson.Result, error) {
	args := m.Called(ctx, entitySet, query)
	return args.Get(0).(gjson.Result), args.Error(1)
}

func sampleCandidates() []CandidateRow {
	return []CandidateRow{
		{
			CandidateID: "c-1",
			Name:        "Ada Lovelace",
			Email:       "ada@example.com",
			Status:      "hired",
			Score:       91,
			Skills:      []string{"Go", "SQL"},
			AppliedAt:   "2024-01-15",
		},
		{
			CandidateID: "c-2",
			Name:        `Smith, Jordan "JJ"`,
			Email:       "jordan@example.com",
			Status:      "screening",
			Score:       64,
			Skills:      []string{},
			AppliedAt:   "2024-02-01",
		},
	}
}

func TestService_Candidates(t *testing.T) {
	odataClient := new(mockODataClient)
	odataClient.On("List", mock.Anything, "Candidates", odata.Query{OrderBy: "appliedAt desc"}).
		Return(gjson.Parse(`[
			{"candidateId":"c-1","name":"Ada","email":"ada@example.com","status":"hired","score":0.91,"skills":["Go"],"appliedAt":"2024-01-15"}
		]`), nil)

	service := NewService(odataClient, zap.NewNop())
	rows, err := service.Candidates(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 91, rows[0].Score)
	assert.Equal(t, []string{"Go"}, rows[0].Skills)
}

func TestService_Candidates_BackendFailureSurfaces(t *testing.T) {
	odataClient := new(mockODataClient)
	odataClient.On("List", mock.Anything, "Candidates", mock.Anything).
		Return(gjson.Result{}, remote.NewCallError("Candidates", remote.KindStatus, 500, "backend down", nil))

	service := NewService(odataClient, zap.NewNop())
	_, err := service.Candidates(context.Background())

	assert.True(t, remote.IsStatus(err), "exports have no fallback tier")
}

func TestService_Matches(t *testing.T) {
	odataClient := new(mockODataClient)
	odataClient.On("List", mock.Anything, "MatchResults", odata.Query{OrderBy: "score desc"}).
		Return(gjson.Parse(`[
			{"matchId":"m-1","candidateName":"Ada","jobTitle":"Backend Engineer","score":0.88,"mlUsed":true,"matchedAt":"2024-03-01"}
		]`), nil)

	service := NewService(odataClient, zap.NewNop())
	rows, err := service.Matches(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 88, rows[0].Score)
	assert.True(t, rows[0].MLUsed)
}

func TestWriteCandidatesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCandidatesCSV(&buf, sampleCandidates()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, candidateHeader, records[0])
	assert.Equal(t, []string{"c-1", "Ada Lovelace", "ada@example.com", "hired", "91", "Go; SQL", "2024-01-15"}, records[1])
	// Commas and quotes in names survive the round trip.
	assert.Equal(t, `Smith, Jordan "JJ"`, records[2][1])
}

func TestWriteMatchesCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []MatchResultRow{
		{MatchID: "m-1", CandidateName: "Ada", JobTitle: "Backend Engineer", Score: 88, MLUsed: true, MatchedAt: "2024-03-01"},
	}
	require.NoError(t, WriteMatchesCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, matchHeader, records[0])
	assert.Equal(t, []string{"m-1", "Ada", "Backend Engineer", "88", "true", "2024-03-01"}, records[1])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleCandidates()))

	var decoded []CandidateRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "c-1", decoded[0].CandidateID)
}

func TestWriteCandidatesXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCandidatesXLSX(&buf, sampleCandidates()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Candidates"}, f.GetSheetList())

	header, err := f.GetCellValue("Candidates", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Candidate ID", header)

	name, err := f.GetCellValue("Candidates", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", name)

	skills, err := f.GetCellValue("Candidates", "F3")
	require.NoError(t, err)
	assert.Empty(t, skills)
}

func TestWriteMatchesXLSX(t *testing.T) {
	var buf bytes.Buffer
	rows := []MatchResultRow{
		{MatchID: "m-1", CandidateName: "Ada", JobTitle: "Backend Engineer", Score: 88, MLUsed: true, MatchedAt: "2024-03-01"},
	}
	require.NoError(t, WriteMatchesXLSX(&buf, rows))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	score, err := f.GetCellValue("Matches", "D2")
	require.NoError(t, err)
	assert.Equal(t, "88", score)
}
