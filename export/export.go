// Package export renders candidate and match-result tables as CSV,
// JSON, or XLSX downloads. Rows are fetched from the OData backend;
// rendering is pure and writes to any io.Writer.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/odata"
	"github.com/hireflow/talent-gateway/viewmodel"
)

// CandidateRow is one exported candidate record.
type CandidateRow struct {
	CandidateID string   `json:"candidateId"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Status      string   `json:"status"`
	Score       int      `json:"score"`
	Skills      []string `json:"skills"`
	AppliedAt   string   `json:"appliedAt"`
}

// MatchResultRow is one exported match record.
type MatchResultRow struct {
	MatchID       string `json:"matchId"`
	CandidateName string `json:"candidateName"`
	JobTitle      string `json:"jobTitle"`
	Score         int    `json:"score"`
	MLUsed        bool   `json:"mlUsed"`
	MatchedAt     string `json:"matchedAt"`
}

// ODataClient is the slice of the OData client this service needs.
type ODataClient interface {
	List(ctx context.Context, entitySet string, query odata.Query) (gjson.Result, error)
}

// Service fetches exportable rows.
type Service struct {
	odata  ODataClient
	logger *zap.Logger
}

// NewService creates an export service.
func NewService(odataClient ODataClient, logger *zap.Logger) *Service {
	return &Service{odata: odataClient, logger: logger}
}

// Candidates fetches all candidate rows, newest first.
func (s *Service) Candidates(ctx context.Context) ([]CandidateRow, error) {
	payload, err := s.odata.List(ctx, "Candidates", odata.Query{OrderBy: "appliedAt desc"})
	if err != nil {
		return nil, err
	}
	rows := []CandidateRow{}
	payload.ForEach(func(_, row gjson.Result) bool {
		skills := []string{}
		row.Get("skills").ForEach(func(_, skill gjson.Result) bool {
			skills = append(skills, skill.String())
			return true
		})
		rows = append(rows, CandidateRow{
			CandidateID: row.Get("candidateId").String(),
			Name:        row.Get("name").String(),
			Email:       row.Get("email").String(),
			Status:      row.Get("status").String(),
			Score:       viewmodel.RoundScore(row.Get("score").Float()),
			Skills:      skills,
			AppliedAt:   row.Get("appliedAt").String(),
		})
		return true
	})
	return rows, nil
}

// Matches fetches all match-result rows, best score first.
func (s *Service) Matches(ctx context.Context) ([]MatchResultRow, error) {
	payload, err := s.odata.List(ctx, "MatchResults", odata.Query{OrderBy: "score desc"})
	if err != nil {
		return nil, err
	}
	rows := []MatchResultRow{}
	payload.ForEach(func(_, row gjson.Result) bool {
		rows = append(rows, MatchResultRow{
			MatchID:       row.Get("matchId").String(),
			CandidateName: row.Get("candidateName").String(),
			JobTitle:      row.Get("jobTitle").String(),
			Score:         viewmodel.RoundScore(row.Get("score").Float()),
			MLUsed:        row.Get("mlUsed").Bool(),
			MatchedAt:     row.Get("matchedAt").String(),
		})
		return true
	})
	return rows, nil
}

// candidateHeader is the CSV/XLSX column order for candidate exports.
var candidateHeader = []string{"Candidate ID", "Name", "Email", "Status", "Score", "Skills", "Applied At"}

// matchHeader is the CSV/XLSX column order for match exports.
var matchHeader = []string{"Match ID", "Candidate", "Job", "Score", "ML Used", "Matched At"}

func (r CandidateRow) record() []string {
	return []string{
		r.CandidateID,
		r.Name,
		r.Email,
		r.Status,
		strconv.Itoa(r.Score),
		strings.Join(r.Skills, "; "),
		r.AppliedAt,
	}
}

func (r MatchResultRow) record() []string {
	return []string{
		r.MatchID,
		r.CandidateName,
		r.JobTitle,
		strconv.Itoa(r.Score),
		strconv.FormatBool(r.MLUsed),
		r.MatchedAt,
	}
}

// WriteCandidatesCSV renders candidate rows as CSV with a header line.
func WriteCandidatesCSV(w io.Writer, rows []CandidateRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(candidateHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.record()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteMatchesCSV renders match rows as CSV with a header line.
func WriteMatchesCSV(w io.Writer, rows []MatchResultRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(matchHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.record()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteJSON renders any export rows as indented JSON.
func WriteJSON(w io.Writer, rows any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}
