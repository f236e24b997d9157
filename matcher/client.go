// Package matcher is the remote call adapter for the ML matching
// microservice. The service exposes POST JSON endpoints for semantic
// search, similar-candidate lookup, and match scoring; every response
// carries an mlUsed flag saying whether the semantic path actually ran.
package matcher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/remote"
)

// Config holds client configuration for the matching service.
type Config struct {
	// BaseURL is the service endpoint; varies by deployment
	// (local-dev host vs. production gateway path).
	BaseURL string

	// Timeout bounds each call.
	Timeout time.Duration
}

// Client performs calls against the matching service.
type Client struct {
	rest   *resty.Client
	logger *zap.Logger
}

// NewClient creates a matching service client.
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	rest := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("Content-Type", "application/json").
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			req.SetHeader("X-Request-ID", uuid.NewString())
			return nil
		})
	return &Client{rest: rest, logger: logger}
}

// SearchHit is one semantic search result.
type SearchHit struct {
	CandidateID string   `json:"candidateId"`
	Name        string   `json:"name"`
	Score       float64  `json:"score"`
	Skills      []string `json:"skills"`
	Summary     string   `json:"summary"`
}

// SearchResponse is the semantic search payload.
type SearchResponse struct {
	Results []SearchHit `json:"results"`
	MLUsed  bool        `json:"mlUsed"`
}

// MatchScoreResponse is the semantic match scoring payload.
type MatchScoreResponse struct {
	CandidateID string  `json:"candidateId"`
	JobID       string  `json:"jobId"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
	MLUsed      bool    `json:"mlUsed"`
}

// SimilarResponse is the similar-candidate lookup payload.
type SimilarResponse struct {
	Candidates []SearchHit `json:"candidates"`
	MLUsed     bool        `json:"mlUsed"`
}

// SemanticSearch runs a semantic candidate search. An empty result set
// is a success.
func (c *Client) SemanticSearch(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.post(ctx, "semanticSearch", "/search", map[string]any{
		"query": query,
		"limit": limit,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SimilarCandidates looks up candidates similar to the given one.
func (c *Client) SimilarCandidates(ctx context.Context, candidateID string, limit int) (*SimilarResponse, error) {
	var out SimilarResponse
	if err := c.post(ctx, "similarCandidates", "/similar", map[string]any{
		"candidateId": candidateID,
		"limit":       limit,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MatchScore computes a semantic match score for one candidate/job pair.
func (c *Client) MatchScore(ctx context.Context, candidateID, jobID string) (*MatchScoreResponse, error) {
	var out MatchScoreResponse
	if err := c.post(ctx, "matchScore", "/match", map[string]any{
		"candidateId": candidateID,
		"jobId":       jobID,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Healthy reports whether the service answers its health probe.
func (c *Client) Healthy(ctx context.Context) bool {
	resp, err := c.rest.R().SetContext(ctx).Get("/health")
	return err == nil && resp.IsSuccess()
}

// post executes one JSON call and classifies the outcome.
func (c *Client) post(ctx context.Context, operation, path string, body map[string]any, out any) error {
	// Nil parameters are omitted rather than sent.
	for name, value := range body {
		if value == nil {
			delete(body, name)
		}
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return remote.NewCallError(operation, remote.KindTransport, 0, "matcher request failed", err)
	}
	if resp.IsError() {
		message := fmt.Sprintf("matcher returned %s", resp.Status())
		return remote.NewCallError(operation, remote.KindStatus, resp.StatusCode(), message, nil)
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return remote.NewCallError(operation, remote.KindDecode, resp.StatusCode(), "malformed matcher payload", err)
	}
	return nil
}
