// Package search serves candidate search: the semantic matcher first,
// the OData searchCandidates function with the same parameters as the
// fallback, and an empty result set as the terminal default.
package search

import (
	"context"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/fallback"
	"github.com/hireflow/talent-gateway/matcher"
	"github.com/hireflow/talent-gateway/odata"
	"github.com/hireflow/talent-gateway/viewmodel"
)

const defaultLimit = 20

// ODataClient is the slice of the OData client this service needs.
type ODataClient interface {
	CallFunction(ctx context.Context, req *odata.Request) (gjson.Result, error)
}

// MatcherClient is the slice of the matching client this service needs.
type MatcherClient interface {
	SemanticSearch(ctx context.Context, query string, limit int) (*matcher.SearchResponse, error)
	SimilarCandidates(ctx context.Context, candidateID string, limit int) (*matcher.SimilarResponse, error)
}

// Service performs candidate searches.
type Service struct {
	odata   ODataClient
	matcher MatcherClient
	logger  *zap.Logger
}

// NewService creates a search service.
func NewService(odataClient ODataClient, matcherClient MatcherClient, logger *zap.Logger) *Service {
	return &Service{
		odata:   odataClient,
		matcher: matcherClient,
		logger:  logger,
	}
}

// Candidates searches candidates by free-text query. When the semantic
// tier fails, the OData function receives the same query and limit and
// the result is flagged as non-semantic.
func (s *Service) Candidates(ctx context.Context, query string, limit int) viewmodel.SearchResults {
	if limit <= 0 {
		limit = defaultLimit
	}

	chain := fallback.NewChain("candidate-search", s.logger, func() viewmodel.SearchResults {
		return viewmodel.DefaultSearchResults(query)
	})
	chain.Then("ml-semantic-search", func(ctx context.Context) (viewmodel.SearchResults, error) {
		resp, err := s.matcher.SemanticSearch(ctx, query, limit)
		if err != nil {
			return viewmodel.SearchResults{}, err
		}
		return viewmodel.ProjectSemanticSearch(query, resp), nil
	})
	chain.Then("odata-search-candidates", func(ctx context.Context) (viewmodel.SearchResults, error) {
		req := odata.Function("searchCandidates").
			Param("query", query).
			Param("limit", limit)
		payload, err := s.odata.CallFunction(ctx, req)
		if err != nil {
			return viewmodel.SearchResults{}, err
		}
		return viewmodel.ProjectCandidateSearch(query, payload), nil
	})
	return chain.Run(ctx).Value
}

// Similar finds candidates similar to the given one, falling back to
// the backend's skill-overlap function when the matcher is down.
func (s *Service) Similar(ctx context.Context, candidateID string, limit int) viewmodel.SearchResults {
	if limit <= 0 {
		limit = defaultLimit
	}

	chain := fallback.NewChain("similar-candidates", s.logger, func() viewmodel.SearchResults {
		return viewmodel.DefaultSearchResults(candidateID)
	})
	chain.Then("ml-similar-candidates", func(ctx context.Context) (viewmodel.SearchResults, error) {
		resp, err := s.matcher.SimilarCandidates(ctx, candidateID, limit)
		if err != nil {
			return viewmodel.SearchResults{}, err
		}
		return viewmodel.ProjectSemanticSearch(candidateID, &matcher.SearchResponse{
			Results: resp.Candidates,
			MLUsed:  resp.MLUsed,
		}), nil
	})
	chain.Then("odata-similar-candidates", func(ctx context.Context) (viewmodel.SearchResults, error) {
		req := odata.Function("findSimilarCandidates").
			Param("candidateId", candidateID).
			Param("limit", limit)
		payload, err := s.odata.CallFunction(ctx, req)
		if err != nil {
			return viewmodel.SearchResults{}, err
		}
		return viewmodel.ProjectCandidateSearch(candidateID, payload), nil
	})
	return chain.Run(ctx).Value
}
