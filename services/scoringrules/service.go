// Package scoringrules manages the matching engine's scoring rules.
// The rules live in the backend's ScoringRules entity set; this layer
// only validates input and delegates the CRUD calls.
package scoringrules

import (
	"context"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/odata"
	"github.com/hireflow/talent-gateway/utils"
)

const entitySet = "ScoringRules"

// Rule is one scoring rule as exchanged with the backend.
type Rule struct {
	RuleID      string `json:"ruleId,omitempty"`
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Criterion   string `json:"criterion" validate:"required,oneof=skills experience education location language certification"`
	Weight      int    `json:"weight" validate:"gte=0,lte=100"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// ODataClient is the slice of the OData client this service needs.
type ODataClient interface {
	List(ctx context.Context, entitySet string, query odata.Query) (gjson.Result, error)
	Get(ctx context.Context, entitySet string, key any) (gjson.Result, error)
	Create(ctx context.Context, entitySet string, entity any) (gjson.Result, error)
	Update(ctx context.Context, entitySet string, key any, entity any) (gjson.Result, error)
	Delete(ctx context.Context, entitySet string, key any) error
}

// Service manages scoring rules.
type Service struct {
	odata  ODataClient
	logger *zap.Logger
}

// NewService creates a scoring rules service.
func NewService(odataClient ODataClient, logger *zap.Logger) *Service {
	return &Service{odata: odataClient, logger: logger}
}

// List returns all scoring rules ordered by weight.
func (s *Service) List(ctx context.Context) ([]Rule, error) {
	rows, err := s.odata.List(ctx, entitySet, odata.Query{OrderBy: "weight desc"})
	if err != nil {
		return nil, err
	}
	rules := []Rule{}
	rows.ForEach(func(_, row gjson.Result) bool {
		rules = append(rules, projectRule(row))
		return true
	})
	return rules, nil
}

// Get returns one scoring rule by ID.
func (s *Service) Get(ctx context.Context, ruleID string) (Rule, error) {
	row, err := s.odata.Get(ctx, entitySet, ruleID)
	if err != nil {
		return Rule{}, err
	}
	return projectRule(row), nil
}

// Create validates and stores a new rule, returning it with the
// backend-assigned ID.
func (s *Service) Create(ctx context.Context, rule Rule) (Rule, error) {
	if err := utils.ValidateStruct(&rule); err != nil {
		return Rule{}, err
	}
	rule.RuleID = ""

	created, err := s.odata.Create(ctx, entitySet, rule)
	if err != nil {
		return Rule{}, err
	}
	out := projectRule(created)
	s.logger.Info("scoring rule created",
		zap.String("rule_id", out.RuleID),
		zap.String("criterion", out.Criterion))
	return out, nil
}

// Update validates and replaces an existing rule.
func (s *Service) Update(ctx context.Context, ruleID string, rule Rule) (Rule, error) {
	if err := utils.ValidateStruct(&rule); err != nil {
		return Rule{}, err
	}
	rule.RuleID = ruleID

	updated, err := s.odata.Update(ctx, entitySet, ruleID, rule)
	if err != nil {
		return Rule{}, err
	}
	// Some backends answer PATCH with 204; echo the input then.
	if !updated.Exists() {
		return rule, nil
	}
	return projectRule(updated), nil
}

// Delete removes a rule.
func (s *Service) Delete(ctx context.Context, ruleID string) error {
	if err := s.odata.Delete(ctx, entitySet, ruleID); err != nil {
		return err
	}
	s.logger.Info("scoring rule deleted", zap.String("rule_id", ruleID))
	return nil
}

// SetEnabled toggles a rule without touching its other fields.
func (s *Service) SetEnabled(ctx context.Context, ruleID string, enabled bool) error {
	_, err := s.odata.Update(ctx, entitySet, ruleID, map[string]any{"enabled": enabled})
	return err
}

func projectRule(row gjson.Result) Rule {
	return Rule{
		RuleID:      row.Get("ruleId").String(),
		Name:        row.Get("name").String(),
		Criterion:   row.Get("criterion").String(),
		Weight:      int(row.Get("weight").Int()),
		Enabled:     row.Get("enabled").Bool(),
		Description: row.Get("description").String(),
	}
}
