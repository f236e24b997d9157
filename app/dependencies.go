package app

import (
	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/config"
	"github.com/hireflow/talent-gateway/export"
	"github.com/hireflow/talent-gateway/matcher"
	"github.com/hireflow/talent-gateway/odata"
	"github.com/hireflow/talent-gateway/services/candidates"
	"github.com/hireflow/talent-gateway/services/dashboard"
	"github.com/hireflow/talent-gateway/services/scoringrules"
	"github.com/hireflow/talent-gateway/services/search"
)

// Dependencies holds all application dependencies. This is the central
// wiring point for dependency injection: clients first, then the
// services built on them.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger

	// Remote clients
	OData   *odata.Client
	Matcher *matcher.Client

	// Services
	Dashboard    *dashboard.Service
	Search       *search.Service
	Candidates   *candidates.Service
	ScoringRules *scoringrules.Service
	Export       *export.Service
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(cfg *config.Config, logger *zap.Logger) *Dependencies {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	deps.OData = odata.NewClient(odata.Config{
		ServiceRoot: cfg.OData.ServiceRoot,
		Namespace:   cfg.OData.Namespace,
		Timeout:     cfg.OData.Timeout,
	}, logger)

	deps.Matcher = matcher.NewClient(matcher.Config{
		BaseURL: cfg.Matcher.BaseURL,
		Timeout: cfg.Matcher.Timeout,
	}, logger)

	deps.Dashboard = dashboard.NewService(deps.OData, deps.Matcher, logger)
	deps.Search = search.NewService(deps.OData, deps.Matcher, logger)
	deps.Candidates = candidates.NewService(deps.OData, logger)
	deps.ScoringRules = scoringrules.NewService(deps.OData, logger)
	deps.Export = export.NewService(deps.OData, logger)

	logger.Info("all dependencies initialized",
		zap.String("odata_root", cfg.OData.ServiceRoot),
		zap.String("matcher_url", cfg.Matcher.BaseURL))
	return deps
}
