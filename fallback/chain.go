// Package fallback implements the resilient data-fetch chain used by
// every dashboard and search operation: an ordered list of remote tiers
// tried strictly in sequence, short-circuiting on the first success,
// with a terminal static default that cannot fail. Failures from
// non-terminal tiers are logged and swallowed, never surfaced.
package fallback

import (
	"context"

	"go.uber.org/zap"
)

// Tier is one attempt in the chain: a named fetch producing the final
// projected value directly, so the caller sees a uniform shape no
// matter which tier answered.
type Tier[T any] struct {
	// Name identifies the tier in logs, e.g. "ml-semantic-search".
	Name string

	// Fetch performs the remote call and projection.
	Fetch func(ctx context.Context) (T, error)
}

// Result carries the value of whichever tier succeeded.
type Result[T any] struct {
	// Value is the projected result.
	Value T

	// Tier is the name of the tier that answered, or "default".
	Tier string

	// Fallback is true when the primary tier did not answer.
	Fallback bool
}

// Chain is an ordered fallback specification. Construct it fresh per
// invocation; chains are not reused across calls.
type Chain[T any] struct {
	operation string
	tiers     []Tier[T]
	terminal  func() T
	logger    *zap.Logger
}

// NewChain creates a chain for one operation. The default provider is
// the terminal tier; it must be deterministic and cannot fail.
func NewChain[T any](operation string, logger *zap.Logger, defaultProvider func() T) *Chain[T] {
	return &Chain[T]{
		operation: operation,
		terminal:  defaultProvider,
		logger:    logger,
	}
}

// Then appends a tier. Tiers run in the order they were appended.
func (c *Chain[T]) Then(name string, fetch func(ctx context.Context) (T, error)) *Chain[T] {
	c.tiers = append(c.tiers, Tier[T]{Name: name, Fetch: fetch})
	return c
}

// Run tries each tier in order and stops at the first success. Tiers
// after a successful one are never invoked, so mutating operations are
// never duplicated. When every tier fails the terminal default answers.
func (c *Chain[T]) Run(ctx context.Context) Result[T] {
	for i, tier := range c.tiers {
		value, err := tier.Fetch(ctx)
		if err == nil {
			return Result[T]{Value: value, Tier: tier.Name, Fallback: i > 0}
		}
		c.logger.Warn("fallback tier failed",
			zap.String("operation", c.operation),
			zap.String("tier", tier.Name),
			zap.Error(err))
	}
	return Result[T]{Value: c.terminal(), Tier: "default", Fallback: true}
}
