package enclosure

import (
	"errors"
	"fmt"

	"github.com/gridpen/enclose/backend"
	"github.com/gridpen/enclose/backend/glpkmip"
	"github.com/gridpen/enclose/graph"
	"github.com/gridpen/enclose/model"
	"github.com/gridpen/enclose/tilemap"
)

// ErrNegativeBudget rejects a barrier budget below zero.
var ErrNegativeBudget = errors.New("enclosure: barrier budget must be non-negative")

// Option configures a single Solve call.
type Option func(*config)

type config struct {
	encoding model.Encoding
	solver   backend.Solver
	weights  model.Weights
	limits   backend.Options
}

// WithEncoding selects the model formulation. Default: model.FlowEncoding.
func WithEncoding(e model.Encoding) Option {
	return func(c *config) { c.encoding = e }
}

// WithBackend injects the solve backend. Default: glpkmip.New().
func WithBackend(s backend.Solver) Option {
	return func(c *config) { c.solver = s }
}

// WithWeights overrides the scoring weights. Default: model.DefaultWeights.
func WithWeights(w model.Weights) Option {
	return func(c *config) { c.weights = w }
}

// WithLimits bounds the backend search. Hitting a limit yields a
// Feasible or Unknown outcome, never an error.
func WithLimits(o backend.Options) Option {
	return func(c *config) { c.limits = o }
}

// Solve decides which cells of grid become barriers, at most budget of
// them, maximizing the score of the root-connected enclosure.
//
// The model is rebuilt from scratch on every call. An over-constrained
// instance returns an Outcome with Status Infeasible and no error;
// errors are reserved for invalid arguments and backend plumbing
// failures.
func Solve(grid *tilemap.Grid, budget int, opts ...Option) (*Outcome, error) {
	if budget < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeBudget, budget)
	}
	cfg := config{
		encoding: model.FlowEncoding{},
		solver:   glpkmip.New(),
		weights:  model.DefaultWeights(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := graph.Build(grid)
	m, vm := cfg.encoding.Build(g, budget, cfg.weights)
	res, err := cfg.solver.Solve(m, cfg.limits)
	if err != nil {
		return nil, fmt.Errorf("enclosure: %s backend: %w", cfg.encoding.Name(), err)
	}
	return interpret(g, vm, res), nil
}
