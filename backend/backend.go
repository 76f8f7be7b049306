// Package backend defines the solve capability consumed by the
// enclosure core: a black box that accepts a model and returns a
// termination status, an objective value when one exists, and raw
// variable values.
//
// Two realizations ship with this module: backend/glpkmip (GLPK
// branch-and-cut integer programming) and backend/fdprop (finite-domain
// constraint propagation). The formulation layer depends only on this
// interface, never on a concrete solver API.
package backend

import (
	"time"

	"github.com/gridpen/enclose/model"
)

// Status is the termination state of a solve attempt.
type Status uint8

const (
	// Unknown: the backend stopped without proving anything.
	Unknown Status = iota
	// Optimal: the returned values attain the proven optimum.
	Optimal
	// Feasible: the values satisfy all constraints but optimality was
	// not proven (typically a resource limit stopped the search).
	Feasible
	// Infeasible: the constraints admit no assignment.
	Infeasible
	// ModelInvalid: the model could not be translated to the backend.
	ModelInvalid
)

// String returns the canonical status name.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Feasible:
		return "Feasible"
	case Infeasible:
		return "Infeasible"
	case ModelInvalid:
		return "ModelInvalid"
	default:
		return "Unknown"
	}
}

// Result is the raw outcome of one solve call. Values is indexed by
// model variable; it is nil unless Status is Optimal or Feasible.
// Objective is meaningful only when HasObjective is true.
type Result struct {
	Status       Status
	Objective    float64
	HasObjective bool
	Values       []float64
}

// Options bounds a single solve attempt. Zero values mean unlimited.
// Hitting a limit is not an error: the backend reports Feasible when an
// incumbent exists, Unknown otherwise. A backend that cannot enforce a
// limit documents that and ignores it.
type Options struct {
	// TimeLimit caps wall-clock search time.
	TimeLimit time.Duration
	// NodeLimit caps explored search nodes, for backends that count them.
	NodeLimit int
}

// Solver is the black-box solve capability. One call, blocking, no
// cancellation beyond the limits in Options. The error return is
// reserved for adapter failures; model contradictions surface as
// Infeasible in the Result, not as errors.
type Solver interface {
	Solve(m *model.Model, opts Options) (Result, error)
}
