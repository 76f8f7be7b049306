package model

import (
	"fmt"
	"math"

	"github.com/gridpen/enclose/graph"
)

// Var is a single decision variable with inclusive bounds.
type Var struct {
	Name    string
	Lo, Hi  float64
	Integer bool
}

// LinTerm is a coefficient applied to the variable at index Var.
type LinTerm struct {
	Var  int
	Coef float64
}

// Constraint bounds a linear expression: Lo ≤ Σ Terms ≤ Hi.
// Use math.Inf for one-sided constraints and Lo == Hi for equalities.
type Constraint struct {
	Name   string
	Terms  []LinTerm
	Lo, Hi float64
}

// Model is a declarative optimization model over dense variable indices.
// It is rebuilt from scratch for every solve; nothing here is shared or
// mutated after Build returns.
type Model struct {
	Vars      []Var
	Cons      []Constraint
	Objective []LinTerm
	Maximize  bool
}

// New returns an empty maximization model.
func New() *Model { return &Model{Maximize: true} }

// AddVar appends a variable and returns its index.
func (m *Model) AddVar(name string, lo, hi float64, integer bool) int {
	m.Vars = append(m.Vars, Var{Name: name, Lo: lo, Hi: hi, Integer: integer})
	return len(m.Vars) - 1
}

// AddBool appends a binary variable and returns its index.
func (m *Model) AddBool(name string) int {
	return m.AddVar(name, 0, 1, true)
}

// Fix pins variable v to val by collapsing its bounds.
func (m *Model) Fix(v int, val float64) {
	m.Vars[v].Lo = val
	m.Vars[v].Hi = val
}

// AddLe appends Σ terms ≤ ub.
func (m *Model) AddLe(name string, terms []LinTerm, ub float64) {
	m.Cons = append(m.Cons, Constraint{Name: name, Terms: terms, Lo: math.Inf(-1), Hi: ub})
}

// AddGe appends Σ terms ≥ lb.
func (m *Model) AddGe(name string, terms []LinTerm, lb float64) {
	m.Cons = append(m.Cons, Constraint{Name: name, Terms: terms, Lo: lb, Hi: math.Inf(1)})
}

// AddEq appends Σ terms = val.
func (m *Model) AddEq(name string, terms []LinTerm, val float64) {
	m.Cons = append(m.Cons, Constraint{Name: name, Terms: terms, Lo: val, Hi: val})
}

// Stats summarizes model size for logs.
func (m *Model) Stats() string {
	ints := 0
	for _, v := range m.Vars {
		if v.Integer {
			ints++
		}
	}
	return fmt.Sprintf("%d vars (%d integer), %d constraints", len(m.Vars), ints, len(m.Cons))
}

// VarMap exposes the per-node decision variable indices of a built model,
// so the result interpreter can discretize backend values.
type VarMap struct {
	// Barrier[n] and Enclosed[n] index the barrier/enclosed variables of
	// candidate node n.
	Barrier  []int
	Enclosed []int
}

// Weights is the per-kind scoring of enclosed cells.
type Weights struct {
	// Cell is the base score of any enclosed cell.
	Cell float64
	// Cherry is added on top of Cell for every enclosed cherry.
	Cherry float64
	// Toxin is added on top of Cell for every enclosed toxin. Toxins are
	// deliberately not barrier-protected: walling one off is a valid way
	// to avoid its penalty.
	Toxin float64
}

// DefaultWeights matches the reference scoring: 1 per enclosed cell,
// +3 per enclosed cherry, −5 per enclosed toxin.
func DefaultWeights() Weights {
	return Weights{Cell: 1, Cherry: 3, Toxin: -5}
}

// Encoding builds a Model over a candidate graph. Implementations must be
// stateless; Build may be called concurrently on distinct graphs.
type Encoding interface {
	// Name identifies the encoding in logs and CLI flags.
	Name() string
	// Build constructs the model and the node-to-variable map for g with
	// the given barrier budget and scoring weights.
	Build(g *graph.Graph, budget int, w Weights) (*Model, *VarMap)
}
