package model

import (
	"fmt"

	"github.com/gridpen/enclose/graph"
	"github.com/gridpen/enclose/tilemap"
)

// CategoricalEncoding is the historical three-state formulation: every
// node carries mutually exclusive excluded/enclosed/barrier binaries,
// and a per-edge helper forces equal states across any edge without a
// barrier endpoint.
//
// There is no global connectivity constraint. On maps where local
// separation does not coincide with connectivity this encoding can
// report detached enclosed islands; use it only on small grids and audit
// the outcome with enclosure.VerifyAssignment.
type CategoricalEncoding struct{}

// Name implements Encoding.
func (CategoricalEncoding) Name() string { return "categorical" }

// Build implements Encoding.
func (CategoricalEncoding) Build(g *graph.Graph, budget int, w Weights) (*Model, *VarMap) {
	m := New()
	grid := g.Grid()
	n := g.Len()
	excluded := make([]int, n)
	enclosed := make([]int, n)
	barrier := make([]int, n)
	budgetTerms := make([]LinTerm, 0, n)

	for i := 0; i < n; i++ {
		at := g.Coord(graph.NodeID(i))
		e := m.AddBool(fmt.Sprintf("excluded_%d_%d", at.Row, at.Col))
		x := m.AddBool(fmt.Sprintf("enclosed_%d_%d", at.Row, at.Col))
		b := m.AddBool(fmt.Sprintf("barrier_%d_%d", at.Row, at.Col))
		excluded[i], enclosed[i], barrier[i] = e, x, b

		// Exactly one state per node.
		m.AddEq(fmt.Sprintf("state_%d_%d", at.Row, at.Col),
			[]LinTerm{{e, 1}, {x, 1}, {b, 1}}, 1)

		switch grid.KindAt(at) {
		case tilemap.KindRoot, tilemap.KindPortal, tilemap.KindCherry:
			m.Fix(b, 0)
		}
		if grid.OnBoundary(at) && at != grid.Root() {
			m.Fix(x, 0)
		}
		budgetTerms = append(budgetTerms, LinTerm{b, 1})
	}
	root := int(g.Root())
	m.Fix(enclosed[root], 1)
	m.Fix(excluded[root], 0)
	m.AddLe("budget", budgetTerms, float64(budget))

	// Per-edge helper: same[e] must be 1 unless a barrier sits on an
	// endpoint, and same[e] = 1 forces equal enclosed states.
	for i, e := range g.UndirectedEdges() {
		s := m.AddBool(fmt.Sprintf("same_%d", i))
		m.AddGe(fmt.Sprintf("same_req_%d", i),
			[]LinTerm{{s, 1}, {barrier[e.U], 1}, {barrier[e.V], 1}}, 1)
		m.AddLe(fmt.Sprintf("same_a_%d", i),
			[]LinTerm{{enclosed[e.U], 1}, {enclosed[e.V], -1}, {s, 1}}, 1)
		m.AddLe(fmt.Sprintf("same_b_%d", i),
			[]LinTerm{{enclosed[e.V], 1}, {enclosed[e.U], -1}, {s, 1}}, 1)
	}

	addObjective(m, g, enclosed, w)
	return m, &VarMap{Barrier: barrier, Enclosed: enclosed}
}
