package model

import (
	"fmt"

	"github.com/gridpen/enclose/graph"
)

// OrderEncoding replaces the flow construction with a reachability tree:
// every enclosed non-root node picks exactly one parent arc, and integer
// depths increase strictly along parent arcs, which rules out parent
// cycles detached from the root.
//
// Caution: this formulation has produced detached enclosed regions on
// some instances and is not considered verified. It is never selected
// implicitly; callers choosing it should audit the outcome with
// enclosure.VerifyAssignment and cross-check the objective against
// FlowEncoding on the same map.
type OrderEncoding struct{}

// Name implements Encoding.
func (OrderEncoding) Name() string { return "order" }

// Build implements Encoding.
func (OrderEncoding) Build(g *graph.Graph, budget int, w Weights) (*Model, *VarMap) {
	m := New()
	nv := buildNodeVars(m, g, budget)
	addSeparation(m, g, nv)

	n := g.Len()
	root := int(g.Root())
	bigM := float64(n)

	// Integer depth per node: 0 at the root, in [0, n] elsewhere.
	depth := make([]int, n)
	for i := 0; i < n; i++ {
		at := g.Coord(graph.NodeID(i))
		depth[i] = m.AddVar(fmt.Sprintf("depth_%d_%d", at.Row, at.Col), 0, float64(n), true)
	}
	m.Fix(depth[root], 0)

	arcs := g.DirectedArcs()
	parent := make([]int, len(arcs))
	for i, a := range arcs {
		from, to := g.Coord(a.From), g.Coord(a.To)
		p := m.AddBool(fmt.Sprintf("parent_%d_%d__%d_%d", from.Row, from.Col, to.Row, to.Col))
		parent[i] = p
		// A parent arc needs both endpoints enclosed and barrier-free.
		m.AddLe(fmt.Sprintf("par_encu_%d", i), []LinTerm{{p, 1}, {nv.enclosed[a.From], -1}}, 0)
		m.AddLe(fmt.Sprintf("par_encv_%d", i), []LinTerm{{p, 1}, {nv.enclosed[a.To], -1}}, 0)
		m.AddLe(fmt.Sprintf("par_baru_%d", i), []LinTerm{{p, 1}, {nv.barrier[a.From], 1}}, 1)
		m.AddLe(fmt.Sprintf("par_barv_%d", i), []LinTerm{{p, 1}, {nv.barrier[a.To], 1}}, 1)
		// Strict depth increase along a chosen parent arc:
		// depth[to] ≥ depth[from] + 1 − M·(1−parent).
		m.AddLe(fmt.Sprintf("par_depth_%d", i),
			[]LinTerm{{depth[a.From], 1}, {depth[a.To], -1}, {p, bigM}}, bigM-1)
	}

	in := g.InArcs()
	for v := 0; v < n; v++ {
		at := g.Coord(graph.NodeID(v))
		if v == root {
			// The root has no parent.
			for _, ai := range in[v] {
				m.Fix(parent[ai], 0)
			}
			continue
		}
		if len(in[v]) == 0 {
			// Unreachable by construction.
			m.Fix(nv.enclosed[v], 0)
			continue
		}
		// Exactly one parent iff enclosed.
		terms := make([]LinTerm, 0, len(in[v])+1)
		for _, ai := range in[v] {
			terms = append(terms, LinTerm{parent[ai], 1})
		}
		terms = append(terms, LinTerm{nv.enclosed[v], -1})
		m.AddEq(fmt.Sprintf("par_sum_%d_%d", at.Row, at.Col), terms, 0)
		// Depth is zero when excluded and ≥1 when enclosed.
		m.AddLe(fmt.Sprintf("depth_ub_%d_%d", at.Row, at.Col),
			[]LinTerm{{depth[v], 1}, {nv.enclosed[v], -float64(n)}}, 0)
		m.AddGe(fmt.Sprintf("depth_lb_%d_%d", at.Row, at.Col),
			[]LinTerm{{depth[v], 1}, {nv.enclosed[v], -1}}, 0)
	}

	addObjective(m, g, nv.enclosed, w)
	return m, &VarMap{Barrier: nv.barrier, Enclosed: nv.enclosed}
}
