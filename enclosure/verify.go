package enclosure

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlath/graph/algorithms"
	"github.com/katalvlaran/lvlath/graph/core"

	"github.com/gridpen/enclose/graph"
	"github.com/gridpen/enclose/tilemap"
)

// Audit violations. Wrapped variants carry offending coordinates; match
// with errors.Is.
var (
	// ErrBudgetExceeded: more barriers assigned than the budget allows.
	ErrBudgetExceeded = errors.New("enclosure: barrier budget exceeded")
	// ErrForbiddenBarrier: the root, a portal or a cherry was assigned Barrier.
	ErrForbiddenBarrier = errors.New("enclosure: forbidden cell assigned barrier")
	// ErrBoundaryEnclosed: a non-root boundary cell was assigned Enclosed.
	ErrBoundaryEnclosed = errors.New("enclosure: boundary cell assigned enclosed")
	// ErrRootNotEnclosed: the root itself is not part of the enclosure.
	ErrRootNotEnclosed = errors.New("enclosure: root not enclosed")
	// ErrDisconnected: an enclosed cell is unreachable from the root
	// through enclosed, non-barrier cells.
	ErrDisconnected = errors.New("enclosure: enclosed region not connected to root")
)

// VerifyAssignment audits an outcome against the enclosure invariants:
// barrier count within budget, no forbidden barriers, no enclosed
// boundary cells, and connectivity — breadth-first traversal from the
// root over edges between enclosed cells must reach every enclosed cell.
// Outcomes without an assignment (Infeasible, ModelInvalid, Unknown)
// pass vacuously.
//
// Connectivity is checked on a lvlath graph restricted to enclosed
// nodes, so any enclosed island detached from the root surfaces as
// ErrDisconnected. This is the safety net behind the order and
// categorical encodings, whose models do not prove global connectivity.
func VerifyAssignment(grid *tilemap.Grid, budget int, out *Outcome) error {
	if out == nil || len(out.Cells) == 0 {
		return nil
	}
	if out.BarriersUsed > budget {
		return fmt.Errorf("%w: %d used, budget %d", ErrBudgetExceeded, out.BarriersUsed, budget)
	}
	for at, a := range out.Cells {
		switch a {
		case Barrier:
			switch grid.KindAt(at) {
			case tilemap.KindRoot, tilemap.KindPortal, tilemap.KindCherry:
				return fmt.Errorf("%w: %s cell %s", ErrForbiddenBarrier, grid.KindAt(at), at)
			}
		case Enclosed:
			if grid.OnBoundary(at) && at != grid.Root() {
				return fmt.Errorf("%w: %s", ErrBoundaryEnclosed, at)
			}
		}
	}
	if out.Cells[grid.Root()] != Enclosed {
		return ErrRootNotEnclosed
	}
	return verifyConnected(grid, out)
}

// verifyConnected runs BFS from the root over the subgraph induced by
// enclosed cells and confirms it visits all of them.
func verifyConnected(grid *tilemap.Grid, out *Outcome) error {
	cg := graph.Build(grid)
	g := core.NewGraph(false, false)
	enclosed := 0
	for n := 0; n < cg.Len(); n++ {
		at := cg.Coord(graph.NodeID(n))
		if out.Cells[at] != Enclosed {
			continue
		}
		enclosed++
		g.AddVertex(&core.Vertex{ID: at.String()})
	}
	for _, e := range cg.UndirectedEdges() {
		u, v := cg.Coord(e.U), cg.Coord(e.V)
		if out.Cells[u] != Enclosed || out.Cells[v] != Enclosed {
			continue
		}
		g.AddEdge(u.String(), v.String(), 0)
	}
	res, err := algorithms.BFS(g, grid.Root().String(), nil)
	if err != nil {
		return fmt.Errorf("enclosure: audit traversal: %w", err)
	}
	if len(res.Order) != enclosed {
		return fmt.Errorf("%w: reached %d of %d enclosed cells",
			ErrDisconnected, len(res.Order), enclosed)
	}
	return nil
}
