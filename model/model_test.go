package model_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/gridpen/enclose/graph"
	"github.com/gridpen/enclose/model"
	"github.com/gridpen/enclose/tilemap"
)

const eps = 1e-9

// pocketMap has one open interior cell next to the root; both fit inside
// without any barrier.
const pocketMap = "~~~~~\n~.H~~\n~~~~~"

func buildGraph(t *testing.T, s string) *graph.Graph {
	t.Helper()
	grid, err := tilemap.ParseString(s)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	return graph.Build(grid)
}

// varIndex resolves a variable by name.
func varIndex(t *testing.T, m *model.Model, name string) int {
	t.Helper()
	for i, v := range m.Vars {
		if v.Name == name {
			return i
		}
	}
	t.Fatalf("no variable named %q", name)
	return -1
}

// violated returns the names of constraints (and out-of-bound variables)
// the assignment breaks.
func violated(m *model.Model, vals []float64) []string {
	var out []string
	for i, v := range m.Vars {
		if vals[i] < v.Lo-eps || vals[i] > v.Hi+eps {
			out = append(out, "bounds:"+v.Name)
		}
	}
	for _, c := range m.Cons {
		sum := 0.0
		for _, term := range c.Terms {
			sum += term.Coef * vals[term.Var]
		}
		if sum < c.Lo-eps || sum > c.Hi+eps {
			out = append(out, c.Name)
		}
	}
	return out
}

func objective(m *model.Model, vals []float64) float64 {
	sum := 0.0
	for _, term := range m.Objective {
		sum += term.Coef * vals[term.Var]
	}
	return sum
}

//----------------------------------------------------------------------------//
// Model helpers
//----------------------------------------------------------------------------//

func TestModel_Helpers(t *testing.T) {
	m := model.New()
	if !m.Maximize {
		t.Error("New model should maximize")
	}
	b := m.AddBool("b")
	if v := m.Vars[b]; v.Lo != 0 || v.Hi != 1 || !v.Integer {
		t.Errorf("AddBool bounds = %+v", v)
	}
	m.Fix(b, 1)
	if v := m.Vars[b]; v.Lo != 1 || v.Hi != 1 {
		t.Errorf("Fix bounds = [%v,%v]; want [1,1]", v.Lo, v.Hi)
	}
	m.AddLe("le", []model.LinTerm{{Var: b, Coef: 1}}, 2)
	m.AddGe("ge", []model.LinTerm{{Var: b, Coef: 1}}, 0)
	m.AddEq("eq", []model.LinTerm{{Var: b, Coef: 1}}, 1)
	if len(m.Cons) != 3 {
		t.Fatalf("len(Cons) = %d; want 3", len(m.Cons))
	}
	if !math.IsInf(m.Cons[0].Lo, -1) || m.Cons[0].Hi != 2 {
		t.Errorf("AddLe bounds = [%v,%v]", m.Cons[0].Lo, m.Cons[0].Hi)
	}
	if m.Cons[1].Lo != 0 || !math.IsInf(m.Cons[1].Hi, 1) {
		t.Errorf("AddGe bounds = [%v,%v]", m.Cons[1].Lo, m.Cons[1].Hi)
	}
	if m.Cons[2].Lo != 1 || m.Cons[2].Hi != 1 {
		t.Errorf("AddEq bounds = [%v,%v]", m.Cons[2].Lo, m.Cons[2].Hi)
	}
}

func TestDefaultWeights(t *testing.T) {
	w := model.DefaultWeights()
	if w.Cell != 1 || w.Cherry != 3 || w.Toxin != -5 {
		t.Errorf("DefaultWeights = %+v", w)
	}
}

//----------------------------------------------------------------------------//
// Shared skeleton (via FlowEncoding)
//----------------------------------------------------------------------------//

// TestBuild_FixedBounds verifies the structural pins: no barrier on root,
// portal or cherry cells, no enclosure on non-root boundary cells, and
// the root pinned enclosed.
func TestBuild_FixedBounds(t *testing.T) {
	// Root at (1,2), cherry at (1,1), portal pair at (1,3)/(2,3), open
	// boundary cell at (0,2).
	g := buildGraph(t, "~~.~~\n~CH1~\n~~~1~\n~~~~~")
	m, vm := model.FlowEncoding{}.Build(g, 5, model.DefaultWeights())

	fixedZero := []string{"barrier_1_2", "barrier_1_1", "barrier_1_3", "barrier_2_3", "enclosed_0_2"}
	for _, name := range fixedZero {
		v := m.Vars[varIndex(t, m, name)]
		if v.Lo != 0 || v.Hi != 0 {
			t.Errorf("%s bounds = [%v,%v]; want [0,0]", name, v.Lo, v.Hi)
		}
	}
	rootEnc := m.Vars[vm.Enclosed[int(g.Root())]]
	if rootEnc.Lo != 1 || rootEnc.Hi != 1 {
		t.Errorf("root enclosed bounds = [%v,%v]; want [1,1]", rootEnc.Lo, rootEnc.Hi)
	}
}

// TestBuild_BudgetRow verifies the budget constraint sums every barrier
// variable against the given limit.
func TestBuild_BudgetRow(t *testing.T) {
	g := buildGraph(t, pocketMap)
	m, vm := model.FlowEncoding{}.Build(g, 7, model.DefaultWeights())
	for _, c := range m.Cons {
		if c.Name != "budget" {
			continue
		}
		if c.Hi != 7 {
			t.Errorf("budget Hi = %v; want 7", c.Hi)
		}
		if len(c.Terms) != len(vm.Barrier) {
			t.Errorf("budget has %d terms; want %d", len(c.Terms), len(vm.Barrier))
		}
		return
	}
	t.Fatal("no budget constraint")
}

//----------------------------------------------------------------------------//
// Flow encoding
//----------------------------------------------------------------------------//

// TestFlow_Shape checks variable and constraint counts on the pocket map:
// 2 nodes, 1 edge, 2 arcs.
func TestFlow_Shape(t *testing.T) {
	g := buildGraph(t, pocketMap)
	m, vm := model.FlowEncoding{}.Build(g, 2, model.DefaultWeights())

	if want := 2*g.Len() + len(g.DirectedArcs()); len(m.Vars) != want {
		t.Errorf("len(Vars) = %d; want %d", len(m.Vars), want)
	}
	// excl×2 + budget + sep×2 + caps×4 + conservation×2.
	if want := 11; len(m.Cons) != want {
		t.Errorf("len(Cons) = %d; want %d", len(m.Cons), want)
	}
	if len(vm.Barrier) != g.Len() || len(vm.Enclosed) != g.Len() {
		t.Errorf("VarMap sizes = %d/%d; want %d", len(vm.Barrier), len(vm.Enclosed), g.Len())
	}
	for _, f := range m.Vars[2*g.Len():] {
		if f.Integer {
			t.Errorf("flow var %s is integer", f.Name)
		}
		if f.Lo != 0 || f.Hi != float64(g.Len()+1) {
			t.Errorf("flow var %s bounds = [%v,%v]", f.Name, f.Lo, f.Hi)
		}
	}
}

// TestFlow_FeasibleAssignment checks a hand-built solution of the pocket
// map satisfies every row: both cells enclosed, one flow unit from the
// root to the open cell.
func TestFlow_FeasibleAssignment(t *testing.T) {
	g := buildGraph(t, pocketMap)
	m, _ := model.FlowEncoding{}.Build(g, 2, model.DefaultWeights())

	vals := make([]float64, len(m.Vars))
	vals[varIndex(t, m, "enclosed_1_1")] = 1
	vals[varIndex(t, m, "enclosed_1_2")] = 1
	vals[varIndex(t, m, "flow_1_2__1_1")] = 1

	if bad := violated(m, vals); len(bad) != 0 {
		t.Errorf("hand-built solution violates %v", bad)
	}
	if got := objective(m, vals); got != 2 {
		t.Errorf("objective = %v; want 2", got)
	}
}

// TestFlow_SeparationCatchesUnwalledBoundary plants an enclosed node next
// to an excluded, barrier-free one and expects a separation violation.
func TestFlow_SeparationCatchesUnwalledBoundary(t *testing.T) {
	g := buildGraph(t, pocketMap)
	m, _ := model.FlowEncoding{}.Build(g, 2, model.DefaultWeights())

	vals := make([]float64, len(m.Vars))
	vals[varIndex(t, m, "enclosed_1_2")] = 1 // root only, neighbor open and unwalled

	if bad := violated(m, vals); len(bad) == 0 {
		t.Error("expected a separation violation, got none")
	}
}

// TestFlow_ObjectiveWeights verifies cherry and toxin coefficients.
func TestFlow_ObjectiveWeights(t *testing.T) {
	g := buildGraph(t, "~~~~~\n~CHT~\n~~~~~")
	m, vm := model.FlowEncoding{}.Build(g, 2, model.Weights{Cell: 1, Cherry: 3, Toxin: -5})

	coefs := map[int]float64{}
	for _, term := range m.Objective {
		coefs[term.Var] = term.Coef
	}
	cherry, _ := g.ID(tilemap.Coord{Row: 1, Col: 1})
	toxin, _ := g.ID(tilemap.Coord{Row: 1, Col: 3})
	if got := coefs[vm.Enclosed[cherry]]; got != 4 {
		t.Errorf("cherry coefficient = %v; want 4", got)
	}
	if got := coefs[vm.Enclosed[toxin]]; got != -4 {
		t.Errorf("toxin coefficient = %v; want -4", got)
	}
	if got := coefs[vm.Enclosed[int(g.Root())]]; got != 1 {
		t.Errorf("root coefficient = %v; want 1", got)
	}
}

//----------------------------------------------------------------------------//
// Order encoding
//----------------------------------------------------------------------------//

// TestOrder_Shape checks counts on the pocket map and the pinned root depth.
func TestOrder_Shape(t *testing.T) {
	g := buildGraph(t, pocketMap)
	m, _ := model.OrderEncoding{}.Build(g, 2, model.DefaultWeights())

	// 2 binaries + 1 depth per node, 1 parent per arc.
	if want := 3*g.Len() + len(g.DirectedArcs()); len(m.Vars) != want {
		t.Errorf("len(Vars) = %d; want %d", len(m.Vars), want)
	}
	root := g.Coord(g.Root())
	d := m.Vars[varIndex(t, m, depthName(root))]
	if d.Lo != 0 || d.Hi != 0 {
		t.Errorf("root depth bounds = [%v,%v]; want [0,0]", d.Lo, d.Hi)
	}
	if !d.Integer {
		t.Error("depth var is not integer")
	}
}

func depthName(at tilemap.Coord) string {
	return fmt.Sprintf("depth_%d_%d", at.Row, at.Col)
}

// TestOrder_FeasibleAssignment hand-builds a tree on the pocket map: the
// open cell takes the root as parent at depth 1.
func TestOrder_FeasibleAssignment(t *testing.T) {
	g := buildGraph(t, pocketMap)
	m, _ := model.OrderEncoding{}.Build(g, 2, model.DefaultWeights())

	vals := make([]float64, len(m.Vars))
	vals[varIndex(t, m, "enclosed_1_1")] = 1
	vals[varIndex(t, m, "enclosed_1_2")] = 1
	vals[varIndex(t, m, "depth_1_1")] = 1
	vals[varIndex(t, m, "parent_1_2__1_1")] = 1

	if bad := violated(m, vals); len(bad) != 0 {
		t.Errorf("hand-built tree violates %v", bad)
	}
}

// TestOrder_DepthMustIncrease plants a parent arc with equal depths and
// expects the strict-increase row to fire.
func TestOrder_DepthMustIncrease(t *testing.T) {
	g := buildGraph(t, pocketMap)
	m, _ := model.OrderEncoding{}.Build(g, 2, model.DefaultWeights())

	vals := make([]float64, len(m.Vars))
	vals[varIndex(t, m, "enclosed_1_1")] = 1
	vals[varIndex(t, m, "enclosed_1_2")] = 1
	vals[varIndex(t, m, "parent_1_2__1_1")] = 1
	// depth_1_1 left at 0 = depth of its parent.

	if bad := violated(m, vals); len(bad) == 0 {
		t.Error("expected a depth violation, got none")
	}
}

//----------------------------------------------------------------------------//
// Categorical encoding
//----------------------------------------------------------------------------//

// TestCategorical_Shape checks counts: 3 binaries per node plus one
// helper per edge.
func TestCategorical_Shape(t *testing.T) {
	g := buildGraph(t, pocketMap)
	m, vm := model.CategoricalEncoding{}.Build(g, 2, model.DefaultWeights())

	if want := 3*g.Len() + len(g.UndirectedEdges()); len(m.Vars) != want {
		t.Errorf("len(Vars) = %d; want %d", len(m.Vars), want)
	}
	if len(vm.Barrier) != g.Len() || len(vm.Enclosed) != g.Len() {
		t.Errorf("VarMap sizes = %d/%d; want %d", len(vm.Barrier), len(vm.Enclosed), g.Len())
	}
}

// TestCategorical_FeasibleAssignment: both cells enclosed, the edge
// helper set.
func TestCategorical_FeasibleAssignment(t *testing.T) {
	g := buildGraph(t, pocketMap)
	m, _ := model.CategoricalEncoding{}.Build(g, 2, model.DefaultWeights())

	vals := make([]float64, len(m.Vars))
	vals[varIndex(t, m, "enclosed_1_1")] = 1
	vals[varIndex(t, m, "enclosed_1_2")] = 1
	vals[varIndex(t, m, "same_0")] = 1

	if bad := violated(m, vals); len(bad) != 0 {
		t.Errorf("hand-built solution violates %v", bad)
	}
	if got := objective(m, vals); got != 2 {
		t.Errorf("objective = %v; want 2", got)
	}
}

// TestCategorical_ExactlyOneState plants a node with no state set and
// expects the state row to fire.
func TestCategorical_ExactlyOneState(t *testing.T) {
	g := buildGraph(t, pocketMap)
	m, _ := model.CategoricalEncoding{}.Build(g, 2, model.DefaultWeights())

	vals := make([]float64, len(m.Vars))
	vals[varIndex(t, m, "enclosed_1_2")] = 1 // root; the open cell has no state

	if bad := violated(m, vals); len(bad) == 0 {
		t.Error("expected a state violation, got none")
	}
}

//----------------------------------------------------------------------------//
// Encoding names
//----------------------------------------------------------------------------//

func TestEncodingNames(t *testing.T) {
	cases := []struct {
		enc  model.Encoding
		want string
	}{
		{model.FlowEncoding{}, "flow"},
		{model.OrderEncoding{}, "order"},
		{model.CategoricalEncoding{}, "categorical"},
	}
	for _, tc := range cases {
		if got := tc.enc.Name(); got != tc.want {
			t.Errorf("Name() = %q; want %q", got, tc.want)
		}
	}
}
