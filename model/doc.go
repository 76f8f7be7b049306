// Package model formulates the enclosure decision problem as a
// backend-neutral optimization model.
//
// What:
//
//   - Model is a dense-index IR: variables with bounds and integrality,
//     two-sided linear constraints, and a linear objective. No string
//     lookups on the hot path; names exist only for diagnostics.
//   - Encoding is the strategy interface turning a candidate graph and a
//     barrier budget into a Model plus a VarMap (the per-node variable
//     indices the result interpreter reads back).
//   - Three encodings are provided: Flow (default), Order, Categorical.
//
// Why three encodings:
//
//   - Flow routes one synthetic flow unit from the root to every enclosed
//     node through non-barrier enclosed nodes (big-M capacities). This is
//     the primary, verified connectivity proof.
//   - Order replaces flow with per-arc parent booleans and strictly
//     increasing integer depths. Known to under-constrain reachability on
//     some instances; see OrderEncoding before relying on it.
//   - Categorical is the historical three-state formulation with pairwise
//     separation only. It has no global connectivity constraint and is
//     acceptable only on maps small enough that local separation happens
//     to coincide with connectivity.
//
// All encodings share the same structural constraints: barrier/enclosed
// mutual exclusion, forbidden barriers (root, portals, cherries),
// boundary exclusion, the barrier budget, and pairwise separation.
// The objective is Σ w.Cell·enclosed[n] plus w.Cherry per enclosed cherry
// and w.Toxin per enclosed toxin.
package model
