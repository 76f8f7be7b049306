// Package enclosure is the call surface of the optimizer: it turns a
// tile map and a barrier budget into a per-cell decision assignment.
//
// What:
//
//   - Solve builds the candidate graph, formulates the chosen encoding,
//     runs the injected solve backend, and interprets raw variable
//     values into Barrier / Enclosed / Excluded assignments with summary
//     metrics.
//   - VerifyAssignment audits an outcome against the enclosure
//     invariants: barrier budget, forbidden barriers, boundary
//     exclusion, and root-reachable connectivity of the enclosed region
//     (breadth-first traversal over non-barrier edges).
//
// Lifecycle: everything is rebuilt per call; no state survives a solve,
// so concurrent solves over different grids need no coordination. One
// blocking backend call per Solve, no retries; callers wanting another
// formulation invoke Solve again with a different encoding.
//
// Statuses: Infeasible is a valid outcome, not an error (a budget too
// small to seal the root region produces it). The objective is surfaced
// only for Optimal and Feasible outcomes.
package enclosure
