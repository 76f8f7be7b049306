// Package graph derives the candidate graph of a tile map: the cells the
// optimizer may decide, and the adjacency the enclosure must respect.
//
// What:
//
//   - Nodes: every non-obstacle cell, the root included, with dense
//     integer ids assigned in row-major scan order.
//   - Edges: in-bounds 4-directional adjacency between candidates, plus a
//     clique over every portal group (equal-digit cells are mutually
//     adjacent). Portal edges are ordinary edges downstream; no
//     special-casing survives graph construction.
//   - UndirectedEdges and DirectedArcs return deduplicated edge lists in
//     a stable first-seen order, ready for constraint emission.
//
// Why:
//
//   - Model encodings index variables by dense node and arc ids instead
//     of formatted coordinate strings.
//   - Determinism: identical input yields identical ids and edge order,
//     so generated models are reproducible.
//
// Complexity: Build is O(W×H + P²) time and memory, where P is the
// largest portal-group size.
package graph
