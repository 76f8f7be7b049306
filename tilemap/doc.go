// Package tilemap models a rectangular tile map and parses its textual form.
//
// What:
//
//   - CellKind classifies every cell: obstacle, open ground, the single
//     root, cherry/toxin bonus cells, and numbered portal cells.
//   - Grid is an immutable, rectangular map with the root coordinate,
//     portal groups keyed by their digit id, and bonus-cell coordinate sets.
//   - Parse reads the one-character-per-cell text format and validates it.
//
// Why:
//
//   - Enclosure optimization: the solver layers consume a Grid and decide
//     which cells become barriers.
//   - Rendering and classification collaborators share the same model.
//
// Format (one line per row, equal lengths):
//
//	~  obstacle        .  open
//	H  root (exactly once)
//	C  cherry bonus    T  toxin bonus
//	0…9  portal cell; equal digits form one portal group
//
// Errors:
//
//   - ErrEmptyMap: the input contains no rows.
//   - ErrRaggedRow: a row's width differs from the first row's.
//   - ErrNoRoot / ErrMultipleRoot: root count is not exactly one.
//   - ErrUnknownSymbol: an unrecognized rune, reported with its position.
//
// Complexity: parsing and all accessors are O(W×H) or O(1); Grid never
// exposes internal slices, so callers cannot mutate a parsed map.
package tilemap
