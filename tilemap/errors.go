package tilemap

import (
	"errors"
	"fmt"
)

// Sentinel errors for map parsing. Wrapped variants carry positions;
// match with errors.Is.
var (
	// ErrEmptyMap indicates the input contains no rows.
	ErrEmptyMap = errors.New("tilemap: map must contain at least one row")
	// ErrRaggedRow indicates a row whose width differs from the first row's.
	ErrRaggedRow = errors.New("tilemap: all rows must have the same length")
	// ErrNoRoot indicates the map contains no root cell.
	ErrNoRoot = errors.New("tilemap: map contains no root cell")
	// ErrMultipleRoot indicates more than one root cell.
	ErrMultipleRoot = errors.New("tilemap: map contains more than one root cell")
	// ErrUnknownSymbol indicates an unrecognized map rune.
	ErrUnknownSymbol = errors.New("tilemap: unrecognized map symbol")
)

// SymbolError reports an unrecognized rune and where it was found.
// It unwraps to ErrUnknownSymbol.
type SymbolError struct {
	Symbol rune
	At     Coord
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("tilemap: unrecognized map symbol %q at %s", e.Symbol, e.At)
}

func (e *SymbolError) Unwrap() error { return ErrUnknownSymbol }
