package tilemap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads the text map format from r and validates it.
// Returns ErrEmptyMap, ErrRaggedRow, ErrNoRoot, ErrMultipleRoot or a
// *SymbolError (unwrapping to ErrUnknownSymbol) on malformed input.
// Complexity: O(W×H) time and memory.
func Parse(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tilemap: reading map: %w", err)
	}
	// A single trailing newline is not a row.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, ErrEmptyMap
	}

	width := len(lines[0])
	if width == 0 {
		return nil, ErrEmptyMap
	}

	g := &Grid{
		width:     width,
		height:    len(lines),
		kinds:     make([][]CellKind, len(lines)),
		root:      Coord{-1, -1},
		portals:   make(map[int][]Coord),
		portalIDs: make(map[Coord]int),
	}

	haveRoot := false
	for r, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d is %d wide, want %d",
				ErrRaggedRow, r, len(line), width)
		}
		row := make([]CellKind, width)
		for c, ch := range line {
			at := Coord{r, c}
			switch {
			case ch == '~':
				row[c] = KindObstacle
			case ch == '.':
				row[c] = KindOpen
			case ch == 'H':
				if haveRoot {
					return nil, fmt.Errorf("%w: first at %s, again at %s",
						ErrMultipleRoot, g.root, at)
				}
				haveRoot = true
				g.root = at
				row[c] = KindRoot
			case ch == 'C':
				row[c] = KindCherry
				g.cherries = append(g.cherries, at)
			case ch == 'T':
				row[c] = KindToxin
				g.toxins = append(g.toxins, at)
			case ch >= '0' && ch <= '9':
				id := int(ch - '0')
				row[c] = KindPortal
				g.portals[id] = append(g.portals[id], at)
				g.portalIDs[at] = id
			default:
				return nil, &SymbolError{Symbol: ch, At: at}
			}
		}
		g.kinds[r] = row
	}
	if !haveRoot {
		return nil, ErrNoRoot
	}
	return g, nil
}

// ParseString parses a map held in a string.
func ParseString(s string) (*Grid, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile parses the map file at path.
func ParseFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tilemap: open map: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
