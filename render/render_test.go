package render_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/gridpen/enclose/backend"
	"github.com/gridpen/enclose/enclosure"
	"github.com/gridpen/enclose/render"
	"github.com/gridpen/enclose/tilemap"
)

func gridAndOutcome(t *testing.T) (*tilemap.Grid, *enclosure.Outcome) {
	t.Helper()
	grid, err := tilemap.ParseString("~~~~~\n~.H.~\n~~~~~")
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	out := &enclosure.Outcome{
		Status: backend.Optimal,
		Cells: map[tilemap.Coord]enclosure.Assignment{
			{Row: 1, Col: 1}: enclosure.Enclosed,
			{Row: 1, Col: 2}: enclosure.Enclosed,
			{Row: 1, Col: 3}: enclosure.Barrier,
		},
		BarriersUsed:  1,
		EnclosedCount: 2,
	}
	return grid, out
}

// TestText_Overlay keeps the map structure and marks the solution:
// enclosed open ground as '+', barriers as '#'.
func TestText_Overlay(t *testing.T) {
	grid, out := gridAndOutcome(t)
	want := "~~~~~\n~+H#~\n~~~~~"
	if got := render.Text(grid, out); got != want {
		t.Errorf("Text =\n%s\nwant\n%s", got, want)
	}
}

// TestText_NoOutcome falls back to the plain map.
func TestText_NoOutcome(t *testing.T) {
	grid, _ := gridAndOutcome(t)
	if got := render.Text(grid, nil); got != grid.String() {
		t.Errorf("Text without outcome =\n%s\nwant the plain map", got)
	}
}

// TestPNG_Dimensions: width×cellPx plus the closing grid line.
func TestPNG_Dimensions(t *testing.T) {
	grid, out := gridAndOutcome(t)
	img := render.PNG(grid, out, 10)
	b := img.Bounds()
	if b.Dx() != 5*10+1 || b.Dy() != 3*10+1 {
		t.Errorf("bounds = %dx%d; want 51x31", b.Dx(), b.Dy())
	}
}

// TestPNG_MinCellSize clamps tiny cell sizes to 2 px.
func TestPNG_MinCellSize(t *testing.T) {
	grid, out := gridAndOutcome(t)
	img := render.PNG(grid, out, 0)
	b := img.Bounds()
	if b.Dx() != 5*2+1 || b.Dy() != 3*2+1 {
		t.Errorf("bounds = %dx%d; want 11x7", b.Dx(), b.Dy())
	}
}

// TestPNG_CellFills samples one interior pixel per interesting cell and
// checks its state is distinguishable from the neighbors.
func TestPNG_CellFills(t *testing.T) {
	grid, out := gridAndOutcome(t)
	img := render.PNG(grid, out, 10)
	center := func(r, c int) (uint32, uint32, uint32) {
		cr, cg, cb, _ := img.At(c*10+5, r*10+5).RGBA()
		return cr, cg, cb
	}
	or, og, ob := center(0, 0) // obstacle
	er, eg, eb := center(1, 1) // enclosed
	br, bg, bb := center(1, 3) // barrier
	if or == er && og == eg && ob == eb {
		t.Error("obstacle and enclosed cells render identically")
	}
	if er == br && eg == bg && eb == bb {
		t.Error("enclosed and barrier cells render identically")
	}
	// Grid lines stay black.
	lr, lg, lb, _ := img.At(0, 0).RGBA()
	if lr != 0 || lg != 0 || lb != 0 {
		t.Errorf("grid line pixel = (%d,%d,%d); want black", lr, lg, lb)
	}
}

// TestWritePNG round-trips through the encoder.
func TestWritePNG(t *testing.T) {
	grid, out := gridAndOutcome(t)
	var buf bytes.Buffer
	if err := render.WritePNG(&buf, grid, out, 4); err != nil {
		t.Fatalf("WritePNG error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding written png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5*4+1 {
		t.Errorf("decoded width = %d; want 21", b.Dx())
	}
}
