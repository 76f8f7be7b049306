// Package render draws solved tile maps as text overlays or flat-color
// PNG rasters.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/gridpen/enclose/enclosure"
	"github.com/gridpen/enclose/tilemap"
)

// Text renders the map with the solution overlaid: '#' for barriers,
// '+' for enclosed open ground. Root, bonus and portal symbols are kept
// so the structure of the instance stays readable.
func Text(grid *tilemap.Grid, out *enclosure.Outcome) string {
	var sb strings.Builder
	for r := 0; r < grid.Height(); r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < grid.Width(); c++ {
			at := tilemap.Coord{Row: r, Col: c}
			switch {
			case out != nil && out.AssignmentAt(at) == enclosure.Barrier:
				sb.WriteByte('#')
			case out != nil && out.AssignmentAt(at) == enclosure.Enclosed &&
				grid.KindAt(at) == tilemap.KindOpen:
				sb.WriteByte('+')
			default:
				sb.WriteRune(grid.SymbolAt(at))
			}
		}
	}
	return sb.String()
}

// Palette of the raster renderer, one flat fill per cell state.
var (
	colorObstacle = color.RGBA{0x4f, 0x8d, 0xd6, 0xff}
	colorExcluded = color.RGBA{0x7f, 0xbf, 0x7f, 0xff}
	colorEnclosed = color.RGBA{0xd8, 0xe8, 0x5b, 0xff}
	colorBarrier  = color.RGBA{0xc0, 0xc0, 0xc0, 0xff}
	colorRoot     = color.RGBA{0x8b, 0x45, 0x13, 0xff}
	colorCherry   = color.RGBA{0xd6, 0x56, 0x4f, 0xff}
	colorToxin    = color.RGBA{0x7a, 0x4f, 0xd6, 0xff}
	colorPortal   = color.RGBA{0x4f, 0xd6, 0xc8, 0xff}
	colorGridLine = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

// PNG rasterizes the solved map with cellPx pixels per cell and 1-px
// grid lines. cellPx values below 2 are raised to 2 so cells stay
// visible next to the lines.
func PNG(grid *tilemap.Grid, out *enclosure.Outcome, cellPx int) image.Image {
	if cellPx < 2 {
		cellPx = 2
	}
	w := grid.Width()*cellPx + 1
	h := grid.Height()*cellPx + 1
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x%cellPx == 0 || y%cellPx == 0 {
				img.SetRGBA(x, y, colorGridLine)
				continue
			}
			at := tilemap.Coord{Row: y / cellPx, Col: x / cellPx}
			img.SetRGBA(x, y, cellColor(grid, out, at))
		}
	}
	return img
}

// WritePNG encodes the raster to w.
func WritePNG(w io.Writer, grid *tilemap.Grid, out *enclosure.Outcome, cellPx int) error {
	if err := png.Encode(w, PNG(grid, out, cellPx)); err != nil {
		return fmt.Errorf("render: encoding png: %w", err)
	}
	return nil
}

func cellColor(grid *tilemap.Grid, out *enclosure.Outcome, at tilemap.Coord) color.RGBA {
	kind := grid.KindAt(at)
	// Fixed identities first: these read the same whatever the solver did.
	switch kind {
	case tilemap.KindObstacle:
		return colorObstacle
	case tilemap.KindRoot:
		return colorRoot
	case tilemap.KindCherry:
		return colorCherry
	case tilemap.KindToxin:
		return colorToxin
	case tilemap.KindPortal:
		return colorPortal
	}
	if out != nil {
		switch out.AssignmentAt(at) {
		case enclosure.Barrier:
			return colorBarrier
		case enclosure.Enclosed:
			return colorEnclosed
		}
	}
	return colorExcluded
}
