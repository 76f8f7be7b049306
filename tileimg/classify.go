package tileimg

import (
	"image"
	"math"
	"strings"

	"github.com/gridpen/enclose/calib"
	"github.com/gridpen/enclose/tilemap"
)

// cropRatio is the centered fraction of each cell sampled for features;
// the discarded margin keeps grid lines out of the color statistics.
const cropRatio = 0.6

// Classify assigns every lattice cell of img the nearest calibration
// label and parses the assembled rows as a tile map, so all map
// validation (rectangularity, symbols) applies to the classified
// output. The single-root rule is enforced before parsing: the
// brightest root-labeled cell wins and other root labels demote to open
// ground; with no root label at all, the brightest cell is promoted.
func Classify(img image.Image, det Detection, st *calib.Stats) (*tilemap.Grid, error) {
	labels := make([][]string, det.Rows)
	type cell struct {
		row, col int
	}
	var (
		bestRoot       cell
		bestRootBright = math.Inf(-1)
		haveRoot       bool
		brightest      cell
		brightestVal   = math.Inf(-1)
	)
	for r := 0; r < det.Rows; r++ {
		labels[r] = make([]string, det.Cols)
		for c := 0; c < det.Cols; c++ {
			patch := cellPatch(img, det, r, c)
			feat := features(patch)
			labels[r][c] = nearestLabel(feat, st)
			bright := patchMax(patch)
			if bright > brightestVal {
				brightestVal, brightest = bright, cell{r, c}
			}
			if labels[r][c] == "H" && bright > bestRootBright {
				bestRootBright, bestRoot, haveRoot = bright, cell{r, c}, true
			}
		}
	}
	if !haveRoot {
		bestRoot = brightest
	}
	for r := range labels {
		for c := range labels[r] {
			switch {
			case r == bestRoot.row && c == bestRoot.col:
				labels[r][c] = "H"
			case labels[r][c] == "H":
				labels[r][c] = "."
			case strings.HasPrefix(labels[r][c], "portal_"):
				labels[r][c] = labels[r][c][len("portal_"):]
			}
		}
	}

	var sb strings.Builder
	for r := range labels {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range labels[r] {
			sb.WriteString(labels[r][c])
		}
	}
	return tilemap.ParseString(sb.String())
}

// patch is a normalized RGB sample of one cell.
type patch struct {
	px [][3]float64
}

// cellPatch extracts the center-cropped pixel block of cell (row,col).
// Degenerate geometry falls back to a single pixel so features never see
// an empty patch.
func cellPatch(img image.Image, det Detection, row, col int) patch {
	b := img.Bounds()
	y0 := det.OffsetY + row*det.PitchY
	x0 := det.OffsetX + col*det.PitchX
	y1 := min(det.OffsetY+(row+1)*det.PitchY, b.Dy())
	x1 := min(det.OffsetX+(col+1)*det.PitchX, b.Dx())
	dy := int(float64(det.PitchY) * (1 - cropRatio) / 2)
	dx := int(float64(det.PitchX) * (1 - cropRatio) / 2)

	ys, ye := y0+dy, max(y0+dy, y1-dy)
	xs, xe := x0+dx, max(x0+dx, x1-dx)
	var p patch
	for y := ys; y < ye; y++ {
		for x := xs; x < xe; x++ {
			p.px = append(p.px, samplePx(img, x, y))
		}
	}
	if len(p.px) == 0 {
		x := clamp(x0, 0, b.Dx()-1)
		y := clamp(y0, 0, b.Dy()-1)
		p.px = append(p.px, samplePx(img, x, y))
	}
	return p
}

func samplePx(img image.Image, x, y int) [3]float64 {
	b := img.Bounds()
	r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	return [3]float64{float64(r) / 65535, float64(g) / 65535, float64(bl) / 65535}
}

// features is the 6D descriptor: per-channel mean then per-channel
// variance, matching the calibration file layout.
func features(p patch) []float64 {
	var mean [3]float64
	for _, px := range p.px {
		for ch := 0; ch < 3; ch++ {
			mean[ch] += px[ch]
		}
	}
	n := float64(len(p.px))
	for ch := 0; ch < 3; ch++ {
		mean[ch] /= n
	}
	var variance [3]float64
	for _, px := range p.px {
		for ch := 0; ch < 3; ch++ {
			d := px[ch] - mean[ch]
			variance[ch] += d * d
		}
	}
	for ch := 0; ch < 3; ch++ {
		variance[ch] /= n
	}
	return []float64{mean[0], mean[1], mean[2], variance[0], variance[1], variance[2]}
}

func patchMax(p patch) float64 {
	m := math.Inf(-1)
	for _, px := range p.px {
		for ch := 0; ch < 3; ch++ {
			if px[ch] > m {
				m = px[ch]
			}
		}
	}
	return m
}

// nearestLabel returns the calibration label minimizing scale-normalized
// Euclidean distance to feat. Open ground is the fallback when the
// statistics are empty or mismatched.
func nearestLabel(feat []float64, st *calib.Stats) string {
	best := "."
	bestDist := math.Inf(1)
	for label, proto := range st.Features {
		if len(proto) != len(feat) {
			continue
		}
		dist := 0.0
		for i := range feat {
			d := (feat[i] - proto[i]) / st.Scale[i]
			dist += d * d
		}
		if dist < bestDist {
			bestDist = dist
			best = label
		}
	}
	return best
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
