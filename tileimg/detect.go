package tileimg

import (
	"errors"
	"image"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrNoGridPeriod indicates no plausible grid pitch was found.
var ErrNoGridPeriod = errors.New("tileimg: failed to detect grid period")

// Pitch and count search windows, in pixels and cells. They bound the
// FFT peak search and the lattice alignment scan.
const (
	minPitch = 30
	maxPitch = 100
	minCells = 15
	maxCells = 30
)

// Detection describes the cell lattice of a screenshot.
type Detection struct {
	OffsetX, OffsetY int
	PitchX, PitchY   int
	Cols, Rows       int
}

// DetectGrid locates the cell lattice of img. Vertical grid lines show
// up as horizontal luminance gradients (and vice versa); the dominant
// spatial period of each gradient projection gives the pitch, then an
// offset/count scan aligns the lattice. Returns ErrNoGridPeriod when no
// periodic structure exists in the pitch window.
func DetectGrid(img image.Image) (Detection, error) {
	gray := grayscale(img)
	vertProfile := columnGradientProfile(gray)
	horizProfile := rowGradientProfile(gray)

	pitchX := dominantPeriod(vertProfile)
	pitchY := dominantPeriod(horizProfile)
	if pitchX <= 0 || pitchY <= 0 {
		return Detection{}, ErrNoGridPeriod
	}

	pitchX, offsetX := refinePitch(vertProfile, pitchX)
	pitchY, offsetY := refinePitch(horizProfile, pitchY)

	w := len(gray[0])
	h := len(gray)
	cols := int(math.Round(float64(w-2*offsetX) / float64(pitchX)))
	rows := int(math.Round(float64(h-2*offsetY) / float64(pitchY)))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return Detection{
		OffsetX: offsetX, OffsetY: offsetY,
		PitchX: pitchX, PitchY: pitchY,
		Cols: cols, Rows: rows,
	}, nil
}

// grayscale returns per-pixel luminance in [0,1], row-major.
func grayscale(img image.Image) [][]float64 {
	b := img.Bounds()
	out := make([][]float64, b.Dy())
	for y := range out {
		row := make([]float64, b.Dx())
		for x := range row {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			row[x] = (float64(r) + float64(g) + float64(bl)) / (3 * 65535)
		}
		out[y] = row
	}
	return out
}

// columnGradientProfile averages |∂x| over each column boundary:
// vertical grid lines produce peaks.
func columnGradientProfile(gray [][]float64) []float64 {
	h, w := len(gray), len(gray[0])
	if w < 2 {
		return nil
	}
	profile := make([]float64, w-1)
	for y := 0; y < h; y++ {
		for x := 0; x < w-1; x++ {
			profile[x] += math.Abs(gray[y][x+1] - gray[y][x])
		}
	}
	for x := range profile {
		profile[x] /= float64(h)
	}
	return profile
}

// rowGradientProfile averages |∂y| over each row boundary.
func rowGradientProfile(gray [][]float64) []float64 {
	h := len(gray)
	if h < 2 {
		return nil
	}
	w := len(gray[0])
	profile := make([]float64, h-1)
	for y := 0; y < h-1; y++ {
		for x := 0; x < w; x++ {
			profile[y] += math.Abs(gray[y+1][x] - gray[y][x])
		}
	}
	for y := range profile {
		profile[y] /= float64(w)
	}
	return profile
}

// dominantPeriod picks the strongest spatial period of profile within
// [minPitch, maxPitch], weighting spectrum magnitude by period so long
// pitches are not drowned out by their harmonics. Returns 0 when the
// profile carries no usable signal.
func dominantPeriod(profile []float64) int {
	n := len(profile)
	if n < 4 {
		return 0
	}
	centered := make([]float64, n)
	mean := 0.0
	for _, v := range profile {
		mean += v
	}
	mean /= float64(n)
	for i, v := range profile {
		centered[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, centered)
	spectrum := make([]float64, len(coeffs))
	for i, c := range coeffs {
		spectrum[i] = math.Hypot(real(c), imag(c))
	}
	spectrum[0] = 0

	bestScore, bestPeriod := 0.0, 0
	fallbackMag, fallbackFreq := 0.0, 0
	for freq := 1; freq < len(spectrum); freq++ {
		period := float64(n) / float64(freq)
		if mag := spectrum[freq]; mag > fallbackMag {
			fallbackMag, fallbackFreq = mag, freq
		}
		if period < minPitch || period > maxPitch {
			continue
		}
		if score := spectrum[freq] * period; score > bestScore {
			bestScore = score
			bestPeriod = int(math.Round(period))
		}
	}
	if bestPeriod > 0 {
		return bestPeriod
	}
	if fallbackFreq == 0 || fallbackMag == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(fallbackFreq)))
}

// refinePitch scans pitches near base (and the doubled pitch, to avoid
// halving the grid) for the offset maximizing profile energy on the
// lattice positions.
func refinePitch(profile []float64, base int) (pitch, offset int) {
	bestScore := math.Inf(-1)
	lo := base - 6
	if lo < minPitch {
		lo = minPitch
	}
	hi := base + 6
	if hi > maxPitch {
		hi = maxPitch
	}
	for cand := lo; cand <= hi; cand++ {
		if off, _, score := bestOffsetAndCount(profile, cand); score > bestScore {
			bestScore, pitch, offset = score, cand, off
		}
	}
	double := base * 2
	if double > 120 {
		double = 120
	}
	if off, _, score := bestOffsetAndCount(profile, double); score > bestScore {
		pitch, offset = double, off
	}
	return pitch, offset
}

// bestOffsetAndCount scans lattice offsets and cell counts, scoring each
// candidate by summed profile energy at the lattice positions plus a
// small per-position bonus favoring fuller lattices.
func bestOffsetAndCount(profile []float64, pitch int) (offset, count int, score float64) {
	if pitch <= 0 || len(profile) == 0 {
		return 0, minCells, math.Inf(-1)
	}
	score = math.Inf(-1)
	count = minCells
	for off := 0; off < pitch; off++ {
		for n := minCells; n <= maxCells; n++ {
			sum, used := 0.0, 0
			for i := 0; i < n; i++ {
				pos := off + i*pitch
				if pos >= len(profile) {
					break
				}
				sum += profile[pos]
				used++
			}
			if used == 0 {
				continue
			}
			if s := sum + 0.1*float64(used); s > score {
				score, offset, count = s, off, used
			}
		}
	}
	return offset, count, score
}
