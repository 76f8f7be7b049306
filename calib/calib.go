// Package calib loads the calibration statistics consumed by the image
// classifier: one reference feature vector per tile symbol, plus the
// reserved "_scale" vector normalizing each feature dimension.
//
// The optimizer core never reads this file; only tileimg does.
package calib

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// scaleKey is the reserved JSON key holding the per-feature
// normalization vector.
const scaleKey = "_scale"

// Sentinel errors for statistics validation.
var (
	// ErrMissingScale indicates the reserved "_scale" key is absent.
	ErrMissingScale = errors.New("calib: statistics file has no \"_scale\" vector")
	// ErrLengthMismatch indicates a feature vector whose length differs
	// from the scale vector's.
	ErrLengthMismatch = errors.New("calib: feature vector length differs from scale vector")
	// ErrUnknownLabel indicates a label that is not a single map symbol.
	ErrUnknownLabel = errors.New("calib: label is not a recognized tile symbol")
	// ErrNoLabels indicates a file with a scale but no feature labels.
	ErrNoLabels = errors.New("calib: statistics file has no feature labels")
	// ErrZeroScale indicates a zero entry in the scale vector.
	ErrZeroScale = errors.New("calib: scale vector contains a zero entry")
)

// Stats holds validated calibration statistics.
type Stats struct {
	// Scale is the per-feature normalization vector.
	Scale []float64
	// Features maps a tile symbol (e.g. "~", ".", "H") to its reference
	// feature vector, same length as Scale.
	Features map[string][]float64
}

// Load reads and validates calibration statistics JSON from r.
func Load(r io.Reader) (*Stats, error) {
	raw := make(map[string][]float64)
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("calib: decoding statistics: %w", err)
	}
	scale, ok := raw[scaleKey]
	if !ok {
		return nil, ErrMissingScale
	}
	delete(raw, scaleKey)
	if len(raw) == 0 {
		return nil, ErrNoLabels
	}
	for i, s := range scale {
		if s == 0 {
			return nil, fmt.Errorf("%w: dimension %d", ErrZeroScale, i)
		}
	}
	for label, vec := range raw {
		if !validLabel(label) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
		}
		if len(vec) != len(scale) {
			return nil, fmt.Errorf("%w: label %q has %d features, scale has %d",
				ErrLengthMismatch, label, len(vec), len(scale))
		}
	}
	return &Stats{Scale: scale, Features: raw}, nil
}

// LoadFile reads calibration statistics from the file at path.
func LoadFile(path string) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("calib: open statistics: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Normalize divides vec by the scale vector, returning a new slice.
// vec must have the same length as Scale.
func (s *Stats) Normalize(vec []float64) []float64 {
	out := make([]float64, len(vec))
	for i := range vec {
		out[i] = vec[i] / s.Scale[i]
	}
	return out
}

// validLabel accepts the single-rune tile symbols of the map format plus
// the "portal_<id>" labels the calibrator emits for numbered portals.
func validLabel(label string) bool {
	if len(label) == 1 {
		ch := label[0]
		switch {
		case ch == '~' || ch == '.' || ch == 'H' || ch == 'C' || ch == 'T':
			return true
		case ch >= '0' && ch <= '9':
			return true
		}
		return false
	}
	if len(label) == len("portal_")+1 && label[:len("portal_")] == "portal_" {
		ch := label[len("portal_")]
		return ch >= '0' && ch <= '9'
	}
	return false
}
