// Package tileimg turns a map screenshot into a tile map.
//
// What:
//
//   - DetectGrid finds the cell lattice of a screenshot: gradient
//     projections locate the grid lines, a real FFT picks the dominant
//     pitch, and an offset/count scan aligns the lattice to the image.
//   - Classify cuts a center-cropped patch per cell, extracts a 6D color
//     feature (mean and variance per RGB channel), and assigns the
//     nearest calibration label under scale-normalized distance. The
//     labeled rows are assembled into map text and run through
//     tilemap.Parse, so every grid validation rule applies to classified
//     maps too.
//
// A single root is enforced the way the reference pipeline does it: the
// brightest root-classified cell wins, remaining root labels demote to
// open ground, and if nothing classified as root the brightest cell
// overall is promoted.
//
// Errors: ErrNoGridPeriod when no plausible pitch exists in the scanned
// range; classification surfaces tilemap parse errors unchanged.
package tileimg
