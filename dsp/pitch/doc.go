// Package pitch estimates the fundamental period of a fixed-length analysis
// block using the normalized square difference function (NSDF).
//
// The NSDF is computed through the Wiener-Khinchin route: the windowed block
// is zero-padded, transformed, squared, optionally band-limited and
// transformed back, then normalized by the running energy of the block. Peak
// picking prefers the first lag whose NSDF value reaches a fraction of the
// strongest local maximum, which favors the fundamental over sub-harmonics.
//
// An [Estimator] owns all of its scratch buffers; [Estimator.Estimate] does not
// allocate. It is not safe for concurrent use.
package pitch
