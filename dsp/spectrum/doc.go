// Package spectrum provides the forward/inverse transform primitive used by
// block analysis together with small spectrum-domain helpers.
//
// The transform itself is delegated to algo-fft; callers depend only on the
// [Transform] interface so tests and alternative backends can substitute it.
package spectrum
