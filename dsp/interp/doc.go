// Package interp provides the interpolation and easing primitives used by the
// epoch resampler.
//
//   - [Linear2]:      2-point linear interpolation
//   - [RaisedCosine]: (1 - cos(pi*x)) / 2 easing
//   - [SmoothStep]:   cubic 3x^2 - 2x^3 easing
//   - [EaseLerp]:     linear blend with an eased ratio
//
// Both easing kernels map [0,1] onto [0,1] with zero slope at the end points,
// so blending with them never introduces a corner at a segment boundary.
package interp
