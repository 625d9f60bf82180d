// Package psola implements pitch-synchronous overlap-add resynthesis of a
// single block.
//
// [BuildGrid] lays out keyframes that map destination positions to source
// epochs one period apart, compressing or expanding the epoch spacing by the
// pitch ratio. [Synthesize] renders the output by cross-fading, between each
// pair of keyframes, a forward read from the previous keyframe with a backward
// read from the next one. The read speed inside each epoch is the formant
// ratio, so pitch and spectral envelope move independently.
package psola
