// Package stream adapts fixed-block processors to arbitrary host buffer
// sizes.
//
// A [FrameAdapter] collects input until a full block is available, runs the
// block function and plays the result back while the next block fills. The
// output therefore lags the input by exactly one block.
package stream
