// Package buffer provides a fixed-capacity float64 FIFO ring for
// allocation-free streaming. Storage is allocated once at construction; no
// method allocates afterwards.
package buffer
