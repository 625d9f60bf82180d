package buffer

// Ring is a fixed-capacity circular FIFO of float64 samples.
// It is not safe for concurrent use.
type Ring struct {
	data []float64
	head int // index of the oldest sample
	size int
}

// NewRing returns an empty ring able to hold capacity samples.
func NewRing(capacity int) *Ring {
	if capacity < 0 {
		capacity = 0
	}
	return &Ring{data: make([]float64, capacity)}
}

// Cap returns the fixed capacity.
func (r *Ring) Cap() int { return len(r.data) }

// Len returns the number of buffered samples.
func (r *Ring) Len() int { return r.size }

// Free returns the number of samples that can still be pushed.
func (r *Ring) Free() int { return len(r.data) - r.size }

// Full reports whether the ring holds Cap samples.
func (r *Ring) Full() bool { return r.size == len(r.data) }

// Empty reports whether the ring holds no samples.
func (r *Ring) Empty() bool { return r.size == 0 }

// Reset discards all buffered samples.
func (r *Ring) Reset() {
	r.head = 0
	r.size = 0
}

// Fill replaces the contents with Cap copies of value.
func (r *Ring) Fill(value float64) {
	for i := range r.data {
		r.data[i] = value
	}
	r.head = 0
	r.size = len(r.data)
}

// Push appends v. It returns false when the ring is full.
func (r *Ring) Push(v float64) bool {
	if r.size == len(r.data) {
		return false
	}
	r.data[(r.head+r.size)%len(r.data)] = v
	r.size++
	return true
}

// Pop removes and returns the oldest sample.
func (r *Ring) Pop() (float64, bool) {
	if r.size == 0 {
		return 0, false
	}
	v := r.data[r.head]
	r.head = (r.head + 1) % len(r.data)
	r.size--
	return v, true
}

// Write appends as many samples of src as fit and returns the count.
func (r *Ring) Write(src []float64) int {
	n := min(len(src), r.Free())
	if n == 0 {
		return 0
	}

	tail := (r.head + r.size) % len(r.data)
	first := copy(r.data[tail:], src[:n])
	copy(r.data, src[first:n])
	r.size += n
	return n
}

// Read pops up to len(dst) samples into dst in FIFO order and returns the count.
func (r *Ring) Read(dst []float64) int {
	n := r.Peek(dst)
	r.Discard(n)
	return n
}

// Peek copies up to len(dst) of the oldest samples into dst without
// consuming them.
func (r *Ring) Peek(dst []float64) int {
	n := min(len(dst), r.size)
	if n == 0 {
		return 0
	}

	end := min(r.head+n, len(r.data))
	first := copy(dst, r.data[r.head:end])
	copy(dst[first:n], r.data)
	return n
}

// Discard drops up to n of the oldest samples and returns the count.
func (r *Ring) Discard(n int) int {
	n = max(0, min(n, r.size))
	if n == 0 {
		return 0
	}
	r.head = (r.head + n) % len(r.data)
	r.size -= n
	return n
}

// Assign replaces the contents with the first Cap samples of src.
func (r *Ring) Assign(src []float64) int {
	r.Reset()
	return r.Write(src)
}
