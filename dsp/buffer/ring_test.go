package buffer

import "testing"

func TestRingPushPopFIFO(t *testing.T) {
	r := NewRing(3)

	for i, v := range []float64{1, 2, 3} {
		if !r.Push(v) {
			t.Fatalf("Push(%d) rejected", i)
		}
	}
	if !r.Full() || r.Push(4) {
		t.Fatal("ring should be full and reject further pushes")
	}

	for _, want := range []float64{1, 2, 3} {
		got, ok := r.Pop()
		if !ok || got != want {
			t.Fatalf("Pop()=%v,%v want %v,true", got, ok, want)
		}
	}
	if _, ok := r.Pop(); ok || !r.Empty() {
		t.Fatal("ring should be empty")
	}
}

func TestRingWrapAround(t *testing.T) {
	r := NewRing(4)
	r.Write([]float64{1, 2, 3})
	r.Discard(2)

	if n := r.Write([]float64{4, 5, 6, 7}); n != 3 {
		t.Fatalf("Write()=%d want 3", n)
	}

	dst := make([]float64, 4)
	if n := r.Peek(dst); n != 4 {
		t.Fatalf("Peek()=%d want 4", n)
	}
	want := []float64{3, 4, 5, 6}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d]=%v want %v", i, dst[i], want[i])
		}
	}
	if r.Len() != 4 {
		t.Fatalf("Peek must not consume, Len()=%d", r.Len())
	}

	out := make([]float64, 2)
	r.Read(out)
	if out[0] != 3 || out[1] != 4 || r.Len() != 2 {
		t.Fatalf("Read()=%v Len()=%d", out, r.Len())
	}
}

func TestRingFillAndAssign(t *testing.T) {
	r := NewRing(3)
	r.Fill(0.25)
	if !r.Full() {
		t.Fatal("Fill should leave ring full")
	}
	for i := 0; i < 3; i++ {
		if v, _ := r.Pop(); v != 0.25 {
			t.Fatalf("Pop()=%v want 0.25", v)
		}
	}

	if n := r.Assign([]float64{9, 8, 7, 6}); n != 3 {
		t.Fatalf("Assign()=%d want 3", n)
	}
	if v, _ := r.Pop(); v != 9 {
		t.Fatalf("Pop()=%v want 9", v)
	}
}

func TestRingZeroCapacity(t *testing.T) {
	r := NewRing(-1)
	if r.Cap() != 0 || r.Push(1) || r.Write([]float64{1}) != 0 {
		t.Fatal("zero-capacity ring must reject writes")
	}
	if r.Discard(5) != 0 {
		t.Fatal("Discard on empty ring must return 0")
	}
}
