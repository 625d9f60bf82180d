package spectrum_test

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-psola/dsp/spectrum"
)

func ExamplePower() {
	bins := []complex128{1 + 0i, 0 + 2i, -3 + 0i}
	pow := spectrum.Power(bins)
	fmt.Printf("%.1f %.1f %.1f\n", pow[0], pow[1], pow[2])
	// Output:
	// 1.0 4.0 9.0
}

func ExampleNewTransform() {
	tr, err := spectrum.NewTransform(8)
	if err != nil {
		panic(err)
	}

	x := []complex128{1, 1, 1, 1, 1, 1, 1, 1}
	if err := tr.Forward(x, x); err != nil {
		panic(err)
	}

	fmt.Printf("dc=%.0f bin1=%.0f\n", cmplx.Abs(x[0]), cmplx.Abs(x[1]))
	// Output:
	// dc=8 bin1=0
}
