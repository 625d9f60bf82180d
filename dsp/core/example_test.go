package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-psola/dsp/core"
)

func ExampleRatioFromSemitones() {
	for _, st := range []float64{-12, 0, 7, 12} {
		fmt.Printf("%+.0f st -> %.4f\n", st, core.RatioFromSemitones(st))
	}

	// Output:
	// -12 st -> 0.5000
	// +0 st -> 1.0000
	// +7 st -> 1.4983
	// +12 st -> 2.0000
}

func ExampleProcessorConfig_Validate() {
	cfg := core.ProcessorConfig{SampleRate: 48000, BlockSize: 1000}
	fmt.Println(cfg.Validate())

	// Output:
	// block size must be a power of two >= 64: 1000
}
