// Command vvshift renders pitch and formant shifted WAV files with the PSOLA
// engine and inspects period detection.
//
// Usage:
//
//	vvshift [flags] <command> [args]
//
// Commands:
//
//	render   - shift a WAV file
//	detect   - print the per-block period trajectory of a WAV file
//	presets  - list available presets
//	version  - print build and CPU feature information
//
// Examples:
//
//	vvshift render --in voice.wav --out up.wav --semitones 5
//	vvshift render --in voice.wav --out giant.wav --preset giant
//	vvshift detect --in voice.wav
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-psola/cmd/vvshift/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
