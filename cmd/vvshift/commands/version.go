package commands

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build and CPU feature information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()

			version := "(devel)"
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
				version = info.Main.Version
			}
			fmt.Fprintf(w, "vvshift %s %s/%s %s\n", version, runtime.GOOS, runtime.GOARCH, runtime.Version())

			f := cpu.DetectFeatures()
			fmt.Fprintf(w, "cpu: arch=%s sse2=%t avx2=%t neon=%t generic=%t\n",
				f.Architecture, f.HasSSE2, f.HasAVX2, f.HasNEON, f.ForceGeneric)
		},
	}
}
