package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-psola/dsp/effects/pitch"
)

func newPresetsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := g.loadPresets()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPITCH\tFORMANT\tDESCRIPTION")
			for _, p := range file.Presets {
				c := pitch.NewControls()
				p.Apply(&c)
				fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%s\n", p.Name, c.PitchRatio(), c.FormantRatio(), p.Description)
			}
			return tw.Flush()
		},
	}
}
