package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	detect "github.com/cwbudde/algo-psola/dsp/pitch"
)

type detectOptions struct {
	in           string
	blockSize    int
	noContinuity bool
}

func newDetectCmd(g *globalOptions) *cobra.Command {
	o := &detectOptions{}

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Print the per-block period trajectory of a WAV file",
		Long: `Run period detection on consecutive blocks of a WAV file and print one row
per block: start time, lag in samples, frequency and whether the lag was
detected in that block or carried over from an earlier one.

A trailing partial block is not analyzed, matching the shifter.`,
		Example: `  vvshift detect --in voice.wav
  vvshift detect --in voice.wav --block 2048 --no-continuity`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			presets, err := g.loadPresets()
			if err != nil {
				return err
			}
			samples, rate, err := readMono(o.in)
			if err != nil {
				return err
			}

			opts, err := presets.Estimator.Options()
			if err != nil {
				return err
			}
			switch {
			case o.blockSize > 0:
				opts = append(opts, detect.WithBlockSize(o.blockSize))
			case presets.BlockSize > 0:
				opts = append(opts, detect.WithBlockSize(presets.BlockSize))
			}
			if o.noContinuity {
				opts = append(opts, detect.WithContinuity(false))
			}

			est, err := detect.NewEstimator(float64(rate), opts...)
			if err != nil {
				return err
			}

			rows := trackPeriods(est, samples)
			g.logger.Debug("detection finished", "blocks", len(rows), "sample_rate", rate)
			return printTrack(cmd.OutOrStdout(), rows, est.BlockSize(), float64(rate))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.in, "in", "i", "", "input WAV file (required)")
	f.IntVar(&o.blockSize, "block", 0, "analysis block size (engine default when 0)")
	f.BoolVar(&o.noContinuity, "no-continuity", false, "report absent blocks instead of carrying the last period")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

// trackRow is the detection outcome of one block.
type trackRow struct {
	Estimate detect.Estimate
	Carried  bool
}

// trackPeriods runs est over every complete block of samples.
func trackPeriods(est *detect.Estimator, samples []float64) []trackRow {
	n := est.BlockSize()
	rows := make([]trackRow, 0, len(samples)/n)

	var prev detect.Estimate
	for off := 0; off+n <= len(samples); off += n {
		fresh := est.Detect(samples[off : off+n])
		cur := est.Resolve(fresh, prev)
		rows = append(rows, trackRow{
			Estimate: cur,
			Carried:  !fresh.Valid() && cur.Valid(),
		})
		prev = cur
	}

	return rows
}

func printTrack(w io.Writer, rows []trackRow, blockSize int, sampleRate float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BLOCK\tTIME\tLAG\tHZ\tSTATE")
	for i, r := range rows {
		t := float64(i*blockSize) / sampleRate
		state := "detected"
		switch {
		case r.Carried:
			state = "carried"
		case !r.Estimate.Valid():
			state = "absent"
		}

		lag, hz := "-", "-"
		if p, ok := r.Estimate.Lag(); ok {
			lag = fmt.Sprint(p)
			hz = fmt.Sprintf("%.1f", r.Estimate.Frequency(sampleRate))
		}
		fmt.Fprintf(tw, "%d\t%.3f\t%s\t%s\t%s\n", i, t, lag, hz, state)
	}
	return tw.Flush()
}
