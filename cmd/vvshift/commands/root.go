// Package commands implements the vvshift subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-psola/internal/config"
)

type globalOptions struct {
	logLevel   string
	logFormat  string
	presetPath string

	logger *slog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "vvshift",
		Short: "PSOLA pitch and formant shifter",
		Long: `vvshift - block-based PSOLA pitch and formant shifting for mono audio.

Each 4096-sample block is analyzed for its fundamental period, re-laid on an
epoch grid scaled by the pitch ratio and resynthesized with the formant ratio
as read speed. Output lags input by one block; render compensates for it.

Controls are normalized like a plugin host would send them (0.5 = neutral,
0 = one octave down, 1 = one octave up) or given in semitones.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), g.logLevel, g.logFormat)
			if err != nil {
				return err
			}
			g.logger = logger
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&g.logFormat, "log-format", "text", "log format: text or json")
	pf.StringVar(&g.presetPath, "presets", "", "YAML preset file (built-in presets when empty)")

	root.AddCommand(
		newRenderCmd(g),
		newDetectCmd(g),
		newPresetsCmd(g),
		newVersionCmd(),
	)

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (g *globalOptions) loadPresets() (*config.File, error) {
	if g.presetPath == "" {
		return config.Default(), nil
	}
	return config.Load(g.presetPath)
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q; valid values: text, json", format)
	}
}
