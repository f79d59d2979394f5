package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/statehealth/internal/chart"
	"github.com/gyeh/statehealth/internal/exitcode"
	"github.com/gyeh/statehealth/internal/logging"
)

var (
	renderFlags  selectionFlags
	renderOut    string
	renderWidth  int
	renderHeight int
)

var renderCmd = &cobra.Command{
	Use:       "render bar|trend",
	Short:     "Render the bar or trend chart to a PNG or SVG file",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"bar", "trend"},
	RunE:      runRender,
}

func init() {
	f := renderCmd.Flags()
	renderFlags.register(f)
	f.StringVar(&renderOut, "out", "", "Output file; .png or .svg (required)")
	f.IntVar(&renderWidth, "width", 1024, "Image width in pixels")
	f.IntVar(&renderHeight, "height", 512, "Image height in pixels")
	_ = renderCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	format, err := chart.ParseFormat(strings.TrimPrefix(filepath.Ext(renderOut), "."))
	if err != nil {
		usageExit(log, err)
	}
	ind, err := renderFlags.resolveIndicator()
	if err != nil {
		usageExit(log, err)
	}

	handle, done := openHandle(context.Background(), log)
	defer done()
	t := handle.Table()
	states := renderFlags.resolveStates(t)

	f, err := os.Create(renderOut)
	if err != nil {
		log.Error().Err(err).Msg("create output file")
		os.Exit(exitcode.RenderError)
	}
	defer f.Close()

	opts := chart.Options{Format: format, Width: renderWidth, Height: renderHeight, Indicator: ind}
	if args[0] == "bar" {
		year, yerr := renderFlags.resolveYear(t, true)
		if yerr != nil {
			usageExit(log, yerr)
		}
		opts.Title = fmt.Sprintf("%s, %d", ind.Label(), *year)
		err = chart.RenderBar(f, t.BarChartView(states, *year, ind), opts)
	} else {
		opts.Title = fmt.Sprintf("%s over time", ind.Label())
		err = chart.RenderTrend(f, t.TrendView(states, ind), opts)
	}
	if err != nil {
		f.Close()
		os.Remove(renderOut)
		if errors.Is(err, chart.ErrNoData) {
			log.Error().Strs("states", states).Msg("no data for selection")
		} else {
			log.Error().Err(err).Msg("render failed")
		}
		os.Exit(exitcode.RenderError)
	}

	log.Info().Str("file", renderOut).Str("chart", args[0]).Msg("chart written")
	return nil
}
