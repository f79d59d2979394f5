package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gyeh/statehealth/internal/exitcode"
	"github.com/gyeh/statehealth/internal/logging"
	"github.com/gyeh/statehealth/internal/model"
	"github.com/gyeh/statehealth/internal/normalize"
	"github.com/gyeh/statehealth/internal/pipeline"
)

// selectionFlags are shared by every command that queries the table.
type selectionFlags struct {
	states    []string
	allStates bool
	year      string
	indicator string
	output    string
}

func (s *selectionFlags) register(f *pflag.FlagSet) {
	f.StringSliceVar(&s.states, "states", nil, "States to include, by name or code (default from config)")
	f.BoolVar(&s.allStates, "all-states", false, "Include every state in the data")
	f.StringVar(&s.year, "year", "", `Year to show, or "all" (default from config, then latest)`)
	f.StringVar(&s.indicator, "indicator", "", "Indicator name, label or column header (default from config)")
	f.StringVar(&s.output, "output", "text", "Output format: text or json")
}

func (s *selectionFlags) resolveStates(t *pipeline.Table) []string {
	if s.allStates {
		return t.States()
	}
	if len(s.states) == 0 {
		return cfg.Defaults.States
	}
	return s.states
}

// resolveYear returns nil for "all". An empty flag falls back to the config
// default and then to the latest year when single is set; otherwise to all.
// Years outside the data are accepted and produce empty views.
func (s *selectionFlags) resolveYear(t *pipeline.Table, single bool) (*int, error) {
	v := strings.TrimSpace(s.year)
	switch {
	case strings.EqualFold(v, "all"):
		if single {
			return nil, fmt.Errorf("--year all is not valid for this view")
		}
		return nil, nil
	case v == "":
		if cfg.Defaults.Year != 0 {
			y := cfg.Defaults.Year
			return &y, nil
		}
		if !single {
			return nil, nil
		}
		y, _ := t.LatestYear()
		return &y, nil
	}
	y, ok := normalize.ParseYear(v)
	if !ok {
		return nil, fmt.Errorf("invalid --year %q (want a year or all)", v)
	}
	return &y, nil
}

func (s *selectionFlags) resolveIndicator() (model.Indicator, error) {
	if s.indicator == "" {
		return cfg.DefaultIndicator(), nil
	}
	ind, ok := model.ParseIndicator(s.indicator)
	if !ok {
		return "", fmt.Errorf("unknown --indicator %q", s.indicator)
	}
	return ind, nil
}

func (s *selectionFlags) jsonOutput() bool {
	return strings.EqualFold(s.output, "json")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func usageExit(log zerolog.Logger, err error) {
	log.Error().Err(err).Msg("invalid arguments")
	os.Exit(exitcode.UsageError)
}

var (
	barFlags   selectionFlags
	trendFlags selectionFlags
	tableFlags selectionFlags
	tableCols  []string
	tableAsc   bool
	searchJSON bool
)

var barCmd = &cobra.Command{
	Use:   "bar",
	Short: "Print one value per selected state for a year, highest first",
	RunE:  runBar,
}

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Print each selected state's values across years",
	RunE:  runTrend,
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the data table for the selection",
	RunE:  runTable,
}

var statesCmd = &cobra.Command{
	Use:   "states [query]",
	Short: "List states whose name contains query",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStates,
}

func init() {
	barFlags.register(barCmd.Flags())
	trendFlags.register(trendCmd.Flags())
	tableFlags.register(tableCmd.Flags())
	tableCmd.Flags().StringSliceVar(&tableCols, "columns", nil, "Columns to show: state, year, value, region, rank (default from config)")
	tableCmd.Flags().BoolVar(&tableAsc, "asc", false, "Sort by value ascending instead of descending")
	statesCmd.Flags().BoolVar(&searchJSON, "json", false, "Print JSON")

	rootCmd.AddCommand(barCmd, trendCmd, tableCmd, statesCmd)
}

func runBar(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	handle, done := openHandle(context.Background(), log)
	defer done()
	t := handle.Table()

	year, err := barFlags.resolveYear(t, true)
	if err != nil {
		usageExit(log, err)
	}
	ind, err := barFlags.resolveIndicator()
	if err != nil {
		usageExit(log, err)
	}

	bars := t.BarChartView(barFlags.resolveStates(t), *year, ind)
	if barFlags.jsonOutput() {
		printJSON(bars)
		return nil
	}

	fmt.Printf("%s, %d\n", ind.AxisLabel(), *year)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, b := range bars {
		fmt.Fprintf(w, "%s\t%.2f\n", b.State, b.Value)
	}
	return w.Flush()
}

func runTrend(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	handle, done := openHandle(context.Background(), log)
	defer done()
	t := handle.Table()

	ind, err := trendFlags.resolveIndicator()
	if err != nil {
		usageExit(log, err)
	}

	series := t.TrendView(trendFlags.resolveStates(t), ind)
	if trendFlags.jsonOutput() {
		printJSON(series)
		return nil
	}

	years := t.Years()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "State\t")
	for _, y := range years {
		fmt.Fprintf(w, "%d\t", y)
	}
	fmt.Fprintln(w)
	for _, s := range series {
		byYear := make(map[int]float64, len(s.Points))
		for _, p := range s.Points {
			byYear[p.Year] = p.Value
		}
		fmt.Fprintf(w, "%s\t", s.State)
		for _, y := range years {
			if v, ok := byYear[y]; ok {
				fmt.Fprintf(w, "%.2f\t", v)
			} else {
				fmt.Fprint(w, "-\t")
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runTable(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	handle, done := openHandle(context.Background(), log)
	defer done()
	t := handle.Table()

	year, err := tableFlags.resolveYear(t, false)
	if err != nil {
		usageExit(log, err)
	}
	ind, err := tableFlags.resolveIndicator()
	if err != nil {
		usageExit(log, err)
	}
	cols := cfg.DefaultColumns()
	if len(tableCols) > 0 {
		cols = cols[:0]
		for _, name := range tableCols {
			c, ok := model.ParseColumn(name)
			if !ok {
				usageExit(log, fmt.Errorf("unknown column %q", name))
			}
			cols = append(cols, c)
		}
	}

	view := t.TableView(tableFlags.resolveStates(t), year, ind, cols, !tableAsc)
	if tableFlags.jsonOutput() {
		printJSON(view)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, c := range view.Columns {
		fmt.Fprintf(w, "%s\t", c.Title())
	}
	fmt.Fprintln(w)
	for _, row := range view.Cells() {
		for _, cell := range row {
			fmt.Fprintf(w, "%v\t", cell)
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	sum := pipeline.Summarize(pipeline.Selection{States: tableFlags.resolveStates(t), Year: year, Indicator: ind})
	fmt.Printf("\n%d states | year: %s | %s\n", sum.StateCount, sum.Year, sum.IndicatorLabel)
	return nil
}

func runStates(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	handle, done := openHandle(context.Background(), log)
	defer done()

	var q string
	if len(args) == 1 {
		q = args[0]
	}
	states := pipeline.SearchStates(handle.Table().States(), q)
	if searchJSON {
		printJSON(states)
		return nil
	}
	for _, s := range states {
		fmt.Println(s)
	}
	return nil
}
