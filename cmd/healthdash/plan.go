package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gyeh/statehealth/internal/logging"
	"github.com/gyeh/statehealth/internal/model"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run load: validate the source and print load statistics",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	handle, done := openHandle(ctx, log)
	defer done()

	sum := handle.Summary()
	table := handle.Table()

	fmt.Println("=== healthdash plan ===")
	fmt.Printf("Source:     %s (%s)\n", sum.Source, sum.Format)
	if sum.Delimiter != "" {
		fmt.Printf("Delimiter:  %q\n", sum.Delimiter)
	}
	if sum.SHA256 != "" {
		fmt.Printf("SHA-256:    %s\n", sum.SHA256)
	}
	fmt.Printf("Snapshot:   %s\n", sum.SnapshotID)
	fmt.Printf("Rows read:  %d\n", sum.RowsRead)
	fmt.Printf("Rows kept:  %d\n", sum.RowsKept)
	fmt.Printf("Dropped:    %d\n", sum.RowsDropped)

	if len(sum.DropReasons) > 0 {
		reasons := make([]string, 0, len(sum.DropReasons))
		for r := range sum.DropReasons {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)
		for _, r := range reasons {
			fmt.Printf("  %-18s %d\n", r, sum.DropReasons[r])
		}
	}

	fmt.Println()
	fmt.Println("Rows by indicator:")
	for _, info := range model.AllIndicators {
		fmt.Printf("  %-26s %d\n", info.Label, sum.RowsByIndicator[info.Indicator])
	}

	years := table.Years()
	fmt.Printf("\nStates: %d of %d\n", len(table.States()), len(model.AllStates))
	if len(years) > 0 {
		fmt.Printf("Years:  %d-%d (%d distinct)\n", years[0], years[len(years)-1], len(years))
	} else {
		fmt.Println("Years:  none (no valid rows)")
	}
	fmt.Printf("Load time: %s\n", sum.Duration)
	return nil
}
