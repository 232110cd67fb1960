package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadTwin/internal/engine"
)

// StrategyRow is one strategy's outcome for one container.
type StrategyRow struct {
	Container string  `json:"container"`
	Strategy  string  `json:"strategy"`
	Placed    int     `json:"placed"`
	Omitted   int     `json:"omitted"`
	Occupancy float64 `json:"occupancy_pct"`
	Best      bool    `json:"best"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <manifest.json>",
		Short: "Compare placement strategies for every container",
		Long: `Run every placement strategy over each container of a manifest and
report how many boxes each one places. The configured mode is listed first;
the best strategy per container places the most boxes, then the most volume.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runCompare(cmd *cobra.Command, rootOpts *RootOptions, path string) error {
	if err := rootOpts.setup(cmd); err != nil {
		return err
	}
	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	twins, _, err := loadTwins(cmd.Context(), rootOpts, path, "")
	if err != nil {
		return err
	}

	strategies := engine.DefaultStrategies(rootOpts.config.PlacementMode)
	var rows []StrategyRow
	for _, t := range twins {
		results := engine.CompareStrategies(t.Container(), t.Shipment.BoxSpecs(), strategies)
		best, _ := engine.Best(results)
		for _, r := range results {
			rows = append(rows, StrategyRow{
				Container: t.Shipment.ID,
				Strategy:  r.Strategy,
				Placed:    r.Placed,
				Omitted:   r.Skipped,
				Occupancy: r.Utilization,
				Best:      r.Strategy == best.Strategy,
			})
		}
	}

	return formatter.Success(rows, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CONTAINER\tSTRATEGY\tPLACED\tOMITTED\tOCCUPANCY\t")
		for _, r := range rows {
			mark := ""
			if r.Best {
				mark = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.1f%%\t%s\n", r.Container, r.Strategy, r.Placed, r.Omitted, r.Occupancy, mark)
		}
		tw.Flush()
	})
}
