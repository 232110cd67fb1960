package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadTwin/internal/engine"
	"github.com/piwi3910/LoadTwin/internal/importer"
	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/piwi3910/LoadTwin/internal/project"
	"github.com/piwi3910/LoadTwin/internal/twin"
)

// ContainerReport summarizes the placement of one container.
type ContainerReport struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	Destination string                 `json:"destination"`
	Strategy    string                 `json:"strategy"`
	Boxes       int                    `json:"boxes"`
	Placed      int                    `json:"placed"`
	Omitted     int                    `json:"omitted"`
	Occupancy   float64                `json:"occupancy_pct"`
	Problems    []string               `json:"problems,omitempty"`
	Result      *model.PlacementResult `json:"result,omitempty"`
}

// PlaceReport is the output of the place command.
type PlaceReport struct {
	Source     string            `json:"source"`
	Containers []ContainerReport `json:"containers"`
	Boxes      int               `json:"boxes"`
	Omitted    int               `json:"omitted"`
	Warnings   []string          `json:"warnings,omitempty"`
	Verified   bool              `json:"verified"`
}

// errVerification is returned when --verify finds a broken placement.
var errVerification = errors.New("placement verification failed")

type placeOptions struct {
	strategy  string
	verify    bool
	full      bool
	noHistory bool
}

// NewPlaceCommand creates the place command.
func NewPlaceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &placeOptions{}

	cmd := &cobra.Command{
		Use:   "place <manifest.json>",
		Short: "Place the boxes of a manifest into their containers",
		Long: `Resolve a container for every load of a manifest and run the placement
engine over its products.

With --verify every result is checked for boxes outside the container,
overlapping boxes and boxes that were neither placed nor reported as
omitted; any violation exits with status 1.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlace(cmd, rootOpts, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "placement mode (shelf|upstream|auto), default from settings")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "check containment, overlap and coverage")
	cmd.Flags().BoolVar(&opts.full, "full", false, "include every box position in JSON output")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "do not record the run in the processing history")

	return cmd
}

// loadTwins reads a manifest and places every container.
func loadTwins(ctx context.Context, rootOpts *RootOptions, path, strategy string) ([]twin.Twin, []string, error) {
	m, err := importer.ImportManifestJSON(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "cannot read manifest", err)
	}
	eng, err := rootOpts.engineFor(strategy)
	if err != nil {
		return nil, nil, err
	}
	twins, warnings, err := twin.Build(ctx, m.Shipments(), rootOpts.inventory(), eng)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "cannot place manifest", err)
	}
	return twins, warnings, nil
}

// verifyTwin returns every containment, overlap and coverage violation of t.
func verifyTwin(t twin.Twin) []string {
	var problems []string
	if err := engine.Validate(t.Result); err != nil {
		problems = append(problems, splitJoined(err)...)
	}
	if err := engine.CheckCoverage(t.Result, len(t.Shipment.Products)); err != nil {
		problems = append(problems, err.Error())
	}
	return problems
}

// splitJoined unwraps an errors.Join result into its messages.
func splitJoined(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

func buildPlaceReport(source string, twins []twin.Twin, warnings []string, verify, full bool) PlaceReport {
	report := PlaceReport{Source: source, Warnings: warnings, Verified: verify}
	for _, t := range twins {
		r := ContainerReport{
			ID:          t.Shipment.ID,
			Type:        t.Shipment.Type,
			Destination: t.Shipment.Destination,
			Strategy:    t.Result.Strategy,
			Boxes:       t.Result.InputCount(),
			Placed:      len(t.Result.Placed),
			Omitted:     t.Result.SkippedCount(),
			Occupancy:   t.Result.Utilization(),
		}
		if verify {
			r.Problems = verifyTwin(t)
		}
		if full {
			result := t.Result
			r.Result = &result
		}
		report.Boxes += r.Boxes
		report.Omitted += r.Omitted
		report.Containers = append(report.Containers, r)
	}
	return report
}

func (r PlaceReport) problemCount() int {
	n := 0
	for _, c := range r.Containers {
		n += len(c.Problems)
	}
	return n
}

func runPlace(cmd *cobra.Command, rootOpts *RootOptions, opts *placeOptions, path string) error {
	if err := rootOpts.setup(cmd); err != nil {
		return err
	}
	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	twins, warnings, err := loadTwins(cmd.Context(), rootOpts, path, opts.strategy)
	if err != nil {
		return err
	}
	report := buildPlaceReport(path, twins, warnings, opts.verify, opts.full)

	if !opts.noHistory && rootOpts.HistoryPath != "" {
		containers, boxes, omitted := twin.Counts(twins)
		if _, err := project.AppendHistory(rootOpts.HistoryPath, project.NewHistoryEntry(path, containers, boxes, omitted)); err != nil {
			rootOpts.log.Warn().Err(err).Msg("cannot record processing history")
		}
	}

	text := func(w io.Writer) { writePlaceReport(w, report) }
	if n := report.problemCount(); n > 0 {
		err := WrapExitError(ExitFailure, fmt.Sprintf("%d problem(s) found", n), errVerification)
		return formatter.Failure(report, err, text)
	}
	return formatter.Success(report, text)
}

func writePlaceReport(w io.Writer, r PlaceReport) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CONTAINER\tTYPE\tDESTINATION\tBOXES\tPLACED\tOMITTED\tOCCUPANCY")
	for _, c := range r.Containers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%.1f%%\n",
			c.ID, c.Type, c.Destination, c.Boxes, c.Placed, c.Omitted, c.Occupancy)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d containers, %d boxes, %d omitted\n", len(r.Containers), r.Boxes, r.Omitted)
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "WARNING: %s\n", warn)
	}
	if !r.Verified {
		return
	}
	problems := 0
	for _, c := range r.Containers {
		for _, p := range c.Problems {
			fmt.Fprintf(w, "FAIL %s: %s\n", c.ID, p)
			problems++
		}
	}
	if problems == 0 {
		fmt.Fprintln(w, "✓ All placements verified")
	}
}
