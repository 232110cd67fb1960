package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadTwin/internal/project"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "Show recently processed manifests",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, rootOpts, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of entries to show (0 = all)")

	return cmd
}

func runHistory(cmd *cobra.Command, rootOpts *RootOptions, limit int) error {
	if err := rootOpts.setup(cmd); err != nil {
		return err
	}
	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	entries, err := project.LoadHistory(rootOpts.HistoryPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot read history", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return formatter.Success(entries, func(w io.Writer) {
		if len(entries) == 0 {
			fmt.Fprintln(w, "No manifests processed yet.")
			return
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tSOURCE\tCONTAINERS\tBOXES\tOMITTED\tSTATUS")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
				e.Date.Local().Format("2006-01-02 15:04"), e.Source, e.Containers, e.Boxes, e.Omitted, e.Status)
		}
		tw.Flush()
	})
}
