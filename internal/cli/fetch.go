package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadTwin/internal/client"
	"github.com/piwi3910/LoadTwin/internal/importer"
)

// FetchResult is the output of the fetch command.
type FetchResult struct {
	Service    string `json:"service"`
	Output     string `json:"output"`
	Containers int    `json:"containers"`
	Products   int    `json:"products"`
}

type fetchOptions struct {
	ids    []string
	output string
	url    string
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Request an optimized manifest from the service and save it",
		Long: `Post product IDs to the optimization service and save the returned
manifest as JSON, ready for place, compare or export.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.ids, "ids", nil, "product IDs to optimize (comma separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "manifest.json", "where to save the manifest")
	cmd.Flags().StringVar(&opts.url, "url", "", "service base URL, default from settings")

	return cmd
}

func runFetch(cmd *cobra.Command, rootOpts *RootOptions, opts *fetchOptions) error {
	if err := rootOpts.setup(cmd); err != nil {
		return err
	}
	if len(opts.ids) == 0 {
		return NewExitError(ExitCommandError, "no product IDs given, use --ids")
	}
	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	url := opts.url
	if url == "" {
		url = rootOpts.config.ServiceURL
	}
	timeout := time.Duration(rootOpts.config.RequestTimeout) * time.Second
	c := client.New(url, timeout, rootOpts.log)

	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	m, err := c.Optimize(ctx, opts.ids, nil)
	if err != nil {
		return WrapExitError(ExitCommandError, "optimization request failed", err)
	}
	if err := importer.SaveManifestJSON(opts.output, m); err != nil {
		return WrapExitError(ExitCommandError, "cannot save manifest", err)
	}

	result := FetchResult{Service: url, Output: opts.output, Containers: len(m)}
	for _, load := range m {
		result.Products += len(load.Products)
	}
	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "Saved %d containers (%d products) to %s\n", result.Containers, result.Products, result.Output)
	})
}
