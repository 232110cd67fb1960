package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadTwin/internal/export"
)

// ExportResult lists the files written by the export command.
type ExportResult struct {
	Source string   `json:"source"`
	Files  []string `json:"files"`
}

type exportOptions struct {
	strategy string
	xlsx     string
	pdf      string
	labels   string
	dxfDir   string
	charts   string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <manifest.json>",
		Short: "Write packing list, load plan, labels, DXF and chart exports",
		Long: `Place a manifest and write any combination of exports:

  --xlsx    packing list and per-box placement workbook
  --pdf     load plan with top and side views per container
  --labels  Avery 5160 container labels with QR codes
  --dxf     directory receiving one 3D wireframe per container
  --charts  HTML page with occupancy and cargo volume charts`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, rootOpts, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "placement mode (shelf|upstream|auto), default from settings")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "packing list workbook path")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "load plan PDF path")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "container labels PDF path")
	cmd.Flags().StringVar(&opts.dxfDir, "dxf", "", "directory for per-container DXF files")
	cmd.Flags().StringVar(&opts.charts, "charts", "", "analytics HTML path")

	return cmd
}

func (o *exportOptions) empty() bool {
	return o.xlsx == "" && o.pdf == "" && o.labels == "" && o.dxfDir == "" && o.charts == ""
}

func runExport(cmd *cobra.Command, rootOpts *RootOptions, opts *exportOptions, path string) error {
	if err := rootOpts.setup(cmd); err != nil {
		return err
	}
	if opts.empty() {
		return NewExitError(ExitCommandError, "nothing to export, use --xlsx, --pdf, --labels, --dxf or --charts")
	}
	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	twins, _, err := loadTwins(cmd.Context(), rootOpts, path, opts.strategy)
	if err != nil {
		return err
	}

	result := ExportResult{Source: path}
	write := func(target string, fn func(string) error) error {
		if target == "" {
			return nil
		}
		if err := fn(target); err != nil {
			return WrapExitError(ExitCommandError, "export to "+target+" failed", err)
		}
		rootOpts.log.Info().Str("path", target).Msg("export written")
		result.Files = append(result.Files, target)
		return nil
	}

	if err := write(opts.xlsx, func(p string) error { return export.ExportPackingList(p, twins) }); err != nil {
		return err
	}
	if err := write(opts.pdf, func(p string) error { return export.ExportPDF(p, twins) }); err != nil {
		return err
	}
	if err := write(opts.labels, func(p string) error { return export.ExportLabels(p, twins) }); err != nil {
		return err
	}
	if err := write(opts.charts, func(p string) error { return export.ExportCharts(p, twins) }); err != nil {
		return err
	}
	if opts.dxfDir != "" {
		if err := os.MkdirAll(opts.dxfDir, 0755); err != nil {
			return WrapExitError(ExitCommandError, "cannot create DXF directory", err)
		}
		for _, t := range twins {
			result := t.Result
			target := filepath.Join(opts.dxfDir, t.Shipment.ID+".dxf")
			if err := write(target, func(p string) error { return export.ExportDXF(p, result) }); err != nil {
				return err
			}
		}
	}

	return formatter.Success(result, func(w io.Writer) {
		for _, f := range result.Files {
			fmt.Fprintf(w, "wrote %s\n", f)
		}
	})
}
