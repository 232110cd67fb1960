// Package cli implements loadtwinctl, the headless companion of the viewer.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadTwin/internal/engine"
	"github.com/piwi3910/LoadTwin/internal/logging"
	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/piwi3910/LoadTwin/internal/project"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath    string
	InventoryPath string
	HistoryPath   string
	LogLevel      string
	Format        string // "json" | "text"

	config model.AppConfig
	log    zerolog.Logger
	loaded bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for loadtwinctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "loadtwinctl",
		Short: "LoadTwin - container load digital twin",
		Long: `Headless access to the LoadTwin placement engine.

Places the boxes of an optimization manifest into their containers,
verifies and compares placements, and writes the packing list, load
plan, labels, DXF and chart exports without opening the viewer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", project.DefaultConfigPath(), "settings file")
	cmd.PersistentFlags().StringVar(&opts.InventoryPath, "inventory", "", "container catalog file (default ~/.loadtwin/containers.json)")
	cmd.PersistentFlags().StringVar(&opts.HistoryPath, "history", project.DefaultHistoryPath(), "processing history file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error), overrides the settings file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewPlaceCommand(opts))
	cmd.AddCommand(NewFetchCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// setup loads the settings file and builds the logger. It runs once per
// options value; logs always go to stderr so JSON output stays parseable.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	if o.loaded {
		return nil
	}
	if o.Format == "" {
		o.Format = "text"
	}
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	cfg := model.DefaultAppConfig()
	if o.ConfigPath != "" {
		loaded, err := project.LoadAppConfig(o.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "cannot load settings", err)
		}
		cfg = loaded
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	o.config = cfg
	o.log = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, o.Format == "text")
	o.loaded = true
	return nil
}

// inventory loads the container catalog, falling back to the built-in
// presets when it cannot be read.
func (o *RootOptions) inventory() model.Inventory {
	var (
		inv model.Inventory
		err error
	)
	if o.InventoryPath != "" {
		inv, err = project.LoadInventory(o.InventoryPath)
	} else {
		inv, _, err = project.LoadOrCreateInventory()
	}
	if err != nil || len(inv.Containers) == 0 {
		o.log.Warn().Err(err).Msg("using built-in container catalog")
		return model.DefaultInventory()
	}
	return inv
}

// engineFor returns an engine for the named strategy, or the configured
// mode when name is empty.
func (o *RootOptions) engineFor(name string) (*engine.Engine, error) {
	mode := o.config.PlacementMode
	if name != "" {
		m, err := model.ParsePlacementMode(name)
		if err != nil {
			return nil, NewExitError(ExitCommandError, err.Error())
		}
		mode = m
	}
	return engine.NewEngine(engine.New(mode), o.log), nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}
