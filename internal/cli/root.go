package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/datetimeng/internal/chrono"
	"github.com/roach88/datetimeng/internal/store"
	"github.com/roach88/datetimeng/internal/zone"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Zones   string // zone definitions file or CUE directory
	TZData  bool   // resolve Area/City names from the tz database

	// ids overrides record ids in tests.
	ids store.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the datetimeng CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datetimeng",
		Short: "Calendar dates, clock times and zone-aware timestamps",
		Long: `datetimeng converts, compares and stores timestamps across time zones,
including the repeated and skipped hours around daylight saving changes.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Zones, "zones", "", "zone definitions (.yaml, .cue or a CUE directory)")
	cmd.PersistentFlags().BoolVar(&opts.TZData, "tzdata", true, "resolve Area/City zone names from the tz database")

	cmd.AddCommand(NewPSFCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))
	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewZonesCommand(opts))
	cmd.AddCommand(NewSaveCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	for _, sub := range cmd.Commands() {
		if sub.RunE != nil {
			sub.RunE = withErrorEnvelope(opts, sub.RunE)
		}
	}

	return cmd
}

// registry builds the zone registry: predefined zones plus any definitions
// named by --zones.
func (o *RootOptions) registry() (*zone.Registry, error) {
	r := zone.Default(zone.WithTZDatabase(o.TZData))
	if o.Zones == "" {
		return r, nil
	}
	defs, err := zone.LoadFile(o.Zones)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load zone definitions", err)
	}
	if err := r.Apply(defs); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to register zones", err)
	}
	return r, nil
}

// lookupZone resolves a zone name, turning an unknown name into a command
// error.
func lookupZone(r *zone.Registry, name string) (chrono.Zone, error) {
	z, err := r.Lookup(name)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("unknown zone %q", name), err)
	}
	return z, nil
}

// engineError maps an engine rejection to ExitFailure.
func engineError(message string, err error) error {
	return WrapExitError(ExitFailure, message, err)
}
