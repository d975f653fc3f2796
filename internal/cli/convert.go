package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/datetimeng/internal/chrono"
	"github.com/roach88/datetimeng/internal/format"
	"github.com/roach88/datetimeng/internal/zone"
)

// TimestampInfo describes one timestamp in command output.
type TimestampInfo struct {
	Value    string `json:"value"`
	ZoneName string `json:"zone_name,omitempty"`
	Fold     int    `json:"fold"`
}

type convertOptions struct {
	in   string
	fold int
	to   string
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(opts *RootOptions) *cobra.Command {
	copts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert <timestamp>",
		Short: "Attach a zone to a timestamp or move it to another zone",
		Long: `Parse an ISO 8601 timestamp and convert it.

A timestamp without an offset is naive; --in attaches a zone to it, and
--fold picks the earlier (0) or later (1) reading of a repeated local time.
--to converts the resulting instant to another zone.`,
		Example: `  datetimeng convert 2002-10-27T01:30:00 --in Eastern --fold 1
  datetimeng convert 2002-10-27T06:30:00Z --to Amsterdam`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, copts, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&copts.in, "in", "", "zone to attach to a naive timestamp")
	cmd.Flags().IntVar(&copts.fold, "fold", 0, "0 for the earlier, 1 for the later repeated time")
	cmd.Flags().StringVar(&copts.to, "to", "", "zone to convert to")
	return cmd
}

func runConvert(cmd *cobra.Command, opts *RootOptions, copts *convertOptions, arg string) error {
	formatter := newFormatter(opts, cmd)

	reg, err := opts.registry()
	if err != nil {
		return err
	}
	dt, err := parseTimestamp(reg, arg, copts.in, copts.fold)
	if err != nil {
		return err
	}
	if copts.to != "" {
		z, err := lookupZone(reg, copts.to)
		if err != nil {
			return err
		}
		if dt, err = dt.In(z); err != nil {
			return engineError("conversion failed", err)
		}
		formatter.VerboseLog("converted to %s", copts.to)
	}

	info, err := describe(dt)
	if err != nil {
		return engineError("failed to describe result", err)
	}
	text := info.Value
	if info.ZoneName != "" {
		text += " " + info.ZoneName
	}
	return formatter.Emit(info, text+"\n")
}

// parseTimestamp parses an ISO timestamp and, when in names a zone,
// attaches it with the given fold. A zone cannot be attached to input that
// already carries an offset.
func parseTimestamp(reg *zone.Registry, arg, in string, fold int) (chrono.DateTime, error) {
	dt, err := format.ParseDateTime(arg)
	if err != nil {
		return chrono.DateTime{}, WrapExitError(ExitCommandError, "invalid timestamp", err)
	}
	if in == "" {
		if fold != 0 {
			return chrono.DateTime{}, NewExitError(ExitCommandError, "--fold requires --in")
		}
		return dt, nil
	}
	if dt.IsAware() {
		return chrono.DateTime{}, NewExitError(ExitCommandError,
			fmt.Sprintf("timestamp %q already has an offset", arg))
	}
	z, err := lookupZone(reg, in)
	if err != nil {
		return chrono.DateTime{}, err
	}
	dt, err = dt.Replace(chrono.WithZone(z), chrono.WithFold(fold))
	if err != nil {
		return chrono.DateTime{}, WrapExitError(ExitCommandError, "invalid fold", err)
	}
	return dt, nil
}

func describe(dt chrono.DateTime) (TimestampInfo, error) {
	value, err := format.FormatDateTime(dt, format.WithSeparator(' '))
	if err != nil {
		return TimestampInfo{}, err
	}
	info := TimestampInfo{Value: value, Fold: dt.Fold()}
	if name, ok := dt.ZoneName(); ok {
		info.ZoneName = name
	}
	return info, nil
}
