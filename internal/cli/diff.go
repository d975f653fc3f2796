package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/datetimeng/internal/chrono"
)

// DiffResult is the JSON payload of the diff command.
type DiffResult struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Duration     string `json:"duration"`
	Days         int64  `json:"days"`
	Seconds      int    `json:"seconds"`
	Nanoseconds  int    `json:"nanoseconds"`
	TotalSeconds string `json:"total_seconds"`
	ID           string `json:"id,omitempty"`
}

type diffOptions struct {
	in    string
	db    string
	label string
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(opts *RootOptions) *cobra.Command {
	dopts := &diffOptions{}
	cmd := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Print the elapsed time between two timestamps",
		Long: `Print to minus from. Two aware timestamps are compared as instants;
two naive ones by their wall clock fields. Mixing the two is an error.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, opts, dopts, args[0], args[1])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&dopts.in, "in", "", "zone to attach to naive timestamps")
	cmd.Flags().StringVar(&dopts.db, "db", "", "also store the duration in this SQLite database")
	cmd.Flags().StringVar(&dopts.label, "label", "", "label stored with the duration")
	return cmd
}

func runDiff(cmd *cobra.Command, opts *RootOptions, dopts *diffOptions, fromArg, toArg string) error {
	formatter := newFormatter(opts, cmd)

	reg, err := opts.registry()
	if err != nil {
		return err
	}
	var attach chrono.Zone
	if dopts.in != "" {
		if attach, err = lookupZone(reg, dopts.in); err != nil {
			return err
		}
	}
	var ends [2]chrono.DateTime
	for i, arg := range []string{fromArg, toArg} {
		dt, err := parseTimestamp(reg, arg, "", 0)
		if err != nil {
			return err
		}
		if attach != nil && !dt.IsAware() {
			dt = dt.WithZone(attach)
		}
		ends[i] = dt
	}

	d, err := ends[1].Sub(ends[0])
	if err != nil {
		return engineError("cannot subtract timestamps", err)
	}

	from, err := describe(ends[0])
	if err != nil {
		return engineError("failed to describe timestamp", err)
	}
	to, err := describe(ends[1])
	if err != nil {
		return engineError("failed to describe timestamp", err)
	}

	result := DiffResult{
		From:         from.Value,
		To:           to.Value,
		Duration:     d.String(),
		Days:         d.Days(),
		Seconds:      d.Seconds(),
		Nanoseconds:  d.Nanoseconds(),
		TotalSeconds: d.TotalSeconds().String(),
	}

	if dopts.db != "" {
		st, err := opts.openStore(dopts.db, reg)
		if err != nil {
			return err
		}
		defer st.Close()
		saved, err := st.SaveDuration(context.Background(), dopts.label, d)
		if err != nil {
			return engineError("failed to save duration", err)
		}
		result.ID = saved.ID
	}

	var text strings.Builder
	fmt.Fprintf(&text, "%-9s %s\n", "from:", result.From)
	fmt.Fprintf(&text, "%-9s %s\n", "to:", result.To)
	fmt.Fprintf(&text, "%-9s %s\n", "duration:", result.Duration)
	fmt.Fprintf(&text, "%-9s %s\n", "seconds:", result.TotalSeconds)
	if result.ID != "" {
		fmt.Fprintf(&text, "%-9s %s\n", "saved:", result.ID)
	}

	return formatter.Emit(result, text.String())
}
