package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/datetimeng/internal/codec"
	"github.com/roach88/datetimeng/internal/store"
	"github.com/roach88/datetimeng/internal/zone"
)

// StampInfo is one stored timestamp in command output.
type StampInfo struct {
	ID          string `json:"id"`
	Label       string `json:"label,omitempty"`
	Fingerprint string `json:"fingerprint"`
	TimestampInfo
}

func (o *RootOptions) openStore(path string, reg *zone.Registry) (*store.Store, error) {
	storeOpts := []store.Option{store.WithLogger(slog.Default())}
	if o.ids != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(o.ids))
	}
	st, err := store.Open(path, codec.New(reg), storeOpts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func stampInfo(s store.Stamp) (StampInfo, error) {
	info, err := describe(s.Value)
	if err != nil {
		return StampInfo{}, err
	}
	return StampInfo{ID: s.ID, Label: s.Label, Fingerprint: s.Fingerprint, TimestampInfo: info}, nil
}

type saveOptions struct {
	db    string
	label string
	in    string
	fold  int
}

// NewSaveCommand creates the save command.
func NewSaveCommand(opts *RootOptions) *cobra.Command {
	sopts := &saveOptions{}
	cmd := &cobra.Command{
		Use:   "save <timestamp>",
		Short: "Store a timestamp in a SQLite database",
		Long: `Store a timestamp, keeping its fold and zone name, and print its id.
The zone must be registered under a name (or be a fixed offset) so it can be
found again when the record is loaded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, opts, sopts, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&sopts.db, "db", "datetimeng.db", "path to SQLite database")
	cmd.Flags().StringVar(&sopts.label, "label", "", "label stored with the timestamp")
	cmd.Flags().StringVar(&sopts.in, "in", "", "zone to attach to a naive timestamp")
	cmd.Flags().IntVar(&sopts.fold, "fold", 0, "0 for the earlier, 1 for the later repeated time")
	return cmd
}

func runSave(cmd *cobra.Command, opts *RootOptions, sopts *saveOptions, arg string) error {
	formatter := newFormatter(opts, cmd)

	reg, err := opts.registry()
	if err != nil {
		return err
	}
	dt, err := parseTimestamp(reg, arg, sopts.in, sopts.fold)
	if err != nil {
		return err
	}

	st, err := opts.openStore(sopts.db, reg)
	if err != nil {
		return err
	}
	defer st.Close()

	stamp, err := st.SaveDateTime(context.Background(), sopts.label, dt)
	if err != nil {
		return engineError("failed to save timestamp", err)
	}
	info, err := stampInfo(stamp)
	if err != nil {
		return engineError("failed to describe timestamp", err)
	}
	formatter.VerboseLog("fingerprint %s", stamp.Fingerprint)
	return formatter.Emit(info, stamp.ID+"\n")
}

type listOptions struct {
	db string
}

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	lopts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored timestamps in instant order",
		Long: `List stored timestamps. Aware values come first, ordered by UTC instant;
naive values follow, ordered by their fields.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, lopts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&lopts.db, "db", "datetimeng.db", "path to SQLite database")
	return cmd
}

func runList(cmd *cobra.Command, opts *RootOptions, lopts *listOptions) error {
	formatter := newFormatter(opts, cmd)

	reg, err := opts.registry()
	if err != nil {
		return err
	}
	st, err := opts.openStore(lopts.db, reg)
	if err != nil {
		return err
	}
	defer st.Close()

	stamps, err := st.ListDateTimes(context.Background())
	if err != nil {
		return engineError("failed to list timestamps", err)
	}

	infos := make([]StampInfo, 0, len(stamps))
	var text strings.Builder
	for _, s := range stamps {
		info, err := stampInfo(s)
		if err != nil {
			return engineError("failed to describe timestamp", err)
		}
		infos = append(infos, info)

		row := []string{info.ID, info.Value}
		if info.ZoneName != "" {
			row = append(row, info.ZoneName)
		}
		if info.Label != "" {
			row = append(row, fmt.Sprintf("%q", info.Label))
		}
		text.WriteString(strings.Join(row, "  "))
		text.WriteByte('\n')
	}

	return formatter.Emit(map[string]any{"stamps": infos}, text.String())
}
