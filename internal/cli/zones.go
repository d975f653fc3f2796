package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewZonesCommand creates the zones command.
func NewZonesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List registered zone names",
		Long: `List the predefined zones and any loaded with --zones. Area/City names
from the tz database and offset literals such as +05:30 are also accepted
wherever a zone is expected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.registry()
			if err != nil {
				return err
			}
			names := reg.Names()
			text := strings.Join(names, "\n") + "\n"
			return newFormatter(opts, cmd).Emit(map[string]any{"zones": names}, text)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}
