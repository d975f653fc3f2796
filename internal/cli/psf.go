package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/datetimeng/internal/chrono"
	"github.com/roach88/datetimeng/internal/format"
	"github.com/roach88/datetimeng/internal/zone"
)

const (
	psfLongLayout  = "%a %b-%d %H:%M %Z%z"
	psfShortLayout = "%H:%M %Z%z"
)

// PSFResult is the JSON payload of the psf command.
type PSFResult struct {
	Year     int          `json:"year"`
	Meetings []PSFMeeting `json:"meetings"`
}

// PSFMeeting is one meeting, in Eastern time and in each requested zone.
type PSFMeeting struct {
	Eastern string            `json:"eastern"`
	Local   map[string]string `json:"local,omitempty"`
}

// NewPSFCommand creates the psf command.
func NewPSFCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "psf <year> [zone...]",
		Short: "Print a year of board meeting times in several zones",
		Long: `Print the monthly board meetings for a year. Meetings fall on the second
Monday of each month at 13:00 US Eastern time, moving to 12:00 from April 2008.
Each extra zone adds a column; the full date is shown when the local day differs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPSF(cmd, opts, args[0], args[1:])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func runPSF(cmd *cobra.Command, opts *RootOptions, yearArg string, zoneArgs []string) error {
	formatter := newFormatter(opts, cmd)

	year, err := strconv.Atoi(yearArg)
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid year %q", yearArg))
	}

	reg, err := opts.registry()
	if err != nil {
		return err
	}
	zones := make([]chrono.Zone, 0, len(zoneArgs))
	names := make([]string, 0, len(zoneArgs))
	for _, name := range zoneArgs {
		z, err := lookupZone(reg, name)
		if err != nil {
			return err
		}
		if z == chrono.Zone(zone.Eastern) {
			continue
		}
		zones = append(zones, z)
		names = append(names, name)
	}

	meetings, err := boardMeetings(year)
	if err != nil {
		return engineError("failed to compute meetings", err)
	}
	formatter.VerboseLog("computed %d meetings for %d", len(meetings), year)

	result := PSFResult{Year: year, Meetings: make([]PSFMeeting, 0, len(meetings))}
	var text strings.Builder
	fmt.Fprintf(&text, "PSF Board meeting times for %d\n\n", year)

	for _, m := range meetings {
		eastern, err := format.Strftime(m, psfLongLayout)
		if err != nil {
			return engineError("failed to format meeting", err)
		}
		cols := []string{eastern}
		pm := PSFMeeting{Eastern: eastern}

		for i, z := range zones {
			local, err := m.In(z)
			if err != nil {
				return engineError(fmt.Sprintf("failed to convert to %s", names[i]), err)
			}
			layout := psfShortLayout
			if local.Date() != m.Date() {
				layout = psfLongLayout
			}
			col, err := format.Strftime(local, layout)
			if err != nil {
				return engineError("failed to format meeting", err)
			}
			cols = append(cols, col)
			if pm.Local == nil {
				pm.Local = map[string]string{}
			}
			pm.Local[names[i]] = col
		}

		result.Meetings = append(result.Meetings, pm)
		text.WriteString(strings.Join(cols, "  "))
		text.WriteByte('\n')
	}

	return formatter.Emit(result, text.String())
}

// boardMeetings returns the meetings of a year in US Eastern time.
func boardMeetings(year int) ([]chrono.DateTime, error) {
	out := make([]chrono.DateTime, 0, 12)
	for month := chrono.January; month <= chrono.December; month++ {
		first, err := chrono.NewDate(year, month, 1)
		if err != nil {
			return nil, err
		}
		day, err := first.WeekdayOfMonth(chrono.Monday, 1)
		if err != nil {
			return nil, err
		}
		hour := 13
		if year > 2008 || (year == 2008 && month >= chrono.April) {
			hour = 12
		}
		m, err := chrono.NewDateTime(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, zone.Eastern)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
