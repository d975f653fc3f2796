package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/datetimeng/internal/chrono"
	"github.com/roach88/datetimeng/internal/format"
)

// DateInfo is the JSON payload of the info command.
type DateInfo struct {
	Date        string `json:"date"`
	Ordinal     int64  `json:"ordinal"`
	Weekday     string `json:"weekday"`
	ISOCalendar string `json:"iso_calendar"`
	YearDay     int    `json:"year_day"`
	DaysInMonth int    `json:"days_in_month"`
	DaysInYear  int    `json:"days_in_year"`
	Leap        bool   `json:"leap_year"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <date>",
		Short: "Show calendar facts about a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, opts, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func runInfo(cmd *cobra.Command, opts *RootOptions, arg string) error {
	formatter := newFormatter(opts, cmd)

	d, err := format.ParseDate(arg)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid date", err)
	}
	weekday, err := format.Strftime(chrono.Combine(d, chrono.Midnight), "%A")
	if err != nil {
		return engineError("failed to format weekday", err)
	}
	isoYear, week, isoDay := d.ISOCalendar()

	info := DateInfo{
		Date:        format.FormatDate(d),
		Ordinal:     d.Ordinal(),
		Weekday:     weekday,
		ISOCalendar: fmt.Sprintf("%04d-W%02d-%d", isoYear, week, isoDay),
		YearDay:     d.YearDay(),
		DaysInMonth: d.DaysInMonth(),
		DaysInYear:  d.DaysInYear(),
		Leap:        d.IsLeap(),
	}

	var text strings.Builder
	line := func(label string, value any) {
		fmt.Fprintf(&text, "%-14s %v\n", label+":", value)
	}
	line("date", info.Date)
	line("ordinal", info.Ordinal)
	line("weekday", info.Weekday)
	line("iso calendar", info.ISOCalendar)
	line("year day", info.YearDay)
	line("days in month", info.DaysInMonth)
	line("days in year", info.DaysInYear)
	line("leap year", info.Leap)

	return formatter.Emit(info, text.String())
}
