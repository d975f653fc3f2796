package format

import (
	"fmt"
	"strings"

	"github.com/roach88/datetimeng/internal/chrono"
)

var (
	dayNames   = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	monthNames = [...]string{"", "January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"}
)

// Strftime formats dt with C-style directives:
//
//	%a %A  weekday name, short and full
//	%b %B  month name, short and full
//	%d %m %Y %y  day, month, year, two-digit year
//	%H %I %M %S %p  hour (24h, 12h), minute, second, AM/PM
//	%f %N  microseconds (6 digits), nanoseconds (9 digits)
//	%j %w %u  day of year, weekday (Sunday 0), ISO weekday (Monday 1)
//	%z %Z  UTC offset as +HHMM, zone name; empty for naive values
//	%%     a literal percent sign
func Strftime(dt chrono.DateTime, layout string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(layout); i++ {
		ch := layout[i]
		if ch != '%' {
			b.WriteByte(ch)
			continue
		}
		i++
		if i == len(layout) {
			return "", fmt.Errorf("strftime %q: trailing %%", layout)
		}
		switch layout[i] {
		case 'a':
			b.WriteString(dayNames[dt.Weekday()][:3])
		case 'A':
			b.WriteString(dayNames[dt.Weekday()])
		case 'b':
			b.WriteString(monthNames[dt.Month()][:3])
		case 'B':
			b.WriteString(monthNames[dt.Month()])
		case 'd':
			fmt.Fprintf(&b, "%02d", dt.Day())
		case 'm':
			fmt.Fprintf(&b, "%02d", dt.Month())
		case 'Y':
			fmt.Fprintf(&b, "%04d", dt.Year())
		case 'y':
			fmt.Fprintf(&b, "%02d", dt.Year()%100)
		case 'H':
			fmt.Fprintf(&b, "%02d", dt.Hour())
		case 'I':
			h := dt.Hour() % 12
			if h == 0 {
				h = 12
			}
			fmt.Fprintf(&b, "%02d", h)
		case 'p':
			if dt.Hour() < 12 {
				b.WriteString("AM")
			} else {
				b.WriteString("PM")
			}
		case 'M':
			fmt.Fprintf(&b, "%02d", dt.Minute())
		case 'S':
			fmt.Fprintf(&b, "%02d", dt.Second())
		case 'f':
			fmt.Fprintf(&b, "%06d", dt.Microsecond())
		case 'N':
			fmt.Fprintf(&b, "%09d", dt.Nanosecond())
		case 'j':
			fmt.Fprintf(&b, "%03d", dt.Date().YearDay())
		case 'w':
			fmt.Fprintf(&b, "%d", (dt.Weekday()+1)%7)
		case 'u':
			fmt.Fprintf(&b, "%d", dt.Weekday()+1)
		case 'z':
			off, ok, err := dt.UTCOffset()
			if err != nil {
				return "", err
			}
			if ok {
				b.WriteString(strings.Replace(formatOffset(off), ":", "", 1))
			}
		case 'Z':
			if name, ok := dt.ZoneName(); ok {
				b.WriteString(name)
			}
		case '%':
			b.WriteByte('%')
		default:
			return "", fmt.Errorf("strftime %q: unknown directive %%%c", layout, layout[i])
		}
	}
	return b.String(), nil
}

// Ctime returns the fixed layout "Sun Oct 27 01:00:00 2002". The day of
// the month is space-padded.
func Ctime(dt chrono.DateTime) string {
	return fmt.Sprintf("%s %s %2d %02d:%02d:%02d %04d",
		dayNames[dt.Weekday()][:3], monthNames[dt.Month()][:3], dt.Day(),
		dt.Hour(), dt.Minute(), dt.Second(), dt.Year())
}

// TimeTuple renders a legacy tuple as "(2002, 4, 7, 1, 59, 59, 6, 97, 0)".
func TimeTuple(tt chrono.TimeTuple) string {
	return fmt.Sprintf("(%d, %d, %d, %d, %d, %d, %d, %d, %d)",
		tt.Year, tt.Month, tt.Day, tt.Hour, tt.Minute, tt.Second, tt.Weekday, tt.YearDay, tt.DST)
}
