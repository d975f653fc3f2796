package zone

import (
	"fmt"

	"github.com/roach88/datetimeng/internal/chrono"
)

// maxOffsetMinutes bounds a provider offset to less than one day.
const maxOffsetMinutes = 24*60 - 1

// Fixed is a zone with a constant offset and no DST.
type Fixed struct {
	offset chrono.Offset
	name   string
}

// NewFixed returns a fixed-offset zone. name is what ZoneName reports.
func NewFixed(offset chrono.Offset, name string) (*Fixed, error) {
	if offset < -maxOffsetMinutes || offset > maxOffsetMinutes {
		return nil, fmt.Errorf("fixed zone %q: offset %s out of range", name, offset)
	}
	return &Fixed{offset: offset, name: name}, nil
}

// MustFixed is NewFixed that panics on error.
func MustFixed(offset chrono.Offset, name string) *Fixed {
	z, err := NewFixed(offset, name)
	if err != nil {
		panic(err)
	}
	return z
}

// UTC is the zero-offset zone.
var UTC = MustFixed(0, "UTC")

func (z *Fixed) UTCOffset(*chrono.DateTime) (chrono.Offset, bool) { return z.offset, true }
func (z *Fixed) DST(*chrono.DateTime) (chrono.Offset, bool)       { return 0, true }
func (z *Fixed) Name(*chrono.DateTime) (string, bool)             { return z.name, true }

// Offset returns the constant offset.
func (z *Fixed) Offset() chrono.Offset { return z.offset }

func (z *Fixed) String() string { return z.name }

// ParseOffset parses "+HH:MM", "-HH:MM", "+HHMM" or "Z".
func ParseOffset(s string) (chrono.Offset, error) {
	if s == "Z" || s == "z" {
		return 0, nil
	}
	var body string
	switch {
	case len(s) == 6 && s[3] == ':':
		body = s[1:3] + s[4:]
	case len(s) == 5:
		body = s[1:]
	default:
		return 0, fmt.Errorf("offset %q: want +HH:MM", s)
	}
	if s[0] != '+' && s[0] != '-' {
		return 0, fmt.Errorf("offset %q: want +HH:MM", s)
	}
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return 0, fmt.Errorf("offset %q: want +HH:MM", s)
		}
	}
	h := int(body[0]-'0')*10 + int(body[1]-'0')
	m := int(body[2]-'0')*10 + int(body[3]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("offset %q: out of range", s)
	}
	off := chrono.Offset(h*60 + m)
	if s[0] == '-' {
		off = -off
	}
	return off, nil
}
