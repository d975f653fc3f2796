package format

import (
	"fmt"
	"strings"

	"github.com/roach88/datetimeng/internal/chrono"
	"github.com/roach88/datetimeng/internal/zone"
)

// ISOOption adjusts ISO output.
type ISOOption func(*isoConfig)

type isoConfig struct {
	sep    byte
	digits int // -1: shortest of 0, 6 or 9
}

// WithSeparator sets the byte between date and time. Default 'T'.
func WithSeparator(sep byte) ISOOption {
	return func(c *isoConfig) { c.sep = sep }
}

// WithDigits fixes the number of fraction digits (0-9). By default the
// fraction is omitted when zero, six digits for whole microseconds and nine
// otherwise.
func WithDigits(n int) ISOOption {
	return func(c *isoConfig) {
		if n >= 0 && n <= 9 {
			c.digits = n
		}
	}
}

func newISOConfig(opts []ISOOption) isoConfig {
	c := isoConfig{sep: 'T', digits: -1}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c isoConfig) fraction(nanos int) string {
	switch {
	case c.digits == 0:
		return ""
	case c.digits > 0:
		return "." + fmt.Sprintf("%09d", nanos)[:c.digits]
	case nanos == 0:
		return ""
	case nanos%1000 == 0:
		return fmt.Sprintf(".%06d", nanos/1000)
	default:
		return fmt.Sprintf(".%09d", nanos)
	}
}

// FormatDate returns YYYY-MM-DD.
func FormatDate(d chrono.Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), d.Month(), d.Day())
}

func formatOffset(d chrono.Duration) string {
	sign := '+'
	secs := d.Days()*86400 + int64(d.Seconds())
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return fmt.Sprintf("%c%02d:%02d", sign, secs/3600, secs/60%60)
}

func clock(h, m, s, nanos int, c isoConfig) string {
	return fmt.Sprintf("%02d:%02d:%02d%s", h, m, s, c.fraction(nanos))
}

// FormatTime returns HH:MM:SS[.fraction][±HH:MM].
func FormatTime(t chrono.Time, opts ...ISOOption) (string, error) {
	c := newISOConfig(opts)
	s := clock(t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), c)
	off, ok, err := t.UTCOffset()
	if err != nil {
		return "", err
	}
	if ok {
		s += formatOffset(off)
	}
	return s, nil
}

// FormatDateTime returns the ISO-8601 form of dt. An aware value whose zone
// has no offset is written without one.
func FormatDateTime(dt chrono.DateTime, opts ...ISOOption) (string, error) {
	c := newISOConfig(opts)
	var b strings.Builder
	b.WriteString(FormatDate(dt.Date()))
	b.WriteByte(c.sep)
	b.WriteString(clock(dt.Hour(), dt.Minute(), dt.Second(), dt.Nanosecond(), c))
	off, ok, err := dt.UTCOffset()
	if err != nil {
		return "", err
	}
	if ok {
		b.WriteString(formatOffset(off))
	}
	return b.String(), nil
}

// scanner walks an input string for the parsers.
type scanner struct {
	layout string
	in     string
	pos    int
}

func (s *scanner) fail(msg string, args ...any) *ParseError {
	return &ParseError{Layout: s.layout, Input: s.in, Offset: s.pos, Message: fmt.Sprintf(msg, args...)}
}

func (s *scanner) done() bool { return s.pos >= len(s.in) }

func (s *scanner) peek() byte {
	if s.done() {
		return 0
	}
	return s.in[s.pos]
}

// digits reads exactly n decimal digits.
func (s *scanner) digits(n int, what string) (int, error) {
	if s.pos+n > len(s.in) {
		return 0, s.fail("expected %d-digit %s", n, what)
	}
	v := 0
	for i := 0; i < n; i++ {
		ch := s.in[s.pos+i]
		if ch < '0' || ch > '9' {
			s.pos += i
			return 0, s.fail("expected digit in %s, got %q", what, ch)
		}
		v = v*10 + int(ch-'0')
	}
	s.pos += n
	return v, nil
}

func (s *scanner) expect(ch byte) error {
	if s.peek() != ch {
		if s.done() {
			return s.fail("expected %q, got end of input", ch)
		}
		return s.fail("expected %q, got %q", ch, s.peek())
	}
	s.pos++
	return nil
}

func (s *scanner) date() (chrono.Date, error) {
	start := s.pos
	y, err := s.digits(4, "year")
	if err != nil {
		return chrono.Date{}, err
	}
	if err := s.expect('-'); err != nil {
		return chrono.Date{}, err
	}
	m, err := s.digits(2, "month")
	if err != nil {
		return chrono.Date{}, err
	}
	if err := s.expect('-'); err != nil {
		return chrono.Date{}, err
	}
	d, err := s.digits(2, "day")
	if err != nil {
		return chrono.Date{}, err
	}
	date, err := chrono.NewDate(y, m, d)
	if err != nil {
		s.pos = start
		pe := s.fail("invalid date")
		pe.Err = err
		return chrono.Date{}, pe
	}
	return date, nil
}

type clockFields struct {
	hour, minute, second, nanos int
}

func (s *scanner) clock() (clockFields, error) {
	var f clockFields
	var err error
	if f.hour, err = s.digits(2, "hour"); err != nil {
		return f, err
	}
	if err = s.expect(':'); err != nil {
		return f, err
	}
	if f.minute, err = s.digits(2, "minute"); err != nil {
		return f, err
	}
	if s.peek() != ':' {
		return f, nil
	}
	s.pos++
	if f.second, err = s.digits(2, "second"); err != nil {
		return f, err
	}
	if s.peek() != '.' && s.peek() != ',' {
		return f, nil
	}
	s.pos++
	n := 0
	for !s.done() && s.peek() >= '0' && s.peek() <= '9' {
		if n == 9 {
			return f, s.fail("fraction longer than nine digits")
		}
		f.nanos = f.nanos*10 + int(s.peek()-'0')
		s.pos++
		n++
	}
	if n == 0 {
		return f, s.fail("expected fraction digits")
	}
	for ; n < 9; n++ {
		f.nanos *= 10
	}
	return f, nil
}

// offset reads Z, ±HH:MM or ±HHMM, if present.
func (s *scanner) offset() (chrono.Zone, error) {
	switch s.peek() {
	case 'Z', 'z':
		s.pos++
		return zone.UTC, nil
	case '+', '-':
	default:
		return nil, nil
	}
	start := s.pos
	end := start + 6
	if end > len(s.in) || s.in[start+3] != ':' {
		end = start + 5
	}
	if end > len(s.in) {
		return nil, s.fail("truncated UTC offset")
	}
	off, err := zone.ParseOffset(s.in[start:end])
	if err != nil {
		pe := s.fail("invalid UTC offset")
		pe.Err = err
		return nil, pe
	}
	s.pos = end
	if off == 0 {
		return zone.UTC, nil
	}
	fixed, err := zone.NewFixed(off, off.String())
	if err != nil {
		return nil, s.fail("%v", err)
	}
	return fixed, nil
}

func (s *scanner) end() error {
	if !s.done() {
		return s.fail("unexpected trailing text %q", s.in[s.pos:])
	}
	return nil
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(in string) (chrono.Date, error) {
	s := &scanner{layout: "date", in: in}
	d, err := s.date()
	if err != nil {
		return chrono.Date{}, err
	}
	if err := s.end(); err != nil {
		return chrono.Date{}, err
	}
	return d, nil
}

// ParseTime parses HH:MM[:SS[.fraction]][offset].
func ParseTime(in string) (chrono.Time, error) {
	s := &scanner{layout: "time", in: in}
	f, err := s.clock()
	if err != nil {
		return chrono.Time{}, err
	}
	z, err := s.offset()
	if err != nil {
		return chrono.Time{}, err
	}
	if err := s.end(); err != nil {
		return chrono.Time{}, err
	}
	t, err := chrono.NewTimeIn(f.hour, f.minute, f.second, f.nanos, z)
	if err != nil {
		return chrono.Time{}, &ParseError{Layout: "time", Input: in, Message: "invalid time", Err: err}
	}
	return t, nil
}

// ParseDateTime parses YYYY-MM-DD[(T| )HH:MM[:SS[.fraction]][offset]].
// An offset yields an aware value attached to a fixed zone; Z and +00:00
// yield zone.UTC.
func ParseDateTime(in string) (chrono.DateTime, error) {
	s := &scanner{layout: "datetime", in: in}
	d, err := s.date()
	if err != nil {
		return chrono.DateTime{}, err
	}
	if s.done() {
		return chrono.Combine(d, chrono.Midnight), nil
	}
	if ch := s.peek(); ch != 'T' && ch != 't' && ch != ' ' {
		return chrono.DateTime{}, s.fail("expected 'T' or ' ' between date and time, got %q", ch)
	}
	s.pos++
	f, err := s.clock()
	if err != nil {
		return chrono.DateTime{}, err
	}
	z, err := s.offset()
	if err != nil {
		return chrono.DateTime{}, err
	}
	if err := s.end(); err != nil {
		return chrono.DateTime{}, err
	}
	dt, err := chrono.NewDateTime(d.Year(), d.Month(), d.Day(), f.hour, f.minute, f.second, f.nanos, z)
	if err != nil {
		return chrono.DateTime{}, &ParseError{Layout: "datetime", Input: in, Message: "invalid time", Err: err}
	}
	return dt, nil
}
