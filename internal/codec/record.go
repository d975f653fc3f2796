package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/datetimeng/internal/chrono"
	"github.com/roach88/datetimeng/internal/zone"
)

// Record kinds.
const (
	KindDate     = "date"
	KindTime     = "time"
	KindDateTime = "datetime"
	KindDuration = "duration"
)

// ErrUnnamedZone is returned when a value's zone has no name the registry
// can resolve again.
var ErrUnnamedZone = errors.New("zone has no registered name")

// Codec encodes and decodes records, naming zones through a registry.
type Codec struct {
	zones *zone.Registry
}

// New returns a Codec resolving zones through zones.
func New(zones *zone.Registry) *Codec {
	return &Codec{zones: zones}
}

// wire is the decoded shape of every record kind.
type wire struct {
	Kind        string  `json:"kind"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Day         int     `json:"day"`
	Hour        int     `json:"hour"`
	Minute      int     `json:"minute"`
	Second      int     `json:"second"`
	Nanosecond  int     `json:"nanosecond"`
	Fold        int     `json:"fold"`
	Zone        *string `json:"zone"`
	Days        int64   `json:"days"`
	Seconds     int64   `json:"seconds"`
	Nanoseconds int64   `json:"nanoseconds"`
}

// zoneName finds a name for z that Lookup will map back to z or to an
// equivalent fixed offset.
func (c *Codec) zoneName(z chrono.Zone) (string, error) {
	if name, ok := c.zones.NameOf(z); ok {
		return name, nil
	}
	switch p := z.(type) {
	case *zone.Fixed:
		return p.Offset().String(), nil
	case *zone.Location:
		return p.String(), nil
	}
	return "", fmt.Errorf("%w: %T", ErrUnnamedZone, z)
}

func (c *Codec) putZone(obj Object, z chrono.Zone) error {
	if z == nil {
		return nil
	}
	name, err := c.zoneName(z)
	if err != nil {
		return err
	}
	obj["zone"] = name
	return nil
}

func (c *Codec) lookupZone(w wire) (chrono.Zone, error) {
	if w.Zone == nil {
		return nil, nil
	}
	return c.zones.Lookup(*w.Zone)
}

// EncodeDate encodes d as a date record.
func (c *Codec) EncodeDate(d chrono.Date) ([]byte, error) {
	return Marshal(Object{
		"kind":  KindDate,
		"year":  d.Year(),
		"month": d.Month(),
		"day":   d.Day(),
	})
}

// EncodeTime encodes t, including fold and zone name.
func (c *Codec) EncodeTime(t chrono.Time) ([]byte, error) {
	obj := Object{
		"kind":       KindTime,
		"hour":       t.Hour(),
		"minute":     t.Minute(),
		"second":     t.Second(),
		"nanosecond": t.Nanosecond(),
		"fold":       t.Fold(),
	}
	if err := c.putZone(obj, t.Zone()); err != nil {
		return nil, fmt.Errorf("encode time: %w", err)
	}
	return Marshal(obj)
}

// EncodeDateTime encodes dt, including fold and zone name.
func (c *Codec) EncodeDateTime(dt chrono.DateTime) ([]byte, error) {
	obj := Object{
		"kind":       KindDateTime,
		"year":       dt.Year(),
		"month":      dt.Month(),
		"day":        dt.Day(),
		"hour":       dt.Hour(),
		"minute":     dt.Minute(),
		"second":     dt.Second(),
		"nanosecond": dt.Nanosecond(),
		"fold":       dt.Fold(),
	}
	if err := c.putZone(obj, dt.Zone()); err != nil {
		return nil, fmt.Errorf("encode datetime: %w", err)
	}
	return Marshal(obj)
}

// EncodeDuration encodes the canonical (days, seconds, nanoseconds) triple.
func (c *Codec) EncodeDuration(d chrono.Duration) ([]byte, error) {
	return Marshal(Object{
		"kind":        KindDuration,
		"days":        d.Days(),
		"seconds":     d.Seconds(),
		"nanoseconds": d.Nanoseconds(),
	})
}

func decode(data []byte, kind string) (wire, error) {
	var w wire
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return w, fmt.Errorf("decode %s: failed to parse JSON: %w", kind, err)
	}
	if w.Kind != kind {
		return w, fmt.Errorf("decode %s: record kind is %q", kind, w.Kind)
	}
	return w, nil
}

// DecodeDate decodes a date record.
func (c *Codec) DecodeDate(data []byte) (chrono.Date, error) {
	w, err := decode(data, KindDate)
	if err != nil {
		return chrono.Date{}, err
	}
	return chrono.NewDate(w.Year, w.Month, w.Day)
}

// DecodeTime decodes a time record.
func (c *Codec) DecodeTime(data []byte) (chrono.Time, error) {
	w, err := decode(data, KindTime)
	if err != nil {
		return chrono.Time{}, err
	}
	z, err := c.lookupZone(w)
	if err != nil {
		return chrono.Time{}, fmt.Errorf("decode time: %w", err)
	}
	t, err := chrono.NewTimeIn(w.Hour, w.Minute, w.Second, w.Nanosecond, z)
	if err != nil {
		return chrono.Time{}, err
	}
	return t.Replace(chrono.WithFold(w.Fold))
}

// DecodeDateTime decodes a datetime record.
func (c *Codec) DecodeDateTime(data []byte) (chrono.DateTime, error) {
	w, err := decode(data, KindDateTime)
	if err != nil {
		return chrono.DateTime{}, err
	}
	z, err := c.lookupZone(w)
	if err != nil {
		return chrono.DateTime{}, fmt.Errorf("decode datetime: %w", err)
	}
	dt, err := chrono.NewDateTime(w.Year, w.Month, w.Day, w.Hour, w.Minute, w.Second, w.Nanosecond, z)
	if err != nil {
		return chrono.DateTime{}, err
	}
	return dt.Replace(chrono.WithFold(w.Fold))
}

// DecodeDuration decodes a duration record. Non-canonical triples are
// normalized.
func (c *Codec) DecodeDuration(data []byte) (chrono.Duration, error) {
	w, err := decode(data, KindDuration)
	if err != nil {
		return chrono.Duration{}, err
	}
	return chrono.NewDuration(w.Days, w.Seconds, w.Nanoseconds)
}
