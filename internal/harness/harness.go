package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/roach88/datetimeng/internal/chrono"
	"github.com/roach88/datetimeng/internal/codec"
	"github.com/roach88/datetimeng/internal/format"
	"github.com/roach88/datetimeng/internal/store"
	"github.com/roach88/datetimeng/internal/testutil"
	"github.com/roach88/datetimeng/internal/zone"
)

// Harness executes scenario steps against the engine.
type Harness struct {
	zones    *zone.Registry
	clock    *testutil.FakeClock
	bindings map[string]chrono.DateTime
	logger   *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario gets its own zone registry, seeded with the predefined
// zones and any zone files the scenario names. The clock is fixed at the
// scenario's Clock instant.
func Run(scenario *Scenario) (*Result, error) {
	zones := zone.Default()
	for _, path := range scenario.ZoneFiles {
		defs, err := zone.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load zone file: %w", err)
		}
		if err := zones.Apply(defs); err != nil {
			return nil, fmt.Errorf("failed to register zones: %w", err)
		}
	}

	h := &Harness{
		zones:    zones,
		bindings: map[string]chrono.DateTime{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if scenario.Clock != "" {
		clock, err := parseClock(scenario.Clock)
		if err != nil {
			return nil, err
		}
		h.clock = clock
	}

	ctx := context.Background()
	result := NewResult()
	for i, step := range scenario.Steps {
		h.executeStep(ctx, i, step, result)
	}

	for _, msg := range EvaluateAssertions(scenario.Assertions, h.bindings) {
		result.AddError(msg)
	}
	return result, nil
}

func parseClock(s string) (*testutil.FakeClock, error) {
	dt, err := format.ParseDateTime(s)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario clock: %w", err)
	}
	sec, nsec, err := dt.Unix()
	if err != nil {
		return nil, fmt.Errorf("invalid scenario clock: %w", err)
	}
	return testutil.NewFakeClock(time.Unix(sec, nsec).UTC()), nil
}

// executeStep runs one step, records its trace event and checks its
// expectation.
func (h *Harness) executeStep(ctx context.Context, i int, step Step, result *Result) {
	ev := TraceEvent{Step: i, Op: step.Op, As: step.As}

	out, dt, err := h.apply(ctx, step)
	switch {
	case err != nil:
		ev.Error = errorKind(err)
		h.logger.Debug("step failed", "step", i, "op", step.Op, "error", err)
	default:
		ev.Result = out
		if step.As != "" {
			h.bindings[step.As] = dt
		}
	}
	result.Trace = append(result.Trace, ev)

	switch {
	case step.Error != "" && ev.Error != step.Error:
		result.AddError(fmt.Sprintf("step %d (%s): expected %s error, got result %q error %q",
			i, step.Op, step.Error, ev.Result, ev.Error))
	case step.Error == "" && err != nil:
		result.AddError(fmt.Sprintf("step %d (%s): %v", i, step.Op, err))
	case step.Expect != "" && ev.Result != step.Expect:
		result.AddError(fmt.Sprintf("step %d (%s): got %q, want %q", i, step.Op, ev.Result, step.Expect))
	}
}

// apply runs step and renders its result. Value-producing operations also
// return the produced DateTime.
func (h *Harness) apply(ctx context.Context, step Step) (string, chrono.DateTime, error) {
	if step.Op == OpNow {
		var z chrono.Zone
		if step.Zone != "" {
			var err error
			if z, err = h.zones.Lookup(step.Zone); err != nil {
				return "", chrono.DateTime{}, err
			}
		}
		return produced(chrono.Now(h.clock, z))
	}

	v, err := h.resolve(step.Value)
	if err != nil {
		return "", chrono.DateTime{}, err
	}

	switch step.Op {
	case OpLocalize:
		z, err := h.zones.Lookup(step.Zone)
		if err != nil {
			return "", chrono.DateTime{}, err
		}
		return produced(v.Replace(chrono.WithZone(z), chrono.WithFold(step.Fold)))
	case OpFromUTC:
		z, err := h.zones.Lookup(step.Zone)
		if err != nil {
			return "", chrono.DateTime{}, err
		}
		return produced(chrono.FromUTC(v.Naive(), z))
	case OpConvert:
		z, err := h.zones.Lookup(step.Zone)
		if err != nil {
			return "", chrono.DateTime{}, err
		}
		return produced(v.In(z))
	case OpUTC:
		return produced(v.UTCNaive())
	case OpAdd:
		d, err := step.Delta.duration()
		if err != nil {
			return "", chrono.DateTime{}, err
		}
		return produced(v.Add(d))
	case OpReplace:
		opts, err := replaceFields(step.Fields)
		if err != nil {
			return "", chrono.DateTime{}, err
		}
		return produced(v.Replace(opts...))
	case OpPersist:
		return produced(h.persist(ctx, v))
	}

	out, err := h.render(step, v)
	return out, chrono.DateTime{}, err
}

func produced(dt chrono.DateTime, err error) (string, chrono.DateTime, error) {
	if err != nil {
		return "", chrono.DateTime{}, err
	}
	return dt.String(), dt, nil
}

func (h *Harness) render(step Step, v chrono.DateTime) (string, error) {
	switch step.Op {
	case OpSub:
		o, err := h.resolve(step.Other)
		if err != nil {
			return "", err
		}
		d, err := v.Sub(o)
		if err != nil {
			return "", err
		}
		return d.String(), nil
	case OpCompare:
		o, err := h.resolve(step.Other)
		if err != nil {
			return "", err
		}
		c, err := v.Compare(o)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(c), nil
	case OpOffset:
		return optionalDuration(v.UTCOffset())
	case OpDST:
		return optionalDuration(v.DST())
	case OpTZName:
		name, ok := v.ZoneName()
		if !ok {
			return "None", nil
		}
		return name, nil
	case OpCtime:
		return format.Ctime(v), nil
	case OpStrftime:
		return format.Strftime(v, step.Layout)
	case OpTuple:
		tt, err := v.TimeTuple()
		if err != nil {
			return "", err
		}
		return format.TimeTuple(tt), nil
	}
	return "", fmt.Errorf("unknown op %q", step.Op)
}

func optionalDuration(d chrono.Duration, ok bool, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if !ok {
		return "None", nil
	}
	return d.String(), nil
}

// persist saves v to a fresh in-memory store and loads it back.
func (h *Harness) persist(ctx context.Context, v chrono.DateTime) (chrono.DateTime, error) {
	st, err := store.Open(":memory:", codec.New(h.zones),
		store.WithIDGenerator(testutil.NewSequenceIDs()),
		store.WithLogger(h.logger),
	)
	if err != nil {
		return chrono.DateTime{}, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	saved, err := st.SaveDateTime(ctx, "", v)
	if err != nil {
		return chrono.DateTime{}, err
	}
	loaded, err := st.LoadDateTime(ctx, saved.ID)
	if err != nil {
		return chrono.DateTime{}, err
	}
	return loaded.Value, nil
}

// resolve reads a $name reference or parses an ISO literal.
func (h *Harness) resolve(s string) (chrono.DateTime, error) {
	if name, ok := refName(s); ok {
		dt, bound := h.bindings[name]
		if !bound {
			return chrono.DateTime{}, fmt.Errorf("$%s is not bound", name)
		}
		return dt, nil
	}
	return format.ParseDateTime(s)
}

func (d *Delta) duration() (chrono.Duration, error) {
	return chrono.Parts{
		Weeks:        d.Weeks,
		Days:         d.Days,
		Hours:        d.Hours,
		Minutes:      d.Minutes,
		Seconds:      d.Seconds,
		Microseconds: d.Microseconds,
		Nanoseconds:  d.Nanoseconds,
	}.Duration()
}

func replaceFields(fields map[string]int) ([]chrono.Field, error) {
	var opts []chrono.Field
	for name, v := range fields {
		switch name {
		case "year":
			opts = append(opts, chrono.WithYear(v))
		case "month":
			opts = append(opts, chrono.WithMonth(v))
		case "day":
			opts = append(opts, chrono.WithDay(v))
		case "hour":
			opts = append(opts, chrono.WithHour(v))
		case "minute":
			opts = append(opts, chrono.WithMinute(v))
		case "second":
			opts = append(opts, chrono.WithSecond(v))
		case "nanosecond":
			opts = append(opts, chrono.WithNanosecond(v))
		case "fold":
			opts = append(opts, chrono.WithFold(v))
		default:
			return nil, fmt.Errorf("unknown field %q", name)
		}
	}
	return opts, nil
}

// errorKind classifies err for the trace.
func errorKind(err error) string {
	switch {
	case chrono.IsValueError(err):
		return "value"
	case chrono.IsRangeError(err):
		return "range"
	case chrono.IsTypeError(err):
		return "type"
	}
	return "other"
}
