package chrono

// Field overrides one component in a Replace call.
type Field func(*fields)

type fieldMask uint16

const (
	setYear fieldMask = 1 << iota
	setMonth
	setDay
	setHour
	setMinute
	setSecond
	setNanosecond
	setFold
	setZone

	dateMask = setYear | setMonth | setDay
)

type fields struct {
	set fieldMask

	year, month, day             int
	hour, minute, second, nanos int
	fold                         int
	zone                         Zone
}

func (f *fields) apply(opts []Field) {
	for _, opt := range opts {
		opt(f)
	}
}

// WithYear replaces the year.
func WithYear(v int) Field {
	return func(f *fields) { f.year = v; f.set |= setYear }
}

// WithMonth replaces the month.
func WithMonth(v int) Field {
	return func(f *fields) { f.month = v; f.set |= setMonth }
}

// WithDay replaces the day of the month.
func WithDay(v int) Field {
	return func(f *fields) { f.day = v; f.set |= setDay }
}

// WithHour replaces the hour.
func WithHour(v int) Field {
	return func(f *fields) { f.hour = v; f.set |= setHour }
}

// WithMinute replaces the minute.
func WithMinute(v int) Field {
	return func(f *fields) { f.minute = v; f.set |= setMinute }
}

// WithSecond replaces the second.
func WithSecond(v int) Field {
	return func(f *fields) { f.second = v; f.set |= setSecond }
}

// WithNanosecond replaces the nanosecond.
func WithNanosecond(v int) Field {
	return func(f *fields) { f.nanos = v; f.set |= setNanosecond }
}

// WithMicrosecond replaces the sub-second part with a microsecond value.
func WithMicrosecond(v int) Field {
	return func(f *fields) { f.nanos = v * nanosPerMicro; f.set |= setNanosecond }
}

// WithFold replaces the fold bit.
func WithFold(v int) Field {
	return func(f *fields) { f.fold = v; f.set |= setFold }
}

// WithZone attaches z without converting; nil makes the value naive.
func WithZone(z Zone) Field {
	return func(f *fields) { f.zone = z; f.set |= setZone }
}
