// Package harness replays timestamp scenarios and checks their traces.
//
// A scenario is a YAML list of steps. Each step applies one engine
// operation to a literal or to a value bound by an earlier step, and may
// state the expected rendering or the expected error kind.
//
// # Scenario Format
//
//	name: eastern_fall_back
//	description: "Repeated 1:MM hour in US Eastern"
//	zone_files:
//	  - zones.yaml
//	clock: "2002-10-27T05:30:00Z"
//	steps:
//	  - op: localize
//	    value: "2002-10-27T01:30:00"
//	    zone: Eastern
//	    fold: 1
//	    as: second
//	    expect: "2002-10-27 01:30:00-05:00"
//	  - op: sub
//	    value: $second
//	    other: $first
//	    expect: "1:00:00"
//	assertions:
//	  - type: order
//	    values: [first, second]
//
// # Operations
//
// Value-producing operations (their result may be bound with "as"):
//
//   - localize: attach zone and fold to the fields of value
//   - from_utc: read value as UTC and convert it into zone
//   - convert: re-express an aware value in zone
//   - utc: the naive UTC equivalent of an aware value
//   - add: value plus delta
//   - replace: value with the given fields overridden
//   - now: the scenario clock read in zone
//   - persist: value saved to and reloaded from a fresh store
//
// Rendering operations: sub, compare, offset, dst, tzname, ctime,
// strftime (with layout) and tuple.
//
// # Assertion Types
//
//   - equal: all bound values denote the same instant
//   - not_equal: the two bound values differ
//   - order: bound values are strictly increasing
//   - same_wall: bound values show identical local fields
//
// # Golden Files
//
// RunWithGolden stores the canonical JSON trace under
// testdata/golden/{scenario name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
