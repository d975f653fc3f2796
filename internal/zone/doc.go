// Package zone provides concrete chrono.Zone implementations.
//
// Providers:
//   - Fixed: a constant offset such as UTC.
//   - Seasonal: a standard offset plus one hour of daylight saving time,
//     switched by a Rules set (US or EU rules).
//   - Location: any *time.Location, including the system local zone and
//     the IANA tz database.
//
// Seasonal and Location are fold-aware: in a repeated hour fold 0 selects
// the daylight (earlier) reading and fold 1 the standard one; in a skipped
// hour fold 0 selects the offset in force before the jump.
//
// A Registry maps names to providers. Extra zones can be declared in YAML or
// CUE files:
//
//	zones:
//	  - name: Eastern
//	    std_offset: "-05:00"
//	    std_name: EST
//	    dst_name: EDT
//	    rules: us
//
// Every provider is immutable and safe for concurrent use.
package zone
