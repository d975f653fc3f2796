package zone

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/datetimeng/internal/chrono"
)

// ErrUnknownZone is returned by Lookup for names that resolve to nothing.
var ErrUnknownZone = errors.New("unknown zone")

// Registry maps zone names to providers.
//
// Names are NFC-normalized and trimmed, so visually identical names written
// with different Unicode compositions find the same zone. A provider may be
// registered under several names; NameOf reports the first.
//
// Lookup also accepts fixed offsets ("+05:30", "Z") and, when tz database
// lookups are enabled, IANA names such as "Europe/Paris".
//
// Thread-safety: Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	zones map[string]chrono.Zone
	names map[chrono.Zone]string
	tzdb  bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithTZDatabase enables or disables IANA lookups through time.LoadLocation.
func WithTZDatabase(enabled bool) RegistryOption {
	return func(r *Registry) {
		r.tzdb = enabled
	}
}

// NewRegistry returns an empty registry with tz database lookups enabled.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		zones: make(map[string]chrono.Zone),
		names: make(map[chrono.Zone]string),
		tzdb:  true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// builtins lists the predefined zones in registration order. Aliases follow
// the zone they share a provider with.
var builtins = []struct {
	name string
	zone chrono.Zone
}{
	{"UTC", UTC},
	{"Eastern", Eastern},
	{"Central", Central},
	{"Mountain", Mountain},
	{"Pacific", Pacific},
	{"WesternEU", WesternEU},
	{"London", London},
	{"CentralEU", CentralEU},
	{"Amsterdam", Amsterdam},
	{"Berlin", Berlin},
	{"EasternEU", EasternEU},
	{"Local", Local},
}

// Default returns a registry holding the predefined zones.
func Default(opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	for _, b := range builtins {
		if err := r.Register(b.name, b.zone); err != nil {
			panic(err)
		}
	}
	return r
}

func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Register adds z under name. Names must be unique. z must be comparable
// (in practice, a pointer) so that NameOf can find it again.
func (r *Registry) Register(name string, z chrono.Zone) error {
	key := normalizeName(name)
	if key == "" {
		return errors.New("register zone: empty name")
	}
	if z == nil {
		return fmt.Errorf("register zone %q: nil provider", key)
	}
	if !reflect.TypeOf(z).Comparable() {
		return fmt.Errorf("register zone %q: provider type %T is not comparable", key, z)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.zones[key]; exists {
		return fmt.Errorf("register zone %q: already registered", key)
	}
	r.zones[key] = z
	if _, named := r.names[z]; !named {
		r.names[z] = key
	}
	slog.Debug("zone registered", "name", key, "provider", fmt.Sprint(z))
	return nil
}

// Lookup returns the zone registered under name, a Fixed zone for an offset
// literal, or a tz database zone.
func (r *Registry) Lookup(name string) (chrono.Zone, error) {
	key := normalizeName(name)

	r.mu.RLock()
	z, ok := r.zones[key]
	tzdb := r.tzdb
	r.mu.RUnlock()
	if ok {
		return z, nil
	}

	if strings.HasPrefix(key, "+") || strings.HasPrefix(key, "-") || key == "Z" {
		off, err := ParseOffset(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnknownZone, name, err)
		}
		fixed, err := NewFixed(off, off.String())
		if err != nil {
			return nil, err
		}
		return fixed, nil
	}

	if tzdb && strings.Contains(key, "/") {
		loc, err := LoadLocation(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnknownZone, name, err)
		}
		slog.Debug("zone loaded from tz database", "name", key)
		if err := r.Register(key, loc); err != nil {
			// Lost a race with another Lookup; use the winner.
			return r.Lookup(key)
		}
		return loc, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
}

// NameOf returns the registered name of z.
func (r *Registry) NameOf(z chrono.Zone) (string, bool) {
	if z == nil || !reflect.TypeOf(z).Comparable() {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.names[z]
	return name, ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.zones))
	for name := range r.zones {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Apply builds each definition and registers it under its name and
// aliases.
func (r *Registry) Apply(defs []Definition) error {
	for i, def := range defs {
		z, err := def.Build()
		if err != nil {
			return fmt.Errorf("zone definition %d: %w", i, err)
		}
		if err := r.Register(def.Name, z); err != nil {
			return err
		}
		for _, alias := range def.Aliases {
			if err := r.Register(alias, z); err != nil {
				return err
			}
		}
	}
	slog.Info("zone definitions applied", "count", len(defs))
	return nil
}
