package zone

import (
	"errors"
	"sync"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/datetimeng/internal/chrono"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	for _, name := range []string{"UTC", "Eastern", "Central", "Mountain", "Pacific",
		"WesternEU", "CentralEU", "EasternEU", "London", "Amsterdam", "Berlin", "Local"} {
		_, err := r.Lookup(name)
		assert.NoError(t, err, name)
	}

	z, err := r.Lookup("Eastern")
	require.NoError(t, err)
	assert.Equal(t, Eastern, z)

	name, ok := r.NameOf(Berlin)
	require.True(t, ok)
	assert.Equal(t, "CentralEU", name, "aliases report the first registered name")

	names := r.Names()
	assert.Contains(t, names, "Amsterdam")
	assert.IsIncreasing(t, names)
}

func TestRegistryOffsetLiterals(t *testing.T) {
	r := NewRegistry()

	z, err := r.Lookup("+05:30")
	require.NoError(t, err)
	v := at(t, 2002, 1, 1, 0, 0, 0, z)
	assert.Equal(t, chrono.Offset(330), offsetOf(t, v))
	assert.Equal(t, "+05:30", nameOf(t, v))

	z, err = r.Lookup("-0800")
	require.NoError(t, err)
	assert.Equal(t, chrono.Offset(-480), z.(*Fixed).Offset())

	_, err = r.Lookup("+25:00")
	assert.True(t, errors.Is(err, ErrUnknownZone))
}

func TestRegistryTZDatabase(t *testing.T) {
	r := NewRegistry()
	z, err := r.Lookup("Europe/Paris")
	require.NoError(t, err)

	again, err := r.Lookup("Europe/Paris")
	require.NoError(t, err)
	assert.Equal(t, z, again, "tz database zones are cached")

	name, ok := r.NameOf(z)
	require.True(t, ok)
	assert.Equal(t, "Europe/Paris", name)

	off := NewRegistry(WithTZDatabase(false))
	_, err = off.Lookup("Europe/Paris")
	assert.True(t, errors.Is(err, ErrUnknownZone))
}

func TestRegistryUnknown(t *testing.T) {
	_, err := Default().Lookup("Atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownZone))
}

func TestRegistryRegisterErrors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("Home", UTC))
	assert.Error(t, r.Register("Home", Eastern), "duplicate name")
	assert.Error(t, r.Register("  ", UTC), "empty name")
	assert.Error(t, r.Register("Nil", nil))
	assert.Error(t, r.Register("Slice", sliceZone{1}))

	_, ok := r.NameOf(sliceZone{1})
	assert.False(t, ok)
}

func TestRegistryNormalizesNames(t *testing.T) {
	r := NewRegistry()
	decomposed := "Zu\u0308rich"
	composed := "Z\u00fcrich"
	require.NoError(t, r.Register(decomposed, CentralEU))

	z, err := r.Lookup(composed)
	require.NoError(t, err)
	assert.Equal(t, CentralEU, z)

	assert.Error(t, r.Register(" "+composed+" ", EasternEU), "same name after normalization")
}

func TestRegistryConcurrentLookup(t *testing.T) {
	r := Default()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Lookup("America/Chicago")
			assert.NoError(t, err)
			_, err = r.Lookup("Pacific")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	_, ok := r.NameOf(Pacific)
	assert.True(t, ok)
}

// sliceZone is a provider type that cannot be a map key.
type sliceZone []int

func (sliceZone) UTCOffset(*chrono.DateTime) (chrono.Offset, bool) { return 0, true }
func (sliceZone) DST(*chrono.DateTime) (chrono.Offset, bool)       { return 0, true }
func (sliceZone) Name(*chrono.DateTime) (string, bool)             { return "slice", true }
