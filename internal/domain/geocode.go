package domain

import (
	"maps"
	"math/rand/v2"
	"strings"
	"sync"
)

// knownLocations is the mock geocoding table, keyed by lower-case name.
var knownLocations = map[string]Coordinates{
	"new york":  {Lat: 40.7128, Lon: -74.0060},
	"london":    {Lat: 51.5074, Lon: -0.1278},
	"tokyo":     {Lat: 35.6762, Lon: 139.6503},
	"sydney":    {Lat: -33.8688, Lon: 151.2093},
	"paris":     {Lat: 48.8566, Lon: 2.3522},
	"berlin":    {Lat: 52.5200, Lon: 13.4050},
	"mumbai":    {Lat: 19.0760, Lon: 72.8777},
	"beijing":   {Lat: 39.9042, Lon: 116.4074},
	"cairo":     {Lat: 30.0444, Lon: 31.2357},
	"vancouver": {Lat: 49.2827, Lon: -123.1207},
}

// KnownLocations returns a copy of the location table.
func KnownLocations() map[string]Coordinates {
	return maps.Clone(knownLocations)
}

// TableLocator resolves names against a fixed table and falls back to a
// uniformly random point on a miss. It is a stand-in for real geocoding.
type TableLocator struct {
	table map[string]Coordinates

	mu  sync.Mutex
	rng *rand.Rand // nil uses the global source
}

// NewTableLocator creates a locator over the built-in table. Pass a seeded
// *rand.Rand for reproducible fallbacks, or nil for the global source.
func NewTableLocator(rng *rand.Rand) *TableLocator {
	return &TableLocator{table: knownLocations, rng: rng}
}

// Locate matches name case-insensitively. Unknown names get lat in [-90, 90)
// and lon in [-180, 180).
func (l *TableLocator) Locate(name string) Resolution {
	if c, ok := l.table[strings.ToLower(name)]; ok {
		return Resolution{Coordinates: c, Source: LocationTable}
	}
	lat, lon := l.randomPoint()
	return Resolution{Coordinates: Coordinates{Lat: lat, Lon: lon}, Source: LocationRandom}
}

func (l *TableLocator) randomPoint() (float64, float64) {
	if l.rng == nil {
		return rand.Float64()*180 - 90, rand.Float64()*360 - 180
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()*180 - 90, l.rng.Float64()*360 - 180
}

var defaultLocator = NewTableLocator(nil)

// ResolveLocation resolves name with the built-in table and global random source.
func ResolveLocation(name string) Resolution {
	return defaultLocator.Locate(name)
}
