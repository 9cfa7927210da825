package domain

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertPlaceholder(t *testing.T, res Resolution) {
	t.Helper()
	assert.Equal(t, LocationRandom, res.Source)
	assert.GreaterOrEqual(t, res.Lat, -90.0)
	assert.Less(t, res.Lat, 90.0)
	assert.GreaterOrEqual(t, res.Lon, -180.0)
	assert.Less(t, res.Lon, 180.0)
}

func TestResolveLocation_KnownName(t *testing.T) {
	res := ResolveLocation("London")

	assert.Equal(t, LocationTable, res.Source)
	assert.Equal(t, 51.5074, res.Lat)
	assert.Equal(t, -0.1278, res.Lon)
}

func TestResolveLocation_CaseInsensitive(t *testing.T) {
	for _, name := range []string{"new york", "NEW YORK", "New York", "nEw YoRk"} {
		res := ResolveLocation(name)
		assert.Equal(t, LocationTable, res.Source, name)
		assert.Equal(t, Coordinates{Lat: 40.7128, Lon: -74.0060}, res.Coordinates, name)
	}
}

func TestResolveLocation_UnknownNameIsRandomButInRange(t *testing.T) {
	for range 1000 {
		assertPlaceholder(t, ResolveLocation("Atlantis"))
	}
}

func TestTableLocator_SeededFallbackIsReproducible(t *testing.T) {
	a := NewTableLocator(rand.New(rand.NewPCG(7, 11)))
	b := NewTableLocator(rand.New(rand.NewPCG(7, 11)))

	for range 10 {
		ra, rb := a.Locate("El Dorado"), b.Locate("El Dorado")
		assertPlaceholder(t, ra)
		assert.Equal(t, ra, rb)
	}
}

func TestTableLocator_ExactMatchOnly(t *testing.T) {
	loc := NewTableLocator(rand.New(rand.NewPCG(1, 2)))

	assert.Equal(t, LocationRandom, loc.Locate("Londonderry").Source)
	assert.Equal(t, LocationRandom, loc.Locate("Greater London").Source)
	assert.Equal(t, LocationTable, loc.Locate("PARIS").Source)
}

func TestKnownLocations_ReturnsCopy(t *testing.T) {
	table := KnownLocations()
	assert.Len(t, table, 10)

	delete(table, "london")
	assert.Equal(t, LocationTable, ResolveLocation("london").Source)
}
