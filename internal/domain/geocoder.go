package domain

// Coordinates is a WGS-84 latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LocationSource says how a location name was turned into coordinates.
type LocationSource string

const (
	// LocationTable means the name matched the known-location table.
	LocationTable LocationSource = "table"
	// LocationRandom means the name was unknown and the coordinates are a
	// random placeholder. Callers must not treat them as accurate.
	LocationRandom LocationSource = "random"
)

// Resolution is the outcome of resolving a free-text location name.
type Resolution struct {
	Coordinates
	Source LocationSource `json:"source"`
}

// Locator turns a location name into coordinates. Implementations never fail;
// unknown names resolve to a placeholder tagged LocationRandom.
type Locator interface {
	Locate(name string) Resolution
}
