package geo

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// Location is a WGS84 coordinate as returned by a geocoder.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether latitude is within [-90,90] and longitude within
// [-180,180]. NaN is never valid.
func (l Location) Valid() bool {
	return s2.LatLngFromDegrees(l.Latitude, l.Longitude).IsValid()
}

func (l Location) String() string {
	return fmt.Sprintf("%.5f,%.5f", l.Latitude, l.Longitude)
}
