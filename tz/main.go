package tz

import (
	"strings"

	"github.com/ringsaturn/tzf"
	log "github.com/sirupsen/logrus"

	"worldclock/geo"
)

type nameFinder interface {
	GetTimezoneName(lng float64, lat float64) string
}

// PolygonFinder maps a coordinate to the IANA zone whose boundary polygon
// contains it, using the tzf dataset embedded in the binary.
type PolygonFinder struct {
	finder nameFinder
}

func NewPolygonFinder() (*PolygonFinder, error) {
	log.Infof("Timezone - loading boundary polygons")
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, err
	}
	log.Infof("Timezone - boundary polygons loaded")
	return &PolygonFinder{finder: finder}, nil
}

// ZoneAt returns the zone containing location, or "" when there is none.
// Ocean polygons resolve to nautical Etc/GMT zones which are not places, so
// they are reported as no zone.
func (p *PolygonFinder) ZoneAt(location geo.Location) string {
	if !location.Valid() {
		return ""
	}
	zone := p.finder.GetTimezoneName(location.Longitude, location.Latitude)
	if strings.HasPrefix(zone, "Etc/") {
		log.Debugf("Timezone - %s is in open water (%s)", location, zone)
		return ""
	}
	return zone
}
