package clock

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/puzpuzpuz/xsync/v3"
)

var ErrUnknownZone = errors.New("unknown zone")

// ZoneState is what the timezone database reports for a zone at an instant.
type ZoneState struct {
	Local  time.Time
	Offset time.Duration
	// DST is true when a non-zero daylight-saving adjustment is in effect.
	DST bool
}

type ZoneDatabase interface {
	Lookup(zone string, instant time.Time) (ZoneState, error)
}

// TzDatabase answers from the system zoneinfo, falling back to the copy
// embedded by time/tzdata. Loaded locations are kept for the life of the
// process; only the rules are kept, never a computed time.
type TzDatabase struct {
	locations *xsync.MapOf[string, *time.Location]
}

func NewTzDatabase() *TzDatabase {
	return &TzDatabase{
		locations: xsync.NewMapOf[string, *time.Location](),
	}
}

func (db *TzDatabase) location(zone string) (*time.Location, error) {
	// time.LoadLocation maps "" to UTC and "Local" to the host zone, neither
	// of which is a database name.
	if zone == "" || zone == "Local" {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownZone, zone)
	}
	if loc, ok := db.locations.Load(zone); ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %s", ErrUnknownZone, zone, err)
	}
	db.locations.Store(zone, loc)
	return loc, nil
}

func (db *TzDatabase) Lookup(zone string, instant time.Time) (ZoneState, error) {
	loc, err := db.location(zone)
	if err != nil {
		return ZoneState{}, err
	}
	local := instant.In(loc)
	_, offset := local.Zone()
	return ZoneState{
		Local:  local,
		Offset: time.Duration(offset) * time.Second,
		DST:    local.IsDST(),
	}, nil
}
