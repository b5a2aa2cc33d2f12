// Package zones holds the fixed set of clocks shown on every refresh:
// the United States zones plus one fixed non-US zone.
package zones

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("zone not in registry")

// ZoneId is an IANA timezone database name, e.g. "US/Eastern".
type ZoneId = string

type Entry struct {
	DisplayName string
	Zone        ZoneId
}

var usZones = []Entry{
	{DisplayName: "Eastern (EST/EDT)", Zone: "US/Eastern"},
	{DisplayName: "Central (CST/CDT)", Zone: "US/Central"},
	{DisplayName: "Mountain (MST/MDT)", Zone: "US/Mountain"},
	{DisplayName: "Pacific (PST/PDT)", Zone: "US/Pacific"},
	{DisplayName: "Alaska (AKST/AKDT)", Zone: "US/Alaska"},
	{DisplayName: "Hawaii (HST)", Zone: "US/Hawaii"},
	{DisplayName: "Arizona (MST)", Zone: "US/Arizona"},
}

// FixedZone is the single non-US clock that is always displayed.
var FixedZone = Entry{DisplayName: "Tbilisi", Zone: "Asia/Tbilisi"}

var (
	entries []Entry
	byName  map[string]ZoneId
)

func init() {
	entries = make([]Entry, 0, len(usZones)+1)
	entries = append(entries, usZones...)
	entries = append(entries, FixedZone)

	byName = make(map[string]ZoneId, len(entries))
	for _, entry := range entries {
		if _, exists := byName[entry.DisplayName]; exists {
			panic(fmt.Sprintf("zones: duplicate display name '%s'", entry.DisplayName))
		}
		byName[entry.DisplayName] = entry.Zone
	}
}

// Lookup returns the zone registered under displayName.
func Lookup(displayName string) (ZoneId, error) {
	zone, ok := byName[displayName]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrNotFound, displayName)
	}
	return zone, nil
}

// Entries returns the registry in display order, US zones first and the
// fixed zone last. The returned slice is a copy.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
