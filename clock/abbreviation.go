package clock

import (
	"fmt"
	"strings"
	"time"
)

const (
	TierKnown    = "known"
	TierOffset   = "offset"
	TierFallback = "fallback"
)

type abbreviation struct {
	standard string
	daylight string
}

// Zones that never observe DST carry the same label twice. If the rules for
// Hawaii, Arizona or Georgia change these must be revisited by hand.
var knownAbbreviations = map[string]abbreviation{
	"US/Eastern":   {standard: "EST", daylight: "EDT"},
	"US/Central":   {standard: "CST", daylight: "CDT"},
	"US/Mountain":  {standard: "MST", daylight: "MDT"},
	"US/Pacific":   {standard: "PST", daylight: "PDT"},
	"US/Alaska":    {standard: "AKST", daylight: "AKDT"},
	"US/Hawaii":    {standard: "HST", daylight: "HST"},
	"US/Arizona":   {standard: "MST", daylight: "MST"},
	"Asia/Tbilisi": {standard: "+04", daylight: "+04"},
}

// FriendlyAbbreviation returns a short label for zone as of now. It never
// fails: known zones get their fixed label, other zones their numeric UTC
// offset, and zones the database cannot load the last segment of their name.
func (c *Clock) FriendlyAbbreviation(zone string) string {
	label, tier := c.friendlyAbbreviation(zone)
	c.stats.IncAbbreviationTier(tier)
	return label
}

func (c *Clock) friendlyAbbreviation(zone string) (string, string) {
	if zone == "" {
		return "Unknown", TierFallback
	}

	state, err := c.lookupQuietly(zone)
	if err != nil {
		return fallbackLabel(zone), TierFallback
	}

	if known, ok := knownAbbreviations[zone]; ok {
		if state.DST {
			return known.daylight, TierKnown
		}
		return known.standard, TierKnown
	}

	return FormatOffset(state.Offset), TierOffset
}

// lookupQuietly turns a panicking database into an ordinary error.
func (c *Clock) lookupQuietly(zone string) (state ZoneState, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("zone database panicked for '%s': %v", zone, r)
		}
	}()
	return c.db.Lookup(zone, c.now().UTC())
}

// FormatOffset renders an offset as UTC±HH, or UTC±HH:MM when it has minutes.
// The sign comes from the whole offset so -00:30 stays negative.
func FormatOffset(offset time.Duration) string {
	seconds := int(offset / time.Second)
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if minutes != 0 {
		return fmt.Sprintf("UTC%s%02d:%02d", sign, hours, minutes)
	}
	return fmt.Sprintf("UTC%s%02d", sign, hours)
}

func fallbackLabel(zone string) string {
	idx := strings.LastIndex(zone, "/")
	if idx < 0 || idx == len(zone)-1 {
		return zone
	}
	return zone[idx+1:]
}
