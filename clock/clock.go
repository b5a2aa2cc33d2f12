// Package clock renders the current wall-clock time of a zone and the short
// label a person expects next to it ("EDT", "+04", "UTC+05:30").
package clock

import (
	"fmt"
	"time"

	"worldclock/stats_collector"
)

// TimeLayout is a 12-hour clock with leading zeros and seconds.
const TimeLayout = "03:04:05 PM"

type Config struct {
	Database ZoneDatabase
	Stats    stats_collector.StatsCollector
	// Now defaults to time.Now.
	Now func() time.Time
}

type Clock struct {
	db    ZoneDatabase
	stats stats_collector.StatsCollector
	now   func() time.Time
}

func New(config Config) *Clock {
	c := &Clock{
		db:    config.Database,
		stats: config.Stats,
		now:   config.Now,
	}
	if c.db == nil {
		c.db = NewTzDatabase()
	}
	if c.stats == nil {
		c.stats = stats_collector.NewNoopStatsCollector()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// CurrentLocalTime returns the time now in zone, formatted with TimeLayout.
func (c *Clock) CurrentLocalTime(zone string) (string, error) {
	state, err := c.db.Lookup(zone, c.now().UTC())
	if err != nil {
		return "", fmt.Errorf("current time: %w", err)
	}
	return state.Local.Format(TimeLayout), nil
}
