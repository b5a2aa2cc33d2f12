package stats_collector

import "time"

var _ StatsCollector = (*noopCollector)(nil)

type noopCollector struct {
}

func (col *noopCollector) IncQueries(string, string)            {}
func (col *noopCollector) ObserveGeocode(string, time.Duration) {}
func (col *noopCollector) IncBoundaryLookup(string)             {}
func (col *noopCollector) IncAbbreviationTier(string)           {}
func (col *noopCollector) IncZoneCache(string)                  {}
func (col *noopCollector) IncFixedZoneRefresh(string, string)   {}

func NewNoopStatsCollector() StatsCollector {
	return &noopCollector{}
}
