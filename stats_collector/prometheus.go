package stats_collector

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	queries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldclock_queries",
			Help: "Total number of time queries by source and outcome",
		},
		[]string{"source", "outcome"},
	)
	geocodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worldclock_geocode_seconds",
			Help:    "Geocoding round trip time",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
	boundaryLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldclock_boundary_lookups",
			Help: "Total number of coordinate to timezone lookups",
		},
		[]string{"status"},
	)
	abbreviationTiers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldclock_abbreviation_tier",
			Help: "Abbreviations resolved, by the tier that answered",
		},
		[]string{"tier"},
	)
	zoneCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldclock_zone_cache",
			Help: "City to zone cache lookups",
		},
		[]string{"result"},
	)
	fixedZoneRefresh = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldclock_fixed_zone_refresh",
			Help: "Fixed zone refreshes by zone and status",
		},
		[]string{"zone", "status"},
	)
)

var _ StatsCollector = (*promCollector)(nil)

type promCollector struct {
}

func (col *promCollector) IncQueries(source, outcome string) {
	queries.WithLabelValues(source, outcome).Inc()
}

func (col *promCollector) ObserveGeocode(status string, duration time.Duration) {
	geocodeDuration.WithLabelValues(status).Observe(duration.Seconds())
}

func (col *promCollector) IncBoundaryLookup(status string) {
	boundaryLookups.WithLabelValues(status).Inc()
}

func (col *promCollector) IncAbbreviationTier(tier string) {
	abbreviationTiers.WithLabelValues(tier).Inc()
}

func (col *promCollector) IncZoneCache(result string) {
	zoneCache.WithLabelValues(result).Inc()
}

func (col *promCollector) IncFixedZoneRefresh(zone, status string) {
	fixedZoneRefresh.WithLabelValues(zone, status).Inc()
}

func initPrometheus() {
	prometheus.MustRegister(
		queries, geocodeDuration, boundaryLookups, abbreviationTiers, zoneCache, fixedZoneRefresh,
	)
}

var initOnce sync.Once

func NewPrometheusCollector() StatsCollector {
	initOnce.Do(initPrometheus)
	return &promCollector{}
}
