package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"worldclock/query"
	"worldclock/stats_collector"
)

type fixedZoneSource interface {
	FixedZones(ctx context.Context) []query.FixedZoneResult
}

// StartFixedZoneRefresher recomputes the fixed zone times every interval
// until ctx is cancelled. City queries never wait on this loop.
func StartFixedZoneRefresher(ctx context.Context, source fixedZoneSource, statsCollector stats_collector.StatsCollector, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	refreshFixedZones(ctx, source, statsCollector)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refreshFixedZones(ctx, source, statsCollector)
		}
	}
}

func refreshFixedZones(ctx context.Context, source fixedZoneSource, statsCollector stats_collector.StatsCollector) {
	start := time.Now()
	failed := 0
	for _, result := range source.FixedZones(ctx) {
		outcome := query.Classify(result.Err)
		statsCollector.IncFixedZoneRefresh(result.Entry.Zone, outcome)
		if result.Err != nil {
			failed++
			log.Warnf("Refresh - %s (%s) failed: %s", result.Entry.DisplayName, result.Entry.Zone, result.Err)
			continue
		}
		log.Debugf("Refresh - %s %s %s", result.Entry.DisplayName, result.Time.LocalTime, result.Time.Abbreviation)
	}
	log.Debugf("Refresh - fixed zones took %s (%d failed)", time.Since(start), failed)
}
