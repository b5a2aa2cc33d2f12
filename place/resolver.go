// Package place resolves a free-text city name to the IANA zone it lies in.
package place

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"worldclock/geo"
	"worldclock/stats_collector"
	"worldclock/util"
)

var (
	ErrValidation = errors.New("invalid city name")
	ErrNotFound   = errors.New("no such place")
)

const DefaultGeocodeTimeout = 10 * time.Second

type Geocoder interface {
	Geocode(ctx context.Context, query string) (geo.Location, bool, error)
}

type BoundaryFinder interface {
	ZoneAt(location geo.Location) string
}

type ResolverConfig struct {
	Geocoder Geocoder
	Finder   BoundaryFinder
	// Timeout bounds a single geocoding call. Defaults to DefaultGeocodeTimeout.
	Timeout time.Duration
	// Cache is optional; nil resolves every query afresh.
	Cache *ZoneCache
	Stats stats_collector.StatsCollector
}

type Resolver struct {
	geocoder Geocoder
	finder   BoundaryFinder
	timeout  time.Duration
	cache    *ZoneCache
	stats    stats_collector.StatsCollector
}

func NewResolver(config ResolverConfig) *Resolver {
	r := &Resolver{
		geocoder: config.Geocoder,
		finder:   config.Finder,
		timeout:  config.Timeout,
		cache:    config.Cache,
		stats:    config.Stats,
	}
	if r.timeout <= 0 {
		r.timeout = DefaultGeocodeTimeout
	}
	if r.stats == nil {
		r.stats = stats_collector.NewNoopStatsCollector()
	}
	return r
}

// Resolve validates raw and returns the zone of its best geocoding match.
// Every failure after validation is reported as ErrNotFound; the underlying
// cause is only logged.
func (r *Resolver) Resolve(ctx context.Context, raw string) (string, error) {
	name, err := ValidateCityName(raw)
	if err != nil {
		short, _ := util.TruncateUTF8(raw, 64)
		log.Debugf("Place: rejected '%s': %s", short, err)
		return "", err
	}

	key := cacheKey(name)
	if r.cache != nil {
		if zone, ok := r.cache.Get(key); ok {
			r.stats.IncZoneCache("hit")
			return zone, nil
		}
		r.stats.IncZoneCache("miss")
	}

	location, err := r.geocode(ctx, name)
	if err != nil {
		return "", err
	}

	zone := r.finder.ZoneAt(location)
	if zone == "" {
		r.stats.IncBoundaryLookup("no_zone")
		log.Infof("Place: '%s' at %s is not inside any timezone", name, location)
		return "", fmt.Errorf("%w: '%s' has no timezone", ErrNotFound, name)
	}
	r.stats.IncBoundaryLookup("ok")

	if r.cache != nil {
		r.cache.Put(key, zone)
	}
	log.Debugf("Place: '%s' -> %s", name, zone)
	return zone, nil
}

func (r *Resolver) geocode(ctx context.Context, name string) (geo.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	location, ok, err := r.geocoder.Geocode(ctx, name)
	elapsed := time.Since(start)

	switch {
	case err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded):
		r.stats.ObserveGeocode("timeout", elapsed)
		log.Warnf("Place: geocoding '%s' timed out after %s", name, elapsed)
	case err != nil:
		r.stats.ObserveGeocode("error", elapsed)
		log.Warnf("Place: geocoding '%s' failed: %s", name, err)
	case !ok:
		r.stats.ObserveGeocode("no_match", elapsed)
		log.Infof("Place: no geocoding match for '%s'", name)
	default:
		r.stats.ObserveGeocode("ok", elapsed)
		return location, nil
	}
	return geo.Location{}, fmt.Errorf("%w: '%s'", ErrNotFound, name)
}
