package place

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// ZoneCache is an auto-expiring map from a normalised city name to the zone
// it resolved to. Only zone ids are kept; formatted times change every
// second and are never cached.
type ZoneCache struct {
	zones *ttlcache.Cache[string, string]
}

// Put adds or replaces an entry using the default ttl.
func (cache *ZoneCache) Put(key, zone string) {
	cache.zones.Set(key, zone, ttlcache.DefaultTTL)
}

// Get returns the zone cached for key, if any.
func (cache *ZoneCache) Get(key string) (string, bool) {
	entry := cache.zones.Get(key)
	if entry == nil {
		return "", false
	}
	return entry.Value(), true
}

func (cache *ZoneCache) Len() int {
	return cache.zones.Len()
}

// Run will run the auto-expiring goroutine until 'ctx' is
// cancelled.
func (cache *ZoneCache) Run(ctx context.Context) {
	doneCh := make(chan bool)

	go func() {
		defer close(doneCh)
		cache.zones.Start()
	}()

	<-ctx.Done()
	cache.zones.Stop()
	<-doneCh
}

// NewZoneCache creates an auto-expiring cache with the given ttl.
// Returns nil when ttl <= 0, which disables caching.
func NewZoneCache(ttl time.Duration) *ZoneCache {
	if ttl <= 0 {
		return nil
	}
	return &ZoneCache{
		zones: ttlcache.New[string, string](
			ttlcache.WithTTL[string, string](ttl),
			ttlcache.WithDisableTouchOnHit[string, string](),
		),
	}
}
