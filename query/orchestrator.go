// Package query is the single entry point for "what time is it there":
// it resolves a registry key or a city name to a zone, then formats the
// current time and abbreviation for that zone.
package query

import (
	"context"
	"errors"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sourcegraph/conc/pool"
	log "github.com/sirupsen/logrus"

	"worldclock/clock"
	"worldclock/external"
	"worldclock/stats_collector"
	"worldclock/util"
	"worldclock/zones"
)

type sourceKind int

const (
	sourceRegistry sourceKind = iota
	sourceCity
)

// Source is what a caller asks about: a registry display name or raw city text.
type Source struct {
	kind sourceKind
	text string
}

func RegistryKey(displayName string) Source {
	return Source{kind: sourceRegistry, text: displayName}
}

func CityText(raw string) Source {
	return Source{kind: sourceCity, text: raw}
}

func (s Source) String() string {
	if s.kind == sourceCity {
		return "city"
	}
	return "registry"
}

// ResolvedTime is recomputed on every call and must not be cached.
type ResolvedTime struct {
	Name         string
	Zone         string
	LocalTime    string
	Abbreviation string
}

type PlaceResolver interface {
	Resolve(ctx context.Context, raw string) (string, error)
}

type Clock interface {
	CurrentLocalTime(zone string) (string, error)
	FriendlyAbbreviation(zone string) string
}

type Orchestrator struct {
	places PlaceResolver
	clock  Clock
	stats  stats_collector.StatsCollector
	slots  *xsync.MapOf[string, *slotQuery]
}

func NewOrchestrator(places PlaceResolver, clock Clock, stats stats_collector.StatsCollector) *Orchestrator {
	if stats == nil {
		stats = stats_collector.NewNoopStatsCollector()
	}
	return &Orchestrator{
		places: places,
		clock:  clock,
		stats:  stats,
		slots:  xsync.NewMapOf[string, *slotQuery](),
	}
}

// ResolveAndFormat runs the full chain for source. Errors are one of
// place.ErrValidation, place.ErrNotFound, zones.ErrNotFound or
// clock.ErrUnknownZone (see Classify).
func (o *Orchestrator) ResolveAndFormat(ctx context.Context, source Source) (ResolvedTime, error) {
	result, err := o.resolveAndFormat(ctx, source)
	o.stats.IncQueries(source.String(), Classify(err))
	return result, err
}

func (o *Orchestrator) resolveAndFormat(ctx context.Context, source Source) (ResolvedTime, error) {
	switch source.kind {
	case sourceCity:
		zone, err := o.places.Resolve(ctx, source.text)
		if err != nil {
			return ResolvedTime{}, err
		}
		return o.format(util.TitleWords(strings.TrimSpace(source.text)), zone)
	default:
		zone, err := zones.Lookup(source.text)
		if err != nil {
			return ResolvedTime{}, err
		}
		return o.format(source.text, zone)
	}
}

func (o *Orchestrator) format(name, zone string) (ResolvedTime, error) {
	localTime, err := o.clock.CurrentLocalTime(zone)
	if err != nil {
		if errors.Is(err, clock.ErrUnknownZone) {
			log.Errorf("Query: zone '%s' for '%s' is not in the timezone database: %s", zone, name, err)
			external.ReportError(err)
		}
		return ResolvedTime{}, err
	}
	return ResolvedTime{
		Name:         name,
		Zone:         zone,
		LocalTime:    localTime,
		Abbreviation: o.clock.FriendlyAbbreviation(zone),
	}, nil
}

type FixedZoneResult struct {
	Entry zones.Entry
	Time  ResolvedTime
	Err   error
}

const fixedZoneConcurrency = 4

// FixedZones resolves every registry entry, keeping display order in the
// result. A failing zone is reported in its own result and does not stop
// the others.
func (o *Orchestrator) FixedZones(ctx context.Context) []FixedZoneResult {
	entries := zones.Entries()
	results := make([]FixedZoneResult, len(entries))

	p := pool.New().WithMaxGoroutines(fixedZoneConcurrency)
	for idx, entry := range entries {
		idx, entry := idx, entry
		p.Go(func() {
			resolved, err := o.ResolveAndFormat(ctx, RegistryKey(entry.DisplayName))
			results[idx] = FixedZoneResult{Entry: entry, Time: resolved, Err: err}
		})
	}
	p.Wait()
	return results
}
