package http_handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"worldclock/clock"
	"worldclock/codec"
	"worldclock/geo"
	"worldclock/place"
	"worldclock/query"
)

var summer = time.Date(2025, time.July, 15, 16, 0, 0, 0, time.UTC)

// fakeGeocoder answers from a table. "Slowtown" reports on started and
// blocks until its context is cancelled.
type fakeGeocoder struct {
	places  map[string]geo.Location
	started chan struct{}
}

func (f *fakeGeocoder) Geocode(ctx context.Context, q string) (geo.Location, bool, error) {
	if q == "Slowtown" {
		f.started <- struct{}{}
		<-ctx.Done()
		return geo.Location{}, false, ctx.Err()
	}
	location, ok := f.places[q]
	return location, ok, nil
}

type fakeFinder map[geo.Location]string

func (f fakeFinder) ZoneAt(location geo.Location) string {
	return f[location]
}

// brokenZoneDatabase fails for one zone and answers from tzdata otherwise.
type brokenZoneDatabase struct {
	clock.ZoneDatabase
	broken string
}

func (db brokenZoneDatabase) Lookup(zone string, instant time.Time) (clock.ZoneState, error) {
	if zone == db.broken {
		return clock.ZoneState{}, fmt.Errorf("%w '%s'", clock.ErrUnknownZone, zone)
	}
	return db.ZoneDatabase.Lookup(zone, instant)
}

var (
	tokyo   = geo.Location{Latitude: 35.68, Longitude: 139.76}
	olympus = geo.Location{Latitude: 18.65, Longitude: -133.8}
)

func newTestEngine(secret string) (*gin.Engine, *fakeGeocoder) {
	gin.SetMode(gin.TestMode)

	geocoder := &fakeGeocoder{
		places:  map[string]geo.Location{"Tokyo": tokyo, "Olympus": olympus},
		started: make(chan struct{}, 1),
	}
	resolver := place.NewResolver(place.ResolverConfig{
		Geocoder: geocoder,
		Finder:   fakeFinder{tokyo: "Asia/Tokyo", olympus: "Mars/Olympus_Mons"},
		Timeout:  5 * time.Second,
	})
	worldClock := clock.New(clock.Config{
		Database: brokenZoneDatabase{ZoneDatabase: clock.NewTzDatabase(), broken: "US/Alaska"},
		Now:      func() time.Time { return summer },
	})
	orchestrator := query.NewOrchestrator(resolver, worldClock, nil)

	r := gin.New()
	NewHTTPHandler(orchestrator, secret).Register(r)
	return r, geocoder
}

func get(t *testing.T, r *gin.Engine, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for key, values := range header {
		req.Header[key] = values
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newTestEngineOnly(secret string) *gin.Engine {
	r, _ := newTestEngine(secret)
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ApiError {
	t.Helper()
	var body ApiError
	if err := codec.JSONUnmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad error body %q: %s", w.Body, err)
	}
	return body
}

func TestGetHealth(t *testing.T) {
	w := get(t, newTestEngineOnly(""), "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestGetZone(t *testing.T) {
	r := newTestEngineOnly("")
	w := get(t, r, "/api/zones/"+url.PathEscape("Pacific (PST/PDT)"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	var body ApiResolvedTime
	if err := codec.JSONUnmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	expected := ApiResolvedTime{
		Name:         "Pacific (PST/PDT)",
		Zone:         "US/Pacific",
		LocalTime:    "09:00:00 AM",
		Abbreviation: "PDT",
	}
	if body != expected {
		t.Errorf("expected %+v, got %+v", expected, body)
	}

	w = get(t, r, "/api/zones/Atlantis", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown entry, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Reason != query.OutcomeNotFound || body.Error != "There is no such fixed zone" {
		t.Errorf("unexpected registry miss body %+v", body)
	}

	w = get(t, r, "/api/zones/"+url.PathEscape("Alaska (AKST/AKDT)"), nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for a zone missing from the database, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Reason != query.OutcomeUnknownZone {
		t.Errorf("unexpected unknown zone body %+v", body)
	}
}

func TestGetFixedZones(t *testing.T) {
	w := get(t, newTestEngineOnly(""), "/api/zones", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Zones []ApiFixedZone `json:"zones"`
	}
	if err := codec.JSONUnmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Zones) != 8 {
		t.Fatalf("expected 8 zones, got %d", len(body.Zones))
	}
	alaska := body.Zones[4]
	if alaska.Zone != "US/Alaska" || alaska.Error.String != query.OutcomeUnknownZone || alaska.LocalTime.Valid {
		t.Errorf("unexpected failed zone %+v", alaska)
	}
	last := body.Zones[7]
	if last.Name != "Tbilisi" || last.Abbreviation.String != "+04" || last.Error.Valid {
		t.Errorf("unexpected fixed zone %+v", last)
	}
	if last.LocalTime.String != "08:00:00 PM" {
		t.Errorf("expected 08:00:00 PM, got %s", last.LocalTime.String)
	}
}

func TestGetCity(t *testing.T) {
	r := newTestEngineOnly("")
	for _, tc := range []struct {
		query  string
		status int
		reason string
	}{
		{"Tokyo", http.StatusOK, ""},
		{"Tokyo3", http.StatusBadRequest, query.OutcomeValidation},
		{"", http.StatusBadRequest, query.OutcomeValidation},
		{"Atlantis", http.StatusNotFound, query.OutcomeNotFound},
		{"Olympus", http.StatusInternalServerError, query.OutcomeUnknownZone},
	} {
		w := get(t, r, "/api/city?slot=search&q="+url.QueryEscape(tc.query), nil)
		if w.Code != tc.status {
			t.Errorf("%q: expected %d, got %d", tc.query, tc.status, w.Code)
			continue
		}
		if tc.status == http.StatusOK {
			var body ApiResolvedTime
			if err := codec.JSONUnmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Zone != "Asia/Tokyo" || body.LocalTime != "01:00:00 AM" || body.Abbreviation != "UTC+09" {
				t.Errorf("unexpected body %+v", body)
			}
			continue
		}
		body := decodeError(t, w)
		if body.Reason != tc.reason || body.Error == "" {
			t.Errorf("%q: unexpected error body %+v", tc.query, body)
		}
	}
}

func TestGetCitySuperseded(t *testing.T) {
	r, geocoder := newTestEngine("")

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- get(t, r, "/api/city?slot=search&q=Slowtown", nil)
	}()
	select {
	case <-geocoder.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first search never reached the geocoder")
	}

	if w := get(t, r, "/api/city?slot=search&q=Tokyo", nil); w.Code != http.StatusOK {
		t.Fatalf("newest search: expected 200, got %d", w.Code)
	}

	select {
	case w := <-first:
		if w.Code != http.StatusConflict {
			t.Fatalf("superseded search: expected 409, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Reason != query.OutcomeSuperseded {
			t.Errorf("unexpected superseded body %+v", body)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("superseded search never returned")
	}
}

func TestAuthRequired(t *testing.T) {
	r := newTestEngineOnly("hunter2")

	if w := get(t, r, "/api/zones", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without secret, got %d", w.Code)
	}
	header := http.Header{"X-Worldclock-Secret": []string{"hunter2"}}
	if w := get(t, r, "/api/zones", header); w.Code != http.StatusOK {
		t.Errorf("expected 200 with secret, got %d", w.Code)
	}
	if w := get(t, r, "/health", nil); w.Code != http.StatusOK {
		t.Errorf("health must not require the secret, got %d", w.Code)
	}
}
