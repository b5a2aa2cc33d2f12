package tz

import (
	"math"
	"testing"

	"worldclock/geo"
)

type stubFinder struct {
	zone    string
	gotLng  float64
	gotLat  float64
	invoked bool
}

func (s *stubFinder) GetTimezoneName(lng float64, lat float64) string {
	s.invoked = true
	s.gotLng = lng
	s.gotLat = lat
	return s.zone
}

func TestZoneAtPassesLongitudeFirst(t *testing.T) {
	stub := &stubFinder{zone: "Asia/Tbilisi"}
	finder := &PolygonFinder{finder: stub}

	zone := finder.ZoneAt(geo.Location{Latitude: 41.7151, Longitude: 44.8271})
	if zone != "Asia/Tbilisi" {
		t.Errorf("unexpected zone %q", zone)
	}
	if stub.gotLng != 44.8271 || stub.gotLat != 41.7151 {
		t.Errorf("coordinates swapped: lng=%f lat=%f", stub.gotLng, stub.gotLat)
	}
}

func TestZoneAtOpenWater(t *testing.T) {
	for _, zone := range []string{"", "Etc/GMT+2", "Etc/GMT-11"} {
		finder := &PolygonFinder{finder: &stubFinder{zone: zone}}
		if got := finder.ZoneAt(geo.Location{Latitude: 0, Longitude: -30}); got != "" {
			t.Errorf("%q: expected no zone, got %q", zone, got)
		}
	}
}

func TestZoneAtInvalidLocation(t *testing.T) {
	stub := &stubFinder{zone: "Europe/London"}
	finder := &PolygonFinder{finder: stub}
	if got := finder.ZoneAt(geo.Location{Latitude: math.NaN(), Longitude: 0}); got != "" {
		t.Errorf("expected no zone, got %q", got)
	}
	if stub.invoked {
		t.Error("finder should not be consulted for an invalid location")
	}
}

func TestPolygonFinderDataset(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the full boundary dataset")
	}
	finder, err := NewPolygonFinder()
	if err != nil {
		t.Fatalf("failed to load finder: %s", err)
	}
	tests := []struct {
		name     string
		location geo.Location
		expected string
	}{
		{"New York", geo.Location{Latitude: 40.7128, Longitude: -74.0060}, "America/New_York"},
		{"Tbilisi", geo.Location{Latitude: 41.7151, Longitude: 44.8271}, "Asia/Tbilisi"},
		{"Tokyo", geo.Location{Latitude: 35.6762, Longitude: 139.6503}, "Asia/Tokyo"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := finder.ZoneAt(test.location); got != test.expected {
				t.Errorf("expected %s, got %s", test.expected, got)
			}
		})
	}
}
