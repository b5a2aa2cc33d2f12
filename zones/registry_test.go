package zones

import (
	"errors"
	"testing"
)

func TestLookupAllEntries(t *testing.T) {
	all := Entries()
	if len(all) != 8 {
		t.Fatalf("expected 8 registry entries, got %d", len(all))
	}
	if len(usZones) != 7 {
		t.Fatalf("expected 7 US entries, got %d", len(usZones))
	}
	if all[len(all)-1] != FixedZone {
		t.Errorf("fixed zone should be listed last, got %+v", all[len(all)-1])
	}

	for _, entry := range all {
		t.Run(entry.DisplayName, func(t *testing.T) {
			zone, err := Lookup(entry.DisplayName)
			if err != nil {
				t.Fatalf("lookup failed: %s", err)
			}
			if zone == "" {
				t.Fatal("lookup returned empty zone")
			}
			if zone != entry.Zone {
				t.Errorf("expected %s, got %s", entry.Zone, zone)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, name := range []string{"", "Eastern", "eastern (est/edt)", "Mars"} {
		_, err := Lookup(name)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Lookup(%q): expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestEntriesIsCopy(t *testing.T) {
	all := Entries()
	all[0].Zone = "Europe/London"

	zone, err := Lookup(all[0].DisplayName)
	if err != nil {
		t.Fatal(err)
	}
	if zone != "US/Eastern" {
		t.Errorf("registry was mutated through Entries(): %s", zone)
	}
	if Entries()[0].Zone != "US/Eastern" {
		t.Error("registry table was mutated through Entries()")
	}
}
