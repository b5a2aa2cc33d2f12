// Package geocode turns free-text place names into coordinates using an
// OpenStreetMap Nominatim server.
package geocode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"worldclock/codec"
	"worldclock/geo"
)

const maxResponseBytes = 1 << 20

type Nominatim struct {
	searchUrl string
	userAgent string
	client    *http.Client
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatim returns a client for the server at baseUrl. The timeout of a
// single lookup is taken from the context passed to Geocode, so client may
// be nil.
func NewNominatim(baseUrl, userAgent string, client *http.Client) (*Nominatim, error) {
	parsed, err := url.Parse(baseUrl)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("invalid geocoding url '%s'", baseUrl)
	}
	if userAgent == "" {
		return nil, fmt.Errorf("geocoding user agent must not be empty")
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/") + "/search"
	parsed.RawQuery = ""
	if client == nil {
		client = &http.Client{}
	}
	return &Nominatim{
		searchUrl: parsed.String(),
		userAgent: userAgent,
		client:    client,
	}, nil
}

// Geocode asks for the single best match for query. ok is false when the
// server has no match.
func (n *Nominatim) Geocode(ctx context.Context, query string) (location geo.Location, ok bool, err error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.searchUrl+"?"+params.Encode(), nil)
	if err != nil {
		return geo.Location{}, false, err
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return geo.Location{}, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return geo.Location{}, false, fmt.Errorf("geocoder responded %s", resp.Status)
	}

	var places []nominatimPlace
	if err := codec.JSONUnmarshalRead(io.LimitReader(resp.Body, maxResponseBytes), &places); err != nil {
		return geo.Location{}, false, fmt.Errorf("decoding geocoder response: %w", err)
	}
	if len(places) == 0 {
		return geo.Location{}, false, nil
	}

	place := places[0]
	lat, err := strconv.ParseFloat(place.Lat, 64)
	if err != nil {
		return geo.Location{}, false, fmt.Errorf("bad latitude '%s': %w", place.Lat, err)
	}
	lon, err := strconv.ParseFloat(place.Lon, 64)
	if err != nil {
		return geo.Location{}, false, fmt.Errorf("bad longitude '%s': %w", place.Lon, err)
	}
	location = geo.Location{Latitude: lat, Longitude: lon}
	if !location.Valid() {
		return geo.Location{}, false, fmt.Errorf("geocoder returned out of range coordinate %s", location)
	}

	log.Debugf("Geocode: '%s' -> %s (%s)", query, location, place.DisplayName)
	return location, true, nil
}
