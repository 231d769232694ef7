package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/roofsolar/planner/pkg/core"
)

const geocodeOK = `{
  "status": "OK",
  "results": [{
    "formatted_address": "대한민국 서울특별시 중구 세종대로 110",
    "place_id": "ChIJzRy0Ru2ifDURpQ0EFMk6tR0",
    "geometry": {"location": {"lat": 37.5662952, "lng": 126.9779451}}
  }]
}`

func TestNew_Defaults(t *testing.T) {
	c := New(Options{APIKey: "key"})

	if c.geocodeURL != DefaultGeocodeURL {
		t.Errorf("expected geocodeURL=%s, got %s", DefaultGeocodeURL, c.geocodeURL)
	}
	if c.staticMapURL != DefaultStaticMapURL {
		t.Errorf("expected staticMapURL=%s, got %s", DefaultStaticMapURL, c.staticMapURL)
	}
	if c.httpClient.Timeout != DefaultTimeout {
		t.Errorf("expected timeout=%v, got %v", DefaultTimeout, c.httpClient.Timeout)
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New(Options{GeocodeURL: "http://localhost:5000/geo/", Timeout: time.Second})
	if c.geocodeURL != "http://localhost:5000/geo" {
		t.Errorf("expected trailing slash trimmed, got %s", c.geocodeURL)
	}
	if c.httpClient.Timeout != time.Second {
		t.Errorf("expected timeout=1s, got %v", c.httpClient.Timeout)
	}
}

func TestGeocode_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("address") != "세종대로 110" {
			t.Errorf("expected address=세종대로 110, got %s", q.Get("address"))
		}
		if q.Get("key") != "secret" {
			t.Errorf("expected key=secret, got %s", q.Get("key"))
		}
		if q.Get("region") != "kr" || q.Get("language") != "ko" {
			t.Errorf("expected region=kr language=ko, got %s %s", q.Get("region"), q.Get("language"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geocodeOK))
	}))
	defer server.Close()

	c := New(Options{APIKey: "secret", GeocodeURL: server.URL, Region: "kr", Language: "ko"})
	got, err := c.Geocode(context.Background(), "세종대로 110")
	if err != nil {
		t.Fatalf("Geocode failed: %v", err)
	}
	if got.FormattedAddress != "대한민국 서울특별시 중구 세종대로 110" {
		t.Errorf("unexpected address %q", got.FormattedAddress)
	}
	if got.Lat != 37.5662952 || got.Lng != 126.9779451 {
		t.Errorf("unexpected coordinates %f,%f", got.Lat, got.Lng)
	}
	if got.PlaceID != "ChIJzRy0Ru2ifDURpQ0EFMk6tR0" {
		t.Errorf("unexpected place id %q", got.PlaceID)
	}

	loc := got.Location()
	if loc != (core.Location{Address: got.FormattedAddress, Lat: got.Lat, Lng: got.Lng}) {
		t.Errorf("unexpected location %+v", loc)
	}
}

func TestGeocode_OmitsEmptyRegion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("region") || r.URL.Query().Has("language") {
			t.Errorf("expected no region/language, got %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(geocodeOK))
	}))
	defer server.Close()

	c := New(Options{APIKey: "secret", GeocodeURL: server.URL})
	if _, err := c.Geocode(context.Background(), "x"); err != nil {
		t.Fatalf("Geocode failed: %v", err)
	}
}

func TestGeocode_ZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer server.Close()

	c := New(Options{APIKey: "secret", GeocodeURL: server.URL})
	_, err := c.Geocode(context.Background(), "nowhere")
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestGeocode_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := New(Options{APIKey: "secret", GeocodeURL: server.URL})
	_, err := c.Geocode(context.Background(), "x")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusForbidden {
		t.Errorf("expected code 403, got %d", statusErr.Code)
	}
}

func TestGeocode_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	c := New(Options{APIKey: "secret", GeocodeURL: server.URL})
	if _, err := c.Geocode(context.Background(), "x"); err == nil {
		t.Error("expected error for invalid body")
	}
}

func TestGeocode_MissingKey(t *testing.T) {
	c := New(Options{})
	if _, err := c.Geocode(context.Background(), "x"); !errors.Is(err, ErrMissingKey) {
		t.Errorf("expected ErrMissingKey, got %v", err)
	}
	if _, _, err := c.StaticMap(context.Background(), core.ImageryRequest{}); !errors.Is(err, ErrMissingKey) {
		t.Errorf("expected ErrMissingKey, got %v", err)
	}
}

func TestGeocode_ServerDown(t *testing.T) {
	c := New(Options{APIKey: "secret", GeocodeURL: "http://localhost:59999"}) // unlikely to be listening
	if _, err := c.Geocode(context.Background(), "x"); err == nil {
		t.Error("expected error for unreachable server")
	}
}

func TestStaticMap_Success(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		expected := map[string]string{
			"center":  "37.5636,126.9759",
			"zoom":    "19",
			"size":    "600x400",
			"maptype": "satellite",
			"key":     "secret",
		}
		for k, v := range expected {
			if q.Get(k) != v {
				t.Errorf("expected %s=%s, got %s", k, v, q.Get(k))
			}
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	c := New(Options{APIKey: "secret", StaticMapURL: server.URL})
	data, contentType, err := c.StaticMap(context.Background(), core.ImageryRequest{
		Lat: 37.5636, Lng: 126.9759, Zoom: 19, Width: 600, Height: 400,
	})
	if err != nil {
		t.Fatalf("StaticMap failed: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("unexpected payload %v", data)
	}
	if contentType != "image/png" {
		t.Errorf("expected image/png, got %s", contentType)
	}
}

func TestStaticMap_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c := New(Options{APIKey: "secret", StaticMapURL: server.URL})
	_, _, err := c.StaticMap(context.Background(), core.ImageryRequest{Zoom: 19, Width: 1, Height: 1})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusBadRequest {
		t.Fatalf("expected StatusError 400, got %v", err)
	}
	if statusErr.Error() != "static maps returned status 400 Bad Request" {
		t.Errorf("unexpected message %q", statusErr.Error())
	}
}
