package routing

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trackmap/internal/geo"
)

// Canonical encoded-polyline sample: (38.5,-120.2) (40.7,-120.95) (43.252,-126.453).
const samplePolyline = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

func TestFetchRoute_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"waypoints": [{"name": "ignored"}],
			"routes": [
				{"geometry": "` + samplePolyline + `", "distance": 1234.5, "duration": 678.9, "legs": []},
				{"geometry": "ignored", "distance": 9999, "duration": 9999}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	got := c.FetchRoute(context.Background(), geo.Point{Lat: 4.711296, Lng: -74.072017}, geo.Point{Lat: 10.964030, Lng: -74.796524})

	// Wire order is lng,lat for both endpoints.
	if !strings.Contains(gotPath, "-74.072017,4.711296;-74.796524,10.964030") {
		t.Errorf("unexpected request path: %s", gotPath)
	}
	if !strings.Contains(gotPath, "overview=full") || !strings.Contains(gotPath, "geometries=polyline") {
		t.Errorf("missing query parameters: %s", gotPath)
	}

	if got.DistanceMeters != 1234.5 || got.DurationSeconds != 678.9 {
		t.Errorf("unexpected distance/duration: %+v", got)
	}
	if len(got.Geometry) != 3 {
		t.Fatalf("expected 3 geometry points, got %d", len(got.Geometry))
	}
	want := []geo.Point{
		{Lat: 38.5, Lng: -120.2},
		{Lat: 40.7, Lng: -120.95},
		{Lat: 43.252, Lng: -126.453},
	}
	for i, p := range want {
		if math.Abs(got.Geometry[i].Lat-p.Lat) > 1e-5 || math.Abs(got.Geometry[i].Lng-p.Lng) > 1e-5 {
			t.Errorf("geometry[%d] = %v, want %v", i, got.Geometry[i], p)
		}
	}
}

func TestFetchRoute_FailSoft(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "no routes",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"code": "Ok", "routes": []}`))
			},
		},
		{
			name: "service error code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"code": "Ok", "routes": [`))
			},
		},
		{
			name: "http 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "html error page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>502 Bad Gateway</html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(srv.URL, time.Second)
			got := c.FetchRoute(context.Background(), geo.Point{Lat: 1, Lng: 2}, geo.Point{Lat: 3, Lng: 4})
			if got.DistanceMeters != 0 || got.DurationSeconds != 0 || len(got.Geometry) != 0 {
				t.Errorf("expected zero RouteResult, got %+v", got)
			}
		})
	}
}

func TestFetchRoute_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, time.Second)
	got := c.FetchRoute(context.Background(), geo.Point{Lat: 1, Lng: 2}, geo.Point{Lat: 3, Lng: 4})
	if got.DistanceMeters != 0 || len(got.Geometry) != 0 {
		t.Errorf("expected zero RouteResult, got %+v", got)
	}
}
