// README: OSRM route client; decodes polyline geometry and fails soft.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"googlemaps.github.io/maps"

	"trackmap/internal/geo"
)

const defaultTimeout = 10 * time.Second

// RouteResult is one routed leg. The zero value means "no route available"
// and is what every failure degrades to.
type RouteResult struct {
	Geometry        []geo.Point
	DistanceMeters  float64
	DurationSeconds float64
}

// Client performs route lookups against an OSRM-compatible HTTP server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for a base URL like
// "https://router.project-osrm.org/route/v1/driving".
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// osrmResponse is the only shape accepted from the routing service. Fields
// outside it (waypoints, legs) are ignored.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// FetchRoute requests a route between two points. The wire format wants
// lng,lat pairs. Any failure (network, bad status, malformed body, no routes,
// undecodable polyline) is logged and returns the zero RouteResult; a routing
// outage must degrade the display, never crash it.
func (c *Client) FetchRoute(ctx context.Context, from, to geo.Point) RouteResult {
	url := fmt.Sprintf("%s/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=polyline",
		c.baseURL, from.Lng, from.Lat, to.Lng, to.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return failSoft("build request", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return failSoft("request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failSoft("request", fmt.Errorf("routing service returned %d", resp.StatusCode))
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return failSoft("decode response", err)
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return failSoft("route lookup", fmt.Errorf("code=%q routes=%d", parsed.Code, len(parsed.Routes)))
	}

	// First candidate only; the service's own ranking decides ties.
	route := parsed.Routes[0]
	latLngs, err := maps.DecodePolyline(route.Geometry)
	if err != nil {
		return failSoft("decode polyline", err)
	}

	points := make([]geo.Point, len(latLngs))
	for i, ll := range latLngs {
		points[i] = geo.Point{Lat: ll.Lat, Lng: ll.Lng}
	}

	return RouteResult{
		Geometry:        points,
		DistanceMeters:  route.Distance,
		DurationSeconds: route.Duration,
	}
}

func failSoft(stage string, err error) RouteResult {
	log.Printf("routing: %s failed: %v", stage, err)
	return RouteResult{}
}
