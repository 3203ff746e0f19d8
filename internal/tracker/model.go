// README: Tracking inputs and the view published to the presentation layer.
package tracker

import (
	"time"

	"trackmap/internal/geo"
)

// Inputs is the live input set for one tracked trip. IsRouting true means the
// vehicle travels toward End; false means it travels back toward Start and no
// percentage is computed.
type Inputs struct {
	Start     geo.Point
	End       geo.Point
	Vehicle   geo.Point
	IsRouting bool
}

// Snapshot holds the display-ready strings for the status panel.
type Snapshot struct {
	TotalDistanceKm    string `json:"total_distance_km"`
	VehicleToTargetKm  string `json:"vehicle_to_target_km"`
	ProgressPercent    string `json:"progress_percent"`
	EstimatedTime      string `json:"estimated_time"`
	TotalEstimatedTime string `json:"total_estimated_time"`
}

// Dashed-polyline colors for the vehicle→target route.
const (
	RoutingColor   = "#2f9e44"
	ReturningColor = "#e8590c"
)

// View is everything one refresh cycle hands to the rendering layer: the
// snapshot, both polylines, the viewport bounds, and a warning flag raised
// when the route could not be calculated. It is replaced wholesale; a failed
// cycle leaves the previous View in place.
type View struct {
	Snapshot          Snapshot    `json:"snapshot"`
	FullRoute         []geo.Point `json:"full_route"`
	CurrentRoute      []geo.Point `json:"current_route"`
	CurrentRouteColor string      `json:"current_route_color"`
	Bounds            geo.Region  `json:"bounds"`
	RouteUnavailable  bool        `json:"route_unavailable"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
