// README: Progress estimation and duration formatting for the tracking display.
package progress

import (
	"fmt"
	"math"

	"trackmap/internal/geo"
)

// InactiveMessage is shown instead of a percentage when the vehicle is not
// routing toward the destination.
const InactiveMessage = "vehicle is not routing to the destination"

// Progress is a two-variant value: either an active percentage or the fixed
// inactive message. Callers must check Active before using Percent.
type Progress struct {
	Active  bool
	Percent float64
}

// Estimate derives the completion percentage of a trip. routeDistance is the
// road-route length in metres and acts only as a zero gate; the percentage
// denominator is the straight-line start→end distance. This mirrors the
// historical display behaviour and may understate true route progress (see
// DESIGN.md).
func Estimate(vehicle, start, end geo.Point, routeDistance float64, isRouting bool) Progress {
	if !isRouting {
		return Progress{}
	}
	if routeDistance <= 0 {
		return Progress{Active: true}
	}

	distanceToTarget := geo.DistanceMeters(vehicle, end)
	totalDistance := geo.DistanceMeters(start, end)
	covered := totalDistance - distanceToTarget

	percent := covered / totalDistance * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return Progress{Active: true, Percent: percent}
}

// Display returns the value ready for the status panel: the percentage with
// two decimals, or the inactive message verbatim.
func (p Progress) Display() string {
	if !p.Active {
		return InactiveMessage
	}
	return fmt.Sprintf("%.2f", p.Percent)
}

// FormatDuration renders a duration in seconds as "<H>h <M>m", flooring to
// whole minutes. Non-positive or NaN input renders as "0h 0m".
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || seconds <= 0 {
		return "0h 0m"
	}
	minutes := int(seconds / 60)
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
