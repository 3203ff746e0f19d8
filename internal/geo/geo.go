// Package geo contains pure geographic computation helpers.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const earthRadiusM = 6371000.0

// Point is a position in decimal degrees.
type Point struct {
	Lat float64 `json:"lat" mapstructure:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" mapstructure:"lng" validate:"gte=-180,lte=180"`
}

// ParsePoint parses a "lat,lng" string into a Point.
func ParsePoint(input string) (Point, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("invalid coordinate: %s", input)
	}

	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return Point{}, fmt.Errorf("invalid lat/lng: %s", input)
	}

	return Point{Lat: lat, Lng: lng}, nil
}

// DistanceMeters returns the great-circle (haversine) distance in metres
// between two points specified in decimal degrees.
func DistanceMeters(a, b Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusM * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Region is an accumulating bounding box used for viewport framing. The zero
// value is empty; Extend grows it to cover each added point.
type Region struct {
	SouthWest Point `json:"south_west"`
	NorthEast Point `json:"north_east"`

	set bool
}

func (r *Region) Extend(p Point) {
	if !r.set {
		r.SouthWest = p
		r.NorthEast = p
		r.set = true
		return
	}
	r.SouthWest.Lat = math.Min(r.SouthWest.Lat, p.Lat)
	r.SouthWest.Lng = math.Min(r.SouthWest.Lng, p.Lng)
	r.NorthEast.Lat = math.Max(r.NorthEast.Lat, p.Lat)
	r.NorthEast.Lng = math.Max(r.NorthEast.Lng, p.Lng)
}

func (r *Region) ExtendAll(points []Point) {
	for _, p := range points {
		r.Extend(p)
	}
}

// Empty reports whether no point has been added yet.
func (r Region) Empty() bool {
	return !r.set
}
