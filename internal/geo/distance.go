// Package geo holds the geometry helpers and the arrival threshold table.
package geo

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the mean Earth radius used for all distances
const EarthRadiusMeters = 6371000.0

// Distance returns the great-circle distance between two points in meters
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Interpolate returns the point at fraction f (0..1) along the great circle
// from point 1 to point 2
func Interpolate(f, lat1, lon1, lat2, lon2 float64) (float64, float64) {
	if f <= 0 {
		return lat1, lon1
	}
	if f >= 1 {
		return lat2, lon2
	}
	a := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lon1))
	b := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lon2))
	ll := s2.LatLngFromPoint(s2.Interpolate(f, a, b))
	return ll.Lat.Degrees(), ll.Lng.Degrees()
}

// Offset moves a point by north/east meters. Used for simulated GPS jitter;
// the flat approximation is fine at that scale.
func Offset(lat, lon, northMeters, eastMeters float64) (float64, float64) {
	ll := s2.LatLngFromDegrees(lat, lon)
	cos := math.Cos(ll.Lat.Radians())
	if cos < 1e-9 {
		return lat, lon
	}
	ll.Lat += s1.Angle(northMeters / EarthRadiusMeters)
	ll.Lng += s1.Angle(eastMeters / (EarthRadiusMeters * cos))
	ll = ll.Normalized()
	return ll.Lat.Degrees(), ll.Lng.Degrees()
}
