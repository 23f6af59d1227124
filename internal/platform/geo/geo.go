// Package geo provides the planar distance approximation used to rank
// providers by proximity.
//
// The formula is a small-angle flat-earth approximation: one degree of
// latitude is taken as 111 km, and one degree of longitude as 111 km scaled
// by cos(origin latitude). It is accurate for the short ranges this app deals
// in (tens of km) and deliberately NOT a great-circle formula; ranked output
// depends on these exact values, so do not swap in haversine.
package geo

import "math"

// kmPerDegree is the approximate surface distance of one degree of latitude.
const kmPerDegree = 111.0

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lng float64
}

// DistanceKm returns the approximate planar distance in kilometers between
// origin and p. Longitude is scaled by the cosine of the origin latitude.
func DistanceKm(origin, p Point) float64 {
	dLat := (p.Lat - origin.Lat) * kmPerDegree
	dLng := (p.Lng - origin.Lng) * kmPerDegree * math.Cos(origin.Lat*math.Pi/180)
	return math.Sqrt(dLat*dLat + dLng*dLng)
}
