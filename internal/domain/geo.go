package domain

import "math"

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

const earthRadiusMiles = 3958.8

// DistanceMiles returns the great-circle distance to another point using the
// haversine formula.
func (p GeoPoint) DistanceMiles(other GeoPoint) float64 {
	dLat := (other.Lat - p.Lat) * (math.Pi / 180.0)
	dLon := (other.Lon - p.Lon) * (math.Pi / 180.0)
	lat1Rad := p.Lat * (math.Pi / 180.0)
	lat2Rad := other.Lat * (math.Pi / 180.0)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}
