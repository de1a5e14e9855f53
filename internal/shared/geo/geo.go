package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius used for all great-circle math.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between two
// points given as latitude/longitude degrees.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// WithinRadiusM reports whether the point is within radiusM meters of the
// center, measured along the great circle.
func WithinRadiusM(centerLat, centerLng, lat, lng, radiusM float64) bool {
	center := s2.LatLngFromDegrees(centerLat, centerLng)
	point := s2.LatLngFromDegrees(lat, lng)
	distanceM := center.Distance(point).Radians() * EarthRadiusKm * 1000
	return distanceM <= radiusM
}

// DestinationPoint returns the latitude/longitude reached by travelling
// distanceKm from the start point along the given initial bearing (degrees,
// 0 = north, 90 = east).
func DestinationPoint(lat, lng, bearingDeg, distanceKm float64) (float64, float64) {
	latRad := lat * math.Pi / 180
	lngRad := lng * math.Pi / 180
	bearing := bearingDeg * math.Pi / 180
	angular := distanceKm / EarthRadiusKm

	lat2 := math.Asin(math.Sin(latRad)*math.Cos(angular) +
		math.Cos(latRad)*math.Sin(angular)*math.Cos(bearing))
	lng2 := lngRad + math.Atan2(
		math.Sin(bearing)*math.Sin(angular)*math.Cos(latRad),
		math.Cos(angular)-math.Sin(latRad)*math.Sin(lat2))

	lat2Deg := lat2 * 180 / math.Pi
	lng2Deg := lng2 * 180 / math.Pi
	// normalize longitude to -180..180
	lng2Deg = math.Mod(lng2Deg+540, 360) - 180
	return lat2Deg, lng2Deg
}
