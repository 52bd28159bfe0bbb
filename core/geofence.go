package core

import (
	"math"

	"timeclock/models"
)

// earthRadiusM is the mean Earth radius used by the haversine formula.
const earthRadiusM = 6371000.0

// GeofenceConfig is the authorized circular region punches are
// validated against.
type GeofenceConfig struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// ClassifyLocation decides whether a punch coordinate falls inside the
// geofence. Missing or malformed coordinates yield UNDETERMINED, which
// is an accepted outcome: a phone without a GPS fix must still be able
// to punch. The boundary is inclusive.
func ClassifyLocation(lat, lon *float64, fence GeofenceConfig) models.GeofenceVerdict {
	if lat == nil || lon == nil {
		return models.GeofenceUndetermined
	}
	if !validCoordinate(*lat, *lon) {
		return models.GeofenceUndetermined
	}
	dist := haversineMeters(*lat, *lon, fence.Latitude, fence.Longitude)
	if dist <= fence.RadiusMeters {
		return models.GeofenceInside
	}
	return models.GeofenceOutside
}

func validCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// haversineMeters computes the great-circle distance between two
// coordinate pairs.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 {
		return deg * math.Pi / 180
	}
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}
