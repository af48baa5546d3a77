package geo

import (
	"math"

	"presence/internal/domain"
	"presence/internal/domain/entities"
)

// EarthRadiusMeters is the spherical-Earth approximation radius.
const EarthRadiusMeters = 6371000.0

// DistanceMeters computes the great-circle distance between two points
// with the haversine formula. Latitudes outside [-90, 90] or longitudes
// outside [-180, 180] are a caller error, never clamped.
func DistanceMeters(a, b entities.Location) (float64, error) {
	if !inRange(a) || !inRange(b) {
		return 0, domain.ErrInvalidCoordinates
	}
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMeters * c, nil
}

func inRange(p entities.Location) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

func toRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
