package database

import (
	"presence/internal/domain/entities"
)

// locationFromColumns rebuilds an optional fixed location from its
// nullable column pair. Both must be present for a geofence to exist.
func locationFromColumns(lat, lng *float64) *entities.Location {
	if lat == nil || lng == nil {
		return nil
	}
	return &entities.Location{Lat: *lat, Lng: *lng}
}

// locationColumns splits an optional fixed location into the nullable
// column pair stored on events.
func locationColumns(loc *entities.Location) (*float64, *float64) {
	if loc == nil {
		return nil, nil
	}
	lat, lng := loc.Lat, loc.Lng
	return &lat, &lng
}
