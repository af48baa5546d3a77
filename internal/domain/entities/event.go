package entities

import "time"

// Location is a WGS84 coordinate pair. Accuracy is the device-reported
// precision in meters, zero when unknown.
type Location struct {
	Lat      float64
	Lng      float64
	Accuracy float64
}

type Event struct {
	ID                  string
	Name                string
	StartTime           time.Time
	EndTime             time.Time
	CreatedBy           string
	Active              bool
	AttendeeCount       int
	FixedLocation       *Location // nil = no geofence for this event
	AllowedRadiusMeters float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (e *Event) HasGeofence() bool {
	return e.FixedLocation != nil && e.AllowedRadiusMeters > 0
}
