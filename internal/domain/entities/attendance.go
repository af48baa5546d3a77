package entities

import "time"

// StatusPresent is the only attendance status written today.
const StatusPresent = "present"

// AttendanceRecord is written exactly once per admitted check-in and is
// never mutated or deleted afterwards. Name and email are denormalized
// so reports survive later profile changes.
type AttendanceRecord struct {
	ID          string
	EventID     string
	UserID      string
	UserName    string
	UserEmail   string
	DeviceID    string
	Location    Location
	CheckedInAt time.Time
	Status      string
	CreatedAt   time.Time
}
