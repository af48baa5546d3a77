package entities

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleAttendee UserRole = "attendee"
)

// User is an account as the engine sees it. Registration and password
// management happen outside; this core only reads profiles and mutates
// the device binding.
type User struct {
	ID             string
	Name           string
	Email          string
	Role           UserRole
	DeviceID       string // bound device identifier, empty until first login
	DeviceVerified bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
