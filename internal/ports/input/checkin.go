package input

import (
	"context"

	"presence/internal/domain/entities"
)

// CheckInUseCase admits or rejects an attendance claim. The caller (the
// presentation layer) supplies the authenticated user, the raw scanned
// text and the device's geolocation reading.
type CheckInUseCase interface {
	SubmitCheckIn(ctx context.Context, user *entities.User, rawScanInput string, reported *entities.Location) (*entities.AttendanceRecord, error)
}
