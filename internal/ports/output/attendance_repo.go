package output

import (
	"context"

	"presence/internal/domain/entities"
)

type AttendanceRepository interface {
	// Create persists a record. Implementations must enforce uniqueness on
	// (event, user) and return domain.ErrDuplicateCheckIn when a record for
	// the pair already exists, so concurrent submissions admit exactly one.
	Create(ctx context.Context, record *entities.AttendanceRecord) error
	// FindByEventIDAndUserID returns (nil, nil) when no record exists.
	FindByEventIDAndUserID(ctx context.Context, eventID, userID string) (*entities.AttendanceRecord, error)
	FindByUserID(ctx context.Context, userID string) ([]entities.AttendanceRecord, error)
	FindByEventIDs(ctx context.Context, eventIDs []string) ([]entities.AttendanceRecord, error)
}
