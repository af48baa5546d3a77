package input

import (
	"context"
	"time"

	"presence/internal/domain/entities"
)

// IssuedEvent is a freshly created event together with its check-in
// token and the URL of the externally rendered QR image.
type IssuedEvent struct {
	Event    *entities.Event
	Token    string
	ImageURL string
}

type EventUseCase interface {
	CreateEvent(ctx context.Context, name string, start, end time.Time, createdBy string, fixed *entities.Location, radiusMeters float64) (*IssuedEvent, error)
	GetEventByID(ctx context.Context, id string) (*entities.Event, error)
	GetUserAttendance(ctx context.Context, userID string) ([]entities.AttendanceRecord, error)
}
