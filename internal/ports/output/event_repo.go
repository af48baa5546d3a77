package output

import (
	"context"
	"time"

	"presence/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id string) (*entities.Event, error)
	FindCreatedBetween(ctx context.Context, from, to time.Time) ([]entities.Event, error)
	// IncrementAttendeeCount bumps the advisory attendee tally. It is not
	// part of the check-in write and may fail without invalidating it.
	IncrementAttendeeCount(ctx context.Context, eventID string) error
}
