package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"presence/internal/domain"
	"presence/internal/domain/entities"
	"presence/internal/ports/input"
	"presence/internal/ports/output"
	"presence/internal/qrtoken"
)

var _ input.EventUseCase = (*EventService)(nil)

type EventService struct {
	eventRepo      output.EventRepository
	attendanceRepo output.AttendanceRepository
	qrImageBaseURL string
}

func NewEventService(
	eventRepo output.EventRepository,
	attendanceRepo output.AttendanceRepository,
	qrImageBaseURL string,
) *EventService {
	return &EventService{
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		qrImageBaseURL: qrImageBaseURL,
	}
}

// CreateEvent persists a new event and issues its check-in token. The
// token expires with the event's end time.
func (s *EventService) CreateEvent(ctx context.Context, name string, start, end time.Time, createdBy string, fixed *entities.Location, radiusMeters float64) (*input.IssuedEvent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEventNameRequired
	}
	if !end.After(start) {
		return nil, domain.ErrInvalidEventWindow
	}
	event := &entities.Event{
		ID:                  uuid.NewString(),
		Name:                name,
		StartTime:           start,
		EndTime:             end,
		CreatedBy:           createdBy,
		Active:              true,
		AttendeeCount:       0,
		FixedLocation:       fixed,
		AllowedRadiusMeters: radiusMeters,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	token := qrtoken.Encode(event.ID, event.EndTime)
	return &input.IssuedEvent{
		Event:    event,
		Token:    token,
		ImageURL: qrtoken.ImageURL(s.qrImageBaseURL, token),
	}, nil
}

func (s *EventService) GetEventByID(ctx context.Context, id string) (*entities.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

func (s *EventService) GetUserAttendance(ctx context.Context, userID string) ([]entities.AttendanceRecord, error) {
	return s.attendanceRepo.FindByUserID(ctx, userID)
}
