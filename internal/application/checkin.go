package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"presence/internal/domain"
	"presence/internal/domain/entities"
	"presence/internal/geo"
	"presence/internal/ports/input"
	"presence/internal/ports/output"
	"presence/internal/qrtoken"
)

var _ input.CheckInUseCase = (*CheckInService)(nil)

// CheckInService admits or rejects attendance claims. Gates run in a
// fixed order and short-circuit on the first failure; nothing is
// written before every gate has passed.
type CheckInService struct {
	eventRepo      output.EventRepository
	attendanceRepo output.AttendanceRepository
	clock          output.Clock
	logger         *zap.SugaredLogger
}

func NewCheckInService(
	eventRepo output.EventRepository,
	attendanceRepo output.AttendanceRepository,
	clock output.Clock,
	logger *zap.SugaredLogger,
) *CheckInService {
	return &CheckInService{
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		clock:          clock,
		logger:         logger,
	}
}

func (s *CheckInService) SubmitCheckIn(ctx context.Context, user *entities.User, rawScanInput string, reported *entities.Location) (*entities.AttendanceRecord, error) {
	if strings.TrimSpace(rawScanInput) == "" {
		return nil, domain.ErrMissingToken
	}
	if reported == nil {
		return nil, domain.ErrLocationUnavailable
	}
	token, err := qrtoken.Decode(rawScanInput)
	if err != nil {
		return nil, domain.ErrMalformedToken
	}
	if user == nil || user.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	now := s.clock.Now()
	if token.Expired(now) {
		return nil, domain.ErrTokenExpired
	}
	event, err := s.eventRepo.FindByID(ctx, token.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: find event: %v", domain.ErrPersistence, err)
	}
	if now.After(event.EndTime) {
		return nil, domain.ErrEventEnded
	}
	if now.Before(event.StartTime) {
		return nil, domain.ErrEventNotStarted
	}
	existing, err := s.attendanceRepo.FindByEventIDAndUserID(ctx, event.ID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: find attendance: %v", domain.ErrPersistence, err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateCheckIn
	}
	if event.HasGeofence() {
		d, err := geo.DistanceMeters(*reported, *event.FixedLocation)
		if err != nil {
			return nil, err
		}
		if d > event.AllowedRadiusMeters {
			return nil, domain.ErrOutsideGeofence
		}
	}
	record := &entities.AttendanceRecord{
		ID:          uuid.NewString(),
		EventID:     event.ID,
		UserID:      user.ID,
		UserName:    user.Name,
		UserEmail:   user.Email,
		DeviceID:    user.DeviceID,
		Location:    *reported,
		CheckedInAt: now,
		Status:      entities.StatusPresent,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		if errors.Is(err, domain.ErrDuplicateCheckIn) {
			// A concurrent submission won the race; same outcome for the caller.
			return nil, domain.ErrDuplicateCheckIn
		}
		return nil, fmt.Errorf("%w: create attendance: %v", domain.ErrPersistence, err)
	}
	// Best-effort tally: the record is already durable.
	if err := s.eventRepo.IncrementAttendeeCount(ctx, event.ID); err != nil {
		s.logger.Warnw("incrément du compteur de participants échoué",
			"event_id", event.ID, "error", err)
	}
	return record, nil
}
