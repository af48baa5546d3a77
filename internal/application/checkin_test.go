package application

import (
	"context"
	"encoding/base64"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"presence/internal/domain"
	"presence/internal/domain/entities"
	"presence/internal/qrtoken"
)

var (
	eventStart = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	eventEnd   = time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)
	midEvent   = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
)

func testUser() *entities.User {
	return &entities.User{
		ID:       "user-1",
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Role:     entities.RoleAttendee,
		DeviceID: "dev_abc123",
	}
}

func seedEvent(t *testing.T, events *memEventRepo, fixed *entities.Location, radius float64) *entities.Event {
	t.Helper()
	ev := &entities.Event{
		ID:                  "evt-1",
		Name:                "Staff Meeting",
		StartTime:           eventStart,
		EndTime:             eventEnd,
		CreatedBy:           "admin-1",
		Active:              true,
		FixedLocation:       fixed,
		AllowedRadiusMeters: radius,
	}
	require.NoError(t, events.Create(context.Background(), ev))
	return ev
}

func newCheckInFixture(t *testing.T, now time.Time) (*CheckInService, *memEventRepo, *memAttendanceRepo) {
	t.Helper()
	events := newMemEventRepo()
	att := newMemAttendanceRepo()
	svc := NewCheckInService(events, att, fakeClock{now: now}, zap.NewNop().Sugar())
	return svc, events, att
}

func here() *entities.Location {
	return &entities.Location{Lat: 6.5244, Lng: 3.3792, Accuracy: 10}
}

func TestSubmitCheckInGateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("empty input is rejected before anything else", func(t *testing.T) {
		svc, _, _ := newCheckInFixture(t, midEvent)
		_, err := svc.SubmitCheckIn(ctx, testUser(), "   ", nil)
		assert.ErrorIs(t, err, domain.ErrMissingToken)
	})

	t.Run("location is mandatory", func(t *testing.T) {
		svc, events, _ := newCheckInFixture(t, midEvent)
		seedEvent(t, events, nil, 0)
		_, err := svc.SubmitCheckIn(ctx, testUser(), "evt-1", nil)
		assert.ErrorIs(t, err, domain.ErrLocationUnavailable)
	})

	t.Run("json payload without event id is malformed", func(t *testing.T) {
		svc, _, _ := newCheckInFixture(t, midEvent)
		raw := base64.StdEncoding.EncodeToString([]byte(`{"foo":1}`))
		_, err := svc.SubmitCheckIn(ctx, testUser(), raw, here())
		assert.ErrorIs(t, err, domain.ErrMalformedToken)
	})

	t.Run("nil user is unauthenticated", func(t *testing.T) {
		svc, events, _ := newCheckInFixture(t, midEvent)
		seedEvent(t, events, nil, 0)
		_, err := svc.SubmitCheckIn(ctx, nil, "evt-1", here())
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("user without a stable id is unauthenticated", func(t *testing.T) {
		svc, events, _ := newCheckInFixture(t, midEvent)
		seedEvent(t, events, nil, 0)
		_, err := svc.SubmitCheckIn(ctx, &entities.User{}, "evt-1", here())
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("token expiry is checked before the event is loaded", func(t *testing.T) {
		svc, _, _ := newCheckInFixture(t, time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC))
		token := qrtoken.Encode("ghost", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		_, err := svc.SubmitCheckIn(ctx, testUser(), token, here())
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _, _ := newCheckInFixture(t, midEvent)
		_, err := svc.SubmitCheckIn(ctx, testUser(), "ghost", here())
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

func TestSubmitCheckInTimeWindow(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"one minute before start", time.Date(2024, 3, 1, 8, 59, 0, 0, time.UTC), domain.ErrEventNotStarted},
		{"one minute after end", time.Date(2024, 3, 1, 11, 1, 0, 0, time.UTC), domain.ErrEventEnded},
		{"mid event", midEvent, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, events, _ := newCheckInFixture(t, tt.now)
			seedEvent(t, events, nil, 0)
			_, err := svc.SubmitCheckIn(ctx, testUser(), "evt-1", here())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmitCheckInSuccess(t *testing.T) {
	ctx := context.Background()
	svc, events, att := newCheckInFixture(t, midEvent)
	seedEvent(t, events, nil, 0)

	rec, err := svc.SubmitCheckIn(ctx, testUser(), "evt-1", here())
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "evt-1", rec.EventID)
	assert.Equal(t, "user-1", rec.UserID)
	assert.Equal(t, "Ada Lovelace", rec.UserName)
	assert.Equal(t, "ada@example.com", rec.UserEmail)
	assert.Equal(t, "dev_abc123", rec.DeviceID)
	assert.Equal(t, *here(), rec.Location)
	assert.True(t, rec.CheckedInAt.Equal(midEvent))
	assert.Equal(t, entities.StatusPresent, rec.Status)

	assert.Len(t, att.records, 1)
	assert.Equal(t, 1, events.increments["evt-1"])
}

func TestSubmitCheckInEncodedTokenShapes(t *testing.T) {
	ctx := context.Background()
	encoded := qrtoken.Encode("evt-1", eventEnd)
	inputs := map[string]string{
		"bare event id": "evt-1",
		"base64 json":   encoded,
		"renderer url":  "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=" + encoded,
	}
	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			svc, events, _ := newCheckInFixture(t, midEvent)
			seedEvent(t, events, nil, 0)
			rec, err := svc.SubmitCheckIn(ctx, testUser(), raw, here())
			require.NoError(t, err)
			assert.Equal(t, "evt-1", rec.EventID)
		})
	}
}

func TestSubmitCheckInDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, events, att := newCheckInFixture(t, midEvent)
	seedEvent(t, events, nil, 0)

	_, err := svc.SubmitCheckIn(ctx, testUser(), "evt-1", here())
	require.NoError(t, err)

	_, err = svc.SubmitCheckIn(ctx, testUser(), "evt-1", here())
	assert.ErrorIs(t, err, domain.ErrDuplicateCheckIn)
	assert.Len(t, att.records, 1)
	assert.Equal(t, 1, events.increments["evt-1"])
}

func TestSubmitCheckInGeofence(t *testing.T) {
	ctx := context.Background()
	fixed := &entities.Location{Lat: 6.5244, Lng: 3.3792}

	t.Run("80m away with a 50m radius is rejected", func(t *testing.T) {
		svc, events, _ := newCheckInFixture(t, midEvent)
		seedEvent(t, events, fixed, 50)
		reported := &entities.Location{Lat: 6.52512, Lng: 3.3792, Accuracy: 5}
		_, err := svc.SubmitCheckIn(ctx, testUser(), "evt-1", reported)
		assert.ErrorIs(t, err, domain.ErrOutsideGeofence)
	})

	t.Run("30m away with a 50m radius passes", func(t *testing.T) {
		svc, events, _ := newCheckInFixture(t, midEvent)
		seedEvent(t, events, fixed, 50)
		reported := &entities.Location{Lat: 6.52467, Lng: 3.3792, Accuracy: 5}
		_, err := svc.SubmitCheckIn(ctx, testUser(), "evt-1", reported)
		assert.NoError(t, err)
	})

	t.Run("no fixed location skips the check entirely", func(t *testing.T) {
		svc, events, _ := newCheckInFixture(t, midEvent)
		seedEvent(t, events, nil, 50)
		reported := &entities.Location{Lat: 48.8566, Lng: 2.3522}
		_, err := svc.SubmitCheckIn(ctx, testUser(), "evt-1", reported)
		assert.NoError(t, err)
	})
}

func TestSubmitCheckInCounterIsBestEffort(t *testing.T) {
	ctx := context.Background()
	svc, events, att := newCheckInFixture(t, midEvent)
	seedEvent(t, events, nil, 0)
	events.failIncrement = true

	rec, err := svc.SubmitCheckIn(ctx, testUser(), "evt-1", here())
	require.NoError(t, err)
	assert.NotNil(t, rec)
	assert.Len(t, att.records, 1)
}

func TestSubmitCheckInPersistenceFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate lookup failure", func(t *testing.T) {
		svc, events, att := newCheckInFixture(t, midEvent)
		seedEvent(t, events, nil, 0)
		att.findErr = assert.AnError
		_, err := svc.SubmitCheckIn(ctx, testUser(), "evt-1", here())
		assert.ErrorIs(t, err, domain.ErrPersistence)
	})

	t.Run("write failure", func(t *testing.T) {
		svc, events, att := newCheckInFixture(t, midEvent)
		seedEvent(t, events, nil, 0)
		att.createErr = assert.AnError
		_, err := svc.SubmitCheckIn(ctx, testUser(), "evt-1", here())
		assert.ErrorIs(t, err, domain.ErrPersistence)
	})
}

func TestSubmitCheckInConcurrentSameUser(t *testing.T) {
	ctx := context.Background()
	svc, events, att := newCheckInFixture(t, midEvent)
	seedEvent(t, events, nil, 0)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SubmitCheckIn(ctx, testUser(), "evt-1", here())
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case domain.Code(err) == "duplicate_checkin":
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one submission must win")
	assert.Equal(t, attempts-1, dup)
	assert.Len(t, att.records, 1)
}
