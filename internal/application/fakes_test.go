package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"presence/internal/domain"
	"presence/internal/domain/entities"
	"presence/internal/ports/output"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

type memEventRepo struct {
	mu            sync.Mutex
	events        map[string]*entities.Event
	increments    map[string]int
	failIncrement bool
	findErr       error
	queryErr      error
}

var _ output.EventRepository = (*memEventRepo)(nil)

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{
		events:     map[string]*entities.Event{},
		increments: map[string]int{},
	}
}

func (r *memEventRepo) Create(_ context.Context, event *entities.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *memEventRepo) FindByID(_ context.Context, id string) (*entities.Event, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	cp := *ev
	return &cp, nil
}

func (r *memEventRepo) FindCreatedBetween(_ context.Context, from, to time.Time) ([]entities.Event, error) {
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Event
	for _, ev := range r.events {
		if !ev.CreatedAt.Before(from) && !ev.CreatedAt.After(to) {
			out = append(out, *ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memEventRepo) IncrementAttendeeCount(_ context.Context, eventID string) error {
	if r.failIncrement {
		return domain.ErrPersistence
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.increments[eventID]++
	if ev, ok := r.events[eventID]; ok {
		ev.AttendeeCount++
	}
	return nil
}

type memAttendanceRepo struct {
	mu        sync.Mutex
	records   map[string]entities.AttendanceRecord // keyed by eventID|userID
	batches   [][]string
	createErr error
	findErr   error
}

var _ output.AttendanceRepository = (*memAttendanceRepo)(nil)

func newMemAttendanceRepo() *memAttendanceRepo {
	return &memAttendanceRepo{records: map[string]entities.AttendanceRecord{}}
}

func pairKey(eventID, userID string) string { return eventID + "|" + userID }

func (r *memAttendanceRepo) Create(_ context.Context, record *entities.AttendanceRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	k := pairKey(record.EventID, record.UserID)
	if _, exists := r.records[k]; exists {
		// mirrors the unique index on (event_id, user_id)
		return domain.ErrDuplicateCheckIn
	}
	record.CreatedAt = record.CheckedInAt
	r.records[k] = *record
	return nil
}

func (r *memAttendanceRepo) FindByEventIDAndUserID(_ context.Context, eventID, userID string) (*entities.AttendanceRecord, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[pairKey(eventID, userID)]
	if !ok {
		return nil, nil
	}
	cp := rec
	return &cp, nil
}

func (r *memAttendanceRepo) FindByUserID(_ context.Context, userID string) ([]entities.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.AttendanceRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memAttendanceRepo) FindByEventIDs(_ context.Context, eventIDs []string) ([]entities.AttendanceRecord, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, append([]string(nil), eventIDs...))
	wanted := map[string]bool{}
	for _, id := range eventIDs {
		wanted[id] = true
	}
	var out []entities.AttendanceRecord
	for _, rec := range r.records {
		if wanted[rec.EventID] {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []output.Message
	err  error
}

var _ output.Mailer = (*fakeMailer)(nil)

func (m *fakeMailer) Send(_ context.Context, msg output.Message) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

type memUserRepo struct {
	mu        sync.Mutex
	users     map[string]*entities.User
	updates   []deviceUpdate
	updateErr error
}

type deviceUpdate struct {
	userID   string
	deviceID string
	verified bool
}

var _ output.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo(users ...*entities.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*entities.User{}}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) UpdateDevice(_ context.Context, userID, deviceID string, verified bool) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.DeviceID = deviceID
	u.DeviceVerified = verified
	r.updates = append(r.updates, deviceUpdate{userID: userID, deviceID: deviceID, verified: verified})
	return nil
}
