package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"presence/internal/domain"
	"presence/internal/domain/entities"
	"presence/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	const q = `
		INSERT INTO events (id, name, start_time, end_time, created_by, active,
			attendee_count, fixed_lat, fixed_lng, allowed_radius_m)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`
	lat, lng := locationColumns(event.FixedLocation)
	err := r.pool.QueryRow(ctx, q,
		event.ID, event.Name, event.StartTime, event.EndTime, event.CreatedBy,
		event.Active, event.AttendeeCount, lat, lng, event.AllowedRadiusMeters,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	const q = `
		SELECT id, name, start_time, end_time, created_by, active, attendee_count,
			fixed_lat, fixed_lng, allowed_radius_m, created_at, updated_at
		FROM events WHERE id = $1`
	e, err := scanEvent(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return e, nil
}

func (r *EventRepository) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]entities.Event, error) {
	const q = `
		SELECT id, name, start_time, end_time, created_by, active, attendee_count,
			fixed_lat, fixed_lng, allowed_radius_m, created_at, updated_at
		FROM events WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at`
	rows, err := r.pool.Query(ctx, q, from, to)
	if err != nil {
		return nil, fmt.Errorf("get events created between: %w", err)
	}
	defer rows.Close()

	var out []entities.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get events created between: %w", err)
	}
	return out, nil
}

func (r *EventRepository) IncrementAttendeeCount(ctx context.Context, eventID string) error {
	const q = `
		UPDATE events SET attendee_count = attendee_count + 1, updated_at = now()
		WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, eventID); err != nil {
		return fmt.Errorf("increment attendee count: %w", err)
	}
	return nil
}

func scanEvent(row pgx.Row) (*entities.Event, error) {
	var (
		e        entities.Event
		lat, lng *float64
	)
	err := row.Scan(
		&e.ID, &e.Name, &e.StartTime, &e.EndTime, &e.CreatedBy, &e.Active,
		&e.AttendeeCount, &lat, &lng, &e.AllowedRadiusMeters,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.FixedLocation = locationFromColumns(lat, lng)
	return &e, nil
}
