package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"presence/internal/domain"
	"presence/internal/domain/entities"
	"presence/internal/ports/output"
)

var _ output.AttendanceRepository = (*AttendanceRepository)(nil)

// uniqueViolation is the SQLSTATE raised by the (event_id, user_id)
// unique index when a concurrent check-in already wrote a record.
const uniqueViolation = "23505"

type AttendanceRepository struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

func (r *AttendanceRepository) Create(ctx context.Context, record *entities.AttendanceRecord) error {
	const q = `
		INSERT INTO attendance (id, event_id, user_id, user_name, user_email,
			device_id, lat, lng, accuracy, checked_in_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`
	err := r.pool.QueryRow(ctx, q,
		record.ID, record.EventID, record.UserID, record.UserName, record.UserEmail,
		record.DeviceID, record.Location.Lat, record.Location.Lng, record.Location.Accuracy,
		record.CheckedInAt, record.Status,
	).Scan(&record.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateCheckIn
		}
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) FindByEventIDAndUserID(ctx context.Context, eventID, userID string) (*entities.AttendanceRecord, error) {
	const q = selectAttendance + ` WHERE event_id = $1 AND user_id = $2`
	rec, err := scanAttendance(r.pool.QueryRow(ctx, q, eventID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance by event and user: %w", err)
	}
	return rec, nil
}

func (r *AttendanceRepository) FindByUserID(ctx context.Context, userID string) ([]entities.AttendanceRecord, error) {
	const q = selectAttendance + ` WHERE user_id = $1 ORDER BY checked_in_at DESC`
	return r.list(ctx, q, userID)
}

func (r *AttendanceRepository) FindByEventIDs(ctx context.Context, eventIDs []string) ([]entities.AttendanceRecord, error) {
	const q = selectAttendance + ` WHERE event_id = ANY($1) ORDER BY checked_in_at`
	return r.list(ctx, q, eventIDs)
}

const selectAttendance = `
	SELECT id, event_id, user_id, user_name, user_email, device_id,
		lat, lng, accuracy, checked_in_at, status, created_at
	FROM attendance`

func (r *AttendanceRepository) list(ctx context.Context, q string, arg any) ([]entities.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	defer rows.Close()

	var out []entities.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return out, nil
}

func scanAttendance(row pgx.Row) (*entities.AttendanceRecord, error) {
	var rec entities.AttendanceRecord
	err := row.Scan(
		&rec.ID, &rec.EventID, &rec.UserID, &rec.UserName, &rec.UserEmail,
		&rec.DeviceID, &rec.Location.Lat, &rec.Location.Lng, &rec.Location.Accuracy,
		&rec.CheckedInAt, &rec.Status, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
