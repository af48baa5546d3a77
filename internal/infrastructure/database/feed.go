package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"presence/internal/domain/entities"
	"presence/internal/ports/output"
)

var _ output.AttendanceFeed = (*AttendanceFeed)(nil)

// AttendanceFeed emits attendance records as they are written, by
// polling the attendance table past a moving cursor. The lifecycle is
// owned by the caller: Start opens the stream, Stop ends the loop and
// closes the channel.
type AttendanceFeed struct {
	pool     *pgxpool.Pool
	interval time.Duration
	cancel   context.CancelFunc
}

func NewAttendanceFeed(pool *pgxpool.Pool, interval time.Duration) *AttendanceFeed {
	return &AttendanceFeed{pool: pool, interval: interval}
}

func (f *AttendanceFeed) Start(ctx context.Context) (<-chan entities.AttendanceRecord, error) {
	if f.cancel != nil {
		return nil, fmt.Errorf("attendance feed: already started")
	}
	ctx, f.cancel = context.WithCancel(ctx)
	ch := make(chan entities.AttendanceRecord, 16)
	go f.poll(ctx, ch, time.Now())
	return ch, nil
}

func (f *AttendanceFeed) Stop() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *AttendanceFeed) poll(ctx context.Context, ch chan<- entities.AttendanceRecord, cursor time.Time) {
	defer close(ch)
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			records, err := f.since(ctx, cursor)
			if err != nil {
				continue // transient; next tick retries from the same cursor
			}
			for _, rec := range records {
				select {
				case ch <- rec:
					cursor = rec.CreatedAt
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

func (f *AttendanceFeed) since(ctx context.Context, cursor time.Time) ([]entities.AttendanceRecord, error) {
	const q = selectAttendance + ` WHERE created_at > $1 ORDER BY created_at`
	rows, err := f.pool.Query(ctx, q, cursor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}
