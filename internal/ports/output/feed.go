package output

import (
	"context"

	"presence/internal/domain/entities"
)

// AttendanceFeed is a live view over newly written attendance records.
// The subscription lifecycle is explicit and owned by the caller: Start
// opens the stream, Stop ends it and closes the channel.
type AttendanceFeed interface {
	Start(ctx context.Context) (<-chan entities.AttendanceRecord, error)
	Stop()
}
