package clock

import (
	"time"

	"presence/internal/ports/output"
)

var _ output.Clock = (*System)(nil)

// System is the wall-clock implementation of the Clock port.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}
