package output

import "time"

// Clock is the single time source for expiry and window comparisons.
// Injecting it keeps edge cases deterministic under test.
type Clock interface {
	Now() time.Time
}
