package kernel

import "time"

// Clock returns the current time. Handlers take a Clock so tests can pin
// stage timestamps and audit windows.
type Clock func() time.Time

// SystemClock reports wall-clock time in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}
