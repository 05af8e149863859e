package fetch

import "time"

// Clock supplies the current time. The pipeline's 30-day window, blog-age
// derivation, and time-of-day visitor scaling all read through it so tests
// can pin a fixed instant.
type Clock func() time.Time

// SystemClock is the production Clock.
func SystemClock() time.Time {
	return time.Now()
}
