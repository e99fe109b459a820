package ports

import "time"

// Clock abstracts the wall clock so the dispatch gate and refusal cooldown
// are testable with a fixed time source.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock reading the wall clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
