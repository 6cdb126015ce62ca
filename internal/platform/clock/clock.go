package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports wall time in UTC. Use it for timestamps that leave the process.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// MonotonicClock keeps the monotonic reading that UTC() strips, so deltas
// between two samples never go backwards when the wall clock is adjusted.
type MonotonicClock struct{}

func (MonotonicClock) Now() time.Time {
	return time.Now()
}
