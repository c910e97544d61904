package insight

import "time"

// Clock abstracts "current time" so every date-dependent computation can
// be exercised against a fixed reference instant in tests. Services hold
// a Clock and pass clock.Now() into the pure functions below.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock returns a Clock that always reports the given instant.
// Intended for tests.
func FixedClock(t time.Time) Clock {
	return fixedClock{t}
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
