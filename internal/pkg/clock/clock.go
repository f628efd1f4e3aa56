package clock

import "time"

// Clock abstracts "now" so scheduling logic can be tested against a
// pinned instant. Production code always receives the real clock.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock reports a fixed instant.
type MockClock struct {
	now time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (c *MockClock) Now() time.Time {
	return c.now
}

// Advance shifts the pinned instant, for tests that cross an hour or a
// business-day boundary.
func (c *MockClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
