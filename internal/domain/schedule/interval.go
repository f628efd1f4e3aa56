package schedule

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

var ErrInvalidInterval = errors.New("end time must be after start time")

// Interval is a half-open booked window [start, end). Back-to-back
// sessions, where one ends exactly when the next begins, do not overlap.
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{start: start, end: end}, nil
}

func (iv Interval) Start() time.Time {
	return iv.start
}

func (iv Interval) End() time.Time {
	return iv.end
}

func (iv Interval) Duration() time.Duration {
	return iv.end.Sub(iv.start)
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.start.Before(other.end) && iv.end.After(other.start)
}

// ToTstzrange renders the interval for the range column and the
// exclusion constraint backing the conflict invariant.
func (iv Interval) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", iv.start.Format(time.RFC3339), iv.end.Format(time.RFC3339))
}
