package schedule

import "time"

// The venue operates into the early morning: the operating day runs from
// BusinessDay.StartHour (06:00 by default) through 04:00 the next
// calendar day. Bucketing only affects how sessions are grouped and
// labelled; stored intervals are always real wall-clock instants.

const DefaultBusinessDayStart = 6

type BusinessDay struct {
	StartHour int
}

func NewBusinessDay(startHour int) BusinessDay {
	if startHour < 0 || startHour > LastHour {
		startHour = DefaultBusinessDayStart
	}
	return BusinessDay{StartHour: startHour}
}

// DateOf buckets an instant into its business date: anything before
// StartHour belongs to the previous calendar day. Pure function of the
// local wall clock.
func (b BusinessDay) DateOf(t time.Time) time.Time {
	day := StartOfDay(t)
	if t.Hour() < b.StartHour {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// Key renders the business date as a filter key (YYYY-MM-DD).
func (b BusinessDay) Key(t time.Time) string {
	return b.DateOf(t).Format("2006-01-02")
}

// ShiftHour relabels a real hour onto the display scale that starts at 0
// for StartHour. Monotonic modulo 24 across midnight, so a session
// running 23:00 into 02:00 renders as one contiguous label range.
func (b BusinessDay) ShiftHour(realHour int) int {
	return (realHour - b.StartHour + 24) % 24
}

// SameDay reports whether two instants fall in the same business bucket.
func (b BusinessDay) SameDay(a, t time.Time) bool {
	return b.DateOf(a).Equal(b.DateOf(t))
}
