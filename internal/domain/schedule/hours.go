package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Slot times travel through the booking forms as "HH:MM" strings. The
// grid only supports whole-hour slots, so every helper here coerces its
// input onto an "HH:00" boundary and never fails: garbage resolves to
// the nearest valid value so the form stays usable, and "is this booking
// allowed" is decided later by the conflict check.

const (
	// LastStartHour is the latest bookable start; a later start would leave
	// no valid one-hour slot before the end of the day.
	LastStartHour = 22

	// LastHour is the latest hour a session may end on the same day.
	LastHour = 23
)

func formatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

func parseHour(value string) int {
	head, _, _ := strings.Cut(strings.TrimSpace(value), ":")
	hour, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return hour
}

// EnsureHour coerces an "HH:MM"-shaped value to a whole-hour clock
// string. Missing or unparsable input defaults to hour 0; the hour is
// clamped to [0, 23] and minutes are always forced to :00.
func EnsureHour(value string) string {
	hour := parseHour(value)
	if hour < 0 {
		hour = 0
	}
	if hour > LastHour {
		hour = LastHour
	}
	return formatHour(hour)
}

// NormalizeStart applies EnsureHour and additionally caps the hour at
// LastStartHour.
func NormalizeStart(value string) string {
	hour := parseHour(EnsureHour(value))
	if hour > LastStartHour {
		hour = LastStartHour
	}
	return formatHour(hour)
}

// NormalizeEnd coerces a proposed end time so the window stays strictly
// positive: an end at or before the normalized start is pushed to
// start+1, and the result never passes LastHour.
func NormalizeEnd(start, proposed string) string {
	startHour := parseHour(NormalizeStart(start))
	endHour := parseHour(EnsureHour(proposed))
	if endHour <= startHour {
		endHour = startHour + 1
	}
	if endHour > LastHour {
		endHour = LastHour
	}
	return formatHour(endHour)
}

// NextHour returns the slot immediately after the normalized start.
func NextHour(start string) string {
	hour := parseHour(NormalizeStart(start)) + 1
	if hour > LastHour {
		hour = LastHour
	}
	return formatHour(hour)
}

// ClockOf extracts the wall-clock slot label of an instant.
func ClockOf(t time.Time) string {
	return EnsureHour(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// Combine anchors an "HH:00" clock value to the calendar day of base.
func Combine(base time.Time, value string) time.Time {
	hour := parseHour(EnsureHour(value))
	return time.Date(base.Year(), base.Month(), base.Day(), hour, 0, 0, 0, base.Location())
}

// StartOfDay truncates an instant to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RoundUpToHour bumps an instant to the next whole hour unless it is
// already on one. Used for the form's default start time.
func RoundUpToHour(t time.Time) time.Time {
	rounded := t.Truncate(time.Hour)
	if rounded.Equal(t) {
		return t
	}
	return rounded.Add(time.Hour)
}
