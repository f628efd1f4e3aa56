package schedule

import (
	"math"
	"time"
)

// The booking form keeps start time, end time and duration-in-hours
// mutually consistent whichever field the operator last edited. These
// helpers are the two directions of that constraint plus the shared
// clamp. All of them are total.

// SanitizeQty resolves a requested duration to a positive whole number
// of hours, minimum 1.
func SanitizeQty(qty int) int {
	if qty <= 0 {
		return 1
	}
	return qty
}

// ClampQty bounds a duration so start+qty never runs past LastHour of
// the same day, and never past maxHours per session. maxHours <= 0
// means no per-session cap.
func ClampQty(start string, qty, maxHours int) int {
	startHour := parseHour(NormalizeStart(start))
	maxDuration := LastHour - startHour
	if maxHours > 0 && maxHours < maxDuration {
		maxDuration = maxHours
	}
	if maxDuration < 1 {
		maxDuration = 1
	}
	safe := SanitizeQty(qty)
	if safe > maxDuration {
		safe = maxDuration
	}
	return safe
}

// Derived is the result of recomputing the end slot from a duration.
type Derived struct {
	Qty int
	End string
}

// DeriveEndFromQty normalizes the start, clamps the duration and
// computes the day-bounded end slot. Feeding the derived end back into
// CalculateQty with the same start reproduces the clamped qty.
func DeriveEndFromQty(base time.Time, start string, qty, maxHours int) Derived {
	safeStart := NormalizeStart(start)
	safeQty := ClampQty(safeStart, qty, maxHours)
	endAt := Combine(base, safeStart).Add(time.Duration(safeQty) * time.Hour)
	return Derived{Qty: safeQty, End: ClockOf(endAt)}
}

// CalculateQty computes end-start in whole hours for two slots anchored
// to the same calendar day. Degenerate windows resolve to 1.
func CalculateQty(base time.Time, start, end string) int {
	diff := Combine(base, end).Sub(Combine(base, NormalizeStart(start)))
	hours := int(math.Round(diff.Hours()))
	if hours <= 0 {
		return 1
	}
	return hours
}

// ResolveQty prefers a stored positive qty_jam and falls back to the
// persisted interval. Stored values are checked, never assumed.
func ResolveQty(stored int, startAt, endAt time.Time) int {
	if stored > 0 {
		return stored
	}
	base := StartOfDay(startAt)
	return CalculateQty(base, ClockOf(startAt), ClockOf(endAt))
}
