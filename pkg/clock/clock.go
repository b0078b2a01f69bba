// Package clock provides the monotonic millisecond source and local
// calendar-time decomposition every other core package schedules against.
package clock

import "time"

// Clock is the monotonic and wall-time source for the core. A single Clock
// is shared by every component that needs "now" — the frame assembler's
// inter-bit timeout, the PIN assembler's idle timeout, the door state
// machine's locked_until comparisons, and the schedule evaluator's
// day/minute decomposition.
type Clock interface {
	// NowMS returns milliseconds on a monotonic clock. Never goes backwards.
	NowMS() int64

	// WallKnown reports whether wall-clock time has been set (NTP acquisition
	// is an external collaborator; until it reports in, wall time is unknown).
	WallKnown() bool

	// DayMinute decomposes current local wall time into day-of-week
	// (0=Monday..6=Sunday) and minute-of-day (0..1439). ok is false when
	// WallKnown() is false, in which case day/minute are meaningless.
	DayMinute() (day, minute int, ok bool)

	// Now returns the current local wall-clock time. Meaningless when
	// WallKnown() is false, same as DayMinute.
	Now() time.Time
}

// SystemClock is the production Clock: monotonic ms since process start via
// Go's runtime monotonic reading, and wall time via time.Now() once a wall
// time source (NTP, or an operator-set time) has confirmed it.
type SystemClock struct {
	start     time.Time
	wallKnown bool
}

// NewSystemClock creates a SystemClock. Wall time is considered unknown
// until SetWallKnown(true) is called — the caller (typically the NTP
// collaborator) is responsible for that signal.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) NowMS() int64 {
	return time.Since(c.start).Milliseconds()
}

// SetWallKnown flips whether wall time is trusted. Called once by the NTP
// collaborator after its first successful sync, and never un-set in normal
// operation (a lost NTP source does not retroactively invalidate wall time).
func (c *SystemClock) SetWallKnown(known bool) {
	c.wallKnown = known
}

func (c *SystemClock) WallKnown() bool {
	return c.wallKnown
}

func (c *SystemClock) DayMinute() (day, minute int, ok bool) {
	if !c.wallKnown {
		return 0, 0, false
	}
	now := time.Now()
	// time.Weekday: Sunday=0..Saturday=6. Spec wants Monday=0..Sunday=6.
	day = (int(now.Weekday()) + 6) % 7
	minute = now.Hour()*60 + now.Minute()
	return day, minute, true
}

func (c *SystemClock) Now() time.Time {
	return time.Now()
}
