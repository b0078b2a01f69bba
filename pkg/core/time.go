package core

import (
	"strconv"
	"time"
)

// wallClockString renders local wall time in the wire format used for log
// timestamps: "YYYY-MM-DD HH:MM:SS". Takes the time from the injected
// Clock rather than calling time.Now() directly, so a FakeClock drives it
// the same way it drives every other time-dependent decision.
func wallClockString(now time.Time) string {
	return now.Format("2006-01-02 15:04:05")
}

// monotonicString renders a fallback timestamp when wall time is unknown:
// the decimal monotonic millisecond count.
func monotonicString(nowMS int64) string {
	return strconv.FormatInt(nowMS, 10)
}
