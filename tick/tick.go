// Package tick provides the millisecond tick source and the deadline checks
// used by every bounded wait.
//
// Elapsed time is computed as now-start on uint32 values, so a counter that
// wraps between the two reads still yields the right answer. This holds only
// while the waited interval stays below 2^32 ms (about 49.7 days); longer
// timeouts are not guarded against.
package tick

import (
	"runtime"
	"time"
)

// Clock is a free-running millisecond counter that may wrap.
type Clock interface {
	Millis() uint32
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() uint32

// Millis calls f.
func (f ClockFunc) Millis() uint32 { return f() }

type systemClock struct{ epoch time.Time }

func (c systemClock) Millis() uint32 {
	return uint32(time.Since(c.epoch).Milliseconds())
}

// System returns a clock driven by the Go monotonic clock, starting at zero.
func System() Clock { return systemClock{epoch: time.Now()} }

// Millis converts d to whole milliseconds, clamping to the uint32 range. A
// positive d shorter than a millisecond becomes 1, so it still waits one tick.
func Millis(d time.Duration) uint32 {
	switch ms := d.Milliseconds(); {
	case d <= 0:
		return 0
	case ms == 0:
		return 1
	case ms > int64(^uint32(0)):
		return ^uint32(0)
	default:
		return uint32(ms)
	}
}

// Timer is a snapshot of a clock taken at the start of a bounded wait.
type Timer struct {
	clock Clock
	start uint32
}

// Start captures the current tick of c.
func Start(c Clock) Timer {
	return Timer{clock: c, start: c.Millis()}
}

// Restart moves the snapshot to the current tick.
func (t *Timer) Restart() { t.start = t.clock.Millis() }

// Elapsed returns milliseconds since the snapshot.
func (t Timer) Elapsed() uint32 { return t.clock.Millis() - t.start }

// Expired reports whether at least timeoutMs have passed since the snapshot.
func (t Timer) Expired(timeoutMs uint32) bool { return t.Elapsed() >= timeoutMs }

// Poll spins until ready returns true or t expires, yielding the processor
// between checks. It reports whether ready was satisfied. ready is always
// evaluated before the deadline so an already-satisfied condition wins over a
// zero timeout.
func Poll(t *Timer, timeoutMs uint32, ready func() bool) bool {
	for !ready() {
		if t.Expired(timeoutMs) {
			return false
		}
		runtime.Gosched()
	}
	return true
}
