package serializer

import "sync/atomic"

// timestampWarningThrottle is how many out-of-range timestamps share one warning.
const timestampWarningThrottle = 1000

// timestampWarnings is shared by every Serializer in the process.
var timestampWarnings warnThrottle

// warnThrottle lets one caller out of every n through.
type warnThrottle struct {
	counter atomic.Int64
}

// allow records one occurrence and reports whether it should be logged.
//
// The counter cycles through 0..n-1 and the caller that moves it off 0 is allowed.
// Increment and wrap happen in one compare-and-swap, so a reset can neither be lost
// nor applied twice under concurrent callers.
func (w *warnThrottle) allow(n int64) bool {
	for {
		cur := w.counter.Load()
		next := cur + 1
		if next >= n {
			next = 0
		}
		if w.counter.CompareAndSwap(cur, next) {
			return cur == 0
		}
	}
}
