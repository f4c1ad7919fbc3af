// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import "time"

// Timer is a handle to a scheduled callback. Stop cancels the timer if
// it has not yet fired; it is safe to call Stop more than once.
type Timer interface {
	Stop() bool
}

// Clock schedules deferred callbacks for recognizers. The recognizer
// core never reaches for a concrete timer implementation directly, per
// the design note in SPEC_FULL.md section 4.6: tests substitute a fake
// Clock so tap-timeout behavior (scenarios S1/S2 in spec.md section 8)
// is deterministic instead of depending on wall-clock sleeps.
type Clock interface {
	After(d time.Duration, fn func()) Timer
}

// realClock schedules callbacks with time.AfterFunc.
type realClock struct{}

// RealClock is the production Clock, backed by time.AfterFunc.
var RealClock Clock = realClock{}

func (realClock) After(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
