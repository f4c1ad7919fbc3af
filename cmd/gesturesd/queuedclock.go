// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"time"

	"github.com/a11y-gestures/gesturesd/gesture"
)

// queuedClock is a gesture.Clock that still schedules its timers with
// time.AfterFunc, but never runs a recognizer's timeout callback on the
// timer goroutine: firing posts the callback onto fire instead, for the
// daemon's main loop to run alongside touch-event feeding. This keeps
// every mutation of recognizer state on one goroutine, per
// SPEC_FULL.md section 5 and detector.go's documented single-goroutine
// contract — gesture.RealClock alone would invoke callbacks
// concurrently with FeedTouch from a separate timer goroutine.
type queuedClock struct {
	fire chan func()
}

func newQueuedClock() *queuedClock {
	return &queuedClock{fire: make(chan func())}
}

func (c *queuedClock) After(d time.Duration, fn func()) gesture.Timer {
	return time.AfterFunc(d, func() {
		c.fire <- fn
	})
}
