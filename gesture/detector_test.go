// SPDX-License-Identifier: Unlicense OR MIT

package gesture_test

import (
	"testing"
	"time"

	"github.com/a11y-gestures/gesturesd/gesture"
)

// fakeTimer and fakeClock let tests fire a tap recognizer's timeout
// deterministically instead of sleeping on the wall clock.
type fakeTimer struct{ stopped bool }

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

type fakeClock struct {
	timers []*fakeTimer
	fns    []func()
}

func (c *fakeClock) After(_ time.Duration, fn func()) gesture.Timer {
	t := &fakeTimer{}
	c.timers = append(c.timers, t)
	c.fns = append(c.fns, fn)
	return t
}

// fireLatest invokes the most recently scheduled, still-pending timer
// callback, matching a tap recognizer's cancel-and-reschedule-on-every-
// DOWN behavior (only the latest one is ever live).
func (c *fakeClock) fireLatest() {
	if len(c.fns) == 0 {
		return
	}
	i := len(c.fns) - 1
	if !c.timers[i].stopped {
		c.fns[i]()
	}
}

func allStates() gesture.State {
	return gesture.Begin | gesture.Continued | gesture.Ended | gesture.Aborted
}

func recordingListener(t gesture.GestureType) (*gesture.Listener, *[]gesture.Event) {
	var got []gesture.Event
	l := &gesture.Listener{
		Type:   t,
		States: allStates(),
		Callback: func(_ any, ev gesture.Event) {
			got = append(got, ev)
		},
	}
	return l, &got
}

func stateNames(events []gesture.Event) []gesture.State {
	out := make([]gesture.State, len(events))
	for i, e := range events {
		out[i] = e.State
	}
	return out
}

func tp(device int, kind gesture.TouchKind, x, y int, ts int64) gesture.TouchEvent {
	return gesture.TouchEvent{Device: device, Kind: kind, Pos: gesture.Point{X: x, Y: y}, Timestamp: ts}
}

// S1: single tap.
func TestSingleTap(t *testing.T) {
	clock := &fakeClock{}
	d := gesture.New(gesture.DefaultConfig(), clock)
	l, got := recordingListener(gesture.SingleTap)
	d.AddListener(l)

	d.FeedTouch(tp(1, gesture.Down, 100, 100, 0))
	d.FeedTouch(tp(1, gesture.Up, 100, 100, 100))
	clock.fireLatest()

	states := stateNames(*got)
	if len(states) != 2 || states[0] != gesture.Begin || states[1] != gesture.Ended {
		t.Fatalf("unexpected emissions: %v", states)
	}
	tap, ok := (*got)[1].Tap()
	if !ok || tap.NFingers != 1 || tap.NTaps != 1 || tap.X != 100 || tap.Y != 100 {
		t.Fatalf("unexpected ENDED payload: %+v", tap)
	}
}

// S2: double tap.
func TestDoubleTap(t *testing.T) {
	clock := &fakeClock{}
	d := gesture.New(gesture.DefaultConfig(), clock)
	l, got := recordingListener(gesture.DoubleTap)
	d.AddListener(l)

	d.FeedTouch(tp(1, gesture.Down, 50, 50, 0))
	d.FeedTouch(tp(1, gesture.Up, 50, 50, 80))
	d.FeedTouch(tp(1, gesture.Down, 52, 51, 200))
	d.FeedTouch(tp(1, gesture.Up, 52, 51, 260))
	clock.fireLatest()

	states := stateNames(*got)
	if len(states) != 3 || states[0] != gesture.Begin || states[1] != gesture.Continued || states[2] != gesture.Ended {
		t.Fatalf("unexpected emissions: %v", states)
	}
	final, _ := (*got)[2].Tap()
	if final.NTaps != 2 {
		t.Fatalf("expected n_taps=2 at ENDED, got %d", final.NTaps)
	}
}

// S3: tap aborted by move past finger size. The return to idle after the
// Up is checked on the detector: a zero state is in no listener's mask,
// so it is never delivered.
func TestSingleTapAbortedByMove(t *testing.T) {
	clock := &fakeClock{}
	d := gesture.New(gesture.DefaultConfig(), clock)
	l, got := recordingListener(gesture.SingleTap)
	d.AddListener(l)

	d.FeedTouch(tp(1, gesture.Down, 0, 0, 0))
	d.FeedTouch(tp(1, gesture.Move, 200, 0, 50))
	d.FeedTouch(tp(1, gesture.Up, 200, 0, 60))

	states := stateNames(*got)
	if len(states) != 2 || states[0] != gesture.Begin || states[1] != gesture.Aborted || d.State(gesture.SingleTap) != 0 {
		t.Fatalf("unexpected emissions: %v (state after Up: %v)", states, d.State(gesture.SingleTap))
	}
}

// S4: flick right.
func TestFlickRight(t *testing.T) {
	clock := &fakeClock{}
	d := gesture.New(gesture.DefaultConfig(), clock)
	l, got := recordingListener(gesture.Flick)
	d.AddListener(l)

	d.FeedTouch(tp(1, gesture.Down, 0, 0, 0))
	d.FeedTouch(tp(1, gesture.Move, 50, 1, 50))
	d.FeedTouch(tp(1, gesture.Move, 100, 2, 80))
	d.FeedTouch(tp(1, gesture.Up, 100, 2, 90))

	states := stateNames(*got)
	// Both Moves emit CONTINUED: the first activates the line, the second
	// extends it within the length, angle and time limits.
	if len(states) != 4 || states[0] != gesture.Begin || states[1] != gesture.Continued || states[2] != gesture.Continued || states[3] != gesture.Ended {
		t.Fatalf("unexpected emissions: %v", states)
	}
	flick, ok := (*got)[1].FlickData()
	if !ok || flick.Direction != gesture.DirectionRight {
		t.Fatalf("expected RIGHT direction at CONTINUED, got %+v", flick)
	}
}

// S5: flick aborted once an already-activated line exceeds its time limit.
func TestFlickAbortedByTimeLimit(t *testing.T) {
	clock := &fakeClock{}
	d := gesture.New(gesture.DefaultConfig(), clock)
	l, got := recordingListener(gesture.Flick)
	d.AddListener(l)

	d.FeedTouch(tp(1, gesture.Down, 0, 0, 0))
	d.FeedTouch(tp(1, gesture.Move, 50, 0, 50))  // activates the line (length 50 >= min 40)
	d.FeedTouch(tp(1, gesture.Move, 100, 0, 200)) // 200ms since start > 150ms limit

	states := stateNames(*got)
	if len(states) < 2 || states[len(states)-1] != gesture.Aborted {
		t.Fatalf("expected a trailing ABORTED, got %v", states)
	}
}

// S6: return-flick, out and back.
func TestReturnFlick(t *testing.T) {
	clock := &fakeClock{}
	d := gesture.New(gesture.DefaultConfig(), clock)
	l, got := recordingListener(gesture.FlickReturn)
	d.AddListener(l)

	d.FeedTouch(tp(1, gesture.Down, 0, 0, 0))
	d.FeedTouch(tp(1, gesture.Move, 150, 0, 30))  // leaves the finger-size circle: FORWARDING, direction RIGHT
	d.FeedTouch(tp(1, gesture.Move, 300, 0, 60))  // advances the inflection point to (300,0)
	d.FeedTouch(tp(1, gesture.Move, 100, 50, 100)) // bends back past tolerance: phase RETURNING
	d.FeedTouch(tp(1, gesture.Up, 0, 0, 150))

	states := stateNames(*got)
	if len(states) != 2 || states[0] != gesture.Begin || states[1] != gesture.Ended {
		t.Fatalf("expected [BEGIN ENDED], got %v", states)
	}
	flick, ok := (*got)[1].FlickData()
	if !ok || flick.Direction != gesture.DirectionRight {
		t.Fatalf("expected RIGHT direction at ENDED, got %+v", flick)
	}
}

// P2: a listener only receives events whose state bit is in its mask.
func TestListenerMaskFiltersEvents(t *testing.T) {
	clock := &fakeClock{}
	d := gesture.New(gesture.DefaultConfig(), clock)

	var got []gesture.Event
	l := &gesture.Listener{
		Type:   gesture.SingleTap,
		States: gesture.Ended,
		Callback: func(_ any, ev gesture.Event) {
			got = append(got, ev)
		},
	}
	d.AddListener(l)

	d.FeedTouch(tp(1, gesture.Down, 0, 0, 0))
	d.FeedTouch(tp(1, gesture.Up, 0, 0, 10))
	clock.fireLatest()

	if len(got) != 1 || got[0].State != gesture.Ended {
		t.Fatalf("expected only ENDED to be delivered, got %v", stateNames(got))
	}
}

// P4: removing the only listener shuts the recognizer down, and a
// fresh add starts it cleanly from idle.
func TestAddRemoveListenerCycle(t *testing.T) {
	clock := &fakeClock{}
	d := gesture.New(gesture.DefaultConfig(), clock)
	l, got := recordingListener(gesture.SingleTap)

	d.AddListener(l)
	d.RemoveListener(l)
	d.FeedTouch(tp(1, gesture.Down, 0, 0, 0))
	d.FeedTouch(tp(1, gesture.Up, 0, 0, 10))

	if len(*got) != 0 {
		t.Fatalf("expected no emissions after listener removal, got %v", stateNames(*got))
	}

	d.AddListener(l)
	d.FeedTouch(tp(1, gesture.Down, 0, 0, 20))
	if len(*got) != 1 || (*got)[0].State != gesture.Begin {
		t.Fatalf("expected a fresh BEGIN after re-adding the listener, got %v", stateNames(*got))
	}
}

// A re-entrant callback that adds another listener for the same
// gesture type mid-dispatch must not corrupt the in-progress
// iteration (design note on the dispatch re-entrancy hazard).
func TestListenerDispatchIsReentrantSafe(t *testing.T) {
	clock := &fakeClock{}
	d := gesture.New(gesture.DefaultConfig(), clock)

	var second *gesture.Listener
	first := &gesture.Listener{
		Type:   gesture.SingleTap,
		States: allStates(),
		Callback: func(_ any, ev gesture.Event) {
			if second == nil {
				l, _ := recordingListener(gesture.SingleTap)
				second = l
				d.AddListener(second)
			}
		},
	}
	d.AddListener(first)

	d.FeedTouch(tp(1, gesture.Down, 0, 0, 0))
	d.FeedTouch(tp(1, gesture.Up, 0, 0, 10))
	clock.fireLatest()
}
