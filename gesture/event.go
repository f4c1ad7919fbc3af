// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import "fmt"

// GestureType is the closed enumeration of gesture families the
// detector can recognize. LongpressHold is reserved: the detector
// allocates a recognizer context for it (so listener registration and
// lookup by type stay uniform), and listeners may subscribe to it, but
// its recognizer ignores every touch event, so it never leaves idle.
type GestureType uint8

const (
	LongpressHold GestureType = iota
	SingleTap
	DoubleTap
	TripleTap
	Flick
	FlickReturn

	numGestureTypes
)

func (t GestureType) String() string {
	switch t {
	case LongpressHold:
		return "LongpressHold"
	case SingleTap:
		return "SingleTap"
	case DoubleTap:
		return "DoubleTap"
	case TripleTap:
		return "TripleTap"
	case Flick:
		return "Flick"
	case FlickReturn:
		return "FlickReturn"
	default:
		return fmt.Sprintf("GestureType(%d)", uint8(t))
	}
}

// isTap reports whether t uses the TapPayload variant on the wire.
func (t GestureType) isTap() bool {
	switch t {
	case LongpressHold, SingleTap, DoubleTap, TripleTap:
		return true
	default:
		return false
	}
}

// State is a bitmask flag describing a gesture-event emission. Exactly
// one flag is set per emitted event; listeners subscribe with a mask
// formed by OR-ing the flags they want to receive.
type State uint8

const (
	Begin     State = 1 << 0
	Continued State = 1 << 1
	Ended     State = 1 << 2
	Aborted   State = 1 << 3
)

func (s State) String() string {
	switch s {
	case 0:
		return "Idle"
	case Begin:
		return "Begin"
	case Continued:
		return "Continued"
	case Ended:
		return "Ended"
	case Aborted:
		return "Aborted"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// GestureDirection is the cardinal direction of a flick-family gesture.
type GestureDirection uint8

const (
	DirectionUndefined GestureDirection = iota
	DirectionLeft
	DirectionRight
	DirectionUp
	DirectionDown
)

func (d GestureDirection) String() string {
	switch d {
	case DirectionLeft:
		return "Left"
	case DirectionRight:
		return "Right"
	case DirectionUp:
		return "Up"
	case DirectionDown:
		return "Down"
	default:
		return "Undefined"
	}
}

// TapPayload is the centroid and count data for a tap-family gesture.
type TapPayload struct {
	NFingers int
	NTaps    int
	X, Y     int
}

// FlickPayload is the start/end centroid data for a flick-family
// gesture. For FlickReturn, X1/Y1/X2/Y2 are left at their zero value
// (see SPEC_FULL.md section 9, open question 3); callers must not rely
// on them for that gesture type.
type FlickPayload struct {
	Direction GestureDirection
	X1, Y1    int
	X2, Y2    int
	NFingers  int
}

// Event is the value delivered to listeners on every state transition.
// It is value-semantic: a listener may retain it (or a copy of its
// Payload) past the return of its callback, since the recognizer that
// produced it allocates a fresh payload value per emission rather than
// mutating one in place across calls.
type Event struct {
	Type      GestureType
	State     State
	Timestamp int64
	// Payload is a TapPayload or a FlickPayload depending on Type, or
	// nil if no transition-specific data applies.
	Payload any
}

// Tap returns the event's payload as a TapPayload and reports whether
// the assertion succeeded.
func (e Event) Tap() (TapPayload, bool) {
	p, ok := e.Payload.(TapPayload)
	return p, ok
}

// FlickData returns the event's payload as a FlickPayload and reports
// whether the assertion succeeded.
func (e Event) FlickData() (FlickPayload, bool) {
	p, ok := e.Payload.(FlickPayload)
	return p, ok
}
