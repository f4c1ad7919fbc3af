// SPDX-License-Identifier: Unlicense OR MIT

package gesture

// EventType identifies a non-gesture passthrough device event: keyboard
// or button activity the bus carries alongside gesture events, but
// which no recognizer produces or consumes.
type EventType uint8

const (
	KeyPressed EventType = iota
	KeyReleased
	ButtonPressed
	ButtonReleased
)

// DeviceEvent is the ancillary, non-gesture event marshalled on the
// same bus connection as GestureEvent. It exists only so the wire
// transport has somewhere to carry it; no recognizer reads or writes
// one.
type DeviceEvent struct {
	Type        EventType
	ID          int32
	HWCode      uint32
	Modifiers   uint32
	Timestamp   uint32
	EventString string
	IsText      bool
}
