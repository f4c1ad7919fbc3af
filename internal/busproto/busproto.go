// SPDX-License-Identifier: Unlicense OR MIT

// Package busproto marshals gesture and device events onto the
// D-Bus-shaped wire format exposed by a listener server: method
// signature uuuv (type, states, timestamp, payload variant), with the
// payload variant's own signature keyed by gesture type. It is the Go
// analogue of de-marshaller.c and atspi-gesture-listener.c's dispatch
// handler.
package busproto

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/a11y-gestures/gesturesd/gesture"
)

// MethodSignature is the D-Bus method signature every gesture-event
// call carries, per spec.md section 6.
const MethodSignature = "uuuv"

// tapWire is the (iiii) variant payload for tap-family gesture types.
type tapWire struct {
	NFingers int32
	NTaps    int32
	X        int32
	Y        int32
}

// flickWire is the (uiiiii) variant payload for flick-family gesture
// types, including FLICK_RETURN.
type flickWire struct {
	Direction uint32
	X1        int32
	Y1        int32
	X2        int32
	Y2        int32
	NFingers  int32
}

func isTapType(t gesture.GestureType) bool {
	switch t {
	case gesture.LongpressHold, gesture.SingleTap, gesture.DoubleTap, gesture.TripleTap:
		return true
	default:
		return false
	}
}

func isFlickType(t gesture.GestureType) bool {
	return t == gesture.Flick || t == gesture.FlickReturn
}

// MarshalGestureEvent produces the uuuv arguments for ev: gesture type,
// state bitmask, timestamp, and a payload variant whose signature
// depends on the type.
func MarshalGestureEvent(ev gesture.Event) (gestureType, states, timestamp uint32, payload dbus.Variant, err error) {
	gestureType = uint32(ev.Type)
	states = uint32(ev.State)
	timestamp = uint32(ev.Timestamp)

	switch {
	case isTapType(ev.Type):
		tap, _ := ev.Tap()
		payload = dbus.MakeVariant(tapWire{
			NFingers: int32(tap.NFingers),
			NTaps:    int32(tap.NTaps),
			X:        int32(tap.X),
			Y:        int32(tap.Y),
		})
	case isFlickType(ev.Type):
		flick, _ := ev.FlickData()
		payload = dbus.MakeVariant(flickWire{
			Direction: uint32(flick.Direction),
			X1:        int32(flick.X1),
			Y1:        int32(flick.Y1),
			X2:        int32(flick.X2),
			Y2:        int32(flick.Y2),
			NFingers:  int32(flick.NFingers),
		})
	default:
		err = fmt.Errorf("busproto: unsupported gesture type %v", ev.Type)
	}
	return
}

// DemarshalGestureEvent is MarshalGestureEvent's inverse: it rebuilds
// a gesture.Event from the wire arguments, dispatching on gestureType
// to pick the payload variant's shape.
func DemarshalGestureEvent(gestureType, states, timestamp uint32, payload dbus.Variant) (gesture.Event, error) {
	t := gesture.GestureType(gestureType)
	evt := gesture.Event{Type: t, State: gesture.State(states), Timestamp: int64(timestamp)}

	switch {
	case isTapType(t):
		var w tapWire
		if err := dbus.Store([]interface{}{payload.Value()}, &w); err != nil {
			return gesture.Event{}, fmt.Errorf("busproto: demarshal tap payload: %w", err)
		}
		evt.Payload = gesture.TapPayload{
			NFingers: int(w.NFingers),
			NTaps:    int(w.NTaps),
			X:        int(w.X),
			Y:        int(w.Y),
		}
	case isFlickType(t):
		var w flickWire
		if err := dbus.Store([]interface{}{payload.Value()}, &w); err != nil {
			return gesture.Event{}, fmt.Errorf("busproto: demarshal flick payload: %w", err)
		}
		evt.Payload = gesture.FlickPayload{
			Direction: gesture.GestureDirection(w.Direction),
			X1:        int(w.X1),
			Y1:        int(w.Y1),
			X2:        int(w.X2),
			Y2:        int(w.Y2),
			NFingers:  int(w.NFingers),
		}
	default:
		return gesture.Event{}, fmt.Errorf("busproto: unsupported gesture type %d", gestureType)
	}
	return evt, nil
}

// deviceWire is the primary (uiuuusb) device-event payload.
type deviceWire struct {
	Type        uint32
	ID          int32
	HWCode      uint32
	Modifiers   uint32
	Timestamp   uint32
	EventString string
	IsText      bool
}

// deviceWireLegacy is the (uinnisb) fallback with 16-bit hw_code and
// modifiers, tried when the primary signature fails to decode, matching
// spi_dbus_demarshal_deviceEvent's backward-compatibility path.
type deviceWireLegacy struct {
	Type        uint32
	ID          int32
	HWCode      int16
	Modifiers   int16
	Timestamp   int32
	EventString string
	IsText      bool
}

// MarshalDeviceEvent encodes ev using the primary (uiuuusb) signature;
// the legacy encoding exists only for demarshalling older senders.
func MarshalDeviceEvent(ev gesture.DeviceEvent) dbus.Variant {
	return dbus.MakeVariant(deviceWire{
		Type:        uint32(ev.Type),
		ID:          ev.ID,
		HWCode:      ev.HWCode,
		Modifiers:   ev.Modifiers,
		Timestamp:   ev.Timestamp,
		EventString: ev.EventString,
		IsText:      ev.IsText,
	})
}

// DemarshalDeviceEvent decodes v, trying the primary signature first
// and falling back to the legacy 16-bit encoding.
func DemarshalDeviceEvent(v dbus.Variant) (gesture.DeviceEvent, error) {
	var w deviceWire
	if err := dbus.Store([]interface{}{v.Value()}, &w); err == nil {
		return gesture.DeviceEvent{
			Type:        gesture.EventType(w.Type),
			ID:          w.ID,
			HWCode:      w.HWCode,
			Modifiers:   w.Modifiers,
			Timestamp:   w.Timestamp,
			EventString: w.EventString,
			IsText:      w.IsText,
		}, nil
	}

	var legacy deviceWireLegacy
	if err := dbus.Store([]interface{}{v.Value()}, &legacy); err != nil {
		return gesture.DeviceEvent{}, fmt.Errorf("busproto: demarshal device event: %w", err)
	}
	return gesture.DeviceEvent{
		Type:        gesture.EventType(legacy.Type),
		ID:          legacy.ID,
		HWCode:      uint32(legacy.HWCode),
		Modifiers:   uint32(legacy.Modifiers),
		Timestamp:   uint32(legacy.Timestamp),
		EventString: legacy.EventString,
		IsText:      legacy.IsText,
	}, nil
}
