// SPDX-License-Identifier: Unlicense OR MIT

package busproto_test

import (
	"testing"

	"github.com/a11y-gestures/gesturesd/gesture"
	"github.com/a11y-gestures/gesturesd/internal/busproto"
)

// S7: marshalling a gesture event and demarshalling the result
// reproduces the original event, for every gesture type's payload
// shape.
func TestGestureEventRoundTrip(t *testing.T) {
	cases := []gesture.Event{
		{
			Type: gesture.SingleTap, State: gesture.Ended, Timestamp: 1234,
			Payload: gesture.TapPayload{NFingers: 1, NTaps: 1, X: 100, Y: 200},
		},
		{
			Type: gesture.DoubleTap, State: gesture.Continued, Timestamp: 5678,
			Payload: gesture.TapPayload{NFingers: 2, NTaps: 2, X: -5, Y: -7},
		},
		{
			Type: gesture.Flick, State: gesture.Ended, Timestamp: 42,
			Payload: gesture.FlickPayload{Direction: gesture.DirectionRight, X1: 0, Y1: 0, X2: 300, Y2: 1, NFingers: 1},
		},
		{
			Type: gesture.FlickReturn, State: gesture.Ended, Timestamp: 99,
			Payload: gesture.FlickPayload{Direction: gesture.DirectionLeft, NFingers: 1},
		},
	}

	for _, want := range cases {
		gt, states, ts, payload, err := busproto.MarshalGestureEvent(want)
		if err != nil {
			t.Fatalf("marshal %v: %v", want.Type, err)
		}
		got, err := busproto.DemarshalGestureEvent(gt, states, ts, payload)
		if err != nil {
			t.Fatalf("demarshal %v: %v", want.Type, err)
		}
		if got != want {
			t.Fatalf("round trip mismatch for %v:\n got  %+v\n want %+v", want.Type, got, want)
		}
	}
}

func TestMarshalGestureEventRejectsUnknownType(t *testing.T) {
	_, _, _, _, err := busproto.MarshalGestureEvent(gesture.Event{Type: gesture.GestureType(255)})
	if err == nil {
		t.Fatal("expected an error for an unsupported gesture type")
	}
}

func TestDeviceEventRoundTrip(t *testing.T) {
	want := gesture.DeviceEvent{
		Type: gesture.KeyPressed, ID: 7, HWCode: 38, Modifiers: 1, Timestamp: 1000,
		EventString: "a", IsText: true,
	}
	v := busproto.MarshalDeviceEvent(want)
	got, err := busproto.DemarshalDeviceEvent(v)
	if err != nil {
		t.Fatalf("demarshal: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestListenerServerDispatch(t *testing.T) {
	srv := busproto.NewListenerServer()

	var got gesture.Event
	l := &gesture.Listener{
		Type:   gesture.SingleTap,
		States: gesture.Begin | gesture.Ended,
		Callback: func(_ any, ev gesture.Event) {
			got = ev
		},
	}
	path := srv.Register(l)

	ev := gesture.Event{Type: gesture.SingleTap, State: gesture.Ended, Timestamp: 10, Payload: gesture.TapPayload{NFingers: 1, NTaps: 1, X: 1, Y: 2}}
	gt, states, ts, payload, err := busproto.MarshalGestureEvent(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	retval := srv.HandleGestureEvent(path, gt, states, ts, payload)
	if retval {
		t.Fatal("HandleGestureEvent must always return false")
	}
	if got != ev {
		t.Fatalf("listener did not receive the dispatched event: got %+v", got)
	}

	srv.Unregister(path)
	got = gesture.Event{}
	if srv.HandleGestureEvent(path, gt, states, ts, payload) {
		t.Fatal("HandleGestureEvent must always return false")
	}
	if got != (gesture.Event{}) {
		t.Fatal("a listener removed from the server must not be invoked")
	}
}

func TestListenerServerHandleUnknownPath(t *testing.T) {
	srv := busproto.NewListenerServer()
	_, states, ts, payload, err := busproto.MarshalGestureEvent(gesture.Event{
		Type: gesture.SingleTap, State: gesture.Ended, Payload: gesture.TapPayload{},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if srv.HandleGestureEvent("/org/a11y/atspi/gesture/listeners/999", uint32(gesture.SingleTap), states, ts, payload) {
		t.Fatal("HandleGestureEvent must always return false")
	}
}
