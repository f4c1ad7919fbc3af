// SPDX-License-Identifier: Unlicense OR MIT

package gesture

// recognizerImpl is the per-gesture-type state machine. It is the Go
// analogue of the source's DetectorFuncs vtable (init/feed/reset/
// shutdown function pointers): each concrete recognizer type
// implements it and holds a back-reference to its RecognizerContext to
// call emit/state when it transitions.
type recognizerImpl interface {
	// init allocates the recognizer's internal state. Called each time
	// the listener count for this gesture type goes from zero to one.
	init(ctx *RecognizerContext)
	// feed processes one touch event.
	feed(ctx *RecognizerContext, ev TouchEvent)
	// shutdown releases internal state and cancels any pending timer.
	// Called when the last listener for this gesture type is removed,
	// or the Detector is closed.
	shutdown(ctx *RecognizerContext)
}

// RecognizerContext is the per-detector, per-gesture-type block: the
// active flag, current emitted state, registered listeners, and the
// recognizer's own opaque data (held inside impl). Per spec.md
// invariant 1, a context is active iff its listener list is non-empty.
type RecognizerContext struct {
	gestureType GestureType
	clock       Clock
	impl        recognizerImpl

	active    bool
	state     State
	listeners []*Listener
}

func newContext(t GestureType, clock Clock, impl recognizerImpl) *RecognizerContext {
	return &RecognizerContext{gestureType: t, clock: clock, impl: impl}
}

// State returns the context's last emitted state (0 for idle).
func (c *RecognizerContext) State() State {
	return c.state
}

// emit dispatches an Event carrying newState/payload to every listener
// whose mask matches, then records newState as the context's current
// state. Listeners are walked over a snapshot of the slice, so a
// callback that adds or removes a listener for this gesture type
// during dispatch cannot corrupt the in-progress iteration — the
// defensive fix for the re-entrancy hazard noted in spec.md section 9.
func (c *RecognizerContext) emit(newState State, payload any) {
	snapshot := make([]*Listener, len(c.listeners))
	copy(snapshot, c.listeners)

	evt := Event{
		Type:      c.gestureType,
		State:     newState,
		Timestamp: 0,
		Payload:   payload,
	}
	for _, l := range snapshot {
		if l.matches(newState) {
			l.Callback(l.UserData, evt)
		}
	}
	c.state = newState
}

// emitAt is emit with an explicit timestamp, used for every
// touch-driven transition. Timer fires have no touch event at hand and
// go through emit, so their events carry a zero timestamp.
func (c *RecognizerContext) emitAt(newState State, payload any, timestamp int64) {
	snapshot := make([]*Listener, len(c.listeners))
	copy(snapshot, c.listeners)

	evt := Event{Type: c.gestureType, State: newState, Timestamp: timestamp, Payload: payload}
	for _, l := range snapshot {
		if l.matches(newState) {
			l.Callback(l.UserData, evt)
		}
	}
	c.state = newState
}

func (c *RecognizerContext) activate() {
	if c.active {
		return
	}
	c.active = true
	c.impl.init(c)
}

func (c *RecognizerContext) deactivate() {
	if !c.active {
		return
	}
	c.active = false
	c.impl.shutdown(c)
}

func (c *RecognizerContext) addListener(l *Listener) {
	c.activate()
	c.listeners = append(c.listeners, l)
}

func (c *RecognizerContext) removeListener(l *Listener) {
	for i, existing := range c.listeners {
		if existing == l {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			break
		}
	}
	if len(c.listeners) == 0 {
		c.deactivate()
	}
}

func (c *RecognizerContext) shutdownAll() {
	c.deactivate()
	c.listeners = nil
}
