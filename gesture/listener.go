// SPDX-License-Identifier: Unlicense OR MIT

package gesture

// Listener subscribes to one GestureType's emissions whose State bit is
// set in States. Listener is owned by the caller; the Detector holds
// only a non-owning reference to it — per spec.md's data model, the
// listener's lifetime must exceed any concurrent call into the
// Detector that might invoke it.
type Listener struct {
	Type     GestureType
	States   State
	Callback func(userData any, event Event)
	UserData any
}

func (l *Listener) matches(state State) bool {
	return l.Callback != nil && l.States&state != 0
}
