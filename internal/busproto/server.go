// SPDX-License-Identifier: Unlicense OR MIT

package busproto

import (
	"fmt"
	"log"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/a11y-gestures/gesturesd/gesture"
)

// ListenerPathPrefix is the object-path namespace a ListenerServer
// allocates its listeners under, per spec.md section 6.
const ListenerPathPrefix = "/org/a11y/atspi/gesture/listeners/"

// ListenerPath builds the object path for listener id.
func ListenerPath(id uint32) dbus.ObjectPath {
	return dbus.ObjectPath(fmt.Sprintf("%s%d", ListenerPathPrefix, id))
}

// ParseListenerPath extracts the listener id from path, matching the
// source's sscanf-based parse.
func ParseListenerPath(path dbus.ObjectPath) (uint32, error) {
	var id uint32
	if _, err := fmt.Sscanf(string(path), ListenerPathPrefix+"%d", &id); err != nil {
		return 0, fmt.Errorf("busproto: bad listener path %q: %w", path, err)
	}
	return id, nil
}

// ListenerServer exposes registered gesture.Listeners as addressable
// D-Bus objects and performs wire marshalling on their behalf. Its id
// registry is scoped to one server instance, not process-global, per
// SPEC_FULL.md section 4.7.
type ListenerServer struct {
	mu        sync.Mutex
	listeners map[uint32]*gesture.Listener
	nextID    uint32
}

// NewListenerServer returns an empty server.
func NewListenerServer() *ListenerServer {
	return &ListenerServer{listeners: make(map[uint32]*gesture.Listener)}
}

// Register allocates the next id in sequence for l, skipping ids still
// in use, and returns its object path. Ids freed by Unregister are not
// handed out again until the sequence wraps around.
func (s *ListenerServer) Register(l *gesture.Listener) dbus.ObjectPath {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	for {
		if _, taken := s.listeners[id]; !taken {
			break
		}
		id++
	}
	s.listeners[id] = l
	s.nextID = id + 1
	return ListenerPath(id)
}

// Unregister removes the listener at path, if any.
func (s *ListenerServer) Unregister(path dbus.ObjectPath) {
	id, err := ParseListenerPath(path)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

// HandleGestureEvent is the uuuv method handler: it resolves path to a
// registered listener, demarshals the event, and invokes the
// listener's callback directly (this is an in-process dispatch path;
// a real bus binding would wrap this in the generated method-call
// plumbing). Any malformed input is logged and answered false, never
// propagated as a Go error across the call boundary, matching spec.md
// section 7's error taxonomy.
func (s *ListenerServer) HandleGestureEvent(path dbus.ObjectPath, gestureType, states, timestamp uint32, payload dbus.Variant) bool {
	id, err := ParseListenerPath(path)
	if err != nil {
		log.Printf("busproto: %v", err)
		return false
	}

	s.mu.Lock()
	l, ok := s.listeners[id]
	s.mu.Unlock()
	if !ok {
		log.Printf("busproto: no listener registered at %s", path)
		return false
	}

	evt, err := DemarshalGestureEvent(gestureType, states, timestamp, payload)
	if err != nil {
		log.Printf("busproto: %v", err)
		return false
	}

	if l.Callback != nil && l.States&evt.State != 0 {
		l.Callback(l.UserData, evt)
	}
	return false
}
