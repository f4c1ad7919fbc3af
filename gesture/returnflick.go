// SPDX-License-Identifier: Unlicense OR MIT

package gesture

// returnFlickPhase is a single finger's progress through the
// down, flick out, flick back shape returnFlickRecognizer looks for.
type returnFlickPhase int

const (
	rfStarted returnFlickPhase = iota
	rfForwarding
	rfReturning
	rfInvalid
)

// returnTouch tracks one finger's return-flick attempt.
type returnTouch struct {
	device    int
	timestamp int64
	phase     returnFlickPhase

	origin      Point
	inflection  Point
	flickDir    vector
	returnDir   vector
	direction   GestureDirection

	inflectionDistance float64
}

// returnFlickRecognizer detects a flick followed by a return flick
// along roughly the reverse path, per spec.md section 4.4.
type returnFlickRecognizer struct {
	cfg     ReturnFlickConfig
	touches []*returnTouch
}

func (r *returnFlickRecognizer) init(ctx *RecognizerContext) {
	r.touches = nil
}

func (r *returnFlickRecognizer) shutdown(ctx *RecognizerContext) {
	r.touches = nil
}

func (r *returnFlickRecognizer) touchForDevice(device int) *returnTouch {
	for _, t := range r.touches {
		if t.device == device {
			return t
		}
	}
	return nil
}

func (r *returnFlickRecognizer) removeTouch(t *returnTouch) {
	for i, existing := range r.touches {
		if existing == t {
			r.touches = append(r.touches[:i], r.touches[i+1:]...)
			return
		}
	}
}

func (r *returnFlickRecognizer) feed(ctx *RecognizerContext, ev TouchEvent) {
	state := ctx.State()
	t := r.touchForDevice(ev.Device)

	switch ev.Kind {
	case Move:
		if t == nil || state == Aborted {
			return
		}
		r.updateTouch(t, ev)
		if t.phase == rfInvalid {
			ctx.emitAt(Aborted, r.payload(), ev.Timestamp)
		}

	case Down:
		if t != nil || state == Aborted {
			return
		}
		t = &returnTouch{device: ev.Device, origin: ev.Pos, timestamp: ev.Timestamp, direction: DirectionUndefined}
		r.touches = append(r.touches, t)
		if state == 0 {
			ctx.emitAt(Begin, r.payload(), ev.Timestamp)
		} else {
			ctx.emitAt(Continued, r.payload(), ev.Timestamp)
		}

	case Up:
		// The payload is taken before t is removed, so the emission for
		// this Up still counts the lifted finger and its direction.
		p := r.payload()
		aborted := false
		if t != nil {
			r.removeTouch(t)
			if t.phase != rfReturning {
				ctx.emitAt(Aborted, p, ev.Timestamp)
				aborted = true
			}
		}
		if len(r.touches) == 0 {
			if aborted || ctx.State() == Aborted {
				ctx.emitAt(0, p, ev.Timestamp)
			} else {
				ctx.emitAt(Ended, p, ev.Timestamp)
			}
		}
	}
}

// updateTouch advances t's phase by one touch sample, following the
// source's state machine exactly: STARTED waits for the finger to
// leave the initial finger-sized circle, FORWARDING tracks the
// outbound flick and locates its inflection point, RETURNING checks
// the inbound leg keeps the direction it had when the turn was detected.
func (r *returnFlickRecognizer) updateTouch(t *returnTouch, ev TouchEvent) {
	if t.phase == rfInvalid {
		return
	}
	if ev.Timestamp-t.timestamp > int64(r.cfg.MaxTotalTimeMs) {
		t.phase = rfInvalid
		return
	}

	if t.phase == rfStarted {
		if t.origin.Distance(ev.Pos) > float64(r.cfg.FingerSize) {
			dir := sub(ev.Pos, t.origin)
			t.flickDir = dir.normalize()
			t.phase = rfForwarding
			t.inflection = ev.Pos
			t.inflectionDistance = 1.0
			t.direction = cardinalFromVector(t.flickDir)
			return
		}
	}

	if t.phase == rfForwarding {
		dir := sub(ev.Pos, t.origin)
		a := angleBetween(dir, t.flickDir)
		if t.inflectionDistance > float64(r.cfg.MinForwardLength) && a > r.cfg.ForwardAngleToleranceDeg {
			t.returnDir = sub(ev.Pos, t.inflection)
			originFromInflection := sub(t.origin, t.inflection)
			a = angleBetween(t.returnDir, originFromInflection)
			if a > r.cfg.InflectionAngleToleranceDeg {
				t.phase = rfInvalid
			} else {
				t.phase = rfReturning
			}
		} else {
			length := dir.dot(t.flickDir)
			if length > t.inflectionDistance {
				t.inflection = Point{
					X: t.origin.X + int(length*t.flickDir.X),
					Y: t.origin.Y + int(length*t.flickDir.Y),
				}
				t.inflectionDistance = length
			}
		}
		return
	}

	if t.phase == rfReturning {
		dir := sub(ev.Pos, t.inflection)
		a := angleBetween(dir, t.returnDir)
		if a > r.cfg.ReturnAngleToleranceDeg {
			t.phase = rfInvalid
		}
	}
}

// payload reports every tracked finger's direction; if the fingers
// disagree, Direction is DirectionUndefined. X1/Y1/X2/Y2 are left at
// their zero value: the source's return-flick info struct never sets
// them, only n_fingers and direction (see SPEC_FULL.md's Open Question
// notes on FlickPayload).
func (r *returnFlickRecognizer) payload() FlickPayload {
	if len(r.touches) == 0 {
		return FlickPayload{}
	}
	dir := r.touches[0].direction
	for _, t := range r.touches[1:] {
		if t.direction != dir {
			dir = DirectionUndefined
			break
		}
	}
	return FlickPayload{Direction: dir, NFingers: len(r.touches)}
}
