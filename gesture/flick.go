// SPDX-License-Identifier: Unlicense OR MIT

package gesture

// line tracks one finger's contribution to a flick gesture: the point
// it went down at, and (once the finger has moved far enough to count
// as a flick rather than a wiggle) the line it has traced since.
type line struct {
	device     int
	start, end Point
	startTime  int64
	endTime    int64
	started    bool

	angle0, angle, length float64
}

// flickRecognizer detects a same-direction straight-line swipe across
// one or more fingers, per spec.md section 4.3.
type flickRecognizer struct {
	cfg   FlickConfig
	lines []*line
}

func (r *flickRecognizer) init(ctx *RecognizerContext) {
	r.lines = nil
}

func (r *flickRecognizer) shutdown(ctx *RecognizerContext) {
	r.lines = nil
}

func (r *flickRecognizer) lineForDevice(device int) *line {
	for _, l := range r.lines {
		if l.device == device {
			return l
		}
	}
	return nil
}

func (r *flickRecognizer) removeLine(l *line) {
	for i, existing := range r.lines {
		if existing == l {
			r.lines = append(r.lines[:i], r.lines[i+1:]...)
			return
		}
	}
}

func (r *flickRecognizer) feed(ctx *RecognizerContext, ev TouchEvent) {
	state := ctx.State()
	l := r.lineForDevice(ev.Device)

	switch ev.Kind {
	case Move:
		if l == nil {
			return
		}
		if state == Aborted {
			return
		}
		if l.started {
			r.updateLine(l, ev)
			if l.length > float64(r.cfg.MaxLength) {
				ctx.emitAt(Aborted, r.payload(), ev.Timestamp)
				return
			}
			if angleDiff(l.angle0, l.angle) > r.cfg.AngleToleranceDeg {
				ctx.emitAt(Aborted, r.payload(), ev.Timestamp)
				return
			}
			if ev.Timestamp-l.startTime > int64(r.cfg.TimeLimitMs) {
				ctx.emitAt(Aborted, r.payload(), ev.Timestamp)
				return
			}
			ctx.emitAt(Continued, r.payload(), ev.Timestamp)
		} else {
			if l.start.Distance(ev.Pos) > float64(r.cfg.MinLength) {
				r.updateLine(l, ev)
				ctx.emitAt(Continued, r.payload(), ev.Timestamp)
			}
		}

	case Down:
		if l == nil {
			l = &line{device: ev.Device, start: ev.Pos, startTime: ev.Timestamp}
			r.lines = append(r.lines, l)
			if len(r.lines) == 1 {
				ctx.emitAt(Begin, r.payload(), ev.Timestamp)
			}
		}

	case Up:
		if l != nil {
			r.removeLine(l)
			if len(r.lines) == 0 {
				switch state {
				case Aborted:
					ctx.emitAt(0, r.payload(), ev.Timestamp)
				case Continued:
					ctx.emitAt(Ended, r.payload(), ev.Timestamp)
				default:
					ctx.emitAt(Aborted, r.payload(), ev.Timestamp)
				}
			}
		}
	}
}

// updateLine records a new sample point on l, setting its initial
// angle (angle0) on the first sample that starts the line.
func (r *flickRecognizer) updateLine(l *line, ev TouchEvent) {
	l.end = ev.Pos
	l.endTime = ev.Timestamp
	l.angle = angleDeg(l.start, l.end)
	if !l.started {
		l.angle0 = l.angle
		l.started = true
	}
	l.length = l.start.Distance(l.end)
}

// payload computes the centroid of every tracked line's start and end
// point, and the overall direction from the averaged displacement
// end-minus-start, per spec.md's direction formula.
func (r *flickRecognizer) payload() FlickPayload {
	n := len(r.lines)
	if n == 0 {
		return FlickPayload{}
	}
	var sx1, sy1, sx2, sy2 int
	for _, l := range r.lines {
		sx1 += l.start.X
		sy1 += l.start.Y
		sx2 += l.end.X
		sy2 += l.end.Y
	}
	x1, y1 := sx1/n, sy1/n
	x2, y2 := sx2/n, sy2/n
	return FlickPayload{
		Direction: directionFromDelta(x2-x1, y2-y1),
		X1:        x1,
		Y1:        y1,
		X2:        x2,
		Y2:        y2,
		NFingers:  n,
	}
}
