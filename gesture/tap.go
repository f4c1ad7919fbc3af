// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import "time"

// tapPlace is a logical "where a finger tapped" record: it persists
// across the gap between taps of a multi-tap gesture so later taps can
// be matched against it by position.
type tapPlace struct {
	point     Point
	timestamp int64
	device    int
	taps      int
	finished  bool
}

// tapRecognizer detects single/double/triple taps; the variant config
// (timeout, taps required) is its only difference across the three
// gesture types, per spec.md section 4.2.
type tapRecognizer struct {
	cfg TapConfig

	places       []*tapPlace
	timer        Timer
	fingersDown  int
	tapPointsSet bool
}

func (r *tapRecognizer) init(ctx *RecognizerContext) {
	r.places = nil
	r.timer = nil
	r.fingersDown = 0
	r.tapPointsSet = false
}

func (r *tapRecognizer) shutdown(ctx *RecognizerContext) {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.places = nil
}

func (r *tapRecognizer) feed(ctx *RecognizerContext, ev TouchEvent) {
	state := ctx.State()

	switch ev.Kind {
	case Move:
		if state != Begin && state != Continued {
			r.checkIdle(ctx, ev.Timestamp)
			return
		}
		place := r.placeForDevice(ev.Device)
		if place == nil {
			return
		}
		if place.point.Distance(ev.Pos) > float64(r.cfg.FingerSize) {
			r.abort(ctx, ev.Timestamp)
			r.checkIdle(ctx, ev.Timestamp)
		}

	case Down:
		r.fingersDown++
		if state == Aborted {
			r.checkIdle(ctx, ev.Timestamp)
			return
		}

		var place *tapPlace
		if !r.tapPointsSet {
			place = r.newPlace(ev)
		} else {
			place = r.reusePlace(ev)
		}
		if place == nil {
			r.abort(ctx, ev.Timestamp)
			r.checkIdle(ctx, ev.Timestamp)
			return
		}

		if r.timer != nil {
			r.timer.Stop()
		}
		r.timer = ctx.clock.After(time.Duration(r.cfg.TimeoutMs)*time.Millisecond, func() {
			r.onTimeout(ctx)
		})

		payload := r.payload()
		if len(r.places) == 1 && place.taps == 1 {
			ctx.emitAt(Begin, payload, ev.Timestamp)
		} else {
			ctx.emitAt(Continued, payload, ev.Timestamp)
		}

	case Up:
		r.fingersDown--
		if state == Aborted {
			r.checkIdle(ctx, ev.Timestamp)
			return
		}
		if !r.tapPointsSet {
			r.tapPointsSet = true
		}
		place := r.placeForDevice(ev.Device)
		if place == nil {
			return
		}
		if ev.Timestamp-place.timestamp > int64(r.cfg.TimeoutMs) {
			r.abort(ctx, ev.Timestamp)
			r.checkIdle(ctx, ev.Timestamp)
			return
		}
		place.finished = true
	}
}

// placeForDevice returns the currently-open (unfinished) tapPlace for
// device, or nil.
func (r *tapRecognizer) placeForDevice(device int) *tapPlace {
	for _, p := range r.places {
		if !p.finished && p.device == device {
			return p
		}
	}
	return nil
}

func (r *tapRecognizer) newPlace(ev TouchEvent) *tapPlace {
	p := &tapPlace{point: ev.Pos, timestamp: ev.Timestamp, device: ev.Device, taps: 1}
	r.places = append(r.places, p)
	return p
}

// reusePlace matches a new Down against a previously finished place
// within FingerSize of the new position, as a later tap of the same
// multi-tap gesture. The distance comparison is strictly-less-than,
// matching the source exactly.
func (r *tapRecognizer) reusePlace(ev TouchEvent) *tapPlace {
	for _, p := range r.places {
		if p.finished && p.point.Distance(ev.Pos) < float64(r.cfg.FingerSize) {
			p.taps++
			p.timestamp = ev.Timestamp
			p.finished = false
			p.device = ev.Device
			return p
		}
	}
	return nil
}

func (r *tapRecognizer) payload() TapPayload {
	pts := make([]Point, len(r.places))
	maxTaps := 0
	for i, p := range r.places {
		pts[i] = p.point
		if p.taps > maxTaps {
			maxTaps = p.taps
		}
	}
	c := centroid(pts)
	return TapPayload{NFingers: len(r.places), NTaps: maxTaps, X: c.X, Y: c.Y}
}

func (r *tapRecognizer) abort(ctx *RecognizerContext, timestamp int64) {
	ctx.emitAt(Aborted, r.payload(), timestamp)
	r.resetAccumulated()
}

func (r *tapRecognizer) checkIdle(ctx *RecognizerContext, timestamp int64) {
	if ctx.State() == Aborted && r.fingersDown == 0 {
		ctx.emitAt(0, r.payload(), timestamp)
	}
}

// resetAccumulated clears tap tracking state without touching
// fingersDown, which tracks physically-down fingers independent of any
// particular gesture attempt.
func (r *tapRecognizer) resetAccumulated() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.places = nil
	r.tapPointsSet = false
}

// onTimeout resolves a pending tap attempt: ENDED if exactly
// cfg.TapsRequired taps were completed (every place finished, the
// highest per-place tap count equal to TapsRequired), ABORTED
// otherwise. See DESIGN.md for why this departs from a literal
// transliteration of the source's timer callback, whose unfinished-tap
// counting loop breaks after its first iteration and so cannot produce
// the outcomes spec.md's own worked examples (S1, S2) require.
func (r *tapRecognizer) onTimeout(ctx *RecognizerContext) {
	allFinished := true
	maxTaps := 0
	for _, p := range r.places {
		if !p.finished {
			allFinished = false
		}
		if p.taps > maxTaps {
			maxTaps = p.taps
		}
	}

	payload := r.payload()
	if allFinished && maxTaps == r.cfg.TapsRequired {
		ctx.emit(Ended, payload)
	} else {
		ctx.emit(Aborted, payload)
		if r.fingersDown == 0 {
			ctx.emit(0, payload)
		}
	}
	r.timer = nil
	r.resetAccumulated()
}
