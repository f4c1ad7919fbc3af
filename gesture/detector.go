// SPDX-License-Identifier: Unlicense OR MIT

package gesture

// Detector is the facade that owns one RecognizerContext per
// GestureType and routes touch events to every active one. It is the
// Go analogue of SpiGestureDetector in the source.
//
// Detector is not safe for concurrent use: touch events, and listener
// additions/removals, must all originate from a single goroutine (or be
// externally serialized), matching the single-threaded cooperative
// scheduling model in SPEC_FULL.md section 5.
type Detector struct {
	contexts [numGestureTypes]*RecognizerContext
}

// New constructs a Detector with every recognizer context inactive,
// using cfg to parameterize the tap/flick/return-flick recognizers and
// clock to schedule recognizer timeouts.
func New(cfg Config, clock Clock) *Detector {
	d := &Detector{}
	d.contexts[LongpressHold] = newContext(LongpressHold, clock, noopRecognizer{})
	d.contexts[SingleTap] = newContext(SingleTap, clock, &tapRecognizer{cfg: cfg.SingleTap})
	d.contexts[DoubleTap] = newContext(DoubleTap, clock, &tapRecognizer{cfg: cfg.DoubleTap})
	d.contexts[TripleTap] = newContext(TripleTap, clock, &tapRecognizer{cfg: cfg.TripleTap})
	d.contexts[Flick] = newContext(Flick, clock, &flickRecognizer{cfg: cfg.Flick})
	d.contexts[FlickReturn] = newContext(FlickReturn, clock, &returnFlickRecognizer{cfg: cfg.ReturnFlick})
	return d
}

// NewDefault builds a Detector with DefaultConfig and the production
// (wall-clock) Clock.
func NewDefault() *Detector {
	return New(DefaultConfig(), RealClock)
}

// AddListener subscribes l. If this is the first listener for l.Type,
// the recognizer's opaque state is allocated (its init is called).
func (d *Detector) AddListener(l *Listener) {
	d.contexts[l.Type].addListener(l)
}

// RemoveListener unsubscribes l by identity. If l was the last
// listener for its GestureType, the recognizer's opaque state is freed
// (its shutdown is called), cancelling any pending timer.
func (d *Detector) RemoveListener(l *Listener) {
	d.contexts[l.Type].removeListener(l)
}

// FeedTouch routes ev to every active recognizer. The order in which
// recognizers observe ev is unspecified, and recognizers never observe
// each other, matching spec.md section 4.1.
func (d *Detector) FeedTouch(ev TouchEvent) {
	for _, ctx := range d.contexts {
		if ctx.active {
			ctx.impl.feed(ctx, ev)
		}
	}
}

// State reports the current emitted state of the recognizer for t.
func (d *Detector) State(t GestureType) State {
	return d.contexts[t].State()
}

// Close shuts down every active recognizer context and drops all
// listener lists, matching spi_gesture_detector_object_finalize.
func (d *Detector) Close() {
	for _, ctx := range d.contexts {
		ctx.shutdownAll()
	}
}

// noopRecognizer backs the reserved LongpressHold context: spec.md
// reserves the gesture type but the core recognizes only the remaining
// five, so its context exists (for uniform listener bookkeeping) but is
// never driven into any non-idle state.
type noopRecognizer struct{}

func (noopRecognizer) init(*RecognizerContext)             {}
func (noopRecognizer) feed(*RecognizerContext, TouchEvent) {}
func (noopRecognizer) shutdown(*RecognizerContext)         {}
