package pagewire

import (
	"runtime/debug"
	"time"

	"github.com/dmercer/pagewire/pkg/pagewire/dom"
	"github.com/dmercer/pagewire/pkg/pagewire/observability"
	"github.com/dmercer/pagewire/pkg/pagewire/sched"
)

// focusSentinel is the tabindex value that makes an arbitrary element
// programmatically focusable without entering the tab order.
const focusSentinel = "-1"

// restoreDelay is how long the sentinel stays on a revealed element
// before its prior focus marker is restored.
const restoreDelay = 1000 * time.Millisecond

// revealRecord remembers an element's focus marker as it was BEFORE the
// reveal mutated it, plus the pending restoration timer.
type revealRecord struct {
	hadTabindex bool
	prior       string
	timer       sched.Timer
}

// RevealAndFocus brings a target into view and moves focus to it: the
// accessibility primitive behind anchor navigation.
//
// The element's existing tabindex (or its absence) is recorded before
// any mutation, the sentinel "-1" is applied, focus is taken without
// implicit scrolling (falling back to a plain focus where the platform
// lacks the option), and the viewport scrolls to the element's top
// minus the resolved offset, floored at zero. Restoration of the prior
// marker runs on the scheduler after one second.
//
// Revealing an element whose restoration is still pending keeps the
// FIRST recorded marker and restarts the clock: the last reveal wins
// the timing, the first record wins the restoration. A nil target is a
// no-op. Panics out of the dom are contained; on the way out the
// element's pending state is dropped so nothing lingers.
func (s *Session) RevealAndFocus(target *dom.Element, offsetOverride int) {
	if target == nil {
		return
	}

	start := time.Now()
	ctx, span := s.spans.StartRevealSpan(s.ctx, target.ID())

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Widget: "reveal", Value: r, Stack: string(debug.Stack())}
				s.abortReveal(target)
			}
		}()
		s.reveal1(target, offsetOverride)
	}()

	s.metrics.RecordReveal(ctx, target.ID(), time.Since(start))
	s.spans.EndSpanWithError(span, err)
	if err != nil {
		observability.LogWidgetError(s.logger, "reveal", err)
	}
}

// reveal1 is the mutation body of RevealAndFocus, separated so the
// caller can contain panics around it.
func (s *Session) reveal1(target *dom.Element, offsetOverride int) {
	rec, pending := s.reveal[target]
	if !pending {
		// Record before mutate: the original marker must be captured
		// while it is still the original.
		prior, had := target.Attribute("tabindex")
		rec = &revealRecord{hadTabindex: had, prior: prior}
		s.reveal[target] = rec
	} else {
		rec.timer.Cancel()
	}

	target.SetAttribute("tabindex", focusSentinel)

	if ferr := target.Focus(dom.FocusOptions{PreventScroll: true}); ferr != nil {
		// No focus options on this platform; a plain focus may scroll,
		// the explicit scroll below lands last and wins.
		target.Focus(dom.FocusOptions{})
	}

	offset := ResolveOffset(s.doc, s.resolveOverride(offsetOverride))
	top := target.OffsetTop() - offset
	if top < 0 {
		top = 0
	}

	behavior := dom.ScrollInstant
	if s.st.EnableSmoothScroll && s.doc.Capabilities().SmoothScroll {
		behavior = dom.ScrollSmooth
	}
	s.doc.ScrollTo(top, behavior)

	rec.timer = s.scheduler.After(restoreDelay, func() {
		s.restoreReveal(target)
	})

	observability.LogReveal(s.logger, target.ID(), top)
}

// resolveOverride lets an explicit per-call override beat the session's
// configured offset; negative means "not given".
func (s *Session) resolveOverride(offsetOverride int) int {
	if offsetOverride >= 0 {
		return offsetOverride
	}
	return s.st.SmoothScrollOffset
}

// restoreReveal puts an element's focus marker back the way it was and
// prunes the reveal state. If page code replaced the sentinel in the
// meantime, the attribute is left alone; the state is pruned either way.
func (s *Session) restoreReveal(target *dom.Element) {
	rec, ok := s.reveal[target]
	if !ok {
		return
	}
	delete(s.reveal, target)

	if v, has := target.Attribute("tabindex"); has && v == focusSentinel {
		if rec.hadTabindex {
			target.SetAttribute("tabindex", rec.prior)
		} else {
			target.RemoveAttribute("tabindex")
		}
	}

	s.metrics.RecordRestoration(s.ctx)
	observability.LogRestore(s.logger, target.ID())
}

// abortReveal drops an element's reveal state after a contained panic,
// attempting a best-effort marker restore on the way.
func (s *Session) abortReveal(target *dom.Element) {
	rec, ok := s.reveal[target]
	if !ok {
		return
	}
	delete(s.reveal, target)
	if rec.timer != nil {
		rec.timer.Cancel()
	}

	defer func() { recover() }()
	if rec.hadTabindex {
		target.SetAttribute("tabindex", rec.prior)
	} else {
		target.RemoveAttribute("tabindex")
	}
}

// restoreAllReveals synchronously restores every outstanding reveal.
// Used by teardown, where waiting out the timers is not an option.
func (s *Session) restoreAllReveals() {
	targets := make([]*dom.Element, 0, len(s.reveal))
	for target, rec := range s.reveal {
		if rec.timer != nil {
			rec.timer.Cancel()
		}
		targets = append(targets, target)
	}
	for _, target := range targets {
		s.restoreReveal(target)
	}
}
