/*
Package pagewire is the behavior layer of a server-rendered marketing
site: collapsible mobile navigation, smooth same-page anchor scrolling
with an accessibility-correct focus hand-off, contact-form draft
persistence with validation, and a testimonial carousel.

# Overview

pagewire binds to a parsed document and a scheduler, installs its
widgets, and tracks every listener and timer it creates so the whole
layer can be torn down and reinstalled at will. The document model
lives in the dom subpackage; the scheduler contract in sched. Both
real-time (sched.Loop) and virtual-time (sched.Manual) schedulers
satisfy it, so every time-dependent behavior is deterministic under
test.

# Basic Usage

Parse a page, create a session, initialize it:

	doc, err := dom.ParseString(pageHTML)
	if err != nil {
	    log.Fatal(err)
	}

	loop := sched.NewLoop(sched.DefaultLoopConfig())
	defer loop.Close()

	session := pagewire.New(doc, loop)
	handle, err := session.Init(config.New(map[string]any{
	    "formDebounceMs": 250,
	    "logger.level":   "debug",
	}))
	if err != nil {
	    log.Fatal(err)
	}
	defer handle.Teardown()

Or let Bootstrap do it on document load with defaults:

	session := pagewire.Bootstrap(doc, loop)

# Sessions and Lifecycle

A Session is either uninitialized or initialized, nothing in between.
Init installs the enabled widgets in a fixed order (nav, anchors, form,
carousel); a widget whose elements are missing is skipped with a log
line and the rest still install. Only configuration errors fail Init.
Teardown removes every tracked listener, stops every widget timer,
restores every in-flight reveal, and returns the session to the
uninitialized state, from which Init works again.

# Reveal and Focus

RevealAndFocus is the primitive behind anchor navigation: it makes any
element focusable with a temporary tabindex, moves focus without
scrolling, then scrolls the element under the configured offset. The
temporary tabindex is restored a beat later, and only if page code has
not claimed the attribute in the meantime.

# Drafts

The contact form persists a draft of its fields on every input, debounced,
through a storage.Store. The in-memory store is the default; the SQLite
store survives restarts. A successful submit deletes the draft.

# Observability

Structured logging goes through log/slog, disabled entirely at the
"silent" level. Metrics and traces use OpenTelemetry when enabled via
WithMetrics and WithTracing, and are no-ops otherwise.
*/
package pagewire
