package pagewire

import (
	"github.com/dmercer/pagewire/pkg/pagewire/config"
	"github.com/dmercer/pagewire/pkg/pagewire/dom"
	"github.com/dmercer/pagewire/pkg/pagewire/sched"
)

// autoInitDisabled gates Bootstrap for embedders that want to configure
// and initialize sessions themselves.
var autoInitDisabled bool

// DisableAutoInit makes Bootstrap a no-op. Call it before Bootstrap.
func DisableAutoInit() {
	autoInitDisabled = true
}

// EnableAutoInit re-enables Bootstrap after DisableAutoInit.
func EnableAutoInit() {
	autoInitDisabled = false
}

// Bootstrap creates a session and initializes it with default
// configuration once the document reports loaded: immediately (via the
// scheduler) when it already has, otherwise on the document load event.
// Returns the session, or nil when auto-init is disabled.
//
// Init errors cannot occur with the default configuration; a widget
// that fails regardless is logged and skipped as usual.
func Bootstrap(doc *dom.Document, scheduler sched.Scheduler, opts ...Option) *Session {
	if autoInitDisabled {
		return nil
	}

	s := New(doc, scheduler, opts...)
	initialize := func() {
		s.Init(config.New(nil))
	}

	if doc.Loaded() {
		scheduler.Post(initialize)
		return s
	}

	// Attached directly, not through the session registry: the session
	// has no registry until Init, and this listener must survive an
	// Init/Teardown cycle anyway so a later load cannot double-fire.
	doc.AddEventListener("load", func(*dom.Event) {
		initialize()
	}, dom.ListenerOptions{Once: true})
	return s
}
