package pagewire

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/google/uuid"

	"github.com/dmercer/pagewire/pkg/pagewire/config"
	"github.com/dmercer/pagewire/pkg/pagewire/dom"
	"github.com/dmercer/pagewire/pkg/pagewire/listener"
	"github.com/dmercer/pagewire/pkg/pagewire/observability"
	"github.com/dmercer/pagewire/pkg/pagewire/sched"
	"github.com/dmercer/pagewire/pkg/pagewire/storage"
)

// Session is one behavior layer bound to one document. It moves between
// exactly two states: uninitialized and initialized. Init installs the
// widgets and arms their listeners; Teardown unwinds everything and
// returns the session to uninitialized, from which Init works again.
//
// A session is confined to its scheduler: all handlers and timers run
// there, and no method is safe to call concurrently with them.
type Session struct {
	id        string
	doc       *dom.Document
	scheduler sched.Scheduler

	logger      *slog.Logger
	loggerFixed bool
	metrics     observability.MetricsRecorder
	spans       observability.SpanManager
	store       storage.Store

	ctx      context.Context
	registry *listener.Registry
	st       settings

	initialized bool
	handle      *Handle

	reveal    map[*dom.Element]*revealRecord
	lastDraft *Draft
	nav       *navWidget
	stoppers  []func()
}

// Handle identifies an initialized session.
type Handle struct {
	// ID is the session identifier.
	ID string

	// Widgets lists the widgets that actually installed, in install
	// order. A widget that found none of its elements is absent.
	Widgets []string

	session *Session
}

// Teardown tears down the owning session.
func (h *Handle) Teardown() {
	h.session.Teardown()
}

// New creates an uninitialized session over a document and a scheduler.
// Nothing touches the page until Init.
func New(doc *dom.Document, scheduler sched.Scheduler, opts ...Option) *Session {
	s := &Session{
		id:        "ses-" + uuid.New().String()[:8],
		doc:       doc,
		scheduler: scheduler,
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
		store:     storage.NewMemoryStore(),
		ctx:       context.Background(),
		reveal:    make(map[*dom.Element]*revealRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Initialized reports the session state.
func (s *Session) Initialized() bool {
	return s.initialized
}

// LastDraft returns the draft most recently loaded or persisted by the
// contact form, nil when there is none.
func (s *Session) LastDraft() *Draft {
	return s.lastDraft
}

// PendingReveals reports how many reveal restorations are outstanding.
func (s *Session) PendingReveals() int {
	return len(s.reveal)
}

// Listeners reports how many listeners the session currently tracks.
func (s *Session) Listeners() int {
	if s.registry == nil {
		return 0
	}
	return s.registry.Len()
}

// Init validates cfg, installs the enabled widgets in fixed order (nav,
// anchors, form, carousel) and flips the session to initialized.
//
// Only configuration errors propagate. A widget that fails to install
// is logged and skipped; the session still ends up initialized with the
// remaining widgets live. Init on an initialized session is a logged
// no-op returning the existing handle.
func (s *Session) Init(cfg config.Config) (*Handle, error) {
	if s.doc == nil {
		return nil, ErrNilDocument
	}
	if s.scheduler == nil {
		return nil, ErrNilScheduler
	}
	if s.initialized {
		observability.LogInitSkipped(s.logger, s.id)
		return s.handle, nil
	}

	st, err := parseSettings(cfg)
	if err != nil {
		return nil, err
	}
	s.st = st

	if !s.loggerFixed && st.LoggerLevel != "" {
		// Level already validated; NewLogger cannot fail here.
		if logger, err := observability.NewLogger(st.LoggerLevel, nil); err == nil {
			s.logger = logger
		}
	}
	s.registry = listener.NewRegistry(s.logger)

	done := observability.TimedOperation()
	ctx, span := s.spans.StartInitSpan(s.ctx, s.id)
	observability.LogInitStart(s.logger, s.id)

	widgets := []struct {
		name    string
		enabled bool
		install func(context.Context) (bool, error)
	}{
		{"nav", st.EnableMobileNav, s.installNav},
		{"anchors", st.EnableSmoothScroll, s.installAnchors},
		{"form", st.EnableContactForm, s.installForm},
		{"carousel", st.EnableCarousel, s.installCarousel},
	}

	var installed []string
	for _, w := range widgets {
		if !w.enabled {
			continue
		}
		if s.installWidget(ctx, w.name, w.install) {
			installed = append(installed, w.name)
		}
	}

	s.initialized = true
	s.handle = &Handle{ID: s.id, Widgets: installed, session: s}
	s.spans.EndSpanWithError(span, nil)
	observability.LogInitComplete(s.logger, s.id, done(), len(installed))
	return s.handle, nil
}

// installWidget runs one installer inside a recover so a broken widget
// cannot take initialization down with it. Returns whether the widget
// actually bound anything.
func (s *Session) installWidget(ctx context.Context, name string, install func(context.Context) (bool, error)) bool {
	wctx, span := s.spans.StartWidgetSpan(ctx, name)

	var installed bool
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				installed = false
				err = &WidgetError{
					Widget: name,
					Op:     "install",
					Err:    &PanicError{Widget: name, Value: r, Stack: string(debug.Stack())},
				}
			}
		}()
		installed, err = install(wctx)
	}()

	s.metrics.RecordWidgetInstall(wctx, name, err)
	s.spans.EndSpanWithError(span, err)

	if err != nil {
		observability.LogWidgetError(s.logger, name, err)
		return false
	}
	if installed {
		observability.LogWidgetInstalled(s.logger, name)
	}
	return installed
}

// Teardown unwinds the session: every tracked listener is removed, every
// widget timer stopped, and every outstanding reveal restored
// synchronously. Teardown always succeeds; on an uninitialized session
// it logs and returns.
func (s *Session) Teardown() {
	if !s.initialized {
		observability.LogTeardownNoop(s.logger, s.id)
		return
	}

	removed := s.registry.Len()
	s.registry.RemoveAll()

	for _, stop := range s.stoppers {
		stop()
	}
	s.stoppers = nil

	s.restoreAllReveals()

	s.nav = nil
	s.lastDraft = nil
	s.initialized = false
	s.handle = nil
	observability.LogTeardown(s.logger, s.id, removed)
}

// addListener registers an event handler through the registry with
// panic containment, so one throwing handler cannot break dispatch for
// the rest of the page.
func (s *Session) addListener(widget string, target *dom.Element, typ string, h dom.Handler, opts dom.ListenerOptions) {
	s.registry.Add(target, typ, s.safeHandler(widget, h), opts)
}

// safeHandler wraps a handler with a recover that logs the panic and
// drops it.
func (s *Session) safeHandler(widget string, fn dom.Handler) dom.Handler {
	return func(ev *dom.Event) {
		defer func() {
			if r := recover(); r != nil {
				observability.LogWidgetError(s.logger, widget, &PanicError{
					Widget: widget,
					Value:  r,
					Stack:  string(debug.Stack()),
				})
			}
		}()
		fn(ev)
	}
}
