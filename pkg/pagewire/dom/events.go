package dom

// Event dispatch follows the platform model: a capture pass from the
// root down to the target's parent, the at-target pass, then a bubble
// pass back up when the event bubbles. Listener options carry the
// capture, once and passive flags.

// EventPhase identifies where in the propagation path an event is.
type EventPhase int

const (
	PhaseNone      EventPhase = 0
	PhaseCapturing EventPhase = 1
	PhaseAtTarget  EventPhase = 2
	PhaseBubbling  EventPhase = 3
)

// EventInit configures a new event.
type EventInit struct {
	Bubbles    bool
	Cancelable bool

	// Pointer fields, meaningful for click events.
	Button   int
	CtrlKey  bool
	MetaKey  bool
	ShiftKey bool
	AltKey   bool

	// Key is the key name for keyboard events.
	Key string
}

// Event is a dispatched occurrence flowing through the tree.
type Event struct {
	typ        string
	bubbles    bool
	cancelable bool

	Button   int
	CtrlKey  bool
	MetaKey  bool
	ShiftKey bool
	AltKey   bool
	Key      string

	target        *Element
	currentTarget *Element
	phase         EventPhase

	defaultPrevented bool
	stopProp         bool
	stopImmediate    bool

	// inPassive is set while a passive listener runs; PreventDefault is
	// ignored for its duration.
	inPassive bool
}

// NewEvent creates an event of the given type.
func NewEvent(typ string, init EventInit) *Event {
	return &Event{
		typ:        typ,
		bubbles:    init.Bubbles,
		cancelable: init.Cancelable,
		Button:     init.Button,
		CtrlKey:    init.CtrlKey,
		MetaKey:    init.MetaKey,
		ShiftKey:   init.ShiftKey,
		AltKey:     init.AltKey,
		Key:        init.Key,
	}
}

// ClickEvent creates a primary-button click with no modifiers.
func ClickEvent() *Event {
	return NewEvent("click", EventInit{Bubbles: true, Cancelable: true})
}

// KeydownEvent creates a keydown for the given key name.
func KeydownEvent(key string) *Event {
	return NewEvent("keydown", EventInit{Bubbles: true, Cancelable: true, Key: key})
}

// InputEvent creates an input event.
func InputEvent() *Event {
	return NewEvent("input", EventInit{Bubbles: true})
}

// SubmitEvent creates a form submit event.
func SubmitEvent() *Event {
	return NewEvent("submit", EventInit{Bubbles: true, Cancelable: true})
}

// Type returns the event type.
func (ev *Event) Type() string { return ev.typ }

// Bubbles reports whether the event bubbles.
func (ev *Event) Bubbles() bool { return ev.bubbles }

// Target returns the element the event was dispatched on.
func (ev *Event) Target() *Element { return ev.target }

// CurrentTarget returns the element whose listener is currently running.
func (ev *Event) CurrentTarget() *Element { return ev.currentTarget }

// Phase returns the current propagation phase.
func (ev *Event) Phase() EventPhase { return ev.phase }

// PreventDefault marks the default action cancelled. It has no effect
// on non-cancelable events or inside a passive listener.
func (ev *Event) PreventDefault() {
	if ev.cancelable && !ev.inPassive {
		ev.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault took effect.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// StopPropagation keeps the event from reaching further tree nodes.
// Remaining listeners on the current node still run.
func (ev *Event) StopPropagation() { ev.stopProp = true }

// StopImmediatePropagation stops remaining listeners on the current
// node as well.
func (ev *Event) StopImmediatePropagation() {
	ev.stopProp = true
	ev.stopImmediate = true
}

// ModifiedClick reports whether a click carries any of the modifier
// keys that change link behavior (new tab, download, selection).
func (ev *Event) ModifiedClick() bool {
	return ev.CtrlKey || ev.MetaKey || ev.ShiftKey || ev.AltKey
}

// Handler is an event callback.
type Handler func(*Event)

// ListenerOptions mirror the platform's addEventListener options.
type ListenerOptions struct {
	// Capture runs the listener on the capture pass instead of the
	// target/bubble passes.
	Capture bool

	// Once removes the listener after its first invocation.
	Once bool

	// Passive promises the listener will not cancel the default action;
	// PreventDefault inside it is ignored.
	Passive bool
}

// ListenerID identifies one registered listener on one target.
// Go functions have no usable identity, so removal goes by id.
type ListenerID uint64

type registration struct {
	id      ListenerID
	handler Handler
	options ListenerOptions
}

type eventTarget struct {
	listeners map[string][]*registration
	nextID    ListenerID
}

func newEventTarget() *eventTarget {
	return &eventTarget{listeners: make(map[string][]*registration)}
}

// AddEventListener registers a handler and returns its removal id.
func (e *Element) AddEventListener(typ string, h Handler, opts ListenerOptions) ListenerID {
	t := e.target
	t.nextID++
	t.listeners[typ] = append(t.listeners[typ], &registration{
		id:      t.nextID,
		handler: h,
		options: opts,
	})
	return t.nextID
}

// RemoveEventListener removes the listener with the given id. Returns
// false when no such listener exists, including after a Once listener
// already removed itself.
func (e *Element) RemoveEventListener(typ string, id ListenerID) bool {
	t := e.target
	regs := t.listeners[typ]
	for i, r := range regs {
		if r.id == id {
			t.listeners[typ] = append(regs[:i], regs[i+1:]...)
			return true
		}
	}
	return false
}

// ListenerCount reports registered listeners for an event type.
func (e *Element) ListenerCount(typ string) int {
	return len(e.target.listeners[typ])
}

// Dispatch runs an event through the full propagation path: capture
// from the root down, at-target, then bubbling back up when the event
// bubbles. Returns true unless a listener prevented the default action.
func (e *Element) Dispatch(ev *Event) bool {
	ev.target = e

	// Ancestors ordered root-first, target excluded.
	var path []*Element
	for p := e.Parent(); p != nil; p = p.Parent() {
		path = append([]*Element{p}, path...)
	}

	ev.phase = PhaseCapturing
	for _, node := range path {
		node.invoke(ev, func(r *registration) bool { return r.options.Capture })
		if ev.stopProp {
			return !ev.defaultPrevented
		}
	}

	ev.phase = PhaseAtTarget
	e.invoke(ev, func(*registration) bool { return true })
	if ev.stopProp || !ev.bubbles {
		ev.phase = PhaseNone
		ev.currentTarget = nil
		return !ev.defaultPrevented
	}

	ev.phase = PhaseBubbling
	for i := len(path) - 1; i >= 0; i-- {
		path[i].invoke(ev, func(r *registration) bool { return !r.options.Capture })
		if ev.stopProp {
			break
		}
	}

	ev.phase = PhaseNone
	ev.currentTarget = nil
	return !ev.defaultPrevented
}

// invoke runs the element's matching listeners for the current phase.
// The listener slice is snapshotted so handlers can add or remove
// listeners without disturbing this dispatch.
func (e *Element) invoke(ev *Event, match func(*registration) bool) {
	ev.currentTarget = e

	regs := e.target.listeners[ev.typ]
	snapshot := make([]*registration, len(regs))
	copy(snapshot, regs)

	for _, r := range snapshot {
		if !match(r) {
			continue
		}
		if r.options.Once {
			e.RemoveEventListener(ev.typ, r.id)
		}

		ev.inPassive = r.options.Passive
		r.handler(ev)
		ev.inPassive = false

		if ev.stopImmediate {
			return
		}
	}
}
