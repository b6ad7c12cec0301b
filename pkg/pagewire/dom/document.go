// Package dom is the in-memory page substrate the behavior layer runs
// against. It wraps golang.org/x/net/html nodes with stable element
// identities, CSS-selector resolution, a synthetic block layout, scroll
// and focus state, and a DOM-style event system with capture, bubble,
// once and passive semantics.
//
// The package is not safe for concurrent use. Like the rest of the
// behavior layer it is confined to a single scheduler; see the sched
// package.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Capabilities models platform feature detection. Both flags default to
// true; tests disable them to exercise the fallback paths.
type Capabilities struct {
	// FocusOptions reports whether focus accepts a prevent-scroll option.
	FocusOptions bool

	// SmoothScroll reports whether smooth scrolling is available.
	SmoothScroll bool
}

// ScrollBehavior selects how a scroll is performed.
type ScrollBehavior string

const (
	ScrollInstant ScrollBehavior = "instant"
	ScrollSmooth  ScrollBehavior = "smooth"
)

// Document is a parsed page plus the mutable view state the behavior
// layer reads and writes: scroll position, active element, root style
// properties and load state.
type Document struct {
	root  *html.Node
	elems map[*html.Node]*Element
	caps  Capabilities

	scrollTop    int
	lastBehavior ScrollBehavior

	active    *Element
	rootStyle map[string]string
	loaded    bool
}

// Parse reads an HTML document. Custom properties declared in the root
// element's style attribute (--name: value) seed the root style table.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	d := &Document{
		root:         root,
		elems:        make(map[*html.Node]*Element),
		caps:         Capabilities{FocusOptions: true, SmoothScroll: true},
		lastBehavior: ScrollInstant,
		rootStyle:    make(map[string]string),
	}
	d.seedRootStyle()
	return d, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// seedRootStyle lifts --name: value declarations off the html element.
func (d *Document) seedRootStyle() {
	rootEl := d.Root()
	if rootEl == nil {
		return
	}
	style, ok := rootEl.Attribute("style")
	if !ok {
		return
	}
	for _, decl := range strings.Split(style, ";") {
		name, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if strings.HasPrefix(name, "--") {
			d.rootStyle[name] = strings.TrimSpace(value)
		}
	}
}

// wrap returns the Element for a node, creating it on first sight.
// The identity map guarantees the same node always yields the same
// wrapper, which is what makes wrappers usable as map keys upstream.
func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if e, ok := d.elems[n]; ok {
		return e
	}
	e := &Element{
		doc:    d,
		node:   n,
		target: newEventTarget(),
	}
	d.elems[n] = e
	return e
}

// Root returns the html element, or nil for an empty document.
func (d *Document) Root() *Element {
	return d.wrap(htmlquery.FindOne(d.root, "//html"))
}

// Body returns the body element, or nil.
func (d *Document) Body() *Element {
	return d.wrap(htmlquery.FindOne(d.root, "//body"))
}

// GetElementByID returns the element with the given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" || strings.Contains(id, "'") {
		return nil
	}
	return d.wrap(htmlquery.FindOne(d.root, fmt.Sprintf("//*[@id='%s']", id)))
}

// Query returns the first element matching a CSS selector, nil when
// nothing matches. An unsupported selector is an error.
func (d *Document) Query(selector string) (*Element, error) {
	node, err := queryOne(d.root, selector)
	if err != nil {
		return nil, err
	}
	return d.wrap(node), nil
}

// QueryAll returns every element matching a CSS selector.
func (d *Document) QueryAll(selector string) ([]*Element, error) {
	nodes, err := queryAll(d.root, selector)
	if err != nil {
		return nil, err
	}
	out := make([]*Element, len(nodes))
	for i, n := range nodes {
		out[i] = d.wrap(n)
	}
	return out, nil
}

// ElementIDs returns every id attribute present in the document.
func (d *Document) ElementIDs() []string {
	nodes, _ := htmlquery.QueryAll(d.root, "//*[@id]")
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, htmlquery.SelectAttr(n, "id"))
	}
	return ids
}

// ScrollTop returns the current vertical scroll position.
func (d *Document) ScrollTop() int {
	return d.scrollTop
}

// ScrollTo moves the viewport to top. Negative positions clamp to zero.
// Smooth behavior degrades to instant when the capability is off; the
// behavior actually used is recorded and observable via
// LastScrollBehavior.
func (d *Document) ScrollTo(top int, behavior ScrollBehavior) {
	if top < 0 {
		top = 0
	}
	if behavior == ScrollSmooth && !d.caps.SmoothScroll {
		behavior = ScrollInstant
	}
	d.scrollTop = top
	d.lastBehavior = behavior
}

// LastScrollBehavior reports the behavior of the most recent scroll.
func (d *Document) LastScrollBehavior() ScrollBehavior {
	return d.lastBehavior
}

// Active returns the focused element, or nil when nothing holds focus.
func (d *Document) Active() *Element {
	return d.active
}

// Capabilities returns the platform capability flags.
func (d *Document) Capabilities() Capabilities {
	return d.caps
}

// SetCapabilities overrides the platform capability flags.
func (d *Document) SetCapabilities(caps Capabilities) {
	d.caps = caps
}

// RootStyleProperty reads a custom property from the root style table.
func (d *Document) RootStyleProperty(name string) (string, bool) {
	v, ok := d.rootStyle[name]
	return v, ok
}

// SetRootStyleProperty writes a custom property on the root style table.
func (d *Document) SetRootStyleProperty(name, value string) {
	d.rootStyle[name] = value
}

// Loaded reports whether the document has fired its load event.
func (d *Document) Loaded() bool {
	return d.loaded
}

// MarkLoaded flips the document to loaded and dispatches load on the
// root element. Subsequent calls are no-ops.
func (d *Document) MarkLoaded() {
	if d.loaded {
		return
	}
	d.loaded = true
	if rootEl := d.Root(); rootEl != nil {
		rootEl.Dispatch(NewEvent("load", EventInit{}))
	}
}

// AddEventListener registers a document-level listener. Document
// listeners live on the root element, which heads every propagation
// path, so bubbling events from anywhere in the tree reach them.
func (d *Document) AddEventListener(typ string, h Handler, opts ListenerOptions) ListenerID {
	rootEl := d.Root()
	if rootEl == nil {
		return 0
	}
	return rootEl.AddEventListener(typ, h, opts)
}

// RemoveEventListener removes a document-level listener.
func (d *Document) RemoveEventListener(typ string, id ListenerID) bool {
	rootEl := d.Root()
	if rootEl == nil {
		return false
	}
	return rootEl.RemoveEventListener(typ, id)
}
