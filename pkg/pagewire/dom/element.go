package dom

import (
	"errors"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// ErrFocusOptionsUnsupported is returned by Focus when a prevent-scroll
// focus is requested on a platform without focus options. Callers fall
// back to a plain Focus, accepting the implicit scroll.
var ErrFocusOptionsUnsupported = errors.New("dom: focus options not supported")

// FocusOptions configures a Focus call.
type FocusOptions struct {
	// PreventScroll asks the platform not to scroll the element into
	// view as a side effect of focusing it.
	PreventScroll bool
}

// Element wraps one html.Node. Wrappers have stable identity per
// document: the same underlying node always produces the same *Element,
// so elements work as map keys and comparison targets.
type Element struct {
	doc    *Document
	node   *html.Node
	target *eventTarget

	// value overlays the value attribute for form controls; the live
	// value diverges from the attribute once the user types.
	value *string
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return strings.ToLower(e.node.Data)
}

// ID returns the id attribute, empty when absent.
func (e *Element) ID() string {
	v, _ := e.Attribute("id")
	return v
}

// Attribute returns an attribute value and whether it is present.
func (e *Element) Attribute(name string) (string, bool) {
	for _, attr := range e.node.Attr {
		if attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// HasAttribute reports attribute presence.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.Attribute(name)
	return ok
}

// SetAttribute writes an attribute, replacing any existing value.
func (e *Element) SetAttribute(name, value string) {
	for i, attr := range e.node.Attr {
		if attr.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttribute deletes an attribute. Removing an absent attribute is
// a no-op.
func (e *Element) RemoveAttribute(name string) {
	for i, attr := range e.node.Attr {
		if attr.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	v, _ := e.Attribute("class")
	return strings.Fields(v)
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass adds name to the class list if absent.
func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	e.SetAttribute("class", strings.TrimSpace(strings.Join(append(e.Classes(), name), " ")))
}

// RemoveClass removes name from the class list.
func (e *Element) RemoveClass(name string) {
	classes := e.Classes()
	out := classes[:0]
	for _, c := range classes {
		if c != name {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		e.RemoveAttribute("class")
		return
	}
	e.SetAttribute("class", strings.Join(out, " "))
}

// ToggleClass flips name in the class list and reports whether it is
// now present.
func (e *Element) ToggleClass(name string) bool {
	if e.HasClass(name) {
		e.RemoveClass(name)
		return false
	}
	e.AddClass(name)
	return true
}

// Text returns the concatenated text content of the subtree.
func (e *Element) Text() string {
	return htmlquery.InnerText(e.node)
}

// SetText replaces the element's children with a single text node.
func (e *Element) SetText(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Parent returns the parent element, nil at the tree top.
func (e *Element) Parent() *Element {
	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return e.doc.wrap(p)
		}
	}
	return nil
}

// Children returns the element children in document order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// Query returns the first descendant matching a CSS selector, nil when
// nothing matches.
func (e *Element) Query(selector string) (*Element, error) {
	node, err := queryOne(e.node, selector)
	if err != nil {
		return nil, err
	}
	return e.doc.wrap(node), nil
}

// QueryAll returns every descendant matching a CSS selector.
func (e *Element) QueryAll(selector string) ([]*Element, error) {
	nodes, err := queryAll(e.node, selector)
	if err != nil {
		return nil, err
	}
	out := make([]*Element, len(nodes))
	for i, n := range nodes {
		out[i] = e.doc.wrap(n)
	}
	return out, nil
}

// Value returns the live value of a form control. Before any SetValue
// it falls back to the value attribute, or the text content for a
// textarea.
func (e *Element) Value() string {
	if e.value != nil {
		return *e.value
	}
	if e.Tag() == "textarea" {
		return e.Text()
	}
	v, _ := e.Attribute("value")
	return v
}

// SetValue sets the live value of a form control.
func (e *Element) SetValue(v string) {
	e.value = &v
}

// Focusable reports whether the element can take focus: natively
// focusable tags, links with an href, and anything carrying a tabindex.
func (e *Element) Focusable() bool {
	switch e.Tag() {
	case "button", "input", "textarea", "select":
		return true
	case "a":
		return e.HasAttribute("href")
	}
	return e.HasAttribute("tabindex")
}

// Focus moves document focus to the element and dispatches a focus
// event. Unless PreventScroll is honored, the viewport jumps so the
// element is in view. Focusing a non-focusable element is a silent
// no-op, as on the platform. Returns ErrFocusOptionsUnsupported when
// PreventScroll is requested without the capability.
func (e *Element) Focus(opts FocusOptions) error {
	if opts.PreventScroll && !e.doc.caps.FocusOptions {
		return ErrFocusOptionsUnsupported
	}
	if !e.Focusable() {
		return nil
	}

	if prev := e.doc.active; prev != nil && prev != e {
		prev.Dispatch(NewEvent("blur", EventInit{}))
	}
	e.doc.active = e
	if !opts.PreventScroll {
		e.doc.ScrollTo(e.OffsetTop(), ScrollInstant)
	}
	e.Dispatch(NewEvent("focus", EventInit{}))
	return nil
}

// Blur drops focus if the element holds it.
func (e *Element) Blur() {
	if e.doc.active != e {
		return
	}
	e.doc.active = nil
	e.Dispatch(NewEvent("blur", EventInit{}))
}
