package pagewire

import (
	"context"

	"github.com/dmercer/pagewire/pkg/pagewire/dom"
)

// navWidget is the collapsible mobile navigation: a toggle button and a
// container whose open state is one class plus mirrored aria-expanded.
type navWidget struct {
	s         *Session
	toggle    *dom.Element
	container *dom.Element
	openClass string
}

// installNav binds the mobile nav. Missing elements skip the widget;
// the page simply has no collapsible nav.
func (s *Session) installNav(ctx context.Context) (bool, error) {
	toggle, err := s.doc.Query(s.st.NavToggleSelector)
	if err != nil {
		return false, err
	}
	container, err := s.doc.Query(s.st.NavContainerSelector)
	if err != nil {
		return false, err
	}
	if toggle == nil {
		s.logSelectorMiss("nav", s.st.NavToggleSelector)
		return false, nil
	}
	if container == nil {
		s.logSelectorMiss("nav", s.st.NavContainerSelector)
		return false, nil
	}

	w := &navWidget{
		s:         s,
		toggle:    toggle,
		container: container,
		openClass: s.st.NavOpenClass,
	}

	// Wire the accessibility plumbing the markup usually forgets.
	if !toggle.HasAttribute("aria-controls") && container.ID() != "" {
		toggle.SetAttribute("aria-controls", container.ID())
	}
	w.setExpanded(w.isOpen())

	s.addListener("nav", toggle, "click", func(ev *dom.Event) {
		w.toggleOpen()
	}, dom.ListenerOptions{})

	// Escape closes an open nav from anywhere on the page.
	s.addListener("nav", s.doc.Root(), "keydown", func(ev *dom.Event) {
		if ev.Key == "Escape" && w.isOpen() {
			w.close()
		}
	}, dom.ListenerOptions{})

	s.nav = w
	return true, nil
}

func (w *navWidget) isOpen() bool {
	return w.container.HasClass(w.openClass)
}

func (w *navWidget) toggleOpen() {
	if w.isOpen() {
		w.close()
		return
	}
	w.container.AddClass(w.openClass)
	w.setExpanded(true)
}

func (w *navWidget) close() {
	w.container.RemoveClass(w.openClass)
	w.setExpanded(false)
}

// setExpanded mirrors the open state onto both elements.
func (w *navWidget) setExpanded(open bool) {
	v := "false"
	if open {
		v = "true"
	}
	w.toggle.SetAttribute("aria-expanded", v)
	w.container.SetAttribute("aria-expanded", v)
}
