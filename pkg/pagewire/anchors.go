package pagewire

import (
	"context"
	"strings"

	"github.com/dmercer/pagewire/pkg/pagewire/dom"
)

// installAnchors binds every same-page anchor link (href starting "#")
// to the reveal-and-focus primitive.
func (s *Session) installAnchors(ctx context.Context) (bool, error) {
	links, err := s.doc.QueryAll("a")
	if err != nil {
		return false, err
	}

	bound := 0
	for _, link := range links {
		href, ok := link.Attribute("href")
		if !ok || !strings.HasPrefix(href, "#") {
			continue
		}
		link := link
		s.addListener("anchors", link, "click", func(ev *dom.Event) {
			s.handleAnchorClick(link, ev)
		}, dom.ListenerOptions{})
		bound++
	}
	return bound > 0, nil
}

// handleAnchorClick intercepts a same-page anchor activation. Anything
// that isn't a plain primary click, and any fragment without a live
// target, falls through to the platform default untouched.
func (s *Session) handleAnchorClick(link *dom.Element, ev *dom.Event) {
	if ev.Button != 0 || ev.ModifiedClick() {
		return
	}

	// Read the href at click time; page code may have rewritten it.
	href, _ := link.Attribute("href")
	frag := strings.TrimPrefix(href, "#")
	if frag == "" {
		return
	}
	target := s.doc.GetElementByID(frag)
	if target == nil {
		s.logSelectorMiss("anchors", "#"+frag)
		return
	}

	ev.PreventDefault()
	if s.nav != nil && s.nav.isOpen() {
		s.nav.close()
	}
	s.RevealAndFocus(target, -1)
}
