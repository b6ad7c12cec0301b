package pagewire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmercer/pagewire/pkg/pagewire/dom"
)

func TestAnchorClickRevealsTarget(t *testing.T) {
	s, doc, _ := newTestSession(t, fullPage, nil)
	link := doc.GetElementByID("link-services")
	target := doc.GetElementByID("services")

	ok := link.Dispatch(dom.ClickEvent())

	assert.False(t, ok, "platform navigation suppressed")
	assert.Same(t, target, doc.Active())
	v, _ := target.Attribute("tabindex")
	assert.Equal(t, "-1", v)
	assert.Equal(t, target.OffsetTop()-72, doc.ScrollTop())
	assert.Equal(t, 1, s.PendingReveals())
}

func TestAnchorModifiedClickFallsThrough(t *testing.T) {
	s, doc, _ := newTestSession(t, fullPage, nil)
	link := doc.GetElementByID("link-services")

	ev := dom.NewEvent("click", dom.EventInit{Bubbles: true, Cancelable: true, MetaKey: true})
	ok := link.Dispatch(ev)

	assert.True(t, ok, "modified click keeps the platform default")
	assert.Nil(t, doc.Active())
	assert.Equal(t, 0, s.PendingReveals())
}

func TestAnchorNonPrimaryButtonFallsThrough(t *testing.T) {
	s, doc, _ := newTestSession(t, fullPage, nil)
	link := doc.GetElementByID("link-services")

	ev := dom.NewEvent("click", dom.EventInit{Bubbles: true, Cancelable: true, Button: 1})
	ok := link.Dispatch(ev)

	assert.True(t, ok)
	assert.Equal(t, 0, s.PendingReveals())
}

func TestAnchorExternalLinkNotBound(t *testing.T) {
	s, doc, _ := newTestSession(t, fullPage, nil)
	link := doc.GetElementByID("link-about")

	ok := link.Dispatch(dom.ClickEvent())
	assert.True(t, ok)
	assert.Equal(t, 0, s.PendingReveals())
}

func TestAnchorMissingTargetFallsThrough(t *testing.T) {
	page := `<html><body>
		<a id="bad" href="#nowhere">x</a>
		<section id="somewhere"></section>
	</body></html>`
	s, doc, _ := newTestSession(t, page, nil)

	ok := doc.GetElementByID("bad").Dispatch(dom.ClickEvent())
	assert.True(t, ok, "dead fragment keeps the platform default")
	assert.Equal(t, 0, s.PendingReveals())
}

func TestAnchorEmptyFragmentFallsThrough(t *testing.T) {
	page := `<html><body><a id="top" href="#">top</a></body></html>`
	s, doc, _ := newTestSession(t, page, nil)

	ok := doc.GetElementByID("top").Dispatch(dom.ClickEvent())
	assert.True(t, ok)
	assert.Equal(t, 0, s.PendingReveals())
}

func TestAnchorReadsHrefAtClickTime(t *testing.T) {
	_, doc, _ := newTestSession(t, fullPage, nil)
	link := doc.GetElementByID("link-services")
	link.SetAttribute("href", "#contact")

	link.Dispatch(dom.ClickEvent())
	assert.Same(t, doc.GetElementByID("contact"), doc.Active())
}

func TestAnchorClickClosesOpenNav(t *testing.T) {
	_, doc, _ := newTestSession(t, fullPage, nil)
	toggle := doc.GetElementByID("nav-toggle")
	container := doc.GetElementByID("site-nav")

	toggle.Dispatch(dom.ClickEvent())
	require.True(t, container.HasClass("nav-open"))

	doc.GetElementByID("link-services").Dispatch(dom.ClickEvent())
	assert.False(t, container.HasClass("nav-open"))
}
