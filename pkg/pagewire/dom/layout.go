package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// The layout model is a synthetic single-column block flow: each block
// element occupies a fixed height by tag, stacked in document order.
// It exists so scroll math (element tops, offsets, floors) is exact and
// testable without a rendering engine.

// blockHeights assigns a pixel height to block-level tags. Anything not
// listed is treated as zero-height (inline or structural).
var blockHeights = map[string]int{
	"h1":         64,
	"h2":         48,
	"h3":         36,
	"h4":         28,
	"p":          24,
	"li":         20,
	"section":    16,
	"header":     16,
	"footer":     16,
	"form":       16,
	"figure":     16,
	"blockquote": 24,
	"hr":         8,
	"img":        120,
	"input":      32,
	"textarea":   96,
	"select":     32,
	"button":     32,
	"label":      20,
}

// OffsetTop returns the element's absolute top in the synthetic layout.
func (e *Element) OffsetTop() int {
	tops := e.doc.layoutTops()
	return tops[e.node]
}

// ContentHeight returns the total height of the laid-out document.
func (d *Document) ContentHeight() int {
	body := d.Body()
	if body == nil {
		return 0
	}
	return walkLayout(body.node, 0, nil)
}

// layoutTops computes the top offset of every element under body.
// Recomputed per call; documents here are small and mutation patterns
// are simple, so caching buys nothing worth the invalidation.
func (d *Document) layoutTops() map[*html.Node]int {
	tops := make(map[*html.Node]int)
	if body := d.Body(); body != nil {
		walkLayout(body.node, 0, tops)
	}
	return tops
}

// walkLayout visits elements depth-first. An element's top is the flow
// position when it is entered; its own height is consumed after its
// children, so nested blocks stack inside their parent.
func walkLayout(n *html.Node, top int, tops map[*html.Node]int) (bottom int) {
	cursor := top
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if tops != nil {
			tops[c] = cursor
		}
		cursor = walkLayout(c, cursor, tops)
		cursor += blockHeights[strings.ToLower(c.Data)]
	}
	return cursor
}
