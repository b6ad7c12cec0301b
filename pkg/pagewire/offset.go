package pagewire

import (
	"strconv"
	"strings"

	"github.com/dmercer/pagewire/pkg/pagewire/dom"
)

// DefaultScrollOffset is the fallback gap, in pixels, left above a
// revealed target so it clears any fixed header.
const DefaultScrollOffset = 16

// scrollOffsetProperty is the root style custom property a page can
// declare to control the reveal offset.
const scrollOffsetProperty = "--scroll-offset"

// ResolveOffset determines the scroll offset for a reveal. The page's
// own declaration wins: a parseable, non-negative --scroll-offset root
// style property (a bare integer or with a px suffix). Otherwise a
// non-negative override from config applies, and failing both the
// default is 16. ResolveOffset never fails; unparseable declarations
// fall through.
func ResolveOffset(doc *dom.Document, override int) int {
	if doc != nil {
		if raw, ok := doc.RootStyleProperty(scrollOffsetProperty); ok {
			if px, err := parsePixels(raw); err == nil && px >= 0 {
				return px
			}
		}
	}
	if override >= 0 {
		return override
	}
	return DefaultScrollOffset
}

// parsePixels reads an integer pixel declaration, tolerating a px
// suffix and surrounding whitespace.
func parsePixels(raw string) (int, error) {
	v := strings.TrimSpace(raw)
	v = strings.TrimSuffix(v, "px")
	v = strings.TrimSpace(v)
	return strconv.Atoi(v)
}
