package benchmarks

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dmercer/pagewire/pkg/pagewire/dom"
	"github.com/dmercer/pagewire/pkg/pagewire/listener"
)

// buildPage produces a page with n anchor links and matching sections.
func buildPage(n int) string {
	var b strings.Builder
	b.WriteString("<html><body><nav>")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<a href="#s%d">link</a>`, i)
	}
	b.WriteString("</nav>")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<section id="s%d"><p>text</p></section>`, i)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func mustParse(b *testing.B, page string) *dom.Document {
	b.Helper()
	doc, err := dom.ParseString(page)
	if err != nil {
		b.Fatal(err)
	}
	return doc
}

// BenchmarkDispatch_Depth measures one bubbling click through a short
// ancestor chain with a listener at each level.
func BenchmarkDispatch_Depth(b *testing.B) {
	doc := mustParse(b, buildPage(1))
	link, _ := doc.Query("a")
	doc.AddEventListener("click", func(*dom.Event) {}, dom.ListenerOptions{})
	link.AddEventListener("click", func(*dom.Event) {}, dom.ListenerOptions{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		link.Dispatch(dom.ClickEvent())
	}
}

// BenchmarkQuery_ID measures id lookup on a 100-section page.
func BenchmarkQuery_ID(b *testing.B) {
	doc := mustParse(b, buildPage(100))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if doc.GetElementByID("s50") == nil {
			b.Fatal("lookup missed")
		}
	}
}

// BenchmarkQuery_Selector measures a class-compound selector on a
// 100-section page.
func BenchmarkQuery_Selector(b *testing.B) {
	doc := mustParse(b, buildPage(100))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := doc.QueryAll("nav a"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRegistry_AddRemoveAll measures a full listener lifecycle for
// 100 tracked listeners, the teardown-heavy path.
func BenchmarkRegistry_AddRemoveAll(b *testing.B) {
	doc := mustParse(b, buildPage(100))
	links, _ := doc.QueryAll("a")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg := listener.NewRegistry(nil)
		for _, link := range links {
			reg.Add(link, "click", func(*dom.Event) {}, dom.ListenerOptions{})
		}
		reg.RemoveAll()
	}
}
