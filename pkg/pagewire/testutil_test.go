package pagewire

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmercer/pagewire/pkg/pagewire/config"
	"github.com/dmercer/pagewire/pkg/pagewire/dom"
	"github.com/dmercer/pagewire/pkg/pagewire/sched"
)

// fullPage carries every widget's markup plus a --scroll-offset
// declaration.
const fullPage = `<!DOCTYPE html>
<html style="--scroll-offset: 72px">
<head><title>t</title></head>
<body>
  <header>
    <nav id="site-nav" class="site-nav">
      <button id="nav-toggle" class="nav-toggle">Menu</button>
      <ul>
        <li><a id="link-services" href="#services">Services</a></li>
        <li><a id="link-contact" href="#contact">Contact</a></li>
        <li><a id="link-about" href="/about">About</a></li>
      </ul>
    </nav>
  </header>
  <div class="carousel">
    <div class="slide">one</div>
    <div class="slide">two</div>
    <div class="slide">three</div>
    <button class="carousel-prev">Prev</button>
    <button class="carousel-next">Next</button>
  </div>
  <section id="services">
    <h2>Services</h2>
    <p>Things we do.</p>
  </section>
  <section id="contact">
    <h2>Contact</h2>
    <form id="contact-form">
      <input name="name">
      <input name="email" type="email">
      <textarea name="message"></textarea>
      <div id="form-status" aria-live="polite"></div>
      <button type="submit">Send</button>
    </form>
  </section>
</body>
</html>`

// plainPage has the same structure but no --scroll-offset declaration.
const plainPage = `<!DOCTYPE html>
<html>
<body>
  <h1>Acme</h1>
  <p>intro</p>
  <p>more intro</p>
  <a id="link-services" href="#services">Services</a>
  <section id="services"><h2>Services</h2></section>
</body>
</html>`

func parseDoc(t *testing.T, page string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	return doc
}

// newTestSession builds and initializes a session over page with the
// given config, on a manual scheduler.
func newTestSession(t *testing.T, page string, raw map[string]any, opts ...Option) (*Session, *dom.Document, *sched.Manual) {
	t.Helper()
	doc := parseDoc(t, page)
	clock := sched.NewManual()
	s := New(doc, clock, opts...)
	_, err := s.Init(config.New(raw))
	require.NoError(t, err)
	return s, doc, clock
}
