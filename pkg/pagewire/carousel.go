package pagewire

import (
	"context"
	"time"

	"github.com/dmercer/pagewire/pkg/pagewire/dom"
	"github.com/dmercer/pagewire/pkg/pagewire/sched"
)

// carouselWidget rotates .slide children of the carousel container,
// with prev/next controls and hover-paused autoplay.
type carouselWidget struct {
	s *Session

	container *dom.Element
	slides    []*dom.Element

	idx      int
	interval time.Duration
	timer    sched.Timer
	paused   bool
}

// installCarousel binds the carousel. Missing container or a container
// without slides skips the widget.
func (s *Session) installCarousel(ctx context.Context) (bool, error) {
	container, err := s.doc.Query(s.st.CarouselSelector)
	if err != nil {
		return false, err
	}
	if container == nil {
		s.logSelectorMiss("carousel", s.st.CarouselSelector)
		return false, nil
	}
	slides, err := container.QueryAll(".slide")
	if err != nil {
		return false, err
	}
	if len(slides) == 0 {
		s.logSelectorMiss("carousel", s.st.CarouselSelector+" .slide")
		return false, nil
	}

	w := &carouselWidget{
		s:         s,
		container: container,
		slides:    slides,
		interval:  s.st.CarouselInterval,
	}
	w.apply()

	prev, err := container.Query(".carousel-prev")
	if err != nil {
		return false, err
	}
	next, err := container.Query(".carousel-next")
	if err != nil {
		return false, err
	}
	s.addListener("carousel", prev, "click", func(ev *dom.Event) {
		w.step(-1)
		w.rearm()
	}, dom.ListenerOptions{})
	s.addListener("carousel", next, "click", func(ev *dom.Event) {
		w.step(1)
		w.rearm()
	}, dom.ListenerOptions{})

	// Autoplay holds while the pointer is over the carousel.
	s.addListener("carousel", container, "pointerenter", func(ev *dom.Event) {
		w.pause()
	}, dom.ListenerOptions{})
	s.addListener("carousel", container, "pointerleave", func(ev *dom.Event) {
		w.resume()
	}, dom.ListenerOptions{})

	w.arm()
	s.stoppers = append(s.stoppers, w.stop)
	return true, nil
}

// apply reflects the active index into classes and aria-hidden.
func (w *carouselWidget) apply() {
	for i, slide := range w.slides {
		if i == w.idx {
			slide.AddClass("active")
			slide.SetAttribute("aria-hidden", "false")
		} else {
			slide.RemoveClass("active")
			slide.SetAttribute("aria-hidden", "true")
		}
	}
}

// step advances the active slide by n, wrapping in both directions.
func (w *carouselWidget) step(n int) {
	count := len(w.slides)
	w.idx = ((w.idx+n)%count + count) % count
	w.apply()
}

// arm schedules the next autoplay tick. Each tick advances one slide
// and rearms unless a hover paused the carousel meanwhile.
func (w *carouselWidget) arm() {
	w.timer = w.s.scheduler.After(w.interval, func() {
		w.step(1)
		if !w.paused {
			w.arm()
		}
	})
}

// rearm restarts the autoplay window after a manual step.
func (w *carouselWidget) rearm() {
	w.stop()
	if !w.paused {
		w.arm()
	}
}

func (w *carouselWidget) pause() {
	w.paused = true
	w.stop()
}

func (w *carouselWidget) resume() {
	if !w.paused {
		return
	}
	w.paused = false
	w.arm()
}

// stop cancels the pending autoplay tick.
func (w *carouselWidget) stop() {
	if w.timer != nil {
		w.timer.Cancel()
		w.timer = nil
	}
}
