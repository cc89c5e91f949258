package snap_test

import (
	"testing"
	"time"

	"snapdeck/internal/dom"
	"snapdeck/internal/domain"
	"snapdeck/internal/eventbus"
	"snapdeck/internal/snap"
	"snapdeck/internal/snap/snaptest"
)

type fixture struct {
	doc       *dom.Document
	container *dom.Element
	sections  []*dom.Element
	sched     *snaptest.Scheduler
	bus       eventbus.EventBus
	ctrl      *snap.Controller

	events    []domain.SectionScrolledEvent
	callbacks []domain.ScrollData
}

// newPage builds <main class="sr-cont"> with n <section class="sr-sec"> children
func newPage(n int) (*dom.Document, *dom.Element, []*dom.Element) {
	doc := dom.NewDocument()
	main := doc.CreateElement("main")
	main.ID = "page"
	main.AddClass("sr-cont")
	doc.Body().AppendChild(main)

	sections := make([]*dom.Element, 0, n)
	for i := 0; i < n; i++ {
		sec := doc.CreateElement("section")
		sec.AddClass("sr-sec")
		sec.ClientHeight = 600
		sec.ScrollHeight = 600
		main.AppendChild(sec)
		sections = append(sections, sec)
	}
	return doc, main, sections
}

func newFixture(t *testing.T, n int, opts ...snap.Option) *fixture {
	t.Helper()
	f := &fixture{sched: snaptest.NewScheduler(), bus: eventbus.New()}
	f.doc, f.container, f.sections = newPage(n)

	f.bus.Subscribe(eventbus.EventSectionScrolled, func(e eventbus.DomainEvent) {
		f.events = append(f.events, e.(domain.SectionScrolledEvent))
	})

	base := []snap.Option{
		snap.WithScheduler(f.sched),
		snap.WithBus(f.bus),
		snap.WithOnScroll(func(d domain.ScrollData) { f.callbacks = append(f.callbacks, d) }),
	}
	f.ctrl = snap.New(f.doc, append(base, opts...)...)
	t.Cleanup(f.ctrl.Destroy)
	return f
}

func (f *fixture) wheel(deltaY float64) *dom.Event {
	return f.doc.DispatchWheel(f.ctrl.CurrentSection(), deltaY)
}

func (f *fixture) swipe(fromY, toY float64) {
	target := f.ctrl.CurrentSection()
	f.doc.DispatchTouch(target, dom.EventTouchStart, fromY)
	f.doc.DispatchTouch(target, dom.EventTouchEnd, toY)
}

func (f *fixture) key(k string) {
	f.doc.DispatchKey(k)
}

func (f *fixture) wait(d time.Duration) {
	f.sched.Advance(d)
}
