package dom

import "strings"

// Document owns the element tree and routes events through it.
// It is not safe for concurrent use; the host drives it from one goroutine.
type Document struct {
	window     *Window
	body       *Element
	touchLastY *float64
}

// NewDocument creates an empty document with a body element
func NewDocument() *Document {
	return &Document{
		window: &Window{},
		body:   &Element{Tag: "body"},
	}
}

// Window returns the document's window target
func (d *Document) Window() *Window {
	return d.window
}

// Body returns the root element
func (d *Document) Body() *Element {
	return d.body
}

// CreateElement returns a detached element
func (d *Document) CreateElement(tag string) *Element {
	return &Element{Tag: strings.ToLower(tag)}
}

// QuerySelector returns the first element in the document matching sel
func (d *Document) QuerySelector(sel string) *Element {
	if s, ok := parseSelector(sel); ok && s.matches(d.body) {
		return d.body
	}
	return d.body.QuerySelector(sel)
}

// Dispatch delivers ev to target, its ancestors and finally the window,
// then runs the default action unless a listener prevented it.
// A nil target dispatches to the body.
func (d *Document) Dispatch(target *Element, ev *Event) *Event {
	if target == nil {
		target = d.body
	}
	ev.Target = target

	for n := target; n != nil && !ev.propagationStopped; n = n.parent {
		n.fire(ev)
	}
	if !ev.propagationStopped {
		d.window.fire(ev)
	}

	d.defaultAction(ev)
	return ev
}

// DispatchKey sends a keydown event for key
func (d *Document) DispatchKey(key string) *Event {
	return d.Dispatch(d.body, &Event{Type: EventKeyDown, Key: key})
}

// DispatchWheel sends a wheel event to target
func (d *Document) DispatchWheel(target *Element, deltaY float64) *Event {
	return d.Dispatch(target, &Event{Type: EventWheel, DeltaY: deltaY})
}

// DispatchTouch sends a touch event at clientY to target
func (d *Document) DispatchTouch(target *Element, eventType EventType, clientY float64) *Event {
	return d.Dispatch(target, &Event{Type: eventType, ClientY: clientY})
}

func (d *Document) defaultAction(ev *Event) {
	switch ev.Type {
	case EventTouchStart:
		y := ev.ClientY
		d.touchLastY = &y
		return
	case EventTouchEnd:
		d.touchLastY = nil
		return
	}
	if ev.defaultPrevented {
		return
	}

	switch ev.Type {
	case EventWheel:
		if el := scrollParent(ev.Target); el != nil {
			el.ScrollBy(ev.DeltaY)
		}
	case EventTouchMove:
		if d.touchLastY == nil {
			return
		}
		if el := scrollParent(ev.Target); el != nil {
			el.ScrollBy(*d.touchLastY - ev.ClientY)
		}
		y := ev.ClientY
		d.touchLastY = &y
	}
}

// scrollParent finds the nearest element, starting at el, that can scroll
func scrollParent(el *Element) *Element {
	for n := el; n != nil; n = n.parent {
		if n.Scrollable() && n.Style("overflow") != "hidden" {
			return n
		}
	}
	return nil
}
