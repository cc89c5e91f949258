package dom

import (
	"math"
	"slices"
)

// Element is a node in the document tree
type Element struct {
	listenerSet

	Tag string
	ID  string

	// Scroll geometry in px
	ScrollTop    float64
	ScrollHeight float64
	ClientHeight float64

	classes  []string
	style    map[string]string
	parent   *Element
	children []*Element
}

// Parent returns the parent element, or nil for a detached or root element
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the direct children in document order
func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// AppendChild attaches child as the last child of e
func (e *Element) AppendChild(child *Element) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// RemoveChild detaches child from e
func (e *Element) RemoveChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// ReplaceChildren detaches every current child and appends the given ones
func (e *Element) ReplaceChildren(children ...*Element) {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
	for _, c := range children {
		e.AppendChild(c)
	}
}

// AddClass adds class markers, ignoring duplicates
func (e *Element) AddClass(names ...string) {
	for _, n := range names {
		if n != "" && !e.HasClass(n) {
			e.classes = append(e.classes, n)
		}
	}
}

// RemoveClass removes class markers if present
func (e *Element) RemoveClass(names ...string) {
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool {
		return slices.Contains(names, c)
	})
}

// HasClass reports whether the class marker is set
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, name)
}

// Classes returns a copy of the element's class markers
func (e *Element) Classes() []string {
	return append([]string(nil), e.classes...)
}

// SetStyle sets an inline style property
func (e *Element) SetStyle(prop, value string) {
	if e.style == nil {
		e.style = make(map[string]string)
	}
	if value == "" {
		delete(e.style, prop)
		return
	}
	e.style[prop] = value
}

// Style returns an inline style property, or "" when unset
func (e *Element) Style(prop string) string {
	return e.style[prop]
}

// QuerySelectorAll returns every descendant matching sel in document order.
// An invalid selector matches nothing.
func (e *Element) QuerySelectorAll(sel string) []*Element {
	s, ok := parseSelector(sel)
	if !ok {
		return nil
	}
	var out []*Element
	var walk func(*Element)
	walk = func(n *Element) {
		for _, c := range n.children {
			if s.matches(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(e)
	return out
}

// QuerySelector returns the first descendant matching sel, or nil
func (e *Element) QuerySelector(sel string) *Element {
	if all := e.QuerySelectorAll(sel); len(all) > 0 {
		return all[0]
	}
	return nil
}

// Scrollable reports whether content overflows the visible height
func (e *Element) Scrollable() bool {
	return e.ScrollHeight > e.ClientHeight
}

// MaxScrollTop is the largest valid ScrollTop
func (e *Element) MaxScrollTop() float64 {
	return math.Max(0, e.ScrollHeight-e.ClientHeight)
}

// SetScrollTop moves the internal scroll offset, clamped to the content
func (e *Element) SetScrollTop(top float64) {
	e.ScrollTop = math.Min(math.Max(0, top), e.MaxScrollTop())
}

// ScrollBy moves the internal scroll offset by dy px
func (e *Element) ScrollBy(dy float64) {
	e.SetScrollTop(e.ScrollTop + dy)
}
