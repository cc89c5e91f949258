package snap

import (
	"math"

	"snapdeck/internal/dom"
)

// Direction is the vertical intent of an input
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
)

// boundaryTolerance absorbs sub-pixel rounding at the bottom of a section
const boundaryTolerance = 2.0

func directionOf(deltaY float64) Direction {
	if deltaY > 0 {
		return DirectionDown
	}
	return DirectionUp
}

func stepOf(deltaY float64) int {
	if deltaY > 0 {
		return 1
	}
	return -1
}

// CanScrollInternally reports whether el still has room to scroll natively in dir.
// Down needs more than 2px left below the fold; up needs a positive offset.
func CanScrollInternally(dir Direction, el *dom.Element) bool {
	if el == nil || !el.Scrollable() {
		return false
	}
	scrollTop := math.Ceil(el.ScrollTop)
	if dir == DirectionDown {
		return scrollTop+el.ClientHeight < el.ScrollHeight-boundaryTolerance
	}
	return scrollTop > 0
}

func (c *Controller) onWheel(e *dom.Event) {
	c.mu.Lock()
	if c.lock.Held() {
		c.mu.Unlock()
		e.PreventDefault()
		return
	}

	if CanScrollInternally(directionOf(e.DeltaY), c.currentSectionLocked()) {
		c.mu.Unlock()
		return
	}

	e.PreventDefault()
	e.StopPropagation()

	if math.Abs(e.DeltaY) < c.opts.WheelDeltaThreshold {
		c.mu.Unlock()
		return
	}

	step := 0
	if c.wheelGesture != nil {
		c.wheelGesture.Stop()
	} else {
		step = stepOf(e.DeltaY)
	}
	c.armWheelGestureLocked()

	if step == 0 {
		c.mu.Unlock()
		return
	}
	detail, ok := c.goToSectionLocked(c.currentIndex + step)
	c.mu.Unlock()
	if ok {
		c.notify(detail)
	}
}

// armWheelGestureLocked (re)starts the gesture-end debounce
func (c *Controller) armWheelGestureLocked() {
	c.wheelGestureGen++
	gen := c.wheelGestureGen
	c.wheelGesture = c.opts.Scheduler.AfterFunc(c.opts.WheelGestureEndDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.wheelGestureGen == gen {
			c.wheelGesture = nil
		}
	})
}

func (c *Controller) onKeyDown(e *dom.Event) {
	if c.lock.Held() {
		return
	}
	switch e.Key {
	case dom.KeyArrowDown:
		c.Next()
	case dom.KeyArrowUp:
		c.Prev()
	}
}

func (c *Controller) onTouchStart(e *dom.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	y := e.ClientY
	c.touchStartY = &y
}

func (c *Controller) onTouchEnd(e *dom.Event) {
	c.mu.Lock()
	if c.touchStartY == nil {
		c.mu.Unlock()
		return
	}
	deltaY := *c.touchStartY - e.ClientY
	c.touchStartY = nil

	if CanScrollInternally(directionOf(deltaY), c.currentSectionLocked()) {
		c.mu.Unlock()
		return
	}
	if math.Abs(deltaY) <= c.opts.TouchThreshold {
		c.mu.Unlock()
		return
	}

	detail, ok := c.goToSectionLocked(c.currentIndex + stepOf(deltaY))
	c.mu.Unlock()
	if ok {
		c.notify(detail)
	}
}
