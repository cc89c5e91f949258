package snap

import (
	"time"

	"snapdeck/internal/domain"
	"snapdeck/internal/dom"
	"snapdeck/internal/eventbus"
)

// Defaults for every recognized option
const (
	DefaultContainer            = ".sr-cont"
	DefaultSectionSelector      = ".sr-sec"
	DefaultActiveClass          = "sr-active"
	DefaultPrevClass            = "sr-prev"
	DefaultScrollTimeout        = 1000 * time.Millisecond
	DefaultTouchThreshold       = 50.0
	DefaultWheelDeltaThreshold  = 20.0
	DefaultWheelGestureEndDelay = 100 * time.Millisecond
)

// Options configures a Controller. Build it with NewOptions; the controller
// keeps its own copy and never changes it afterwards.
type Options struct {
	// Container is a selector resolved against the document.
	// ContainerElement, when set, wins over Container.
	Container        string
	ContainerElement *dom.Element

	SectionSelector string
	ActiveClass     string
	PrevClass       string

	// Keyboard enables ArrowUp/ArrowDown navigation
	Keyboard bool

	// ScrollTimeout is the minimum time between two snaps
	ScrollTimeout time.Duration
	// TouchThreshold is the minimum swipe distance in px
	TouchThreshold float64
	// WheelDeltaThreshold is the minimum |deltaY| counted as intentional
	WheelDeltaThreshold float64
	// WheelGestureEndDelay collapses one continuous wheel gesture into one intent
	WheelGestureEndDelay time.Duration

	// OnScroll is invoked after the broadcast on every accepted navigation
	OnScroll func(domain.ScrollData)

	// Bus receives the snap-section-scroll broadcast. A private bus is used when nil.
	Bus eventbus.EventBus
	// Scheduler runs the lock release and wheel debounce timers
	Scheduler Scheduler
}

// Option overrides one field of the defaults
type Option func(*Options)

// DefaultOptions returns the option set used when nothing is overridden
func DefaultOptions() Options {
	return Options{
		Container:            DefaultContainer,
		SectionSelector:      DefaultSectionSelector,
		ActiveClass:          DefaultActiveClass,
		PrevClass:            DefaultPrevClass,
		Keyboard:             true,
		ScrollTimeout:        DefaultScrollTimeout,
		TouchThreshold:       DefaultTouchThreshold,
		WheelDeltaThreshold:  DefaultWheelDeltaThreshold,
		WheelGestureEndDelay: DefaultWheelGestureEndDelay,
		Scheduler:            SystemScheduler(),
	}
}

// NewOptions applies opts on top of DefaultOptions.
// Empty strings and non-positive numbers fall back to their defaults.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	d := DefaultOptions()
	if o.Container == "" {
		o.Container = d.Container
	}
	if o.SectionSelector == "" {
		o.SectionSelector = d.SectionSelector
	}
	if o.ActiveClass == "" {
		o.ActiveClass = d.ActiveClass
	}
	if o.PrevClass == "" {
		o.PrevClass = d.PrevClass
	}
	if o.ScrollTimeout <= 0 {
		o.ScrollTimeout = d.ScrollTimeout
	}
	if o.TouchThreshold <= 0 {
		o.TouchThreshold = d.TouchThreshold
	}
	if o.WheelDeltaThreshold <= 0 {
		o.WheelDeltaThreshold = d.WheelDeltaThreshold
	}
	if o.WheelGestureEndDelay <= 0 {
		o.WheelGestureEndDelay = d.WheelGestureEndDelay
	}
	if o.Scheduler == nil {
		o.Scheduler = d.Scheduler
	}
	return o
}

func WithContainer(selector string) Option {
	return func(o *Options) { o.Container = selector }
}

func WithContainerElement(el *dom.Element) Option {
	return func(o *Options) { o.ContainerElement = el }
}

func WithSectionSelector(selector string) Option {
	return func(o *Options) { o.SectionSelector = selector }
}

func WithActiveClass(name string) Option {
	return func(o *Options) { o.ActiveClass = name }
}

func WithPrevClass(name string) Option {
	return func(o *Options) { o.PrevClass = name }
}

func WithKeyboard(enabled bool) Option {
	return func(o *Options) { o.Keyboard = enabled }
}

func WithScrollTimeout(d time.Duration) Option {
	return func(o *Options) { o.ScrollTimeout = d }
}

func WithTouchThreshold(px float64) Option {
	return func(o *Options) { o.TouchThreshold = px }
}

func WithWheelDeltaThreshold(px float64) Option {
	return func(o *Options) { o.WheelDeltaThreshold = px }
}

func WithWheelGestureEndDelay(d time.Duration) Option {
	return func(o *Options) { o.WheelGestureEndDelay = d }
}

func WithOnScroll(fn func(domain.ScrollData)) Option {
	return func(o *Options) { o.OnScroll = fn }
}

func WithBus(bus eventbus.EventBus) Option {
	return func(o *Options) { o.Bus = bus }
}

func WithScheduler(s Scheduler) Option {
	return func(o *Options) { o.Scheduler = s }
}
