package app

import (
	"fmt"
	"image/color"

	"touchshow/frame"
	"touchshow/hal"
	"touchshow/marker"
	"touchshow/render"
)

// Config selects the marker style and slot mapping.
type Config struct {
	Style      marker.Style
	Mapping    marker.Mapping
	Background color.RGBA
}

// System is the running overlay: one pool, its fades and the surface they draw on.
type System struct {
	h hal.HAL

	surface    *render.Surface
	pool       *marker.Pool
	frames     *frame.Scheduler
	fader      *marker.Fader
	dispatcher *marker.Dispatcher

	events  <-chan hal.TouchEvent
	batch   []marker.Contact
	restyle chan marker.Style
}

// New builds the overlay with default config and returns its per-frame step.
func New(h hal.HAL) (func() error, error) {
	return NewWithConfig(h, Config{Style: marker.DefaultStyle()})
}

// NewWithConfig builds the overlay and returns its per-frame step.
func NewWithConfig(h hal.HAL, cfg Config) (func() error, error) {
	s, err := NewSystem(h, cfg)
	if err != nil {
		return nil, err
	}
	return s.Step, nil
}

// NewSystem wires the HAL display and touch input to a marker pool.
//
// A missing display is fatal. Missing touch input is not: markers simply never show.
func NewSystem(h hal.HAL, cfg Config) (*System, error) {
	if h == nil {
		return nil, fmt.Errorf("touchshow: %w", marker.ErrNoSurface)
	}
	surface, err := render.NewSurface(h.Display(), cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("touchshow: %w", err)
	}
	pool, err := marker.NewPool(surface, cfg.Style)
	if err != nil {
		return nil, fmt.Errorf("touchshow: %w", err)
	}

	frames := frame.New()
	fader := marker.NewFader(frames)
	s := &System{
		h:          h,
		surface:    surface,
		pool:       pool,
		frames:     frames,
		fader:      fader,
		dispatcher: marker.NewDispatcher(pool, fader, cfg.Mapping),
		restyle:    make(chan marker.Style, 1),
	}
	if in := h.Input(); in != nil {
		if t := in.Touch(); t != nil {
			s.events = t.Events()
		}
	}

	st := pool.Style()
	s.logf("touchshow: started prefix=%s capacity=%d mapping=%s", st.Prefix, pool.Len(), cfg.Mapping)
	s.logf("debug: style %s %s", st.StyleID(), st.Rule())
	if s.events == nil {
		s.logf("touchshow: no touch input; markers will stay hidden")
	}
	return s, nil
}

// Pool returns the marker pool.
func (s *System) Pool() *marker.Pool { return s.pool }

// Frames returns the frame scheduler driving the fades.
func (s *System) Frames() *frame.Scheduler { return s.frames }

// Restyle queues a new shared marker style for the next Step. It may be called
// from any goroutine; only the latest queued style is applied.
func (s *System) Restyle(st marker.Style) {
	for {
		select {
		case s.restyle <- st:
			return
		default:
		}
		select {
		case <-s.restyle:
		default:
		}
	}
}

// Step runs one display frame: pending fade ticks, then queued touch
// notifications and restyles, then compositing.
func (s *System) Step() (err error) {
	defer s.recoverStep(&err)

	s.frames.RunFrame()
	s.drainTouch()
	if err := s.applyRestyle(); err != nil {
		return err
	}
	return s.surface.Render()
}

func (s *System) applyRestyle() error {
	select {
	case st := <-s.restyle:
		if err := s.pool.Restyle(st); err != nil {
			return fmt.Errorf("touchshow: %w", err)
		}
		st = s.pool.Style()
		s.logf("touchshow: restyled %s", st.Rule())
	default:
	}
	return nil
}

func (s *System) drainTouch() {
	if s.events == nil {
		return
	}
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.events = nil
				return
			}
			s.handle(ev)
		default:
			return
		}
	}
}

func (s *System) handle(ev hal.TouchEvent) {
	switch ev.Kind {
	case hal.TouchStart:
		s.batch = s.batch[:0]
		for _, p := range ev.Contacts {
			s.batch = append(s.batch, marker.Contact{ID: p.ID, X: p.X, Y: p.Y})
		}
		n := s.dispatcher.OnTouchStart(s.batch)
		if n < len(s.batch) {
			s.logf("debug: touch start contacts=%d shown=%d dropped=%d", len(s.batch), n, len(s.batch)-n)
		} else {
			s.logf("debug: touch start contacts=%d", len(s.batch))
		}
	case hal.TouchEnd:
		ids := make([]int, 0, len(ev.Contacts))
		for _, p := range ev.Contacts {
			ids = append(ids, p.ID)
		}
		s.dispatcher.OnTouchEnd(ids)
		s.logf("debug: touch end contacts=%d", len(ids))
	}
}

func (s *System) logf(format string, args ...any) {
	if s.h == nil {
		return
	}
	if l := s.h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf(format, args...))
	}
}
