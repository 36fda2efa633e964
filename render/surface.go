// Package render composites touch markers into an RGB565 framebuffer.
package render

import (
	"errors"
	"image/color"

	"touchshow/fonts/digits5x7"
	"touchshow/hal"
	"touchshow/marker"

	"tinygo.org/x/tinyfont"
)

var ErrNoFramebuffer = errors.New("render: no RGB565 framebuffer")

// Surface implements marker.Surface on top of a hal.Framebuffer.
//
// Elements are drawn in creation order over a solid background on every Render.
type Surface struct {
	fb hal.Framebuffer
	bg uint16

	rules   map[string]marker.Style // by style id
	classes map[string]string       // class -> style id
	els     []*element

	font tinyfont.Fonter
}

type element struct {
	spec    marker.MarkerSpec
	x, y    int
	opacity float64
	visible bool
}

func (e *element) SetPosition(x, y int)       { e.x, e.y = x, y }
func (e *element) SetOpacity(opacity float64) { e.opacity = clamp01(opacity) }
func (e *element) SetVisible(visible bool)    { e.visible = visible }

// NewSurface returns a surface drawing into the display's framebuffer.
func NewSurface(d hal.Display, background color.RGBA) (*Surface, error) {
	if d == nil {
		return nil, ErrNoFramebuffer
	}
	fb := d.Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 || fb.Buffer() == nil {
		return nil, ErrNoFramebuffer
	}
	return &Surface{
		fb:    fb,
		bg:    hal.RGB565(background.R, background.G, background.B),
		rules:   make(map[string]marker.Style),
		classes: make(map[string]string),
		font:    digits5x7.Font,
	}, nil
}

// RegisterStyle installs st under id for every element whose class matches
// st.Class(). Registering id again replaces the previous rule, including the
// class it applied to.
func (s *Surface) RegisterStyle(id string, st marker.Style) error {
	if id == "" {
		return errors.New("render: empty style id")
	}
	if old, ok := s.rules[id]; ok && s.classes[old.Class()] == id {
		delete(s.classes, old.Class())
	}
	s.rules[id] = st
	s.classes[st.Class()] = id
	return nil
}

func (s *Surface) styleFor(class string) (marker.Style, bool) {
	id, ok := s.classes[class]
	if !ok {
		return marker.Style{}, false
	}
	st, ok := s.rules[id]
	return st, ok
}

// CreateMarker adds a hidden element.
func (s *Surface) CreateMarker(spec marker.MarkerSpec) (marker.Element, error) {
	el := &element{spec: spec}
	s.els = append(s.els, el)
	return el, nil
}

// Render redraws the frame and presents it.
func (s *Surface) Render() error {
	clearRGB565(s.fb.Buffer(), s.bg)
	for _, el := range s.els {
		if !el.visible || el.opacity <= 0 {
			continue
		}
		st, ok := s.styleFor(el.spec.Class)
		if !ok {
			continue
		}
		s.drawMarker(el, st)
	}
	return s.fb.Present()
}

func (s *Surface) drawMarker(el *element, st marker.Style) {
	alpha := uint8(el.opacity*255 + 0.5)
	if alpha == 0 {
		return
	}
	r := st.Radius
	cx := el.x + r
	cy := el.y + r

	fill := hal.RGB565(st.Fill.R, st.Fill.G, st.Fill.B)
	border := hal.RGB565(st.Border.R, st.Border.G, st.Border.B)
	outer := r * r
	inner := (r - st.BorderWidth) * (r - st.BorderWidth)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			d2 := dx*dx + dy*dy
			if d2 > outer {
				continue
			}
			c := fill
			if d2 > inner {
				c = border
			}
			s.blend(cx+dx, cy+dy, c, alpha)
		}
	}

	if el.spec.Label == "" {
		return
	}
	_, w := tinyfont.LineWidth(s.font, el.spec.Label)
	h := int(s.font.GetYAdvance())
	x := int16(cx - int(w)/2)
	y := int16(cy + h/2)
	tinyfont.WriteLine(&blendTarget{s: s, alpha: alpha}, s.font, x, y, el.spec.Label, st.Text)
}

func (s *Surface) blend(x, y int, c uint16, alpha uint8) {
	if x < 0 || y < 0 || x >= s.fb.Width() || y >= s.fb.Height() {
		return
	}
	buf := s.fb.Buffer()
	off := y*s.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	dst := uint16(buf[off]) | uint16(buf[off+1])<<8
	p := hal.BlendRGB565(dst, c, alpha)
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}

// blendTarget lets tinyfont draw glyphs with the marker's opacity.
type blendTarget struct {
	s     *Surface
	alpha uint8
}

func (t *blendTarget) Size() (x, y int16) {
	return int16(t.s.fb.Width()), int16(t.s.fb.Height())
}

func (t *blendTarget) SetPixel(x, y int16, c color.RGBA) {
	t.s.blend(int(x), int(y), hal.RGB565(c.R, c.G, c.B), t.alpha)
}

func (t *blendTarget) Display() error { return nil }

func clearRGB565(buf []byte, pixel uint16) {
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = lo
		buf[i+1] = hi
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
