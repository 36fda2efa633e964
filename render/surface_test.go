package render

import (
	"errors"
	"image/color"
	"testing"

	"touchshow/hal"
	"touchshow/marker"
)

type testFB struct {
	w, h     int
	buf      []byte
	presents int
	format   hal.PixelFormat
}

func newTestFB(w, h int) *testFB {
	return &testFB{w: w, h: h, buf: make([]byte, w*h*2), format: hal.PixelFormatRGB565}
}

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return f.format }
func (f *testFB) StrideBytes() int        { return f.w * 2 }
func (f *testFB) Buffer() []byte          { return f.buf }
func (f *testFB) Present() error {
	f.presents++
	return nil
}

func (f *testFB) ClearRGB(r, g, b uint8) {
	clearRGB565(f.buf, hal.RGB565(r, g, b))
}

func (f *testFB) at(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

type testDisplay struct{ fb hal.Framebuffer }

func (d testDisplay) Framebuffer() hal.Framebuffer { return d.fb }

var black = color.RGBA{A: 0xFF}

func newTestSurface(t *testing.T) (*Surface, *testFB) {
	t.Helper()
	fb := newTestFB(64, 48)
	s, err := NewSurface(testDisplay{fb: fb}, black)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	return s, fb
}

func TestNewSurfaceRequiresFramebuffer(t *testing.T) {
	if _, err := NewSurface(nil, black); !errors.Is(err, ErrNoFramebuffer) {
		t.Fatalf("expected ErrNoFramebuffer for nil display, got %v", err)
	}
	if _, err := NewSurface(testDisplay{}, black); !errors.Is(err, ErrNoFramebuffer) {
		t.Fatalf("expected ErrNoFramebuffer for nil framebuffer, got %v", err)
	}
	fb := newTestFB(8, 8)
	fb.format = 0
	if _, err := NewSurface(testDisplay{fb: fb}, black); !errors.Is(err, ErrNoFramebuffer) {
		t.Fatalf("expected ErrNoFramebuffer for unknown format, got %v", err)
	}
}

func TestRenderHiddenMarkerLeavesBackground(t *testing.T) {
	s, fb := newTestSurface(t)
	if _, err := marker.NewPool(s, marker.DefaultStyle()); err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	if err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	bg := hal.RGB565(0, 0, 0)
	for y := 0; y < fb.h; y++ {
		for x := 0; x < fb.w; x++ {
			if fb.at(x, y) != bg {
				t.Fatalf("expected background at (%d,%d), got %#04x", x, y, fb.at(x, y))
			}
		}
	}
	if fb.presents != 1 {
		t.Fatalf("expected one present, got %d", fb.presents)
	}
}

func TestRenderVisibleMarker(t *testing.T) {
	s, fb := newTestSurface(t)
	st := marker.DefaultStyle()
	st.Prefix = "t"
	if err := s.RegisterStyle(st.StyleID(), st); err != nil {
		t.Fatalf("RegisterStyle: %v", err)
	}
	el, err := s.CreateMarker(marker.MarkerSpec{ID: "t-point0", Class: st.Class(), Label: "1"})
	if err != nil {
		t.Fatalf("CreateMarker: %v", err)
	}
	el.SetPosition(20-st.Radius, 20-st.Radius)
	el.SetOpacity(1)
	el.SetVisible(true)

	if err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	border := hal.RGB565(st.Border.R, st.Border.G, st.Border.B)
	fill := hal.RGB565(st.Fill.R, st.Fill.G, st.Fill.B)
	bg := hal.RGB565(0, 0, 0)

	if got := fb.at(20+st.Radius, 20); got != border {
		t.Fatalf("expected border at the rim, got %#04x", got)
	}
	if got := fb.at(20+st.Radius-st.BorderWidth-1, 20); got != fill {
		t.Fatalf("expected fill inside the ring, got %#04x", got)
	}
	if got := fb.at(20+st.Radius+1, 20); got != bg {
		t.Fatalf("expected background outside, got %#04x", got)
	}
	if got := fb.at(20-st.Radius+1, 20-st.Radius+1); got != bg {
		t.Fatalf("expected background at the bounding box corner, got %#04x", got)
	}

	text := hal.RGB565(st.Text.R, st.Text.G, st.Text.B)
	found := false
	for y := 16; y <= 24 && !found; y++ {
		for x := 16; x <= 24; x++ {
			if fb.at(x, y) == text {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("expected label pixels near the center")
	}
}

func TestRenderBlendsByOpacity(t *testing.T) {
	s, fb := newTestSurface(t)
	st := marker.DefaultStyle()
	_ = s.RegisterStyle(st.StyleID(), st)
	el, _ := s.CreateMarker(marker.MarkerSpec{Class: st.Class()})
	el.SetPosition(20-st.Radius, 20-st.Radius)
	el.SetVisible(true)

	el.SetOpacity(1)
	_ = s.Render()
	full := fb.at(20+st.Radius-st.BorderWidth-1, 20)

	el.SetOpacity(0.5)
	_ = s.Render()
	half := fb.at(20+st.Radius-st.BorderWidth-1, 20)

	fr, _, _ := hal.RGB888From565(full)
	hr, _, _ := hal.RGB888From565(half)
	if hr == 0 || hr >= fr {
		t.Fatalf("expected half-opacity fill between background and fill, got r=%d (full r=%d)", hr, fr)
	}

	el.SetOpacity(0)
	_ = s.Render()
	if got := fb.at(20, 20); got != hal.RGB565(0, 0, 0) {
		t.Fatalf("expected zero opacity to draw nothing, got %#04x", got)
	}
}

func TestRenderClipsAtEdges(t *testing.T) {
	s, fb := newTestSurface(t)
	st := marker.DefaultStyle()
	_ = s.RegisterStyle(st.StyleID(), st)
	el, _ := s.CreateMarker(marker.MarkerSpec{Class: st.Class(), Label: "10"})
	el.SetPosition(-st.Radius, fb.h-st.Radius)
	el.SetOpacity(1)
	el.SetVisible(true)
	if err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestRestyleAppliesToExistingMarkers(t *testing.T) {
	s, fb := newTestSurface(t)
	pool, err := marker.NewPool(s, marker.DefaultStyle())
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	st := marker.DefaultStyle()
	st.Fill = color.RGBA{R: 0xFF, A: 0xFF}
	if err := pool.Restyle(st); err != nil {
		t.Fatalf("Restyle: %v", err)
	}

	el := s.els[0]
	el.SetPosition(20-st.Radius, 20-st.Radius)
	el.SetOpacity(1)
	el.SetVisible(true)
	_ = s.Render()

	if got := fb.at(20+st.Radius-st.BorderWidth-1, 20); got != hal.RGB565(0xFF, 0, 0) {
		t.Fatalf("expected restyled fill, got %#04x", got)
	}
}

func TestRegisterStyleReplacesByID(t *testing.T) {
	s, fb := newTestSurface(t)
	a := marker.DefaultStyle()
	a.Prefix = "a"
	b := marker.DefaultStyle()
	b.Prefix = "b"
	b.Fill = color.RGBA{B: 0xFF, A: 0xFF}

	if err := s.RegisterStyle("shared", a); err != nil {
		t.Fatalf("RegisterStyle: %v", err)
	}
	elA, _ := s.CreateMarker(marker.MarkerSpec{Class: a.Class()})
	elB, _ := s.CreateMarker(marker.MarkerSpec{Class: b.Class()})
	elA.SetPosition(10-a.Radius, 10-a.Radius)
	elB.SetPosition(40-b.Radius, 30-b.Radius)
	for _, el := range []marker.Element{elA, elB} {
		el.SetOpacity(1)
		el.SetVisible(true)
	}

	if err := s.RegisterStyle("shared", b); err != nil {
		t.Fatalf("RegisterStyle: %v", err)
	}
	_ = s.Render()

	bg := hal.RGB565(0, 0, 0)
	if got := fb.at(10+a.Radius-a.BorderWidth-1, 10); got != bg {
		t.Fatalf("expected the replaced rule to no longer style class %q, got %#04x", a.Class(), got)
	}
	if got := fb.at(40+b.Radius-b.BorderWidth-1, 30); got != hal.RGB565(0, 0, 0xFF) {
		t.Fatalf("expected the new rule to style class %q, got %#04x", b.Class(), got)
	}

	if err := s.RegisterStyle("", a); err == nil {
		t.Fatal("expected empty style id to be rejected")
	}
}
