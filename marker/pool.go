package marker

import (
	"fmt"
	"strconv"
)

// Capacity is the fixed number of simultaneous markers.
const Capacity = 10

// Marker is one reusable touch indicator.
//
// Slot, label and id never change. Position is last-write-wins; opacity and
// visibility are driven only by the Fader.
type Marker struct {
	slot  int
	label string
	id    string
	el    Element

	x, y    int
	level   int
	visible bool
	gen     uint64
}

func (m *Marker) Slot() int     { return m.slot }
func (m *Marker) Label() string { return m.label }
func (m *Marker) ID() string    { return m.id }
func (m *Marker) Visible() bool { return m.visible }

// Position returns the top-left corner of the marker.
func (m *Marker) Position() (x, y int) { return m.x, m.y }

// Opacity returns the current opacity in [0,1].
func (m *Marker) Opacity() float64 { return float64(m.level) / fadeLevels }

// Generation returns the number of fades started on this marker.
func (m *Marker) Generation() uint64 { return m.gen }

func (m *Marker) setPosition(x, y int) {
	m.x, m.y = x, y
	m.el.SetPosition(x, y)
}

func (m *Marker) setLevel(level int) {
	m.level = level
	m.el.SetOpacity(m.Opacity())
}

func (m *Marker) setVisible(v bool) {
	m.visible = v
	m.el.SetVisible(v)
}

// Pool owns the fixed set of markers.
type Pool struct {
	surface Surface
	style   Style
	markers [Capacity]Marker
}

// NewPool registers the shared style and creates Capacity hidden markers on s.
//
// A nil surface is fatal: nothing could ever be shown.
func NewPool(s Surface, st Style) (*Pool, error) {
	if s == nil {
		return nil, ErrNoSurface
	}
	st = st.Normalize()
	if err := s.RegisterStyle(st.StyleID(), st); err != nil {
		return nil, fmt.Errorf("register style %s: %w", st.StyleID(), err)
	}

	p := &Pool{surface: s, style: st}
	for i := range p.markers {
		spec := MarkerSpec{
			ID:    st.MarkerID(i),
			Class: st.Class(),
			Slot:  i,
			Label: strconv.Itoa(i + 1),
		}
		el, err := s.CreateMarker(spec)
		if err != nil {
			return nil, fmt.Errorf("create marker %s: %w", spec.ID, err)
		}
		if el == nil {
			return nil, fmt.Errorf("create marker %s: %w", spec.ID, ErrNoSurface)
		}
		m := &p.markers[i]
		m.slot = i
		m.label = spec.Label
		m.id = spec.ID
		m.el = el
		m.setPosition(0, 0)
		m.setVisible(false)
	}
	return p, nil
}

// Len returns the pool capacity.
func (p *Pool) Len() int { return len(p.markers) }

// Style returns the shared style.
func (p *Pool) Style() Style { return p.style }

// Marker returns the marker in slot i. Out-of-range slots report false.
func (p *Pool) Marker(i int) (*Marker, bool) {
	if i < 0 || i >= len(p.markers) {
		return nil, false
	}
	return &p.markers[i], true
}

// Restyle replaces the shared rule for every marker. The prefix, and with it
// every marker identity, is kept.
func (p *Pool) Restyle(st Style) error {
	st.Prefix = p.style.Prefix
	st = st.Normalize()
	if err := p.surface.RegisterStyle(st.StyleID(), st); err != nil {
		return fmt.Errorf("register style %s: %w", st.StyleID(), err)
	}
	p.style = st
	return nil
}

// VisibleCount returns how many markers are currently shown.
func (p *Pool) VisibleCount() int {
	n := 0
	for i := range p.markers {
		if p.markers[i].visible {
			n++
		}
	}
	return n
}
