package marker

// FadeStep is the opacity lost per frame; a full fade takes 20 frames.
const FadeStep = 0.05

// fadeLevels is 1/FadeStep. Opacity is kept as an integer level so the
// hide boundary does not depend on float rounding.
const fadeLevels = 20

// FrameRequester schedules a callback for the next display refresh.
type FrameRequester interface {
	RequestFrame(fn func(frame uint64))
}

// Fader drives the per-marker fade-out.
//
// Each Restart bumps the marker generation; a scheduled tick that finds a
// newer generation stops, so at most one chain decays a marker at a time.
type Fader struct {
	frames FrameRequester
}

// NewFader returns a Fader ticking on frames.
func NewFader(frames FrameRequester) *Fader {
	return &Fader{frames: frames}
}

// Restart shows m at full opacity and starts a new fade chain.
func (f *Fader) Restart(m *Marker) {
	m.gen++
	m.setLevel(fadeLevels)
	m.setVisible(true)
	f.schedule(m, m.gen)
}

func (f *Fader) schedule(m *Marker, gen uint64) {
	f.frames.RequestFrame(func(uint64) { f.tick(m, gen) })
}

func (f *Fader) tick(m *Marker, gen uint64) {
	if m.gen != gen || !m.visible {
		return
	}
	next := m.level - 1
	if next < 1 {
		m.setLevel(0)
		m.setVisible(false)
		return
	}
	m.setLevel(next)
	f.schedule(m, gen)
}
