package hal

import "tinygo.org/x/drivers/touch"

// PointerTouch turns a single-contact touch.Pointer (resistive panels, a mouse)
// into active-contact snapshots.
//
// A reading with Z > 0 counts as pressed. Each press gets a fresh ID so that
// consumers see a lift and re-press as two distinct contacts.
type PointerTouch struct {
	p      touch.Pointer
	baseID int

	down bool
	seq  int
	last TouchPoint
}

// NewPointerTouch wraps p. IDs are allocated from baseID upwards.
func NewPointerTouch(p touch.Pointer, baseID int) *PointerTouch {
	return &PointerTouch{p: p, baseID: baseID}
}

// Poll samples the pointer and returns the active contacts (zero or one).
func (t *PointerTouch) Poll() []TouchPoint {
	if t == nil || t.p == nil {
		return nil
	}
	pt := t.p.ReadTouchPoint()
	if pt.Z <= 0 {
		t.down = false
		return nil
	}
	if !t.down {
		t.down = true
		t.seq++
	}
	t.last = TouchPoint{ID: t.baseID + t.seq, X: pt.X, Y: pt.Y}
	return []TouchPoint{t.last}
}
