//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"tinygo.org/x/drivers/touch"
)

// mousePointer exposes the left mouse button as a single-contact pointer.
type mousePointer struct{}

func (mousePointer) ReadTouchPoint() touch.Point {
	x, y := ebiten.CursorPosition()
	z := 0
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		z = 1
	}
	return touch.Point{X: x, Y: y, Z: z}
}

// mouseIDBase keeps mouse contact IDs clear of ebiten touch IDs.
const mouseIDBase = 1 << 20

func (t *hostTouch) poll() {
	if t.pointer == nil {
		t.pointer = NewPointerTouch(mousePointer{}, mouseIDBase)
	}

	ids := ebiten.AppendTouchIDs(nil)
	if len(ids) == 0 {
		t.feed(t.pointer.Poll())
		return
	}

	cur := make([]TouchPoint, 0, len(ids))
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		cur = append(cur, TouchPoint{ID: int(id), X: x, Y: y})
	}
	t.feed(cur)
}
