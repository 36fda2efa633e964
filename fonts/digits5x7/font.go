package digits5x7

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Font is a 5x7 bitmap font covering '0'-'9' in a 6x8 cell.
//
// Other runes render as blank cells of the same advance. Concurrent access is
// not safe due to internal glyph reuse.
var Font tinyfont.Fonter = &digits{}

type digits struct {
	g glyph
}

type glyph struct {
	r rune
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	if g.r < '0' || g.r > '9' {
		return
	}
	base := int(g.r-'0') * 7
	for row := 0; row < 7; row++ {
		b := glyphData[base+row]
		// Bits are stored as 0b000xxxxx (bit4 = leftmost pixel).
		for col := 0; col < 5; col++ {
			if b&(0x10>>col) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(7-row), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    5,
		Height:   7,
		XAdvance: 6,
		XOffset:  0,
		YOffset:  -7,
	}
}

func (f *digits) GetYAdvance() uint8 { return 8 }

func (f *digits) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}

var glyphData = [10 * 7]byte{
	0x0E, 0x11, 0x13, 0x15, 0x19, 0x11, 0x0E, // 0
	0x04, 0x0C, 0x04, 0x04, 0x04, 0x04, 0x0E, // 1
	0x0E, 0x11, 0x01, 0x02, 0x04, 0x08, 0x1F, // 2
	0x1F, 0x02, 0x04, 0x02, 0x01, 0x11, 0x0E, // 3
	0x02, 0x06, 0x0A, 0x12, 0x1F, 0x02, 0x02, // 4
	0x1F, 0x10, 0x1E, 0x01, 0x01, 0x11, 0x0E, // 5
	0x06, 0x08, 0x10, 0x1E, 0x11, 0x11, 0x0E, // 6
	0x1F, 0x01, 0x02, 0x04, 0x08, 0x08, 0x08, // 7
	0x0E, 0x11, 0x11, 0x0E, 0x11, 0x11, 0x0E, // 8
	0x0E, 0x11, 0x11, 0x0F, 0x01, 0x02, 0x0C, // 9
}
