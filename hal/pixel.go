package hal

// RGB565 packs an 8-bit-per-channel color into rrrrrggggggbbbbb.
func RGB565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// RGB888From565 expands a packed RGB565 pixel back to 8 bits per channel.
func RGB888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// BlendRGB565 mixes src over dst with coverage alpha in [0,255].
func BlendRGB565(dst, src uint16, alpha uint8) uint16 {
	switch alpha {
	case 0:
		return dst
	case 0xFF:
		return src
	}
	dr, dg, db := RGB888From565(dst)
	sr, sg, sb := RGB888From565(src)
	a := uint16(alpha)
	mix := func(d, s uint8) uint8 {
		return uint8((uint16(s)*a + uint16(d)*(255-a) + 127) / 255)
	}
	return RGB565(mix(dr, sr), mix(dg, sg), mix(db, sb))
}
