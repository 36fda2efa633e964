package hal

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// TouchKind distinguishes touch notifications.
type TouchKind uint8

const (
	// TouchStart is emitted when at least one new contact lands.
	TouchStart TouchKind = iota + 1
	// TouchEnd is emitted when at least one contact lifts.
	TouchEnd
)

func (k TouchKind) String() string {
	switch k {
	case TouchStart:
		return "start"
	case TouchEnd:
		return "end"
	default:
		return "unknown"
	}
}

// TouchPoint is one contact in device pixels.
type TouchPoint struct {
	ID int
	X  int
	Y  int
}

// TouchEvent is a touch notification.
//
// For TouchStart, Contacts lists every active contact (not only the new one),
// ordered by ID. For TouchEnd, Contacts lists the contacts that lifted.
type TouchEvent struct {
	Kind     TouchKind
	Contacts []TouchPoint
}

// Touch provides touch events (best-effort on each platform).
type Touch interface {
	Events() <-chan TouchEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Touch() Touch
}

// HAL provides the only contact point between the overlay and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
}
