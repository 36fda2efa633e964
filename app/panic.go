package app

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// recoverStep turns a panic inside a frame into an error, logs the stack and
// paints the framebuffer red so the failure is visible on screen.
func (s *System) recoverStep(err *error) {
	v := recover()
	if v == nil {
		return
	}

	s.logf("touchshow panic: frame=%d panic=%v", s.frames.Frame(), v)
	for _, line := range strings.Split(string(debug.Stack()), "\n") {
		if line == "" {
			continue
		}
		s.logf("%s", line)
	}

	if d := s.h.Display(); d != nil {
		if fb := d.Framebuffer(); fb != nil {
			fb.ClearRGB(0xB0, 0x10, 0x10)
			_ = fb.Present()
		}
	}
	*err = fmt.Errorf("touchshow: panic in frame %d: %v", s.frames.Frame(), v)
}
