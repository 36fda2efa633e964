//go:build !tinygo

package hal

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// HostConfig controls the host HAL shared by the window and headless runners.
type HostConfig struct {
	Width    int
	Height   int
	LogLevel string
	LogOut   io.Writer
}

func (c HostConfig) withDefaults() HostConfig {
	if c.Width <= 0 {
		c.Width = 480
	}
	if c.Height <= 0 {
		c.Height = 320
	}
	if c.LogOut == nil {
		c.LogOut = os.Stderr
	}
	return c
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	touch  *hostTouch
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	cfg = cfg.withDefaults()
	return &hostHAL{
		logger: newHostLogger(cfg.LogOut, cfg.LogLevel),
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		touch:  newHostTouch(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{touch: h.touch} }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	touch *hostTouch
}

func (in hostInput) Touch() Touch { return in.touch }

// hostLogger forwards log lines to zerolog.
//
// Lines of the form "debug: ..." are logged at debug level, everything else at info.
type hostLogger struct {
	mu sync.Mutex
	zl zerolog.Logger
}

func newHostLogger(w io.Writer, level string) *hostLogger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	return &hostLogger{zl: zerolog.New(out).Level(lvl).With().Timestamp().Logger()}
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if msg, ok := cutDebug(s); ok {
		l.zl.Debug().Msg(msg)
		return
	}
	l.zl.Info().Msg(s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}

func cutDebug(s string) (string, bool) {
	const p = "debug: "
	if len(s) >= len(p) && s[:len(p)] == p {
		return s[len(p):], true
	}
	return s, false
}
