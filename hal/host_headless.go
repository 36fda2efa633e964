//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host HostConfig

	Hz    int
	Ticks uint64

	// Script, when set, is replayed as the touch source. Frame numbers count
	// from 0 at the first tick.
	Script *TouchScript

	// Snapshot, when set, receives the last frame as PNG on exit.
	Snapshot string
}

// AppFactory builds the per-frame step function on top of a HAL.
type AppFactory func(HAL) (func() error, error)

// RunHeadless runs the overlay without opening a window.
func RunHeadless(ctx context.Context, newApp AppFactory, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := newHost(cfg.Host)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	logScript(h, cfg.Script, cfg.Ticks)
	player := newScriptPlayer(cfg.Script)

	var frame uint64
	for {
		select {
		case <-ctx.Done():
			if err := writeSnapshot(h.fb, cfg.Snapshot); err != nil {
				return err
			}
			return ctx.Err()
		case <-t.C:
			player.step(frame, h.touch.emit)
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			frame++
			if cfg.Ticks > 0 && frame >= cfg.Ticks {
				return writeSnapshot(h.fb, cfg.Snapshot)
			}
		}
	}
}

// logScript reports the script about to be replayed. ticks > 0 is the run
// length; a run that stops before the last event gets a warning.
func logScript(h *hostHAL, s *TouchScript, ticks uint64) {
	if s == nil {
		return
	}
	last := s.LastFrame()
	h.logger.WriteLineString(fmt.Sprintf("touchshow: script events=%d last_frame=%d", s.Len(), last))
	if ticks > 0 && s.Len() > 0 && last >= ticks {
		h.logger.WriteLineString(fmt.Sprintf("touchshow: script runs past ticks=%d; events after frame %d are skipped", ticks, ticks-1))
	}
}

func writeSnapshot(fb *hostFramebuffer, path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, fb.snapshotRGBA(nil)); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}
