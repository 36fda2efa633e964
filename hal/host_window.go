//go:build !tinygo && cgo

package hal

import (
	"errors"
	"image"
	"touchshow/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// windowTPS ties Update to the display refresh: one Update, and so one fade
// tick, per rendered frame.
const windowTPS = ebiten.SyncWithFPS

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Host  HostConfig
	Scale int

	// Script, when set, is replayed on top of live input.
	Script *TouchScript
}

// RunWindow starts a desktop window that displays the framebuffer and forwards touch input.
// It blocks until the window closes or Escape is pressed.
func RunWindow(newApp AppFactory, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	h := newHost(cfg.Host)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	logScript(h, cfg.Script, 0)
	g := &hostGame{h: h, step: step, player: newScriptPlayer(cfg.Script)}
	ebiten.SetWindowTitle("TouchShow (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(windowTPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

type hostGame struct {
	h      *hostHAL
	img    *image.RGBA
	fbImg  *ebiten.Image
	step   func() error
	player *scriptPlayer
	frame  uint64
}

func (g *hostGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.h.touch.poll()
	g.player.step(g.frame, g.h.touch.emit)
	g.frame++
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	g.img = fb.snapshotRGBA(g.img)
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != fb.width || g.fbImg.Bounds().Dy() != fb.height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
