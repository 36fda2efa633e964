package hal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleScript = `
events:
  - frame: 0
    contacts:
      - {id: 1, x: 100, y: 100}
      - {id: 2, x: 200, y: 150}
  - frame: 4
    kind: end
    contacts:
      - {id: 1}
  - frame: 4
    kind: start
    contacts:
      - {id: 2, x: 200, y: 150}
      - {id: 3, x: 50, y: 50}
`

func TestParseTouchScript(t *testing.T) {
	s, err := ParseTouchScript([]byte(sampleScript))
	if err != nil {
		t.Fatalf("ParseTouchScript: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 events, got %d", s.Len())
	}
	if s.LastFrame() != 4 {
		t.Fatalf("expected last frame 4, got %d", s.LastFrame())
	}
	if c := s.Events[0].Contacts[1]; c.ID != 2 || c.X != 200 || c.Y != 150 {
		t.Fatalf("unexpected contact %+v", c)
	}
}

func TestParseTouchScriptRejects(t *testing.T) {
	cases := map[string]string{
		"kind":  "events:\n  - {frame: 1, kind: wiggle}\n",
		"order": "events:\n  - {frame: 5}\n  - {frame: 2}\n",
		"yaml":  "events: [",
	}
	for name, src := range cases {
		if _, err := ParseTouchScript([]byte(src)); !errors.Is(err, ErrBadScript) {
			t.Fatalf("%s: expected ErrBadScript, got %v", name, err)
		}
	}
}

func TestLoadTouchScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "touches.yaml")
	if err := os.WriteFile(path, []byte(sampleScript), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := LoadTouchScript(path)
	if err != nil {
		t.Fatalf("LoadTouchScript: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 events, got %d", s.Len())
	}

	if _, err := LoadTouchScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestScriptPlayerStepsByFrame(t *testing.T) {
	s, err := ParseTouchScript([]byte(sampleScript))
	if err != nil {
		t.Fatalf("ParseTouchScript: %v", err)
	}
	p := newScriptPlayer(s)

	var got []TouchEvent
	emit := func(ev TouchEvent) { got = append(got, ev) }

	p.step(0, emit)
	if len(got) != 1 || got[0].Kind != TouchStart || len(got[0].Contacts) != 2 {
		t.Fatalf("expected first start at frame 0, got %+v", got)
	}
	p.step(3, emit)
	if len(got) != 1 {
		t.Fatalf("expected nothing at frame 3, got %d events", len(got))
	}
	p.step(4, emit)
	if len(got) != 3 || got[1].Kind != TouchEnd || got[2].Kind != TouchStart {
		t.Fatalf("expected end then start at frame 4, got %+v", got)
	}
	if !p.done() {
		t.Fatal("expected player done")
	}

	var nilPlayer *scriptPlayer
	nilPlayer.step(10, emit)
	if !nilPlayer.done() {
		t.Fatal("expected nil player done")
	}
}
