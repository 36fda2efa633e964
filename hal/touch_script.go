package hal

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrBadScript = errors.New("bad touch script")

// TouchScript is a recorded sequence of touch notifications keyed by frame.
type TouchScript struct {
	Events []ScriptEvent `yaml:"events"`
}

// ScriptEvent is one notification delivered at the start of Frame.
type ScriptEvent struct {
	Frame    uint64          `yaml:"frame"`
	Kind     string          `yaml:"kind"`
	Contacts []ScriptContact `yaml:"contacts"`
}

type ScriptContact struct {
	ID int `yaml:"id"`
	X  int `yaml:"x"`
	Y  int `yaml:"y"`
}

// LoadTouchScript reads and validates a YAML touch script.
func LoadTouchScript(path string) (*TouchScript, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read touch script: %w", err)
	}
	return ParseTouchScript(b)
}

// ParseTouchScript decodes and validates a YAML touch script.
//
// Events must be in non-decreasing frame order. An empty kind means "start".
func ParseTouchScript(b []byte) (*TouchScript, error) {
	var s TouchScript
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadScript, err)
	}
	var last uint64
	for i := range s.Events {
		ev := &s.Events[i]
		if _, ok := parseTouchKind(ev.Kind); !ok {
			return nil, fmt.Errorf("%w: event %d: unknown kind %q", ErrBadScript, i, ev.Kind)
		}
		if ev.Frame < last {
			return nil, fmt.Errorf("%w: event %d: frame %d before %d", ErrBadScript, i, ev.Frame, last)
		}
		last = ev.Frame
	}
	return &s, nil
}

func parseTouchKind(s string) (TouchKind, bool) {
	switch s {
	case "", "start":
		return TouchStart, true
	case "end":
		return TouchEnd, true
	default:
		return 0, false
	}
}

// Len returns the number of events in the script.
func (s *TouchScript) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Events)
}

// LastFrame returns the frame of the final event (0 for an empty script).
func (s *TouchScript) LastFrame() uint64 {
	if s.Len() == 0 {
		return 0
	}
	return s.Events[len(s.Events)-1].Frame
}

// scriptPlayer replays a TouchScript into a Touch channel, one frame at a time.
type scriptPlayer struct {
	s    *TouchScript
	next int
}

func newScriptPlayer(s *TouchScript) *scriptPlayer {
	return &scriptPlayer{s: s}
}

// step emits every event scheduled at or before frame.
func (p *scriptPlayer) step(frame uint64, emit func(TouchEvent)) {
	if p == nil || p.s == nil {
		return
	}
	for p.next < len(p.s.Events) && p.s.Events[p.next].Frame <= frame {
		ev := p.s.Events[p.next]
		p.next++
		kind, _ := parseTouchKind(ev.Kind)
		out := TouchEvent{Kind: kind, Contacts: make([]TouchPoint, 0, len(ev.Contacts))}
		for _, c := range ev.Contacts {
			out.Contacts = append(out.Contacts, TouchPoint{ID: c.ID, X: c.X, Y: c.Y})
		}
		emit(out)
	}
}

func (p *scriptPlayer) done() bool {
	return p == nil || p.s == nil || p.next >= len(p.s.Events)
}
