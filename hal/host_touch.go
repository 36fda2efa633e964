//go:build !tinygo

package hal

import "sort"

type hostTouch struct {
	ch     chan TouchEvent
	active []TouchPoint

	pointer *PointerTouch
}

func newHostTouch() *hostTouch {
	return &hostTouch{ch: make(chan TouchEvent, 64)}
}

func (t *hostTouch) Events() <-chan TouchEvent { return t.ch }

func (t *hostTouch) emit(ev TouchEvent) {
	select {
	case t.ch <- ev:
	default:
	}
}

// feed diffs the currently active contacts against the previous poll.
//
// Lifted contacts produce one TouchEnd; any new contact produces one TouchStart
// carrying every active contact.
func (t *hostTouch) feed(cur []TouchPoint) {
	cur = append([]TouchPoint(nil), cur...)
	sort.Slice(cur, func(i, j int) bool { return cur[i].ID < cur[j].ID })

	var lifted []TouchPoint
	for _, p := range t.active {
		if !containsID(cur, p.ID) {
			lifted = append(lifted, p)
		}
	}
	landed := false
	for _, p := range cur {
		if !containsID(t.active, p.ID) {
			landed = true
			break
		}
	}
	t.active = cur

	if len(lifted) > 0 {
		t.emit(TouchEvent{Kind: TouchEnd, Contacts: lifted})
	}
	if landed {
		t.emit(TouchEvent{Kind: TouchStart, Contacts: append([]TouchPoint(nil), cur...)})
	}
}

func containsID(ps []TouchPoint, id int) bool {
	for _, p := range ps {
		if p.ID == id {
			return true
		}
	}
	return false
}
