package hal

import (
	"testing"

	"tinygo.org/x/drivers/touch"
)

func drain(ch <-chan TouchEvent) []TouchEvent {
	var out []TouchEvent
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestHostTouchFeedEmitsStartWithAllContacts(t *testing.T) {
	ht := newHostTouch()

	ht.feed([]TouchPoint{{ID: 2, X: 20, Y: 20}})
	ht.feed([]TouchPoint{{ID: 5, X: 50, Y: 50}, {ID: 2, X: 21, Y: 20}})

	evs := drain(ht.Events())
	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evs))
	}
	second := evs[1]
	if second.Kind != TouchStart || len(second.Contacts) != 2 {
		t.Fatalf("expected start with 2 contacts, got %v %d", second.Kind, len(second.Contacts))
	}
	if second.Contacts[0].ID != 2 || second.Contacts[1].ID != 5 {
		t.Fatalf("expected contacts ordered by ID, got %+v", second.Contacts)
	}
}

func TestHostTouchFeedMovesAreSilent(t *testing.T) {
	ht := newHostTouch()
	ht.feed([]TouchPoint{{ID: 1, X: 10, Y: 10}})
	drain(ht.Events())

	ht.feed([]TouchPoint{{ID: 1, X: 30, Y: 10}})
	if evs := drain(ht.Events()); len(evs) != 0 {
		t.Fatalf("expected no events for a move, got %+v", evs)
	}
}

func TestHostTouchFeedEmitsEndBeforeStart(t *testing.T) {
	ht := newHostTouch()
	ht.feed([]TouchPoint{{ID: 1, X: 10, Y: 10}})
	drain(ht.Events())

	ht.feed([]TouchPoint{{ID: 3, X: 30, Y: 30}})
	evs := drain(ht.Events())
	if len(evs) != 2 {
		t.Fatalf("expected end and start, got %+v", evs)
	}
	if evs[0].Kind != TouchEnd || evs[0].Contacts[0].ID != 1 {
		t.Fatalf("expected end for contact 1, got %+v", evs[0])
	}
	if evs[1].Kind != TouchStart || evs[1].Contacts[0].ID != 3 {
		t.Fatalf("expected start for contact 3, got %+v", evs[1])
	}
}

type fakePointer struct{ p touch.Point }

func (f *fakePointer) ReadTouchPoint() touch.Point { return f.p }

func TestPointerTouchPressRelease(t *testing.T) {
	fp := &fakePointer{}
	pt := NewPointerTouch(fp, 100)

	if got := pt.Poll(); len(got) != 0 {
		t.Fatalf("expected no contact while released, got %+v", got)
	}

	fp.p = touch.Point{X: 40, Y: 60, Z: 1}
	first := pt.Poll()
	if len(first) != 1 || first[0].X != 40 || first[0].Y != 60 {
		t.Fatalf("expected one contact at (40,60), got %+v", first)
	}

	fp.p.X = 45
	held := pt.Poll()
	if held[0].ID != first[0].ID {
		t.Fatalf("expected same ID while held, got %d and %d", first[0].ID, held[0].ID)
	}

	fp.p.Z = 0
	if got := pt.Poll(); len(got) != 0 {
		t.Fatalf("expected release, got %+v", got)
	}

	fp.p.Z = 2
	again := pt.Poll()
	if again[0].ID == first[0].ID {
		t.Fatal("expected a new ID for a new press")
	}
}

func TestPointerTouchThroughHostFeed(t *testing.T) {
	fp := &fakePointer{}
	ht := newHostTouch()
	pt := NewPointerTouch(fp, 1<<20)

	fp.p = touch.Point{X: 5, Y: 6, Z: 1}
	ht.feed(pt.Poll())
	ht.feed(pt.Poll())
	fp.p.Z = 0
	ht.feed(pt.Poll())

	evs := drain(ht.Events())
	if len(evs) != 2 || evs[0].Kind != TouchStart || evs[1].Kind != TouchEnd {
		t.Fatalf("expected start then end, got %+v", evs)
	}
}

func TestNilPointerTouch(t *testing.T) {
	var pt *PointerTouch
	if pt.Poll() != nil {
		t.Fatal("expected nil pointer touch to be inert")
	}
}
