package marker

// Contact is one active touch point in device pixels.
type Contact struct {
	ID int
	X  int
	Y  int
}

// Mapping selects how contacts are assigned to slots.
type Mapping uint8

const (
	// MappingPositional assigns contact i to slot i on every notification.
	// A finger may land in a different slot from one notification to the next.
	MappingPositional Mapping = iota
	// MappingSticky keeps a contact ID in the slot it first got until the
	// contact ends.
	MappingSticky
)

// ParseMapping maps "positional" and "sticky" to a Mapping. Anything else is
// positional.
func ParseMapping(s string) Mapping {
	if s == "sticky" {
		return MappingSticky
	}
	return MappingPositional
}

func (m Mapping) String() string {
	if m == MappingSticky {
		return "sticky"
	}
	return "positional"
}

// Dispatcher turns touch notifications into marker updates.
type Dispatcher struct {
	pool    *Pool
	fader   *Fader
	mapping Mapping

	owner [Capacity]int
	used  [Capacity]bool
}

// NewDispatcher returns a dispatcher updating pool and restarting fades via fader.
func NewDispatcher(pool *Pool, fader *Fader, mapping Mapping) *Dispatcher {
	return &Dispatcher{pool: pool, fader: fader, mapping: mapping}
}

// Mapping returns the slot assignment mode.
func (d *Dispatcher) Mapping() Mapping { return d.mapping }

// OnTouchStart positions one marker per active contact, centered on the
// contact, and restarts its fade. Contacts without a slot are ignored. It
// returns the number of markers updated.
func (d *Dispatcher) OnTouchStart(contacts []Contact) int {
	if d.mapping == MappingSticky {
		return d.startSticky(contacts)
	}

	n := len(contacts)
	if n > d.pool.Len() {
		n = d.pool.Len()
	}
	for i := 0; i < n; i++ {
		m, ok := d.pool.Marker(i)
		if !ok {
			break
		}
		d.show(m, contacts[i])
	}
	return n
}

// OnTouchEnd releases the slots held by the given contact IDs. Markers keep
// fading; only the slot becomes free for the next contact.
func (d *Dispatcher) OnTouchEnd(ids []int) {
	if d.mapping != MappingSticky {
		return
	}
	for _, id := range ids {
		if slot, ok := d.slotOf(id); ok {
			d.used[slot] = false
		}
	}
}

func (d *Dispatcher) startSticky(contacts []Contact) int {
	n := 0
	for _, c := range contacts {
		slot, ok := d.slotOf(c.ID)
		if !ok {
			slot, ok = d.claim(c.ID)
		}
		if !ok {
			continue
		}
		m, ok := d.pool.Marker(slot)
		if !ok {
			continue
		}
		d.show(m, c)
		n++
	}
	return n
}

func (d *Dispatcher) slotOf(id int) (int, bool) {
	for i := range d.owner {
		if d.used[i] && d.owner[i] == id {
			return i, true
		}
	}
	return 0, false
}

func (d *Dispatcher) claim(id int) (int, bool) {
	for i := range d.owner {
		if !d.used[i] {
			d.used[i] = true
			d.owner[i] = id
			return i, true
		}
	}
	return 0, false
}

func (d *Dispatcher) show(m *Marker, c Contact) {
	r := d.pool.Style().Radius
	m.setPosition(c.X-r, c.Y-r)
	d.fader.Restart(m)
}
