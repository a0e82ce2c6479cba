package overlay

import (
	"sort"
	"sync"

	"github.com/paulmach/orb"
)

// EventKind distinguishes pointer events.
type EventKind int

const (
	PointerMove EventKind = iota
	PointerClick
)

func (k EventKind) String() string {
	if k == PointerClick {
		return "click"
	}
	return "move"
}

// PointerEvent is a pointer interaction translated to map space.
type PointerEvent struct {
	Kind       EventKind
	Coordinate orb.Point // WGS84 lon/lat
	Planar     orb.Point // Web Mercator metres
	Resolution float64   // metres per pixel at the time of the event
	Seq        uint64    // assigned by Dispatch, increasing
}

// Handler receives dispatched pointer events.
type Handler func(PointerEvent)

type subscription struct {
	kind EventKind
	h    Handler
}

// Dispatcher fans pointer events out to subscribed handlers in
// subscription order.
type Dispatcher struct {
	mu   sync.Mutex
	next int
	seq  uint64
	subs map[int]subscription
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[int]subscription)}
}

// On subscribes h to events of kind. The returned function unsubscribes
// and may be called any number of times.
func (d *Dispatcher) On(kind EventKind, h Handler) (unsubscribe func()) {
	d.mu.Lock()
	id := d.next
	d.next++
	d.subs[id] = subscription{kind: kind, h: h}
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.subs, id)
			d.mu.Unlock()
		})
	}
}

// Dispatch delivers ev to every handler of its kind. Handlers run outside
// the lock and may subscribe or unsubscribe.
func (d *Dispatcher) Dispatch(ev PointerEvent) {
	d.mu.Lock()
	d.seq++
	ev.Seq = d.seq
	ids := make([]int, 0, len(d.subs))
	for id, s := range d.subs {
		if s.kind == ev.Kind {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	hs := make([]Handler, len(ids))
	for i, id := range ids {
		hs[i] = d.subs[id].h
	}
	d.mu.Unlock()

	for _, h := range hs {
		h(ev)
	}
}

// Stamp takes the next sequence number for changes that do not come from
// a pointer event, such as a side panel row highlighting a feature.
func (d *Dispatcher) Stamp() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	return d.seq
}

// Len is the number of live subscriptions.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}
