package viewstate

import (
	"sync"

	"github.com/painelfacil/painel-api/internal/realtime"
)

// View binds a Collection to a hub subscription for the lifetime of a
// mounted list view. Register handlers before Open; after Close no further
// event produces an observable state change.
type View[T Entity] struct {
	mu      sync.Mutex
	col     *Collection[T]
	handler map[string]func(*Collection[T], realtime.Event)
	sub     *realtime.Subscription
	closed  bool
	drained chan struct{}
}

// NewView seeds a view with the initial server-fetched collection.
func NewView[T Entity](initial []T) *View[T] {
	return &View[T]{
		col:     NewCollection(initial),
		handler: make(map[string]func(*Collection[T], realtime.Event)),
	}
}

// OnCreated routes the named events through ApplyCreate. Payloads that are
// not a T are ignored.
func (v *View[T]) OnCreated(names ...string) *View[T] {
	return v.on(names, func(c *Collection[T], evt realtime.Event) {
		if item, ok := evt.Payload.(T); ok {
			c.ApplyCreate(item)
		}
	})
}

// OnUpdated routes the named events through ApplyUpdate.
func (v *View[T]) OnUpdated(names ...string) *View[T] {
	return v.on(names, func(c *Collection[T], evt realtime.Event) {
		if item, ok := evt.Payload.(T); ok {
			c.ApplyUpdate(item)
		}
	})
}

// OnDeleted routes the named events through ApplyDelete. The payload may be
// the bare id or the full record.
func (v *View[T]) OnDeleted(names ...string) *View[T] {
	return v.on(names, func(c *Collection[T], evt realtime.Event) {
		if id, ok := EventID(evt.Payload); ok {
			c.ApplyDelete(id)
		}
	})
}

// On registers a custom handler for domain-specific event variants, such as
// submenu events that target a nested collection by parent id.
func (v *View[T]) On(name string, fn func(*Collection[T], realtime.Event)) *View[T] {
	return v.on([]string{name}, fn)
}

func (v *View[T]) on(names []string, fn func(*Collection[T], realtime.Event)) *View[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, n := range names {
		v.handler[n] = fn
	}
	return v
}

// Open subscribes the view to the hub and starts applying events in
// arrival order. Call Close when the view unmounts.
func (v *View[T]) Open(hub *realtime.Hub) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sub != nil || v.closed {
		return
	}
	v.sub = hub.Subscribe(0)
	v.drained = make(chan struct{})
	go v.pump(v.sub, v.drained)
}

func (v *View[T]) pump(sub *realtime.Subscription, drained chan struct{}) {
	for evt := range sub.C {
		v.Apply(evt)
	}
	close(drained)
}

// Apply merges one event into the collection. Events with no registered
// handler, and every event after Close, are no-ops.
func (v *View[T]) Apply(evt realtime.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	if fn, ok := v.handler[evt.Name]; ok {
		fn(v.col, evt)
	}
}

// Mutate performs an optimistic local edit in direct response to a user
// action, before the corresponding push event arrives. The callback runs
// with the collection locked.
func (v *View[T]) Mutate(fn func(*Collection[T])) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	fn(v.col)
}

// Snapshot returns a copy of the reconciled collection.
func (v *View[T]) Snapshot() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.col.Snapshot()
}

// Get returns the entry with the given id.
func (v *View[T]) Get(id int) (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.col.Get(id)
}

// Len reports the number of entries.
func (v *View[T]) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.col.Len()
}

// Close unmounts the view: the subscription is released and late-arriving
// events are discarded without touching state.
func (v *View[T]) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	sub, drained := v.sub, v.drained
	v.mu.Unlock()

	if sub != nil {
		sub.Close()
		<-drained
	}
}
