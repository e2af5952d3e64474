// Package viewstate holds the per-view reconciled collections behind the
// dashboard's list views. Each view owns a local copy of a server-fetched
// collection and merges pushed create/update/delete events and optimistic
// local edits into it, keying every apply on the entity id.
package viewstate

import "encoding/json"

// Entity is any record with a stable integer id assigned by the server.
type Entity interface {
	EntityID() int
}

// Collection is an ordered sequence of entities with unique ids. Insertion
// order is display order. All mutations are full-record replacements: the
// same apply twice yields the same state, so an optimistic insert and a
// later push echo of the same change converge to one instance.
type Collection[T Entity] struct {
	items []T
}

// NewCollection seeds a collection from a server fetch. Duplicate ids in
// the input collapse to the last occurrence.
func NewCollection[T Entity](initial []T) *Collection[T] {
	c := &Collection[T]{items: make([]T, 0, len(initial))}
	for _, it := range initial {
		c.ApplyUpdate(it)
	}
	return c
}

// ApplyCreate appends item unless an entry with the same id exists, in
// which case the entry is replaced. Guards the race where the POST
// response insert and the pushed created event both fire.
func (c *Collection[T]) ApplyCreate(item T) {
	if i := c.index(item.EntityID()); i >= 0 {
		c.items[i] = item
		return
	}
	c.items = append(c.items, item)
}

// ApplyUpdate replaces the entry whose id matches. An unknown id is
// inserted (self-healing against a missed created event).
func (c *Collection[T]) ApplyUpdate(item T) {
	c.ApplyCreate(item)
}

// ApplyDelete removes the entry with the given id; no-op when absent.
func (c *Collection[T]) ApplyDelete(id int) {
	if i := c.index(id); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

// Get returns the entry with the given id.
func (c *Collection[T]) Get(id int) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Snapshot returns a copy of the current sequence in display order.
func (c *Collection[T]) Snapshot() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of entries.
func (c *Collection[T]) Len() int { return len(c.items) }

func (c *Collection[T]) index(id int) int {
	for i, it := range c.items {
		if it.EntityID() == id {
			return i
		}
	}
	return -1
}

// EventID extracts an entity id from a pushed payload. Deletion events
// carry the bare id, which arrives as an int in-process or as a float64
// once it has round-tripped through JSON.
func EventID(payload any) (int, bool) {
	switch v := payload.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case Entity:
		return v.EntityID(), true
	}
	return 0, false
}
