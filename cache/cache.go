// Package cache implements a reference-counted, content-addressed store.
//
// Entries are keyed by their own identity (Keyed.Key) and live exactly as
// long as their reference count is positive. The store preserves insertion
// order, which callers rely on for deterministic output, and notifies
// listeners on the 0→1 and 1→0 count transitions.
package cache

import (
	orderedmap "github.com/elliotchance/orderedmap/v3"
)

// Event identifies a cache change.
type Event string

const (
	EventAdd    Event = "add"    // an entry appeared (count 0→1)
	EventRemove Event = "remove" // an entry was evicted (count 1→0)
)

// Keyed is anything that can identify itself. Keys must be a pure function
// of content: equal content means equal key means one shared entry.
type Keyed interface {
	Key() string
}

// Listener receives change events. Listeners run synchronously, in
// registration order, inline with the mutation that caused the event.
// There is no re-entrancy guard: a listener mutating the cache during
// emission observes intermediate state, and a panicking listener
// propagates to the caller of Add/Remove.
type Listener[T Keyed] func(ev Event, item T)

type entry[T Keyed] struct {
	item  T
	count int
}

// Cache is a reference-counted content-addressed store. It is not safe for
// concurrent use; callers sharing one instance across goroutines must
// serialize access externally.
type Cache[T Keyed] struct {
	entries   *orderedmap.OrderedMap[string, *entry[T]]
	listeners []Listener[T]
}

// New creates an empty cache with the given listeners.
func New[T Keyed](listeners ...Listener[T]) *Cache[T] {
	return &Cache[T]{
		entries:   orderedmap.NewOrderedMap[string, *entry[T]](),
		listeners: listeners,
	}
}

// Subscribe appends a change listener.
func (c *Cache[T]) Subscribe(fn Listener[T]) {
	c.listeners = append(c.listeners, fn)
}

// Add stores item or bumps the count of the entry sharing its key.
// It returns the canonical stored instance; callers must keep using the
// return value, not the argument, so that nested mutation targets the
// canonical object.
func (c *Cache[T]) Add(item T) T {
	if e, ok := c.entries.Get(item.Key()); ok {
		e.count++
		return e.item
	}
	c.entries.Set(item.Key(), &entry[T]{item: item, count: 1})
	c.emit(EventAdd, item)
	return item
}

// Remove drops one reference to the entry sharing item's key. Removing an
// absent item is a silent no-op. At count zero the entry is deleted and
// EventRemove is emitted.
func (c *Cache[T]) Remove(item T) {
	key := item.Key()
	e, ok := c.entries.Get(key)
	if !ok {
		return
	}
	e.count--
	if e.count <= 0 {
		c.entries.Delete(key)
		c.emit(EventRemove, e.item)
	}
}

// Count returns the reference count of the entry sharing item's key, zero
// if absent.
func (c *Cache[T]) Count(item T) int {
	if e, ok := c.entries.Get(item.Key()); ok {
		return e.count
	}
	return 0
}

// Has reports whether an entry with item's key is present.
func (c *Cache[T]) Has(item T) bool {
	return c.Count(item) > 0
}

// Get returns the canonical entry for key.
func (c *Cache[T]) Get(key string) (T, bool) {
	if e, ok := c.entries.Get(key); ok {
		return e.item, true
	}
	var zero T
	return zero, false
}

// Len returns the number of distinct entries.
func (c *Cache[T]) Len() int {
	return c.entries.Len()
}

// Values returns all present entries in insertion order.
func (c *Cache[T]) Values() []T {
	out := make([]T, 0, c.entries.Len())
	for e := range c.entries.Values() {
		out = append(out, e.item)
	}
	return out
}

// Empty drains every entry to zero by removing it exactly as many times as
// it was added, emitting one EventRemove per entry.
func (c *Cache[T]) Empty() {
	for _, item := range c.Values() {
		n := c.Count(item)
		for i := 0; i < n; i++ {
			c.Remove(item)
		}
	}
}

func (c *Cache[T]) emit(ev Event, item T) {
	for _, fn := range c.listeners {
		fn(ev, item)
	}
}
